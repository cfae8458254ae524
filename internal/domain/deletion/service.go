package deletion

import "context"

// Service defines the Nuke tracker business logic
type Service interface {
	List(ctx context.Context, userID string, filter Filter) ([]*Deletion, error)
	Record(ctx context.Context, userID string, in RecordInput) (*Deletion, error)
	Analytics(ctx context.Context, userID string) (*Analytics, error)
}
