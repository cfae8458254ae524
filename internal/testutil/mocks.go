package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/domain/export"
	"github.com/pratik-mahalle/cloudcost/internal/domain/user"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[string]*user.User
	EmailIndex  map[string]*user.User
	CreateError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[string]*user.User),
		EmailIndex: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.EmailIndex[u.Email]; ok {
		return errors.Conflict("User already exists with this email")
	}
	u.ID = "user-" + u.Email
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = user.TierFree
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	delete(m.EmailIndex, u.Email)
	delete(m.Users, id)
	return nil
}

// MockFetcher is a mock implementation of cost.Fetcher
type MockFetcher struct {
	mu      sync.Mutex
	Records []*cost.Record
	Err     error
	Calls   int
	Creds   map[string]string
}

func (m *MockFetcher) FetchDailyCosts(ctx context.Context, credentials map[string]string, start, end time.Time) ([]*cost.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Creds = credentials
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*cost.Record, 0, len(m.Records))
	for _, r := range m.Records {
		c := *r
		out = append(out, &c)
	}
	return out, nil
}

// MockArchiver is a mock implementation of export.Archiver
type MockArchiver struct {
	mu      sync.Mutex
	Reports []*export.Report
	UserIDs []string
	Err     error
}

func (m *MockArchiver) Archive(ctx context.Context, userID string, report *export.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, report)
	m.UserIDs = append(m.UserIDs, userID)
	return m.Err
}

// Archived returns how many reports were archived
func (m *MockArchiver) Archived() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reports)
}
