package dto

import "github.com/pratik-mahalle/cloudcost/internal/domain/deletion"

// RecordDeletionRequest records a deleted resource
type RecordDeletionRequest struct {
	CloudAccountID    string   `json:"cloudAccountId" validate:"required,notblank"`
	ResourceID        string   `json:"resourceId" validate:"required,notblank"`
	ResourceType      string   `json:"resourceType" validate:"required,notblank"`
	DeletionMethod    string   `json:"deletionMethod" validate:"required,oneof=MANUAL AUTOMATED RECOMMENDATION"`
	ResourceName      string   `json:"resourceName,omitempty" validate:"omitempty,max=255"`
	DeletedBy         string   `json:"deletedBy,omitempty" validate:"omitempty,max=255"`
	MonthlyCostBefore *float64 `json:"monthlyCostBefore,omitempty" validate:"omitempty,gte=0"`
	DeletionReason    string   `json:"deletionReason,omitempty"`
	RecommendationID  *string  `json:"recommendationId,omitempty"`
}

// ToInput converts the request to service input
func (r RecordDeletionRequest) ToInput() deletion.RecordInput {
	return deletion.RecordInput{
		CloudAccountID:    r.CloudAccountID,
		ResourceID:        r.ResourceID,
		ResourceType:      r.ResourceType,
		ResourceName:      r.ResourceName,
		DeletedBy:         r.DeletedBy,
		DeletionMethod:    r.DeletionMethod,
		MonthlyCostBefore: r.MonthlyCostBefore,
		DeletionReason:    r.DeletionReason,
		RecommendationID:  r.RecommendationID,
	}
}
