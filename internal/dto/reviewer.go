package dto

import (
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// CreateReviewerRequest registers a reviewer account.
type CreateReviewerRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	Role                 string `json:"role" binding:"omitempty,oneof=ORDINARY UNRESTRICTED"`
	ApprovalCeilingCents int64  `json:"approvalCeilingCents"`
}

// UpdateReviewerRequest updates a reviewer account. Pointers distinguish
// omitted fields from zero values.
type UpdateReviewerRequest struct {
	Name                 *string `json:"name"`
	Role                 *string `json:"role" binding:"omitempty,oneof=ORDINARY UNRESTRICTED"`
	ApprovalCeilingCents *int64  `json:"approvalCeilingCents"`
}

// LoginRequest authenticates a reviewer.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries an issued access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ReviewerResponse is the API shape of a reviewer.
type ReviewerResponse struct {
	ReviewerID           string              `json:"reviewerID"`
	Name                 string              `json:"name"`
	Email                string              `json:"email"`
	Role                 domain.ReviewerRole `json:"role"`
	ApprovalCeilingCents int64               `json:"approvalCeilingCents"`
	CreatedAt            time.Time           `json:"createdAt"`
}

// ToReviewerResponse converts a domain reviewer to its API shape.
func ToReviewerResponse(r *domain.Reviewer) ReviewerResponse {
	return ReviewerResponse{
		ReviewerID:           r.ReviewerID,
		Name:                 r.Name,
		Email:                r.Email,
		Role:                 r.Role,
		ApprovalCeilingCents: r.ApprovalCeilingCents,
		CreatedAt:            r.CreatedAt,
	}
}
