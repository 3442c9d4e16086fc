package services

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// ApprovalSvcFacade owns the lifecycle of a price suggestion under review and
// records every approve/reject action.
type ApprovalSvcFacade interface {
	// Submit transitions a draft suggestion to pending.
	Submit(ctx context.Context, suggestionID string, requesterID string) (*domain.PriceSuggestion, error)

	// Approve records an approval. A single approval finalizes the
	// suggestion as APPROVED.
	Approve(ctx context.Context, suggestionID string, approverID string, observation string) (*domain.PriceSuggestion, error)

	// Reject records a rejection. The suggestion only becomes REJECTED once
	// every configured approver has rejected; earlier rejections advance the
	// approval level and leave it PENDING.
	Reject(ctx context.Context, suggestionID string, approverID string, observation string) (*domain.PriceSuggestion, error)

	// Delete removes a suggestion and records the deletion in the audit log.
	Delete(ctx context.Context, suggestionID string, actorID string) error
}
