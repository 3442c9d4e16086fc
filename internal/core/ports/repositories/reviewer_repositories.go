package repositories

import (
	"context"
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// ReviewerReader defines read operations for reviewer accounts.
type ReviewerReader interface {
	FindReviewerByID(ctx context.Context, reviewerID string) (*domain.Reviewer, error)
	FindReviewerByEmail(ctx context.Context, email string) (*domain.Reviewer, error)
	ListReviewers(ctx context.Context, limit int, offset int) ([]domain.Reviewer, error)
}

// ReviewerWriter defines write operations for reviewer accounts.
type ReviewerWriter interface {
	SaveReviewer(ctx context.Context, reviewer domain.Reviewer) error
	UpdateReviewer(ctx context.Context, reviewer domain.Reviewer) error
	// MarkReviewerDeleted soft deletes a reviewer.
	MarkReviewerDeleted(ctx context.Context, reviewerID string, deletedBy string, deletedAt time.Time) error
}

// ReviewerRepositoryFacade combines reviewer repository interfaces.
type ReviewerRepositoryFacade interface {
	ReviewerReader
	ReviewerWriter
}
