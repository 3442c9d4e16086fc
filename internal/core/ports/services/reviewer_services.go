package services

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
)

// ReviewerReaderSvc defines read operations for reviewer accounts.
type ReviewerReaderSvc interface {
	GetReviewerByID(ctx context.Context, reviewerID string) (*domain.Reviewer, error)
	ListReviewers(ctx context.Context, limit, offset int) ([]domain.Reviewer, error)
}

// ReviewerWriterSvc defines write operations for reviewer accounts.
type ReviewerWriterSvc interface {
	CreateReviewer(ctx context.Context, req dto.CreateReviewerRequest) (*domain.Reviewer, error)
	UpdateReviewer(ctx context.Context, reviewerID string, req dto.UpdateReviewerRequest, requestingID string) (*domain.Reviewer, error)
	DeleteReviewer(ctx context.Context, reviewerID string, requestingID string) error
}

// ReviewerAuthSvc defines credential authentication for reviewers.
type ReviewerAuthSvc interface {
	AuthenticateReviewer(ctx context.Context, email, password string) (*domain.Reviewer, error)
}

// ReviewerSvcFacade combines all reviewer-related service interfaces.
type ReviewerSvcFacade interface {
	ReviewerReaderSvc
	ReviewerWriterSvc
	ReviewerAuthSvc
}

// PermissionSvcFacade exposes a reviewer's approval authority: their personal
// margin ceiling and whether they are unrestricted.
type PermissionSvcFacade interface {
	GetApprovalAuthority(ctx context.Context, reviewerID string) (ceilingCents int64, role domain.ReviewerRole, err error)
}

// TokenSvcFacade issues access tokens for authenticated reviewers.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, reviewer *domain.Reviewer) (token string, expiresAt int64, err error)
}
