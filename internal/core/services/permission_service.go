package services

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
)

// permissionService answers "how much margin may this reviewer approve".
type permissionService struct {
	reviewerRepo portsrepo.ReviewerReader
}

// NewPermissionService creates a new PermissionSvcFacade.
func NewPermissionService(reviewerRepo portsrepo.ReviewerReader) portssvc.PermissionSvcFacade {
	return &permissionService{reviewerRepo: reviewerRepo}
}

var _ portssvc.PermissionSvcFacade = (*permissionService)(nil)

// GetApprovalAuthority returns the reviewer's margin ceiling and role. The
// ceiling is meaningless for unrestricted reviewers; callers check the role
// before comparing against it.
func (s *permissionService) GetApprovalAuthority(ctx context.Context, reviewerID string) (int64, domain.ReviewerRole, error) {
	reviewer, err := s.reviewerRepo.FindReviewerByID(ctx, reviewerID)
	if err != nil {
		return 0, "", err
	}
	return reviewer.ApprovalCeilingCents, reviewer.Role, nil
}
