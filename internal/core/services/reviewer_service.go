package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
	"github.com/petroprice/fuel_pricing_app/internal/utils"
)

// reviewerService manages reviewer accounts and credential authentication.
type reviewerService struct {
	reviewerRepo portsrepo.ReviewerRepositoryFacade
}

// NewReviewerService creates a new ReviewerSvcFacade.
func NewReviewerService(reviewerRepo portsrepo.ReviewerRepositoryFacade) portssvc.ReviewerSvcFacade {
	return &reviewerService{reviewerRepo: reviewerRepo}
}

var _ portssvc.ReviewerSvcFacade = (*reviewerService)(nil)

// CreateReviewer registers a new reviewer account.
func (s *reviewerService) CreateReviewer(ctx context.Context, req dto.CreateReviewerRequest) (*domain.Reviewer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.reviewerRepo.FindReviewerByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing reviewer: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleOrdinary
	if req.Role != "" {
		role = domain.ReviewerRole(req.Role)
	}
	if req.ApprovalCeilingCents < 0 {
		return nil, fmt.Errorf("%w: approval ceiling must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	reviewer := domain.Reviewer{
		ReviewerID:           uuid.NewString(),
		Name:                 req.Name,
		Email:                email,
		Role:                 role,
		ApprovalCeilingCents: req.ApprovalCeilingCents,
		PasswordHash:         hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.reviewerRepo.SaveReviewer(ctx, reviewer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save reviewer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reviewer: %w", err)
	}

	logger.Info("Reviewer created", slog.String("reviewer_id", reviewer.ReviewerID))
	return &reviewer, nil
}

// GetReviewerByID retrieves a reviewer account.
func (s *reviewerService) GetReviewerByID(ctx context.Context, reviewerID string) (*domain.Reviewer, error) {
	return s.reviewerRepo.FindReviewerByID(ctx, reviewerID)
}

// ListReviewers retrieves a paginated list of reviewer accounts.
func (s *reviewerService) ListReviewers(ctx context.Context, limit, offset int) ([]domain.Reviewer, error) {
	return s.reviewerRepo.ListReviewers(ctx, limit, offset)
}

// UpdateReviewer updates mutable reviewer fields. Role and ceiling changes
// are restricted to unrestricted reviewers at the handler boundary.
func (s *reviewerService) UpdateReviewer(ctx context.Context, reviewerID string, req dto.UpdateReviewerRequest, requestingID string) (*domain.Reviewer, error) {
	reviewer, err := s.reviewerRepo.FindReviewerByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		reviewer.Name = *req.Name
	}
	if req.Role != nil {
		reviewer.Role = domain.ReviewerRole(*req.Role)
	}
	if req.ApprovalCeilingCents != nil {
		if *req.ApprovalCeilingCents < 0 {
			return nil, fmt.Errorf("%w: approval ceiling must not be negative", apperrors.ErrValidation)
		}
		reviewer.ApprovalCeilingCents = *req.ApprovalCeilingCents
	}

	now := time.Now().UTC()
	reviewer.LastUpdatedAt = now
	reviewer.LastUpdatedBy = requestingID

	if err := s.reviewerRepo.UpdateReviewer(ctx, *reviewer); err != nil {
		return nil, fmt.Errorf("failed to update reviewer %s: %w", reviewerID, err)
	}
	return reviewer, nil
}

// DeleteReviewer soft deletes a reviewer account.
func (s *reviewerService) DeleteReviewer(ctx context.Context, reviewerID string, requestingID string) error {
	if _, err := s.reviewerRepo.FindReviewerByID(ctx, reviewerID); err != nil {
		return err
	}
	return s.reviewerRepo.MarkReviewerDeleted(ctx, reviewerID, requestingID, time.Now().UTC())
}

// AuthenticateReviewer verifies credentials. Both unknown email and wrong
// password surface as ErrUnauthorized so login does not leak which was wrong.
func (s *reviewerService) AuthenticateReviewer(ctx context.Context, email, password string) (*domain.Reviewer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reviewer, err := s.reviewerRepo.FindReviewerByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up reviewer: %w", err)
	}
	if !utils.CheckPasswordHash(password, reviewer.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("reviewer_id", reviewer.ReviewerID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return reviewer, nil
}
