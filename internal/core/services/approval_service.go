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
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

var (
	ErrObservationMissing = errors.New("review observation is required")
	ErrAlreadyFinalized   = errors.New("suggestion has reached a terminal status")
	ErrNotDraft           = errors.New("suggestion is not a draft")
	ErrNotPending         = errors.New("suggestion is not pending review")
)

// approvalService owns the review lifecycle of price suggestions.
//
// The quorum is deliberately asymmetric: a single approval finalizes the
// suggestion, while rejection requires every configured approver to reject.
// A lone rejection only advances the approval level.
type approvalService struct {
	suggestionRepo portsrepo.SuggestionRepositoryWithTx
	permissionSvc  portssvc.PermissionSvcFacade
	auditSvc       portssvc.AuditSvcFacade
}

// NewApprovalService creates a new ApprovalSvcFacade.
func NewApprovalService(suggestionRepo portsrepo.SuggestionRepositoryWithTx, permissionSvc portssvc.PermissionSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.ApprovalSvcFacade {
	return &approvalService{
		suggestionRepo: suggestionRepo,
		permissionSvc:  permissionSvc,
		auditSvc:       auditSvc,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// Submit transitions a draft suggestion to pending. Prices and volumes are
// frozen as entered; there are no other side effects.
func (s *approvalService) Submit(ctx context.Context, suggestionID string, requesterID string) (*domain.PriceSuggestion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	suggestion, err := s.suggestionRepo.FindSuggestionByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: status is %s", ErrNotDraft, suggestion.Status)
	}
	if suggestion.RequestedBy != requesterID {
		return nil, fmt.Errorf("%w: only the requester may submit", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.suggestionRepo.MarkSubmitted(ctx, suggestionID, requesterID, now); err != nil {
		logger.Error("Failed to submit suggestion", slog.String("error", err.Error()), slog.String("suggestion_id", suggestionID))
		return nil, err
	}

	suggestion.Status = domain.StatusPending
	suggestion.LastUpdatedAt = now
	suggestion.LastUpdatedBy = requesterID
	logger.Info("Suggestion submitted", slog.String("suggestion_id", suggestionID))
	return suggestion, nil
}

// Approve records an approval. A single approval is sufficient: the
// suggestion transitions to APPROVED, the approval level jumps to the
// configured total, and the approval is stamped.
func (s *approvalService) Approve(ctx context.Context, suggestionID string, approverID string, observation string) (*domain.PriceSuggestion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	suggestion, err := s.validateReviewAction(ctx, suggestionID, approverID, observation, true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newApprovals := suggestion.ApprovalsCount + 1

	upd := portsrepo.ReviewUpdate{
		SuggestionID:       suggestionID,
		ExpectedApprovals:  suggestion.ApprovalsCount,
		ExpectedRejections: suggestion.RejectionsCount,
		NewApprovals:       newApprovals,
		NewRejections:      suggestion.RejectionsCount,
		UpdatedBy:          approverID,
		UpdatedAt:          now,
	}
	if newApprovals >= 1 {
		upd.NewStatus = domain.StatusApproved
		upd.NewApprovalLevel = suggestion.TotalApprovers
		upd.ApprovedAt = &now
		approver := approverID
		upd.ApprovedBy = &approver
		// The suggested price becomes the effective price on approval.
		finalPrice := suggestion.SuggestedPrice
		upd.NewFinalPrice = &finalPrice
	} else {
		upd.NewStatus = domain.StatusPending
		upd.NewApprovalLevel = nextLevel(suggestion.ApprovalLevel, suggestion.TotalApprovers)
	}

	entry := domain.ApprovalHistoryEntry{
		EntryID:       uuid.NewString(),
		SuggestionID:  suggestionID,
		ApproverID:    approverID,
		Action:        domain.ActionApproved,
		Observation:   observation,
		ApprovalLevel: suggestion.ApprovalLevel,
		ActedAt:       now,
	}

	if err := s.suggestionRepo.ApplyReview(ctx, upd, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent review detected on approve", slog.String("suggestion_id", suggestionID))
		} else {
			logger.Error("Failed to apply approval", slog.String("error", err.Error()), slog.String("suggestion_id", suggestionID))
		}
		return nil, err
	}

	applyReviewLocally(suggestion, upd)
	logger.Info("Suggestion approved", slog.String("suggestion_id", suggestionID), slog.String("approver_id", approverID))
	return suggestion, nil
}

// Reject records a rejection. The suggestion only becomes REJECTED once every
// configured approver has rejected; until then it stays pending and the
// review escalates one level.
func (s *approvalService) Reject(ctx context.Context, suggestionID string, approverID string, observation string) (*domain.PriceSuggestion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	suggestion, err := s.validateReviewAction(ctx, suggestionID, approverID, observation, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newRejections := suggestion.RejectionsCount + 1

	upd := portsrepo.ReviewUpdate{
		SuggestionID:       suggestionID,
		ExpectedApprovals:  suggestion.ApprovalsCount,
		ExpectedRejections: suggestion.RejectionsCount,
		NewApprovals:       suggestion.ApprovalsCount,
		NewRejections:      newRejections,
		UpdatedBy:          approverID,
		UpdatedAt:          now,
	}
	if newRejections >= suggestion.TotalApprovers {
		upd.NewStatus = domain.StatusRejected
		upd.NewApprovalLevel = suggestion.TotalApprovers
		upd.ApprovedAt = &now
		actor := approverID
		upd.ApprovedBy = &actor
	} else {
		upd.NewStatus = domain.StatusPending
		upd.NewApprovalLevel = nextLevel(suggestion.ApprovalLevel, suggestion.TotalApprovers)
	}

	entry := domain.ApprovalHistoryEntry{
		EntryID:       uuid.NewString(),
		SuggestionID:  suggestionID,
		ApproverID:    approverID,
		Action:        domain.ActionRejected,
		Observation:   observation,
		ApprovalLevel: suggestion.ApprovalLevel,
		ActedAt:       now,
	}

	if err := s.suggestionRepo.ApplyReview(ctx, upd, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent review detected on reject", slog.String("suggestion_id", suggestionID))
		} else {
			logger.Error("Failed to apply rejection", slog.String("error", err.Error()), slog.String("suggestion_id", suggestionID))
		}
		return nil, err
	}

	applyReviewLocally(suggestion, upd)
	logger.Info("Suggestion rejection recorded", slog.String("suggestion_id", suggestionID), slog.String("approver_id", approverID), slog.String("status", string(suggestion.Status)))
	return suggestion, nil
}

// Delete removes a suggestion and records the deletion in the audit log.
// Deletion from a terminal state is permitted here; restricting it is a
// caller policy.
func (s *approvalService) Delete(ctx context.Context, suggestionID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.suggestionRepo.FindSuggestionByID(ctx, suggestionID); err != nil {
		return err
	}

	if err := s.suggestionRepo.DeleteSuggestion(ctx, suggestionID); err != nil {
		logger.Error("Failed to delete suggestion", slog.String("error", err.Error()), slog.String("suggestion_id", suggestionID))
		return err
	}

	s.auditSvc.Record(ctx, "suggestion.delete", "price_suggestion", suggestionID, actorID)
	logger.Info("Suggestion deleted", slog.String("suggestion_id", suggestionID))
	return nil
}

// validateReviewAction runs the shared approve/reject preconditions and
// returns a fresh snapshot of the suggestion.
func (s *approvalService) validateReviewAction(ctx context.Context, suggestionID string, approverID string, observation string, isApprove bool) (*domain.PriceSuggestion, error) {
	if strings.TrimSpace(observation) == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrObservationMissing)
	}

	suggestion, err := s.suggestionRepo.FindSuggestionByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyFinalized)
	}
	if suggestion.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNotPending)
	}

	// Approval authority: an ordinary reviewer may not approve a margin above
	// their personal ceiling. Rejections are not ceiling-gated.
	if isApprove && s.permissionSvc != nil {
		ceiling, role, err := s.permissionSvc.GetApprovalAuthority(ctx, approverID)
		if err != nil {
			return nil, err
		}
		if role != domain.RoleUnrestricted && suggestion.MarginCents > ceiling {
			return nil, fmt.Errorf("%w: margin %d exceeds approval ceiling %d", apperrors.ErrForbidden, suggestion.MarginCents, ceiling)
		}
	}

	return suggestion, nil
}

// nextLevel advances the approval level by one, capped at the configured
// total. The level never decreases.
func nextLevel(current, total int) int {
	next := current + 1
	if next > total {
		return total
	}
	return next
}

func applyReviewLocally(s *domain.PriceSuggestion, upd portsrepo.ReviewUpdate) {
	s.Status = upd.NewStatus
	s.ApprovalLevel = upd.NewApprovalLevel
	s.ApprovalsCount = upd.NewApprovals
	s.RejectionsCount = upd.NewRejections
	if upd.NewFinalPrice != nil {
		s.FinalPrice = *upd.NewFinalPrice
	}
	s.ApprovedAt = upd.ApprovedAt
	s.ApprovedBy = upd.ApprovedBy
	s.LastUpdatedAt = upd.UpdatedAt
	s.LastUpdatedBy = upd.UpdatedBy
}
