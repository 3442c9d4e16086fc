package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pricing"
)

// suggestionService assembles price suggestions: it validates inputs,
// resolves the fee and the delivered cost, derives margin figures, and
// persists the record for review.
type suggestionService struct {
	suggestionRepo portsrepo.SuggestionRepositoryFacade
	feeSvc         portssvc.FeeSvcFacade
	costSvc        portssvc.CostQuoteSvcFacade
	stationSvc     portssvc.StationSvcFacade
	clientSvc      portssvc.ClientSvcFacade
	// defaultTotalApprovers applies when the request does not set one.
	defaultTotalApprovers int
}

// NewSuggestionService creates a new SuggestionSvcFacade.
func NewSuggestionService(
	suggestionRepo portsrepo.SuggestionRepositoryFacade,
	feeSvc portssvc.FeeSvcFacade,
	costSvc portssvc.CostQuoteSvcFacade,
	stationSvc portssvc.StationSvcFacade,
	clientSvc portssvc.ClientSvcFacade,
	defaultTotalApprovers int,
) portssvc.SuggestionSvcFacade {
	if defaultTotalApprovers <= 0 {
		defaultTotalApprovers = 3
	}
	return &suggestionService{
		suggestionRepo:        suggestionRepo,
		feeSvc:                feeSvc,
		costSvc:               costSvc,
		stationSvc:            stationSvc,
		clientSvc:             clientSvc,
		defaultTotalApprovers: defaultTotalApprovers,
	}
}

var _ portssvc.SuggestionSvcFacade = (*suggestionService)(nil)

// CreateSuggestion builds and persists a new price suggestion. Cost inputs
// are populated from the resolvers; the margin and price-increase figures are
// derived here so reviewers and the authority gate see consistent numbers.
func (s *suggestionService) CreateSuggestion(ctx context.Context, req dto.CreateSuggestionRequest, requesterID string) (*domain.PriceSuggestion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product := domain.ProductCode(req.Product)
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := validateMoneyInputs(req.SuggestedPrice, req.CurrentPrice, req.ArlaSalePrice, req.VolumeProjected, req.VolumeMadeM3); err != nil {
		return nil, err
	}

	if _, err := s.stationSvc.GetStationByID(ctx, req.StationID); err != nil {
		return nil, err
	}
	if _, err := s.clientSvc.GetClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	asOf := time.Now().UTC()
	if req.AsOfDate != nil {
		asOf = req.AsOfDate.UTC()
	}

	feePercent, err := s.feeSvc.ResolveFee(ctx, req.StationID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	costRes, err := s.costSvc.ResolveCost(ctx, req.StationID, product, asOf)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	totalApprovers := s.defaultTotalApprovers
	if req.TotalApprovers != nil && *req.TotalApprovers > 0 {
		totalApprovers = *req.TotalApprovers
	}

	status := domain.StatusDraft
	if req.Submit {
		status = domain.StatusPending
	}

	suggestion := domain.PriceSuggestion{
		SuggestionID:      uuid.NewString(),
		StationID:         req.StationID,
		ClientID:          req.ClientID,
		Product:           product,
		CurrentPrice:      req.CurrentPrice,
		SuggestedPrice:    req.SuggestedPrice,
		FeePercent:        feePercent,
		ArlaPurchasePrice: req.ArlaSalePrice,
		VolumeMadeM3:      req.VolumeMadeM3,
		VolumeProjectedM3: req.VolumeProjected,
		Status:            status,
		ApprovalLevel:     1,
		TotalApprovers:    totalApprovers,
		PriceOrigin:       costRes.Origin,
		RequestedBy:       requesterID,
		Observations:      req.Observations,
		Attachments:       req.Attachments,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}

	// A TierNone resolution leaves cost inputs zero; a margin computed from a
	// fabricated cost would be worse than no margin at all.
	if costRes.Tier != domain.TierNone {
		suggestion.PurchaseCost = costRes.BaseCost
		suggestion.FreightCost = costRes.Freight
		suggestion.CostPrice = costRes.TotalCost
		suggestion.MarginCents = pricing.MarginCents(req.SuggestedPrice, costRes.TotalCost, feePercent)
	}
	if costRes.ArlaResolved {
		suggestion.ArlaCostPrice = costRes.ArlaCost
	}
	if req.CurrentPrice.IsPositive() {
		suggestion.PriceIncreaseCents = pricing.PriceIncreaseCents(req.SuggestedPrice, req.CurrentPrice)
	}

	if err := s.suggestionRepo.SaveSuggestion(ctx, suggestion); err != nil {
		logger.Error("Failed to save suggestion", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save suggestion: %w", err)
	}

	logger.Info("Suggestion created",
		slog.String("suggestion_id", suggestion.SuggestionID),
		slog.String("status", string(status)),
		slog.String("cost_tier", string(costRes.Tier)),
	)
	return &suggestion, nil
}

// UpdateSuggestion updates an unsubmitted draft. Only the requester may edit,
// and only while the suggestion has not entered review.
func (s *suggestionService) UpdateSuggestion(ctx context.Context, suggestionID string, req dto.UpdateSuggestionRequest, requesterID string) (*domain.PriceSuggestion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	suggestion, err := s.suggestionRepo.FindSuggestionByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: only drafts may be edited", apperrors.ErrConflict)
	}
	if suggestion.RequestedBy != requesterID {
		return nil, fmt.Errorf("%w: only the requester may edit", apperrors.ErrForbidden)
	}

	updated := false
	if req.CurrentPrice != nil {
		suggestion.CurrentPrice = *req.CurrentPrice
		updated = true
	}
	if req.SuggestedPrice != nil {
		suggestion.SuggestedPrice = *req.SuggestedPrice
		updated = true
	}
	if req.VolumeMadeM3 != nil {
		suggestion.VolumeMadeM3 = *req.VolumeMadeM3
		updated = true
	}
	if req.VolumeProjected != nil {
		suggestion.VolumeProjectedM3 = *req.VolumeProjected
		updated = true
	}
	if req.ArlaSalePrice != nil {
		suggestion.ArlaPurchasePrice = *req.ArlaSalePrice
		updated = true
	}
	if req.Observations != nil {
		suggestion.Observations = *req.Observations
		updated = true
	}
	if req.Attachments != nil {
		suggestion.Attachments = req.Attachments
		updated = true
	}
	if !updated {
		return suggestion, nil
	}

	if err := validateMoneyInputs(suggestion.SuggestedPrice, suggestion.CurrentPrice, suggestion.ArlaPurchasePrice, suggestion.VolumeProjectedM3, suggestion.VolumeMadeM3); err != nil {
		return nil, err
	}

	// Re-derive margin figures from the stored cost inputs.
	if suggestion.PriceOrigin.CostTier != domain.TierNone && suggestion.PriceOrigin.CostTier != "" {
		suggestion.MarginCents = pricing.MarginCents(suggestion.SuggestedPrice, suggestion.CostPrice, suggestion.FeePercent)
	}
	if suggestion.CurrentPrice.IsPositive() {
		suggestion.PriceIncreaseCents = pricing.PriceIncreaseCents(suggestion.SuggestedPrice, suggestion.CurrentPrice)
	}

	now := time.Now().UTC()
	suggestion.LastUpdatedAt = now
	suggestion.LastUpdatedBy = requesterID

	if err := s.suggestionRepo.UpdateSuggestion(ctx, *suggestion); err != nil {
		logger.Error("Failed to update suggestion", slog.String("error", err.Error()), slog.String("suggestion_id", suggestionID))
		return nil, fmt.Errorf("failed to update suggestion: %w", err)
	}
	return suggestion, nil
}

// GetSuggestionByID retrieves a suggestion along with its approval history.
func (s *suggestionService) GetSuggestionByID(ctx context.Context, suggestionID string) (*domain.PriceSuggestion, []domain.ApprovalHistoryEntry, error) {
	suggestion, err := s.suggestionRepo.FindSuggestionByID(ctx, suggestionID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.suggestionRepo.FindHistoryBySuggestionID(ctx, suggestionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve approval history for %s: %w", suggestionID, err)
	}
	return suggestion, history, nil
}

// ListSuggestions retrieves a filtered, paginated list of suggestions.
func (s *suggestionService) ListSuggestions(ctx context.Context, params dto.ListSuggestionsParams) (*dto.ListSuggestionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListSuggestionsFilter{
		StationID: params.StationID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != nil {
		status := domain.SuggestionStatus(*params.Status)
		switch status {
		case domain.StatusDraft, domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrValidation, *params.Status)
		}
	}

	suggestions, nextToken, err := s.suggestionRepo.ListSuggestions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list suggestions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve suggestions: %w", err)
	}

	responses := make([]dto.SuggestionResponse, len(suggestions))
	for i := range suggestions {
		responses[i] = dto.ToSuggestionResponse(&suggestions[i])
	}
	return &dto.ListSuggestionsResponse{Suggestions: responses, NextToken: nextToken}, nil
}

// validateMoneyInputs rejects negative prices and volumes before any
// computation runs. The calculators are total functions over what remains.
func validateMoneyInputs(suggestedPrice, currentPrice, arlaSalePrice, volumeProjected, volumeMade decimal.Decimal) error {
	if suggestedPrice.IsNegative() {
		return fmt.Errorf("%w: suggested price must not be negative", apperrors.ErrValidation)
	}
	if currentPrice.IsNegative() {
		return fmt.Errorf("%w: current price must not be negative", apperrors.ErrValidation)
	}
	if arlaSalePrice.IsNegative() {
		return fmt.Errorf("%w: additive sale price must not be negative", apperrors.ErrValidation)
	}
	if volumeProjected.IsNegative() {
		return fmt.Errorf("%w: projected volume must not be negative", apperrors.ErrValidation)
	}
	if volumeMade.IsNegative() {
		return fmt.Errorf("%w: realized volume must not be negative", apperrors.ErrValidation)
	}
	return nil
}
