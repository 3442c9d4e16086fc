package services

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
)

// SuggestionReaderSvc defines read operations for price suggestions.
type SuggestionReaderSvc interface {
	// GetSuggestionByID retrieves a suggestion with its approval history.
	GetSuggestionByID(ctx context.Context, suggestionID string) (*domain.PriceSuggestion, []domain.ApprovalHistoryEntry, error)

	// ListSuggestions retrieves a filtered, paginated list of suggestions.
	ListSuggestions(ctx context.Context, params dto.ListSuggestionsParams) (*dto.ListSuggestionsResponse, error)
}

// SuggestionWriterSvc defines operations available to the requester before review.
type SuggestionWriterSvc interface {
	// CreateSuggestion assembles and persists a new suggestion, resolving
	// cost and fee inputs and deriving margin and profitability figures.
	CreateSuggestion(ctx context.Context, req dto.CreateSuggestionRequest, requesterID string) (*domain.PriceSuggestion, error)

	// UpdateSuggestion updates an unsubmitted (draft) suggestion.
	UpdateSuggestion(ctx context.Context, suggestionID string, req dto.UpdateSuggestionRequest, requesterID string) (*domain.PriceSuggestion, error)
}

// SuggestionSvcFacade combines suggestion read/write interfaces.
type SuggestionSvcFacade interface {
	SuggestionReaderSvc
	SuggestionWriterSvc
}
