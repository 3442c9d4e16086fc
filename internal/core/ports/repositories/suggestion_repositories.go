package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// ListSuggestionsFilter narrows suggestion listings.
type ListSuggestionsFilter struct {
	Status    *domain.SuggestionStatus
	StationID *string
	Limit     int
	NextToken *string
}

// ReviewUpdate is the compare-and-swap payload for a single reviewer action.
// The Expected* fields are the values read before computing the transition;
// the repository must apply the update only if they still hold, and return
// apperrors.ErrConflict otherwise.
type ReviewUpdate struct {
	SuggestionID       string
	ExpectedApprovals  int
	ExpectedRejections int
	NewStatus          domain.SuggestionStatus
	NewApprovalLevel   int
	NewApprovals       int
	NewRejections      int
	// NewFinalPrice is set on the approve transition; nil leaves the stored
	// final price untouched.
	NewFinalPrice *decimal.Decimal
	ApprovedAt    *time.Time
	ApprovedBy    *string
	UpdatedBy          string
	UpdatedAt          time.Time
}

// SuggestionReader defines read operations for price suggestions.
type SuggestionReader interface {
	// FindSuggestionByID retrieves a suggestion by its unique identifier.
	FindSuggestionByID(ctx context.Context, suggestionID string) (*domain.PriceSuggestion, error)

	// ListSuggestions retrieves a filtered, token-paginated list of suggestions.
	// It returns the suggestions, a token for the next page, and an error.
	ListSuggestions(ctx context.Context, filter ListSuggestionsFilter) ([]domain.PriceSuggestion, *string, error)
}

// SuggestionWriter defines write operations for price suggestions.
type SuggestionWriter interface {
	// SaveSuggestion persists a new suggestion.
	SaveSuggestion(ctx context.Context, suggestion domain.PriceSuggestion) error

	// UpdateSuggestion updates a draft suggestion's editable fields.
	UpdateSuggestion(ctx context.Context, suggestion domain.PriceSuggestion) error

	// MarkSubmitted transitions a suggestion from DRAFT to PENDING. Returns
	// apperrors.ErrConflict if the suggestion is no longer a draft.
	MarkSubmitted(ctx context.Context, suggestionID string, updatedBy string, updatedAt time.Time) error

	// ApplyReview atomically applies a review decision and appends its history
	// entry in one transaction. The counters and status are guarded by the
	// expected values in upd; a stale snapshot yields apperrors.ErrConflict.
	ApplyReview(ctx context.Context, upd ReviewUpdate, entry domain.ApprovalHistoryEntry) error

	// DeleteSuggestion removes a suggestion and its history entries.
	DeleteSuggestion(ctx context.Context, suggestionID string) error
}

// ApprovalHistoryReader defines read operations for the approval audit trail.
type ApprovalHistoryReader interface {
	// FindHistoryBySuggestionID returns all history entries for a suggestion,
	// oldest first.
	FindHistoryBySuggestionID(ctx context.Context, suggestionID string) ([]domain.ApprovalHistoryEntry, error)
}

// SuggestionRepositoryFacade combines all suggestion-related repository interfaces.
type SuggestionRepositoryFacade interface {
	SuggestionReader
	SuggestionWriter
	ApprovalHistoryReader
}

// SuggestionRepositoryWithTx extends SuggestionRepositoryFacade with transaction capabilities.
type SuggestionRepositoryWithTx interface {
	SuggestionRepositoryFacade
	TransactionManager
}
