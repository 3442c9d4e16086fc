package dto

import (
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSuggestionRequest carries everything needed to assemble a price
// suggestion. Volumes are cubic meters; prices are currency per liter.
type CreateSuggestionRequest struct {
	StationID       string          `json:"stationID" binding:"required"`
	ClientID        string          `json:"clientID" binding:"required"`
	PaymentMethodID string          `json:"paymentMethodID" binding:"required"`
	Product         string          `json:"product" binding:"required"`
	CurrentPrice    decimal.Decimal `json:"currentPrice"`
	SuggestedPrice  decimal.Decimal `json:"suggestedPrice" binding:"required"`
	VolumeMadeM3    decimal.Decimal `json:"volumeMadeM3"`
	VolumeProjected decimal.Decimal `json:"volumeProjectedM3" binding:"required"`
	// ArlaSalePrice is the sale price of the companion additive, entered by
	// the requester for diesel S-10 suggestions.
	ArlaSalePrice decimal.Decimal `json:"arlaSalePrice"`
	// AsOfDate is the reference date for cost resolution; defaults to the
	// request date when omitted.
	AsOfDate       *time.Time `json:"asOfDate"`
	TotalApprovers *int       `json:"totalApprovers"`
	Observations   string     `json:"observations"`
	Attachments    []string   `json:"attachments"`
	// Submit creates the suggestion directly in PENDING instead of DRAFT.
	Submit bool `json:"submit"`
}

// UpdateSuggestionRequest updates a draft before submission. Pointers
// distinguish omitted fields from zero values.
type UpdateSuggestionRequest struct {
	CurrentPrice    *decimal.Decimal `json:"currentPrice"`
	SuggestedPrice  *decimal.Decimal `json:"suggestedPrice"`
	VolumeMadeM3    *decimal.Decimal `json:"volumeMadeM3"`
	VolumeProjected *decimal.Decimal `json:"volumeProjectedM3"`
	ArlaSalePrice   *decimal.Decimal `json:"arlaSalePrice"`
	Observations    *string          `json:"observations"`
	Attachments     []string         `json:"attachments"`
}

// ReviewRequest is the body of approve/reject calls. The observation is
// mandatory: review actions without justification are rejected.
type ReviewRequest struct {
	Observation string `json:"observation" binding:"required"`
}

// ListSuggestionsParams defines query parameters for listing suggestions.
type ListSuggestionsParams struct {
	Status    *string `form:"status"`
	StationID *string `form:"stationID"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// SuggestionResponse is the API shape of a price suggestion.
type SuggestionResponse struct {
	SuggestionID       string                  `json:"suggestionID"`
	StationID          string                  `json:"stationID"`
	ClientID           string                  `json:"clientID"`
	Product            domain.ProductCode      `json:"product"`
	CurrentPrice       decimal.Decimal         `json:"currentPrice"`
	SuggestedPrice     decimal.Decimal         `json:"suggestedPrice"`
	FinalPrice         decimal.Decimal         `json:"finalPrice"`
	CostPrice          decimal.Decimal         `json:"costPrice"`
	MarginCents        int64                   `json:"marginCents"`
	PriceIncreaseCents int64                   `json:"priceIncreaseCents"`
	PurchaseCost       decimal.Decimal         `json:"purchaseCost"`
	FreightCost        decimal.Decimal         `json:"freightCost"`
	FeePercent         decimal.Decimal         `json:"feePercent"`
	ArlaPurchasePrice  decimal.Decimal         `json:"arlaPurchasePrice"`
	ArlaCostPrice      decimal.Decimal         `json:"arlaCostPrice"`
	VolumeMadeM3       decimal.Decimal         `json:"volumeMadeM3"`
	VolumeProjectedM3  decimal.Decimal         `json:"volumeProjectedM3"`
	Status             domain.SuggestionStatus `json:"status"`
	ApprovalLevel      int                     `json:"approvalLevel"`
	TotalApprovers     int                     `json:"totalApprovers"`
	ApprovalsCount     int                     `json:"approvalsCount"`
	RejectionsCount    int                     `json:"rejectionsCount"`
	ApprovedAt         *time.Time              `json:"approvedAt,omitempty"`
	ApprovedBy         *string                 `json:"approvedBy,omitempty"`
	PriceOrigin        domain.PriceOrigin      `json:"priceOrigin"`
	RequestedBy        string                  `json:"requestedBy"`
	Observations       string                  `json:"observations"`
	Attachments        []string                `json:"attachments,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	History            []HistoryEntryResponse  `json:"history,omitempty"`
}

// HistoryEntryResponse is the API shape of an approval history entry.
type HistoryEntryResponse struct {
	EntryID       string    `json:"entryID"`
	ApproverID    string    `json:"approverID"`
	Action        string    `json:"action"`
	Observation   string    `json:"observation"`
	ApprovalLevel int       `json:"approvalLevel"`
	ActedAt       time.Time `json:"actedAt"`
}

// ListSuggestionsResponse wraps a page of suggestions.
type ListSuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToSuggestionResponse converts a domain suggestion to its API shape.
func ToSuggestionResponse(s *domain.PriceSuggestion) SuggestionResponse {
	return SuggestionResponse{
		SuggestionID:       s.SuggestionID,
		StationID:          s.StationID,
		ClientID:           s.ClientID,
		Product:            s.Product,
		CurrentPrice:       s.CurrentPrice,
		SuggestedPrice:     s.SuggestedPrice,
		FinalPrice:         s.FinalPrice,
		CostPrice:          s.CostPrice,
		MarginCents:        s.MarginCents,
		PriceIncreaseCents: s.PriceIncreaseCents,
		PurchaseCost:       s.PurchaseCost,
		FreightCost:        s.FreightCost,
		FeePercent:         s.FeePercent,
		ArlaPurchasePrice:  s.ArlaPurchasePrice,
		ArlaCostPrice:      s.ArlaCostPrice,
		VolumeMadeM3:       s.VolumeMadeM3,
		VolumeProjectedM3:  s.VolumeProjectedM3,
		Status:             s.Status,
		ApprovalLevel:      s.ApprovalLevel,
		TotalApprovers:     s.TotalApprovers,
		ApprovalsCount:     s.ApprovalsCount,
		RejectionsCount:    s.RejectionsCount,
		ApprovedAt:         s.ApprovedAt,
		ApprovedBy:         s.ApprovedBy,
		PriceOrigin:        s.PriceOrigin,
		RequestedBy:        s.RequestedBy,
		Observations:       s.Observations,
		Attachments:        s.Attachments,
		CreatedAt:          s.CreatedAt,
	}
}

// ToHistoryEntryResponses converts history entries to their API shape.
func ToHistoryEntryResponses(entries []domain.ApprovalHistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryResponse{
			EntryID:       e.EntryID,
			ApproverID:    e.ApproverID,
			Action:        string(e.Action),
			Observation:   e.Observation,
			ApprovalLevel: e.ApprovalLevel,
			ActedAt:       e.ActedAt,
		}
	}
	return out
}
