package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SuggestionStatus is the workflow state of a price suggestion.
type SuggestionStatus string

const (
	StatusDraft    SuggestionStatus = "DRAFT"
	StatusPending  SuggestionStatus = "PENDING"
	StatusApproved SuggestionStatus = "APPROVED"
	StatusRejected SuggestionStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further review actions.
func (s SuggestionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// PriceOrigin records where the resolved cost came from, for auditability.
type PriceOrigin struct {
	SupplyBaseName   string       `json:"supplyBaseName"`
	SupplyBaseCode   string       `json:"supplyBaseCode"`
	SupplyBaseRegion string       `json:"supplyBaseRegion"`
	DeliveryMode     DeliveryMode `json:"deliveryMode"`
	CostTier         CostTier     `json:"costTier"`
}

// PriceSuggestion is the unit of work of the approval workflow: a proposed
// price change for one station/client/product, carrying the resolved cost
// inputs and the derived profitability figures reviewers decide on.
type PriceSuggestion struct {
	SuggestionID string      `json:"suggestionID"` // Primary Key (UUID)
	StationID    string      `json:"stationID"`
	ClientID     string      `json:"clientID"`
	Product      ProductCode `json:"product"`

	// Prices are decimal currency per liter. FinalPrice stays zero until the
	// approve transition stamps it from SuggestedPrice.
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	SuggestedPrice decimal.Decimal `json:"suggestedPrice"`
	FinalPrice     decimal.Decimal `json:"finalPrice"`
	CostPrice      decimal.Decimal `json:"costPrice"` // resolved delivered cost

	// Margin and price increase are integer minor currency units; every other
	// monetary figure stays decimal. Conversion happens once, at computation.
	MarginCents        int64 `json:"marginCents"`
	PriceIncreaseCents int64 `json:"priceIncreaseCents"`

	// Cost inputs, currency per liter.
	PurchaseCost decimal.Decimal `json:"purchaseCost"`
	FreightCost  decimal.Decimal `json:"freightCost"`
	FeePercent   decimal.Decimal `json:"feePercent"`

	// ARLA companion figures, populated for diesel S-10 only.
	ArlaPurchasePrice decimal.Decimal `json:"arlaPurchasePrice"`
	ArlaCostPrice     decimal.Decimal `json:"arlaCostPrice"`

	// Volumes in cubic meters as entered; converted to liters inside the
	// calculators only.
	VolumeMadeM3      decimal.Decimal `json:"volumeMadeM3"`
	VolumeProjectedM3 decimal.Decimal `json:"volumeProjectedM3"`

	Status          SuggestionStatus `json:"status"`
	ApprovalLevel   int              `json:"approvalLevel"`   // starts at 1, monotone, capped at TotalApprovers
	TotalApprovers  int              `json:"totalApprovers"`  // default 3
	ApprovalsCount  int              `json:"approvalsCount"`
	RejectionsCount int              `json:"rejectionsCount"`
	ApprovedAt      *time.Time       `json:"approvedAt,omitempty"`
	ApprovedBy      *string          `json:"approvedBy,omitempty"`

	PriceOrigin PriceOrigin `json:"priceOrigin"`

	RequestedBy  string   `json:"requestedBy"`
	Observations string   `json:"observations"`
	Attachments  []string `json:"attachments,omitempty"` // opaque references; storage is external

	AuditFields
}
