package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryMode determines whether freight is added to a quoted unit price.
type DeliveryMode string

const (
	// DeliveryPickUp means the buyer arranges transport; the station's active
	// freight rate for the supply base is added to the quoted price.
	DeliveryPickUp DeliveryMode = "PICK_UP"
	// DeliveryDelivered means freight is included in the quoted price.
	DeliveryDelivered DeliveryMode = "DELIVERED"
)

// SupplyQuote is a wholesale quotation from a supply base for one product on
// one date.
type SupplyQuote struct {
	QuoteID          string          `json:"quoteID"` // Primary Key (UUID)
	SupplyBaseID     string          `json:"supplyBaseID"`
	SupplyBaseName   string          `json:"supplyBaseName"`
	SupplyBaseCode   string          `json:"supplyBaseCode"`
	SupplyBaseRegion string          `json:"supplyBaseRegion"`
	Product          ProductCode     `json:"product"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Discount         decimal.Decimal `json:"discount"`
	DeliveryMode     DeliveryMode    `json:"deliveryMode"`
	QuoteDate        time.Time       `json:"quoteDate"`
	AuditFields
}

// FreightRate is the cost of hauling from a supply base to a station, applied
// only to pick-up quotations while active.
type FreightRate struct {
	FreightRateID string          `json:"freightRateID"` // Primary Key (UUID)
	StationID     string          `json:"stationID"`
	SupplyBaseID  string          `json:"supplyBaseID"`
	Rate          decimal.Decimal `json:"rate"` // currency per liter
	Active        bool            `json:"active"`
	AuditFields
}

// ManualReferencePrice is a hand-entered cost used when no structured
// quotation exists for a station/product pair.
type ManualReferencePrice struct {
	ReferenceID   string          `json:"referenceID"` // Primary Key (UUID)
	StationID     string          `json:"stationID"`
	Product       ProductCode     `json:"product"`
	Price         decimal.Decimal `json:"price"`
	ReferenceDate time.Time       `json:"referenceDate"`
	AuditFields
}

// CostTier identifies which fallback produced a cost resolution.
type CostTier string

const (
	TierExactDate       CostTier = "EXACT_DATE"
	TierLatestAvailable CostTier = "LATEST_AVAILABLE"
	TierManualReference CostTier = "MANUAL_REFERENCE"
	TierNone            CostTier = "NONE"
)

// CostResolution is the outcome of resolving the cheapest eligible supply
// cost for a station/product/date. Tier NONE is a normal result, not an
// error: callers must not fabricate a cost when nothing was found.
type CostResolution struct {
	BaseCost     decimal.Decimal `json:"baseCost"`
	Freight      decimal.Decimal `json:"freight"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Origin       PriceOrigin     `json:"origin"`
	QuotedAt     time.Time       `json:"quotedAt"`
	Tier         CostTier        `json:"tier"`
	ArlaCost     decimal.Decimal `json:"arlaCost"`     // companion ARLA unit cost for diesel S-10
	ArlaResolved bool            `json:"arlaResolved"` // false when no ARLA cost could be found
}
