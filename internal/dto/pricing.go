package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolveCostParams defines query parameters for cost resolution.
type ResolveCostParams struct {
	StationID string     `form:"stationID" binding:"required"`
	Product   string     `form:"product" binding:"required"`
	AsOf      *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ResolveFeeParams defines query parameters for fee resolution.
type ResolveFeeParams struct {
	StationID       string `form:"stationID" binding:"required"`
	PaymentMethodID string `form:"paymentMethodID" binding:"required"`
}

// ProfitabilityRequest is the calculator preview body. Monetary values are
// currency per liter, the volume is cubic meters.
type ProfitabilityRequest struct {
	Product           string          `json:"product" binding:"required"`
	PurchaseCost      decimal.Decimal `json:"purchaseCost"`
	FreightCost       decimal.Decimal `json:"freightCost"`
	FeePercent        decimal.Decimal `json:"feePercent"`
	SuggestedPrice    decimal.Decimal `json:"suggestedPrice" binding:"required"`
	VolumeProjectedM3 decimal.Decimal `json:"volumeProjectedM3"`
	ArlaSalePrice     decimal.Decimal `json:"arlaSalePrice"`
	ArlaCostPrice     decimal.Decimal `json:"arlaCostPrice"`
}
