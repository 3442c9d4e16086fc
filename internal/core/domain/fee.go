package domain

import "github.com/shopspring/decimal"

// FeeRate maps a payment method to a fee percentage. A station-scoped rate
// (StationID non-nil) overrides the global rate for the same payment method.
type FeeRate struct {
	FeeRateID       string          `json:"feeRateID"` // Primary Key (UUID)
	PaymentMethodID string          `json:"paymentMethodID"`
	StationID       *string         `json:"stationID,omitempty"` // nil means global default
	FeePercent      decimal.Decimal `json:"feePercent"`
	AuditFields
}
