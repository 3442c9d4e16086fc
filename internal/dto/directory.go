package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStationRequest creates a station directory entry.
type CreateStationRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Region string `json:"region"`
}

// CreateClientRequest creates a client directory entry.
type CreateClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code"`
	Region string `json:"region"`
}

// CreatePaymentMethodRequest creates a payment method.
type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetFeeRateRequest configures a fee percentage for a payment method,
// station-scoped when StationID is set, global otherwise.
type SetFeeRateRequest struct {
	PaymentMethodID string          `json:"paymentMethodID" binding:"required"`
	StationID       *string         `json:"stationID"`
	FeePercent      decimal.Decimal `json:"feePercent"`
}

// CreateQuoteRequest records a supply quotation.
type CreateQuoteRequest struct {
	SupplyBaseID     string          `json:"supplyBaseID" binding:"required"`
	SupplyBaseName   string          `json:"supplyBaseName"`
	SupplyBaseCode   string          `json:"supplyBaseCode"`
	SupplyBaseRegion string          `json:"supplyBaseRegion"`
	Product          string          `json:"product" binding:"required"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"required"`
	Discount         decimal.Decimal `json:"discount"`
	DeliveryMode     string          `json:"deliveryMode" binding:"required,oneof=PICK_UP DELIVERED"`
	QuoteDate        time.Time       `json:"quoteDate" binding:"required"`
}

// CreateFreightRateRequest records a station/supply-base freight rate.
type CreateFreightRateRequest struct {
	StationID    string          `json:"stationID" binding:"required"`
	SupplyBaseID string          `json:"supplyBaseID" binding:"required"`
	Rate         decimal.Decimal `json:"rate"`
	Active       bool            `json:"active"`
}

// CreateManualReferenceRequest records a manually entered reference price.
type CreateManualReferenceRequest struct {
	StationID     string          `json:"stationID" binding:"required"`
	Product       string          `json:"product" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	ReferenceDate time.Time       `json:"referenceDate" binding:"required"`
}
