package services

import (
	"context"
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

// FeeSvcFacade resolves the payment fee percentage applicable to a
// station/payment-method pair. An unconfigured method resolves to zero;
// absence is "no fee", never an error.
type FeeSvcFacade interface {
	ResolveFee(ctx context.Context, stationID string, paymentMethodID string) (decimal.Decimal, error)
}

// CostQuoteSvcFacade resolves the cheapest eligible delivered cost for a
// station/product/date, degrading through the quote tiers down to an explicit
// TierNone result.
type CostQuoteSvcFacade interface {
	ResolveCost(ctx context.Context, stationID string, product domain.ProductCode, asOf time.Time) (*domain.CostResolution, error)
}

// ProfitabilitySvcFacade validates calculator inputs and produces the full
// profitability breakdown.
type ProfitabilitySvcFacade interface {
	ComputeProfitability(ctx context.Context, in pricing.ProfitabilityInput) (*pricing.ProfitabilityResult, error)
}
