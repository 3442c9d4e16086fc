package repositories

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// FeeRateReader defines read operations for payment-method fee tables.
type FeeRateReader interface {
	// FindStationFee returns the station-scoped fee for the payment method,
	// or ErrNotFound when no override is configured.
	FindStationFee(ctx context.Context, stationID string, paymentMethodID string) (*domain.FeeRate, error)

	// FindGlobalFee returns the global default fee for the payment method,
	// or ErrNotFound.
	FindGlobalFee(ctx context.Context, paymentMethodID string) (*domain.FeeRate, error)
}

// FeeRateWriter defines write operations for fee tables.
type FeeRateWriter interface {
	SaveFeeRate(ctx context.Context, rate domain.FeeRate) error
}

// FeeRateRepositoryFacade combines fee repository interfaces.
type FeeRateRepositoryFacade interface {
	FeeRateReader
	FeeRateWriter
}
