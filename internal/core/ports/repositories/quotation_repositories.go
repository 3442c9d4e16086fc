package repositories

import (
	"context"
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// QuotationReader defines read operations over supply quotations, freight
// rates, and manual reference prices. All date comparisons are on the day,
// not the instant.
type QuotationReader interface {
	// ListQuotesForDate returns every quotation for the product on the given
	// date, ordered by supply base ID for deterministic iteration.
	ListQuotesForDate(ctx context.Context, product domain.ProductCode, date time.Time) ([]domain.SupplyQuote, error)

	// LatestQuoteDate returns the most recent date on or before asOf for which
	// any quotation exists for the product, or ErrNotFound.
	LatestQuoteDate(ctx context.Context, product domain.ProductCode, asOf time.Time) (time.Time, error)

	// ListFreightRates returns all freight rates configured for the station.
	ListFreightRates(ctx context.Context, stationID string) ([]domain.FreightRate, error)

	// LatestManualReference returns the most recently recorded manual
	// reference price for the station/product pair, or ErrNotFound.
	LatestManualReference(ctx context.Context, stationID string, product domain.ProductCode) (*domain.ManualReferencePrice, error)
}

// QuotationWriter defines intake operations for quotation data.
type QuotationWriter interface {
	SaveQuote(ctx context.Context, quote domain.SupplyQuote) error
	SaveFreightRate(ctx context.Context, rate domain.FreightRate) error
	SaveManualReference(ctx context.Context, ref domain.ManualReferencePrice) error
}

// QuotationRepositoryFacade combines all quotation repository interfaces.
type QuotationRepositoryFacade interface {
	QuotationReader
	QuotationWriter
}
