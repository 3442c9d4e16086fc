package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// costQuoteService finds the cheapest eligible delivered cost for a
// station/product/date across candidate supply quotations.
type costQuoteService struct {
	quoteRepo portsrepo.QuotationReader
}

// NewCostQuoteService creates a new CostQuoteSvcFacade.
func NewCostQuoteService(quoteRepo portsrepo.QuotationReader) portssvc.CostQuoteSvcFacade {
	return &costQuoteService{quoteRepo: quoteRepo}
}

var _ portssvc.CostQuoteSvcFacade = (*costQuoteService)(nil)

// ResolveCost resolves the lowest delivered cost through the quote tiers:
// exact-date quotations, then the most recent quoted date, then the manual
// reference price, then an explicit TierNone result. For diesel S-10 it also
// attempts to resolve a companion ARLA unit cost; failure there does not fail
// the primary resolution.
func (s *costQuoteService) ResolveCost(ctx context.Context, stationID string, product domain.ProductCode, asOf time.Time) (*domain.CostResolution, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	freightByBase, err := s.activeFreightRates(ctx, stationID)
	if err != nil {
		return nil, err
	}

	res, err := s.resolveForProduct(ctx, stationID, product, asOf, freightByBase)
	if err != nil {
		return nil, err
	}

	if product == domain.DieselS10 {
		arlaRes, arlaErr := s.resolveForProduct(ctx, stationID, domain.Arla32Bulk, asOf, freightByBase)
		if arlaErr != nil {
			logger.Warn("Companion ARLA cost resolution failed", slog.String("error", arlaErr.Error()), slog.String("station_id", stationID))
		} else if arlaRes.Tier != domain.TierNone {
			res.ArlaCost = arlaRes.TotalCost
			res.ArlaResolved = true
		}
	}

	logger.Debug("Cost resolved",
		slog.String("station_id", stationID),
		slog.String("product", string(product)),
		slog.String("tier", string(res.Tier)),
		slog.String("total_cost", res.TotalCost.String()),
	)
	return res, nil
}

// activeFreightRates maps supply base ID to its active freight rate for the
// station. Inactive rates are ignored.
func (s *costQuoteService) activeFreightRates(ctx context.Context, stationID string) (map[string]decimal.Decimal, error) {
	rates, err := s.quoteRepo.ListFreightRates(ctx, stationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return map[string]decimal.Decimal{}, nil
		}
		return nil, fmt.Errorf("failed to list freight rates: %w", err)
	}
	byBase := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		if r.Active {
			byBase[r.SupplyBaseID] = r.Rate
		}
	}
	return byBase, nil
}

func (s *costQuoteService) resolveForProduct(ctx context.Context, stationID string, product domain.ProductCode, asOf time.Time, freightByBase map[string]decimal.Decimal) (*domain.CostResolution, error) {
	quotes, err := s.quoteRepo.ListQuotesForDate(ctx, product, asOf)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	tier := domain.TierExactDate

	if len(quotes) == 0 {
		latestDate, err := s.quoteRepo.LatestQuoteDate(ctx, product, asOf)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to find latest quote date: %w", err)
		}
		if err == nil {
			quotes, err = s.quoteRepo.ListQuotesForDate(ctx, product, latestDate)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to list quotations: %w", err)
			}
			tier = domain.TierLatestAvailable
		}
	}

	if len(quotes) > 0 {
		return s.cheapestQuote(quotes, freightByBase, tier), nil
	}

	// No structured quotation at all: fall back to the manual reference price.
	ref, err := s.quoteRepo.LatestManualReference(ctx, stationID, product)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CostResolution{
				Tier:   domain.TierNone,
				Origin: domain.PriceOrigin{CostTier: domain.TierNone},
			}, nil
		}
		return nil, fmt.Errorf("failed to find manual reference price: %w", err)
	}
	return &domain.CostResolution{
		BaseCost:  ref.Price,
		Freight:   decimal.Zero,
		TotalCost: ref.Price,
		Origin:    domain.PriceOrigin{CostTier: domain.TierManualReference},
		QuotedAt:  ref.ReferenceDate,
		Tier:      domain.TierManualReference,
	}, nil
}

// cheapestQuote selects the minimum delivered cost among candidates. A
// pick-up quotation adds the supply base's active freight rate; a delivered
// quotation contributes zero freight even if a rate exists. Ties keep the
// first candidate in iteration order.
func (s *costQuoteService) cheapestQuote(quotes []domain.SupplyQuote, freightByBase map[string]decimal.Decimal, tier domain.CostTier) *domain.CostResolution {
	var best *domain.CostResolution
	for _, q := range quotes {
		baseCost := q.UnitPrice.Sub(q.Discount)
		freight := decimal.Zero
		if q.DeliveryMode == domain.DeliveryPickUp {
			if rate, ok := freightByBase[q.SupplyBaseID]; ok {
				freight = rate
			}
		}
		total := baseCost.Add(freight)
		if best == nil || total.LessThan(best.TotalCost) {
			best = &domain.CostResolution{
				BaseCost:  baseCost,
				Freight:   freight,
				TotalCost: total,
				Origin: domain.PriceOrigin{
					SupplyBaseName:   q.SupplyBaseName,
					SupplyBaseCode:   q.SupplyBaseCode,
					SupplyBaseRegion: q.SupplyBaseRegion,
					DeliveryMode:     q.DeliveryMode,
					CostTier:         tier,
				},
				QuotedAt: q.QuoteDate,
				Tier:     tier,
			}
		}
	}
	return best
}
