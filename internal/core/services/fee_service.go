package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// feeService resolves payment-method fee percentages.
type feeService struct {
	feeRepo portsrepo.FeeRateReader
}

// NewFeeService creates a new FeeSvcFacade.
func NewFeeService(feeRepo portsrepo.FeeRateReader) portssvc.FeeSvcFacade {
	return &feeService{feeRepo: feeRepo}
}

var _ portssvc.FeeSvcFacade = (*feeService)(nil)

// ResolveFee looks up the station-scoped fee for the payment method and falls
// back to the global default. An unconfigured method resolves to zero: absence
// is "no fee", never an error.
func (s *feeService) ResolveFee(ctx context.Context, stationID string, paymentMethodID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stationFee, err := s.feeRepo.FindStationFee(ctx, stationID, paymentMethodID)
	if err == nil {
		return stationFee.FeePercent, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up station fee", slog.String("error", err.Error()), slog.String("station_id", stationID))
		return decimal.Zero, fmt.Errorf("failed to resolve station fee: %w", err)
	}

	globalFee, err := s.feeRepo.FindGlobalFee(ctx, paymentMethodID)
	if err == nil {
		return globalFee.FeePercent, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up global fee", slog.String("error", err.Error()), slog.String("payment_method_id", paymentMethodID))
		return decimal.Zero, fmt.Errorf("failed to resolve global fee: %w", err)
	}

	logger.Debug("No fee configured for payment method, resolving to zero", slog.String("payment_method_id", paymentMethodID))
	return decimal.Zero, nil
}
