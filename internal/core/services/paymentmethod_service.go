package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

// paymentMethodService manages payment methods and their fee tables.
type paymentMethodService struct {
	methodRepo portsrepo.PaymentMethodRepository
	feeRepo    portsrepo.FeeRateRepositoryFacade
}

// NewPaymentMethodService creates a new PaymentMethodSvcFacade.
func NewPaymentMethodService(methodRepo portsrepo.PaymentMethodRepository, feeRepo portsrepo.FeeRateRepositoryFacade) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{methodRepo: methodRepo, feeRepo: feeRepo}
}

var _ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)

func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorID string) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	method := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		Name:            req.Name,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.methodRepo.SavePaymentMethod(ctx, method); err != nil {
		logger.Error("Failed to save payment method", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}
	return &method, nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.methodRepo.ListPaymentMethods(ctx)
}

// SetFeeRate configures a fee percentage for a payment method, station-scoped
// when the request names a station.
func (s *paymentMethodService) SetFeeRate(ctx context.Context, req dto.SetFeeRateRequest, creatorID string) (*domain.FeeRate, error) {
	if req.FeePercent.IsNegative() {
		return nil, fmt.Errorf("%w: fee percent must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.methodRepo.FindPaymentMethodByID(ctx, req.PaymentMethodID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rate := domain.FeeRate{
		FeeRateID:       uuid.NewString(),
		PaymentMethodID: req.PaymentMethodID,
		StationID:       req.StationID,
		FeePercent:      req.FeePercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.feeRepo.SaveFeeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save fee rate: %w", err)
	}
	return &rate, nil
}
