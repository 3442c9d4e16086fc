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

// quotationService handles intake of the data the cost resolver reads: supply
// quotations, freight rates, and manual reference prices.
type quotationService struct {
	quotationRepo portsrepo.QuotationRepositoryFacade
}

// NewQuotationService creates a new QuotationSvcFacade.
func NewQuotationService(quotationRepo portsrepo.QuotationRepositoryFacade) portssvc.QuotationSvcFacade {
	return &quotationService{quotationRepo: quotationRepo}
}

var _ portssvc.QuotationSvcFacade = (*quotationService)(nil)

func (s *quotationService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, creatorID string) (*domain.SupplyQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product := domain.ProductCode(req.Product)
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.UnitPrice.IsNegative() || req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: unit price and discount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	quote := domain.SupplyQuote{
		QuoteID:          uuid.NewString(),
		SupplyBaseID:     req.SupplyBaseID,
		SupplyBaseName:   req.SupplyBaseName,
		SupplyBaseCode:   req.SupplyBaseCode,
		SupplyBaseRegion: req.SupplyBaseRegion,
		Product:          product,
		UnitPrice:        req.UnitPrice,
		Discount:         req.Discount,
		DeliveryMode:     domain.DeliveryMode(req.DeliveryMode),
		QuoteDate:        req.QuoteDate.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.quotationRepo.SaveQuote(ctx, quote); err != nil {
		logger.Error("Failed to save quote", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return &quote, nil
}

func (s *quotationService) CreateFreightRate(ctx context.Context, req dto.CreateFreightRateRequest, creatorID string) (*domain.FreightRate, error) {
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: freight rate must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.FreightRate{
		FreightRateID: uuid.NewString(),
		StationID:     req.StationID,
		SupplyBaseID:  req.SupplyBaseID,
		Rate:          req.Rate,
		Active:        req.Active,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.quotationRepo.SaveFreightRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save freight rate: %w", err)
	}
	return &rate, nil
}

func (s *quotationService) CreateManualReference(ctx context.Context, req dto.CreateManualReferenceRequest, creatorID string) (*domain.ManualReferencePrice, error) {
	product := domain.ProductCode(req.Product)
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: reference price must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	ref := domain.ManualReferencePrice{
		ReferenceID:   uuid.NewString(),
		StationID:     req.StationID,
		Product:       product,
		Price:         req.Price,
		ReferenceDate: req.ReferenceDate.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.quotationRepo.SaveManualReference(ctx, ref); err != nil {
		return nil, fmt.Errorf("failed to save manual reference price: %w", err)
	}
	return &ref, nil
}
