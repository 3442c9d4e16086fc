package services

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
)

// StationSvcFacade manages the station directory.
type StationSvcFacade interface {
	CreateStation(ctx context.Context, req dto.CreateStationRequest, creatorID string) (*domain.Station, error)
	GetStationByID(ctx context.Context, stationID string) (*domain.Station, error)
	ListStations(ctx context.Context, limit, offset int) ([]domain.Station, error)
	DeactivateStation(ctx context.Context, stationID string, requestingID string) error
}

// ClientSvcFacade manages the client directory.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}

// PaymentMethodSvcFacade manages payment methods and their fee rates.
type PaymentMethodSvcFacade interface {
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	SetFeeRate(ctx context.Context, req dto.SetFeeRateRequest, creatorID string) (*domain.FeeRate, error)
}

// QuotationSvcFacade manages quotation intake for the cost resolver.
type QuotationSvcFacade interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest, creatorID string) (*domain.SupplyQuote, error)
	CreateFreightRate(ctx context.Context, req dto.CreateFreightRateRequest, creatorID string) (*domain.FreightRate, error)
	CreateManualReference(ctx context.Context, req dto.CreateManualReferenceRequest, creatorID string) (*domain.ManualReferencePrice, error)
}

// AuditSvcFacade records administrative actions. Record is fire-and-forget:
// implementations log failures and never propagate them.
type AuditSvcFacade interface {
	Record(ctx context.Context, action string, entityType string, entityID string, actorID string)
}
