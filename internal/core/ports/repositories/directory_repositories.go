package repositories

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// StationRepository persists the station directory.
type StationRepository interface {
	SaveStation(ctx context.Context, station domain.Station) error
	FindStationByID(ctx context.Context, stationID string) (*domain.Station, error)
	ListStations(ctx context.Context, limit int, offset int) ([]domain.Station, error)
	UpdateStation(ctx context.Context, station domain.Station) error
}

// ClientRepository persists the client directory.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
}

// PaymentMethodRepository persists payment methods.
type PaymentMethodRepository interface {
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}
