package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/core/services"
)

// --- Mock QuotationRepository ---
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) ListQuotesForDate(ctx context.Context, product domain.ProductCode, date time.Time) ([]domain.SupplyQuote, error) {
	args := m.Called(ctx, product, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplyQuote), args.Error(1)
}

func (m *MockQuotationRepository) LatestQuoteDate(ctx context.Context, product domain.ProductCode, asOf time.Time) (time.Time, error) {
	args := m.Called(ctx, product, asOf)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockQuotationRepository) ListFreightRates(ctx context.Context, stationID string) ([]domain.FreightRate, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FreightRate), args.Error(1)
}

func (m *MockQuotationRepository) LatestManualReference(ctx context.Context, stationID string, product domain.ProductCode) (*domain.ManualReferencePrice, error) {
	args := m.Called(ctx, stationID, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManualReferencePrice), args.Error(1)
}

// --- Test Suite ---
type CostQuoteServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockQuotationRepository
	service   portssvc.CostQuoteSvcFacade
	stationID string
	asOf      time.Time
}

func (s *CostQuoteServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockQuotationRepository)
	s.service = services.NewCostQuoteService(s.mockRepo)
	s.stationID = uuid.NewString()
	s.asOf = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
}

func (s *CostQuoteServiceTestSuite) noFreight() {
	s.mockRepo.On("ListFreightRates", mock.Anything, s.stationID).
		Return([]domain.FreightRate{}, nil).Once()
}

func quote(baseID string, price, discount string, mode domain.DeliveryMode, date time.Time) domain.SupplyQuote {
	return domain.SupplyQuote{
		QuoteID:      uuid.NewString(),
		SupplyBaseID: baseID,
		Product:      domain.DieselCommon,
		UnitPrice:    decimal.RequireFromString(price),
		Discount:     decimal.RequireFromString(discount),
		DeliveryMode: mode,
		QuoteDate:    date,
	}
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_ExactDateWins() {
	ctx := context.Background()
	s.noFreight()
	quotes := []domain.SupplyQuote{
		quote("base-a", "3.20", "0.10", domain.DeliveryDelivered, s.asOf),
	}
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.Equal(domain.TierExactDate, res.Tier)
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.10")))
	s.True(res.Freight.IsZero())
	s.mockRepo.AssertNotCalled(s.T(), "LatestQuoteDate", mock.Anything, mock.Anything, mock.Anything)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_FallsBackToLatestDate() {
	ctx := context.Background()
	s.noFreight()
	latest := s.asOf.AddDate(0, 0, -3)
	quotes := []domain.SupplyQuote{
		quote("base-a", "3.50", "0", domain.DeliveryDelivered, latest),
	}
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return([]domain.SupplyQuote{}, nil).Once()
	s.mockRepo.On("LatestQuoteDate", ctx, domain.DieselCommon, s.asOf).Return(latest, nil).Once()
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, latest).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.Equal(domain.TierLatestAvailable, res.Tier)
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.50")))
	s.Equal(latest, res.QuotedAt)
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_FallsBackToManualReference() {
	ctx := context.Background()
	s.noFreight()
	refDate := s.asOf.AddDate(0, -1, 0)
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return([]domain.SupplyQuote{}, nil).Once()
	s.mockRepo.On("LatestQuoteDate", ctx, domain.DieselCommon, s.asOf).Return(time.Time{}, apperrors.ErrNotFound).Once()
	s.mockRepo.On("LatestManualReference", ctx, s.stationID, domain.DieselCommon).Return(&domain.ManualReferencePrice{
		ReferenceID:   uuid.NewString(),
		StationID:     s.stationID,
		Product:       domain.DieselCommon,
		Price:         decimal.RequireFromString("3.45"),
		ReferenceDate: refDate,
	}, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.Equal(domain.TierManualReference, res.Tier)
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.45")))
	s.True(res.Freight.IsZero())
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_NothingFoundIsTierNone() {
	ctx := context.Background()
	s.noFreight()
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return([]domain.SupplyQuote{}, nil).Once()
	s.mockRepo.On("LatestQuoteDate", ctx, domain.DieselCommon, s.asOf).Return(time.Time{}, apperrors.ErrNotFound).Once()
	s.mockRepo.On("LatestManualReference", ctx, s.stationID, domain.DieselCommon).Return(nil, apperrors.ErrNotFound).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.Equal(domain.TierNone, res.Tier)
	s.True(res.TotalCost.IsZero())
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_PickUpAddsFreight() {
	ctx := context.Background()
	baseID := "base-a"
	s.mockRepo.On("ListFreightRates", mock.Anything, s.stationID).Return([]domain.FreightRate{
		{FreightRateID: uuid.NewString(), StationID: s.stationID, SupplyBaseID: baseID, Rate: decimal.RequireFromString("0.20"), Active: true},
	}, nil).Once()
	quotes := []domain.SupplyQuote{
		quote(baseID, "3.10", "0.10", domain.DeliveryPickUp, s.asOf),
	}
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.True(res.BaseCost.Equal(decimal.RequireFromString("3.00")))
	s.True(res.Freight.Equal(decimal.RequireFromString("0.20")))
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.20")))
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_DeliveredIgnoresFreightRate() {
	ctx := context.Background()
	baseID := "base-a"
	s.mockRepo.On("ListFreightRates", mock.Anything, s.stationID).Return([]domain.FreightRate{
		{FreightRateID: uuid.NewString(), StationID: s.stationID, SupplyBaseID: baseID, Rate: decimal.RequireFromString("0.20"), Active: true},
	}, nil).Once()
	quotes := []domain.SupplyQuote{
		quote(baseID, "3.30", "0", domain.DeliveryDelivered, s.asOf),
	}
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.True(res.Freight.IsZero())
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.30")))
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_InactiveFreightRateIgnored() {
	ctx := context.Background()
	baseID := "base-a"
	s.mockRepo.On("ListFreightRates", mock.Anything, s.stationID).Return([]domain.FreightRate{
		{FreightRateID: uuid.NewString(), StationID: s.stationID, SupplyBaseID: baseID, Rate: decimal.RequireFromString("0.20"), Active: false},
	}, nil).Once()
	quotes := []domain.SupplyQuote{
		quote(baseID, "3.10", "0", domain.DeliveryPickUp, s.asOf),
	}
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.True(res.Freight.IsZero())
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.10")))
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_CheapestDeliveredCostWins() {
	ctx := context.Background()
	s.mockRepo.On("ListFreightRates", mock.Anything, s.stationID).Return([]domain.FreightRate{
		{FreightRateID: uuid.NewString(), StationID: s.stationID, SupplyBaseID: "base-a", Rate: decimal.RequireFromString("0.50"), Active: true},
	}, nil).Once()
	quotes := []domain.SupplyQuote{
		// Cheapest quoted price but freight makes it lose.
		quote("base-a", "3.00", "0", domain.DeliveryPickUp, s.asOf),
		quote("base-b", "3.40", "0", domain.DeliveryDelivered, s.asOf),
	}
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.True(res.TotalCost.Equal(decimal.RequireFromString("3.40")))
	s.Equal(domain.DeliveryDelivered, res.Origin.DeliveryMode)
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_TieKeepsFirstCandidate() {
	ctx := context.Background()
	s.noFreight()
	quotes := []domain.SupplyQuote{
		quote("base-a", "3.40", "0", domain.DeliveryDelivered, s.asOf),
		quote("base-b", "3.40", "0", domain.DeliveryDelivered, s.asOf),
	}
	quotes[0].SupplyBaseName = "Base A"
	quotes[1].SupplyBaseName = "Base B"
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselCommon, s.asOf).Return(quotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselCommon, s.asOf)

	s.Require().NoError(err)
	s.Equal("Base A", res.Origin.SupplyBaseName)
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_DieselS10ResolvesCompanionArla() {
	ctx := context.Background()
	s.noFreight()
	dieselQuotes := []domain.SupplyQuote{
		quote("base-a", "3.20", "0", domain.DeliveryDelivered, s.asOf),
	}
	dieselQuotes[0].Product = domain.DieselS10
	arlaQuotes := []domain.SupplyQuote{
		quote("base-b", "2.80", "0", domain.DeliveryDelivered, s.asOf),
	}
	arlaQuotes[0].Product = domain.Arla32Bulk
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselS10, s.asOf).Return(dieselQuotes, nil).Once()
	s.mockRepo.On("ListQuotesForDate", ctx, domain.Arla32Bulk, s.asOf).Return(arlaQuotes, nil).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselS10, s.asOf)

	s.Require().NoError(err)
	s.True(res.ArlaResolved)
	s.True(res.ArlaCost.Equal(decimal.RequireFromString("2.80")))
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_MissingArlaDoesNotFailDiesel() {
	ctx := context.Background()
	s.noFreight()
	dieselQuotes := []domain.SupplyQuote{
		quote("base-a", "3.20", "0", domain.DeliveryDelivered, s.asOf),
	}
	dieselQuotes[0].Product = domain.DieselS10
	s.mockRepo.On("ListQuotesForDate", ctx, domain.DieselS10, s.asOf).Return(dieselQuotes, nil).Once()
	s.mockRepo.On("ListQuotesForDate", ctx, domain.Arla32Bulk, s.asOf).Return(nil, assert.AnError).Once()

	res, err := s.service.ResolveCost(ctx, s.stationID, domain.DieselS10, s.asOf)

	s.Require().NoError(err)
	s.False(res.ArlaResolved)
	s.True(res.ArlaCost.IsZero())
	s.Equal(domain.TierExactDate, res.Tier)
}

func (s *CostQuoteServiceTestSuite) TestResolveCost_InvalidProduct() {
	ctx := context.Background()

	_, err := s.service.ResolveCost(ctx, s.stationID, domain.ProductCode("KEROSENE"), s.asOf)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "ListQuotesForDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCostQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CostQuoteServiceTestSuite))
}
