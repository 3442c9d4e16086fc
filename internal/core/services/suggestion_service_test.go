package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/core/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
)

// --- Mock FeeService ---
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) ResolveFee(ctx context.Context, stationID string, paymentMethodID string) (decimal.Decimal, error) {
	args := m.Called(ctx, stationID, paymentMethodID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock CostQuoteService ---
type MockCostQuoteService struct {
	mock.Mock
}

func (m *MockCostQuoteService) ResolveCost(ctx context.Context, stationID string, product domain.ProductCode, asOf time.Time) (*domain.CostResolution, error) {
	args := m.Called(ctx, stationID, product, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostResolution), args.Error(1)
}

// --- Mock StationService ---
type MockStationService struct {
	mock.Mock
}

func (m *MockStationService) CreateStation(ctx context.Context, req dto.CreateStationRequest, creatorID string) (*domain.Station, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationService) GetStationByID(ctx context.Context, stationID string) (*domain.Station, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationService) ListStations(ctx context.Context, limit, offset int) ([]domain.Station, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockStationService) DeactivateStation(ctx context.Context, stationID string, requestingID string) error {
	args := m.Called(ctx, stationID, requestingID)
	return args.Error(0)
}

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorID string) (*domain.Client, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// --- Test Suite ---
type SuggestionServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockSuggestionRepository
	mockFee     *MockFeeService
	mockCost    *MockCostQuoteService
	mockStation *MockStationService
	mockClient  *MockClientService
	service     portssvc.SuggestionSvcFacade
}

func (s *SuggestionServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockSuggestionRepository)
	s.mockFee = new(MockFeeService)
	s.mockCost = new(MockCostQuoteService)
	s.mockStation = new(MockStationService)
	s.mockClient = new(MockClientService)
	s.service = services.NewSuggestionService(s.mockRepo, s.mockFee, s.mockCost, s.mockStation, s.mockClient, 3)
}

func (s *SuggestionServiceTestSuite) validRequest() dto.CreateSuggestionRequest {
	return dto.CreateSuggestionRequest{
		StationID:       uuid.NewString(),
		ClientID:        uuid.NewString(),
		PaymentMethodID: uuid.NewString(),
		Product:         string(domain.DieselCommon),
		CurrentPrice:    decimal.RequireFromString("3.50"),
		SuggestedPrice:  decimal.RequireFromString("3.80"),
		VolumeProjected: decimal.RequireFromString("10"),
	}
}

func (s *SuggestionServiceTestSuite) expectDirectoryLookups(req dto.CreateSuggestionRequest) {
	s.mockStation.On("GetStationByID", mock.Anything, req.StationID).
		Return(&domain.Station{StationID: req.StationID}, nil).Once()
	s.mockClient.On("GetClientByID", mock.Anything, req.ClientID).
		Return(&domain.Client{ClientID: req.ClientID}, nil).Once()
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_ResolvedCostDrivesMargin() {
	ctx := context.Background()
	req := s.validRequest()
	requesterID := uuid.NewString()
	s.expectDirectoryLookups(req)

	s.mockFee.On("ResolveFee", mock.Anything, req.StationID, req.PaymentMethodID).
		Return(decimal.RequireFromString("2.5"), nil).Once()
	s.mockCost.On("ResolveCost", mock.Anything, req.StationID, domain.DieselCommon, mock.AnythingOfType("time.Time")).
		Return(&domain.CostResolution{
			BaseCost:  decimal.RequireFromString("3.00"),
			Freight:   decimal.RequireFromString("0.20"),
			TotalCost: decimal.RequireFromString("3.20"),
			Tier:      domain.TierExactDate,
			Origin:    domain.PriceOrigin{CostTier: domain.TierExactDate},
		}, nil).Once()
	s.mockRepo.On("SaveSuggestion", mock.Anything, mock.MatchedBy(func(sg domain.PriceSuggestion) bool {
		return sg.Status == domain.StatusDraft &&
			sg.ApprovalLevel == 1 &&
			sg.TotalApprovers == 3 &&
			sg.MarginCents == 52 &&
			sg.PriceIncreaseCents == 30 &&
			sg.CostPrice.Equal(decimal.RequireFromString("3.20")) &&
			sg.RequestedBy == requesterID
	})).Return(nil).Once()

	result, err := s.service.CreateSuggestion(ctx, req, requesterID)

	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, result.Status)
	s.Equal(int64(52), result.MarginCents)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_TierNoneLeavesCostZero() {
	ctx := context.Background()
	req := s.validRequest()
	s.expectDirectoryLookups(req)

	s.mockFee.On("ResolveFee", mock.Anything, req.StationID, req.PaymentMethodID).
		Return(decimal.RequireFromString("2.5"), nil).Once()
	s.mockCost.On("ResolveCost", mock.Anything, req.StationID, domain.DieselCommon, mock.AnythingOfType("time.Time")).
		Return(&domain.CostResolution{
			Tier:   domain.TierNone,
			Origin: domain.PriceOrigin{CostTier: domain.TierNone},
		}, nil).Once()
	s.mockRepo.On("SaveSuggestion", mock.Anything, mock.MatchedBy(func(sg domain.PriceSuggestion) bool {
		return sg.CostPrice.IsZero() && sg.MarginCents == 0 && sg.PriceOrigin.CostTier == domain.TierNone
	})).Return(nil).Once()

	result, err := s.service.CreateSuggestion(ctx, req, uuid.NewString())

	s.Require().NoError(err)
	s.True(result.CostPrice.IsZero())
	s.Equal(int64(0), result.MarginCents)
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_SubmitGoesStraightToPending() {
	ctx := context.Background()
	req := s.validRequest()
	req.Submit = true
	s.expectDirectoryLookups(req)

	s.mockFee.On("ResolveFee", mock.Anything, req.StationID, req.PaymentMethodID).
		Return(decimal.Zero, nil).Once()
	s.mockCost.On("ResolveCost", mock.Anything, req.StationID, domain.DieselCommon, mock.AnythingOfType("time.Time")).
		Return(&domain.CostResolution{Tier: domain.TierNone, Origin: domain.PriceOrigin{CostTier: domain.TierNone}}, nil).Once()
	s.mockRepo.On("SaveSuggestion", mock.Anything, mock.MatchedBy(func(sg domain.PriceSuggestion) bool {
		return sg.Status == domain.StatusPending
	})).Return(nil).Once()

	result, err := s.service.CreateSuggestion(ctx, req, uuid.NewString())

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, result.Status)
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_InvalidProduct() {
	ctx := context.Background()
	req := s.validRequest()
	req.Product = "JET_FUEL"

	_, err := s.service.CreateSuggestion(ctx, req, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveSuggestion", mock.Anything, mock.Anything)
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_NegativePriceRejected() {
	ctx := context.Background()
	req := s.validRequest()
	req.SuggestedPrice = decimal.RequireFromString("-1")

	_, err := s.service.CreateSuggestion(ctx, req, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_NegativeArlaSalePriceRejected() {
	ctx := context.Background()
	req := s.validRequest()
	req.Product = string(domain.DieselS10)
	req.ArlaSalePrice = decimal.RequireFromString("-2.50")

	_, err := s.service.CreateSuggestion(ctx, req, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveSuggestion", mock.Anything, mock.Anything)
}

func (s *SuggestionServiceTestSuite) TestUpdateSuggestion_NegativeArlaSalePriceRejected() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	existing := &domain.PriceSuggestion{
		SuggestionID:   uuid.NewString(),
		Status:         domain.StatusDraft,
		Product:        domain.DieselS10,
		SuggestedPrice: decimal.RequireFromString("3.80"),
		RequestedBy:    requesterID,
	}
	badArla := decimal.RequireFromString("-0.01")

	s.mockRepo.On("FindSuggestionByID", ctx, existing.SuggestionID).Return(existing, nil).Once()

	_, err := s.service.UpdateSuggestion(ctx, existing.SuggestionID, dto.UpdateSuggestionRequest{
		ArlaSalePrice: &badArla,
	}, requesterID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateSuggestion", mock.Anything, mock.Anything)
}

func (s *SuggestionServiceTestSuite) TestCreateSuggestion_UnknownStation() {
	ctx := context.Background()
	req := s.validRequest()
	s.mockStation.On("GetStationByID", mock.Anything, req.StationID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateSuggestion(ctx, req, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockCost.AssertNotCalled(s.T(), "ResolveCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SuggestionServiceTestSuite) TestUpdateSuggestion_RecomputesMargin() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	existing := &domain.PriceSuggestion{
		SuggestionID:   uuid.NewString(),
		Status:         domain.StatusDraft,
		Product:        domain.DieselCommon,
		SuggestedPrice: decimal.RequireFromString("3.80"),
		CostPrice:      decimal.RequireFromString("3.20"),
		FeePercent:     decimal.RequireFromString("2.5"),
		PriceOrigin:    domain.PriceOrigin{CostTier: domain.TierExactDate},
		RequestedBy:    requesterID,
	}
	newPrice := decimal.RequireFromString("3.90")

	s.mockRepo.On("FindSuggestionByID", ctx, existing.SuggestionID).Return(existing, nil).Once()
	s.mockRepo.On("UpdateSuggestion", ctx, mock.MatchedBy(func(sg domain.PriceSuggestion) bool {
		return sg.SuggestedPrice.Equal(newPrice) && sg.MarginCents == 62
	})).Return(nil).Once()

	result, err := s.service.UpdateSuggestion(ctx, existing.SuggestionID, dto.UpdateSuggestionRequest{
		SuggestedPrice: &newPrice,
	}, requesterID)

	s.Require().NoError(err)
	s.Equal(int64(62), result.MarginCents)
}

func (s *SuggestionServiceTestSuite) TestUpdateSuggestion_NonDraftConflicts() {
	ctx := context.Background()
	existing := &domain.PriceSuggestion{
		SuggestionID: uuid.NewString(),
		Status:       domain.StatusPending,
		RequestedBy:  uuid.NewString(),
	}
	price := decimal.RequireFromString("3.90")

	s.mockRepo.On("FindSuggestionByID", ctx, existing.SuggestionID).Return(existing, nil).Once()

	_, err := s.service.UpdateSuggestion(ctx, existing.SuggestionID, dto.UpdateSuggestionRequest{SuggestedPrice: &price}, existing.RequestedBy)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *SuggestionServiceTestSuite) TestUpdateSuggestion_OnlyRequesterMayEdit() {
	ctx := context.Background()
	existing := &domain.PriceSuggestion{
		SuggestionID: uuid.NewString(),
		Status:       domain.StatusDraft,
		RequestedBy:  uuid.NewString(),
	}
	price := decimal.RequireFromString("3.90")

	s.mockRepo.On("FindSuggestionByID", ctx, existing.SuggestionID).Return(existing, nil).Once()

	_, err := s.service.UpdateSuggestion(ctx, existing.SuggestionID, dto.UpdateSuggestionRequest{SuggestedPrice: &price}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *SuggestionServiceTestSuite) TestListSuggestions_UnknownStatusRejected() {
	ctx := context.Background()
	bad := "SHIPPED"

	_, err := s.service.ListSuggestions(ctx, dto.ListSuggestionsParams{Status: &bad})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "ListSuggestions", mock.Anything, mock.Anything)
}

func (s *SuggestionServiceTestSuite) TestGetSuggestionByID_IncludesHistory() {
	ctx := context.Background()
	suggestionID := uuid.NewString()
	existing := &domain.PriceSuggestion{SuggestionID: suggestionID, Status: domain.StatusApproved}
	history := []domain.ApprovalHistoryEntry{
		{EntryID: uuid.NewString(), SuggestionID: suggestionID, Action: domain.ActionApproved, ApprovalLevel: 1},
	}

	s.mockRepo.On("FindSuggestionByID", ctx, suggestionID).Return(existing, nil).Once()
	s.mockRepo.On("FindHistoryBySuggestionID", ctx, suggestionID).Return(history, nil).Once()

	result, gotHistory, err := s.service.GetSuggestionByID(ctx, suggestionID)

	s.Require().NoError(err)
	s.Equal(suggestionID, result.SuggestionID)
	s.Len(gotHistory, 1)
}

func TestSuggestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionServiceTestSuite))
}
