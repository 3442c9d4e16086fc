package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/core/services"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pricing"
)

type ProfitabilityServiceTestSuite struct {
	suite.Suite
	service portssvc.ProfitabilitySvcFacade
}

func (s *ProfitabilityServiceTestSuite) SetupTest() {
	s.service = services.NewProfitabilityService()
}

func (s *ProfitabilityServiceTestSuite) TestComputeProfitability_FullBreakdown() {
	res, err := s.service.ComputeProfitability(context.Background(), pricing.ProfitabilityInput{
		Product:           domain.DieselS10,
		PurchaseCost:      decimal.RequireFromString("3.00"),
		FreightCost:       decimal.RequireFromString("0.20"),
		FeePercent:        decimal.RequireFromString("2.5"),
		SuggestedPrice:    decimal.RequireFromString("3.80"),
		VolumeProjectedM3: decimal.RequireFromString("10"),
		ArlaSalePrice:     decimal.RequireFromString("2.50"),
		ArlaCostPrice:     decimal.RequireFromString("2.00"),
	})

	s.Require().NoError(err)
	s.True(res.GrossProfit.Equal(decimal.RequireFromString("5200")))
	s.True(res.Compensation.Equal(decimal.RequireFromString("250")))
	s.True(res.NetResult.Equal(decimal.RequireFromString("5450")))
}

func (s *ProfitabilityServiceTestSuite) TestComputeProfitability_InvalidProduct() {
	_, err := s.service.ComputeProfitability(context.Background(), pricing.ProfitabilityInput{
		Product: domain.ProductCode("AVGAS"),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProfitabilityServiceTestSuite) TestComputeProfitability_NegativeArlaPricesRejected() {
	_, err := s.service.ComputeProfitability(context.Background(), pricing.ProfitabilityInput{
		Product:           domain.DieselS10,
		PurchaseCost:      decimal.RequireFromString("3.00"),
		SuggestedPrice:    decimal.RequireFromString("3.80"),
		VolumeProjectedM3: decimal.RequireFromString("10"),
		ArlaSalePrice:     decimal.RequireFromString("-2.00"),
		ArlaCostPrice:     decimal.RequireFromString("-1.50"),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.ComputeProfitability(context.Background(), pricing.ProfitabilityInput{
		Product:           domain.DieselS10,
		PurchaseCost:      decimal.RequireFromString("3.00"),
		SuggestedPrice:    decimal.RequireFromString("3.80"),
		VolumeProjectedM3: decimal.RequireFromString("10"),
		ArlaSalePrice:     decimal.RequireFromString("2.50"),
		ArlaCostPrice:     decimal.RequireFromString("-0.01"),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProfitabilityServiceTestSuite) TestComputeProfitability_NegativeVolume() {
	_, err := s.service.ComputeProfitability(context.Background(), pricing.ProfitabilityInput{
		Product:           domain.DieselCommon,
		VolumeProjectedM3: decimal.RequireFromString("-1"),
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestProfitabilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfitabilityServiceTestSuite))
}
