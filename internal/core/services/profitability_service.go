package services

import (
	"context"
	"fmt"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pricing"
)

// profitabilityService validates calculator inputs and delegates to the pure
// pricing calculators.
type profitabilityService struct{}

// NewProfitabilityService creates a new ProfitabilitySvcFacade.
func NewProfitabilityService() portssvc.ProfitabilitySvcFacade {
	return &profitabilityService{}
}

var _ portssvc.ProfitabilitySvcFacade = (*profitabilityService)(nil)

// ComputeProfitability rejects out-of-domain inputs as validation errors and
// computes the full breakdown. Within the validated domain the computation is
// total: zero volume yields zero profit per unit, not an error.
func (s *profitabilityService) ComputeProfitability(ctx context.Context, in pricing.ProfitabilityInput) (*pricing.ProfitabilityResult, error) {
	if err := in.Product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if in.VolumeProjectedM3.IsNegative() {
		return nil, fmt.Errorf("%w: projected volume must not be negative", apperrors.ErrValidation)
	}
	if in.FeePercent.IsNegative() {
		return nil, fmt.Errorf("%w: fee percent must not be negative", apperrors.ErrValidation)
	}
	if in.PurchaseCost.IsNegative() || in.FreightCost.IsNegative() {
		return nil, fmt.Errorf("%w: costs must not be negative", apperrors.ErrValidation)
	}
	if in.SuggestedPrice.IsNegative() {
		return nil, fmt.Errorf("%w: suggested price must not be negative", apperrors.ErrValidation)
	}
	if in.ArlaSalePrice.IsNegative() || in.ArlaCostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: additive prices must not be negative", apperrors.ErrValidation)
	}

	result := pricing.ComputeProfitability(in)
	return &result, nil
}
