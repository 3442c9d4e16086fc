package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFinalCost(t *testing.T) {
	got := pricing.FinalCost(dec("3.20"), dec("2.5"))
	assert.True(t, got.Equal(dec("3.28")), "got %s", got)

	zeroFee := pricing.FinalCost(dec("3.20"), decimal.Zero)
	assert.True(t, zeroFee.Equal(dec("3.20")))
}

func TestMarginCents(t *testing.T) {
	// suggested 3.80, fee-adjusted cost 3.28 -> 52 cents per liter
	assert.Equal(t, int64(52), pricing.MarginCents(dec("3.80"), dec("3.20"), dec("2.5")))

	// Loss-making request yields a negative margin.
	assert.Equal(t, int64(-28), pricing.MarginCents(dec("3.00"), dec("3.20"), dec("2.5")))

	// Rounded to the nearest cent.
	assert.Equal(t, int64(50), pricing.MarginCents(dec("3.704"), dec("3.20"), decimal.Zero))
}

func TestPriceIncreaseCents(t *testing.T) {
	assert.Equal(t, int64(30), pricing.PriceIncreaseCents(dec("3.80"), dec("3.50")))
	assert.Equal(t, int64(-15), pricing.PriceIncreaseCents(dec("3.35"), dec("3.50")))
	assert.Equal(t, int64(0), pricing.PriceIncreaseCents(dec("3.50"), dec("3.50")))
}

func TestComputeProfitability_DieselS10(t *testing.T) {
	in := pricing.ProfitabilityInput{
		Product:           domain.DieselS10,
		PurchaseCost:      dec("3.00"),
		FreightCost:       dec("0.20"),
		FeePercent:        dec("2.5"),
		SuggestedPrice:    dec("3.80"),
		VolumeProjectedM3: dec("10"),
		ArlaSalePrice:     dec("2.50"),
		ArlaCostPrice:     dec("2.00"),
	}

	res := pricing.ComputeProfitability(in)

	require.True(t, res.FinalCost.Equal(dec("3.28")), "finalCost %s", res.FinalCost)
	assert.True(t, res.VolumeLiters.Equal(dec("10000")))
	assert.True(t, res.TotalRevenue.Equal(dec("38000")))
	assert.True(t, res.TotalCost.Equal(dec("32800")))
	assert.True(t, res.GrossProfit.Equal(dec("5200")))
	assert.True(t, res.ProfitPerUnit.Equal(dec("0.52")), "profitPerUnit %s", res.ProfitPerUnit)
	// 5% of 10,000 liters at a 0.50 additive margin.
	assert.True(t, res.Compensation.Equal(dec("250")), "compensation %s", res.Compensation)
	assert.True(t, res.NetResult.Equal(dec("5450")))
}

func TestComputeProfitability_Arla32Bulk(t *testing.T) {
	in := pricing.ProfitabilityInput{
		Product:           domain.Arla32Bulk,
		PurchaseCost:      dec("2.00"),
		FreightCost:       decimal.Zero,
		FeePercent:        decimal.Zero,
		SuggestedPrice:    dec("2.60"),
		VolumeProjectedM3: dec("2"),
		ArlaCostPrice:     dec("2.00"),
	}

	res := pricing.ComputeProfitability(in)

	// Bulk ARLA compensates on the full volume.
	assert.True(t, res.Compensation.Equal(dec("1200")), "compensation %s", res.Compensation)
	assert.True(t, res.GrossProfit.Equal(dec("1200")))
	assert.True(t, res.NetResult.Equal(dec("2400")))
}

func TestComputeProfitability_NoCompensationForOtherProducts(t *testing.T) {
	in := pricing.ProfitabilityInput{
		Product:           domain.GasolineCommon,
		PurchaseCost:      dec("4.00"),
		FeePercent:        dec("1.5"),
		SuggestedPrice:    dec("4.50"),
		VolumeProjectedM3: dec("5"),
		ArlaSalePrice:     dec("2.50"),
		ArlaCostPrice:     dec("2.00"),
	}

	res := pricing.ComputeProfitability(in)

	assert.True(t, res.Compensation.IsZero())
	assert.True(t, res.NetResult.Equal(res.GrossProfit))
}

func TestComputeProfitability_ZeroVolume(t *testing.T) {
	in := pricing.ProfitabilityInput{
		Product:        domain.DieselCommon,
		PurchaseCost:   dec("3.00"),
		SuggestedPrice: dec("3.50"),
	}

	res := pricing.ComputeProfitability(in)

	assert.True(t, res.VolumeLiters.IsZero())
	assert.True(t, res.ProfitPerUnit.IsZero())
	assert.True(t, res.GrossProfit.IsZero())
	assert.True(t, res.NetResult.IsZero())
}

func TestComputeProfitability_NetDecomposition(t *testing.T) {
	in := pricing.ProfitabilityInput{
		Product:           domain.DieselS10,
		PurchaseCost:      dec("3.11"),
		FreightCost:       dec("0.17"),
		FeePercent:        dec("1.9"),
		SuggestedPrice:    dec("3.79"),
		VolumeProjectedM3: dec("7.5"),
		ArlaSalePrice:     dec("2.41"),
		ArlaCostPrice:     dec("2.05"),
	}

	res := pricing.ComputeProfitability(in)

	assert.True(t, res.NetResult.Equal(res.GrossProfit.Add(res.Compensation)))
	assert.True(t, res.TotalRevenue.Sub(res.TotalCost).Equal(res.GrossProfit))
}
