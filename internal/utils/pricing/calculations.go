package pricing

import (
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Volumes are entered in cubic meters and handled internally in liters; the
// conversion happens exactly once, here.
var LitersPerCubicMeter = decimal.NewFromInt(1000)

// ArlaVolumeRatio is the fixed share of diesel S-10 volume sold as bundled
// ARLA-32 additive.
var ArlaVolumeRatio = decimal.NewFromFloat(0.05)

var oneHundred = decimal.NewFromInt(100)

// FinalCost applies the payment fee percentage to a per-liter cost.
func FinalCost(baseCost, feePercent decimal.Decimal) decimal.Decimal {
	return baseCost.Mul(decimal.NewFromInt(1).Add(feePercent.Div(oneHundred)))
}

// MarginCents returns the per-liter margin of a suggested price over the
// fee-adjusted cost, in minor currency units. Positive means profitable at
// face value; negative flags a loss-making request.
func MarginCents(suggestedPrice, costPrice, feePercent decimal.Decimal) int64 {
	return suggestedPrice.Sub(FinalCost(costPrice, feePercent)).Mul(oneHundred).Round(0).IntPart()
}

// PriceIncreaseCents measures the requested change versus the prior price in
// minor currency units. It is independent of margin and must not be confused
// with it: it says nothing about profitability.
func PriceIncreaseCents(suggestedPrice, currentPrice decimal.Decimal) int64 {
	return suggestedPrice.Sub(currentPrice).Mul(oneHundred).Round(0).IntPart()
}

// ProfitabilityInput carries everything the profitability breakdown needs.
// All monetary values are currency per liter; the volume is cubic meters.
type ProfitabilityInput struct {
	Product           domain.ProductCode
	PurchaseCost      decimal.Decimal
	FreightCost       decimal.Decimal
	FeePercent        decimal.Decimal
	SuggestedPrice    decimal.Decimal
	VolumeProjectedM3 decimal.Decimal
	ArlaSalePrice     decimal.Decimal // diesel S-10: sale price of the companion additive
	ArlaCostPrice     decimal.Decimal // diesel S-10 and bulk ARLA-32: additive purchase cost
}

// ProfitabilityResult is the full breakdown shown to reviewers. GrossProfit
// and NetResult are surfaced separately so a reviewer can see whether
// profitability depends on the additive compensation term.
type ProfitabilityResult struct {
	FinalCost     decimal.Decimal `json:"finalCost"`
	VolumeLiters  decimal.Decimal `json:"volumeLiters"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit"`
	Compensation  decimal.Decimal `json:"compensation"`
	NetResult     decimal.Decimal `json:"netResult"`
}

// ComputeProfitability derives the profitability breakdown. It is a total
// function over validated inputs: zero projected volume yields zero profit
// per unit, never a division error.
func ComputeProfitability(in ProfitabilityInput) ProfitabilityResult {
	baseCost := in.PurchaseCost.Add(in.FreightCost)
	finalCost := FinalCost(baseCost, in.FeePercent)
	volumeLiters := in.VolumeProjectedM3.Mul(LitersPerCubicMeter)

	totalRevenue := volumeLiters.Mul(in.SuggestedPrice)
	totalCost := volumeLiters.Mul(finalCost)
	grossProfit := totalRevenue.Sub(totalCost)

	profitPerUnit := decimal.Zero
	if !volumeLiters.IsZero() {
		profitPerUnit = grossProfit.Div(volumeLiters)
	}

	compensation := decimal.Zero
	switch in.Product {
	case domain.DieselS10:
		arlaVolume := volumeLiters.Mul(ArlaVolumeRatio)
		arlaMargin := in.ArlaSalePrice.Sub(in.ArlaCostPrice)
		compensation = arlaVolume.Mul(arlaMargin)
	case domain.Arla32Bulk:
		arlaMargin := in.SuggestedPrice.Sub(in.ArlaCostPrice)
		compensation = volumeLiters.Mul(arlaMargin)
	}

	return ProfitabilityResult{
		FinalCost:     finalCost,
		VolumeLiters:  volumeLiters,
		TotalRevenue:  totalRevenue,
		TotalCost:     totalCost,
		GrossProfit:   grossProfit,
		ProfitPerUnit: profitPerUnit,
		Compensation:  compensation,
		NetResult:     grossProfit.Add(compensation),
	}
}
