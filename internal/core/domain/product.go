package domain

import "fmt"

// ProductCode identifies a fuel product sold at a station.
// The set is closed: unknown codes are rejected at validation time rather than
// falling through lookups silently.
type ProductCode string

const (
	GasolineCommon   ProductCode = "GASOLINE_COMMON"
	GasolineAdditive ProductCode = "GASOLINE_ADDITIVE"
	Ethanol          ProductCode = "ETHANOL"
	DieselCommon     ProductCode = "DIESEL_COMMON"
	DieselS10        ProductCode = "DIESEL_S10"
	DieselS500       ProductCode = "DIESEL_S500"
	Arla32Bulk       ProductCode = "ARLA32_BULK"
)

// Validate returns ErrValidation-compatible error text for unknown product codes.
func (p ProductCode) Validate() error {
	switch p {
	case GasolineCommon, GasolineAdditive, Ethanol, DieselCommon, DieselS10, DieselS500, Arla32Bulk:
		return nil
	}
	return fmt.Errorf("unknown product code '%s'", p)
}
