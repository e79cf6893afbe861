package checkout

import "escapada/internal/domain"

// Fiscal benefit rates for foreign cardholders under the Uruguayan tourism
// VAT regime. Accommodation and gastronomy are fully VAT-exempt (22 points);
// outdoor activities carry a smaller promotional benefit.
const (
	vatFreeRate  = 0.22
	activityRate = 0.10
)

// Benefit is the fiscal discount computed for one line item.
type Benefit struct {
	DiscountAmount float64
	FinalPrice     float64
	Label          string
}

// CalculateBenefit computes the tax-benefit discount for a single amount.
// Domestic cardholders never receive a benefit, regardless of category.
// No rounding happens here; the aggregator rounds once over the trip so
// that per-item rounding error does not compound.
func CalculateBenefit(amount float64, category domain.ServiceCategory, foreign bool) Benefit {
	if !foreign {
		return Benefit{DiscountAmount: 0, FinalPrice: amount, Label: ""}
	}

	var rate float64
	var label string

	switch category {
	case domain.CategoryAccommodation:
		rate = vatFreeRate
		label = "zero-VAT accommodation"
	case domain.CategoryGastronomy:
		rate = vatFreeRate
		label = "zero-VAT gastronomy"
	case domain.CategoryOutdoor:
		rate = activityRate
		label = "activity benefit"
	default:
		// Insurance and unclassified items never qualify.
	}

	discount := amount * rate

	return Benefit{
		DiscountAmount: discount,
		FinalPrice:     amount - discount,
		Label:          label,
	}
}
