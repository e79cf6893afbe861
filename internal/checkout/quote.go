package checkout

import (
	"math"
	"strings"

	"escapada/internal/domain"
)

// GuaranteeItemID identifies the synthetic weather-contingency line item
// appended to trips where any item has Plan B enabled.
const GuaranteeItemID = "plan-b-guarantee"

// guaranteeRate prices the Plan B guarantee at 15% of the pre-discount
// subtotal, computed once in aggregate. The guarantee is settled at the
// venue and never enters the online charge.
const guaranteeRate = 0.15

// LineItem is one purchasable component of a trip as fed into the quote.
type LineItem struct {
	ID            string
	Title         string
	BasePrice     float64
	Category      domain.ServiceCategory
	PartnerID     string
	PlanB         bool
	ScheduledTime string
	DayNumber     int
}

// PricedItem is a line item with its passenger-weighted group price.
// Synthetic marks the appended Plan B guarantee, which is excluded from
// the discount pass and from the per-item payment split.
type PricedItem struct {
	LineItem
	Price     float64
	Synthetic bool
}

// QuoteParams carries the passenger counts and the two independent
// fiscal-benefit signals: the card origin and the trip-level exemption.
type QuoteParams struct {
	Adults      int
	Children    int
	ForeignCard bool
	VATExempt   bool
}

// BenefitLine is one row of the savings breakdown shown to the tourist.
type BenefitLine struct {
	Title  string
	Saving float64
	Label  string
}

// QuoteResult is the priced trip: items (including any synthetic
// guarantee), the pre-discount subtotal, the rounded discount, and the
// final total the split calculations run on.
type QuoteResult struct {
	Items      []PricedItem
	Subtotal   float64
	Discount   float64
	FinalTotal float64
	Breakdown  []BenefitLine
}

// GroupPrice weights a base price by passenger counts. Children are
// charged at half the adult rate.
func GroupPrice(basePrice float64, adults, children int) float64 {
	return basePrice*float64(adults) + basePrice*0.5*float64(children)
}

// Quote prices a trip. The subtotal covers real items only; the Plan B
// guarantee, when present, rides along at round(subtotal*0.15) but is never
// discounted. The discount accumulates unrounded across items and is
// rounded exactly once at the end.
func Quote(items []LineItem, params QuoteParams) QuoteResult {
	priced := make([]PricedItem, 0, len(items)+1)
	subtotal := 0.0
	anyPlanB := false

	for _, item := range items {
		price := GroupPrice(item.BasePrice, params.Adults, params.Children)
		subtotal += price
		if item.PlanB {
			anyPlanB = true
		}
		priced = append(priced, PricedItem{LineItem: item, Price: price})
	}

	if anyPlanB {
		priced = append(priced, PricedItem{
			LineItem: LineItem{
				ID:       GuaranteeItemID,
				Title:    "Plan B weather guarantee",
				Category: domain.CategoryInsurance,
				PlanB:    true,
			},
			Price:     math.Round(subtotal * guaranteeRate),
			Synthetic: true,
		})
	}

	result := QuoteResult{
		Items:      priced,
		Subtotal:   subtotal,
		FinalTotal: subtotal,
		Breakdown:  []BenefitLine{},
	}

	benefitApplies := params.ForeignCard || params.VATExempt
	if !benefitApplies {
		return result
	}

	totalDiscount := 0.0
	for _, item := range priced {
		if item.Synthetic {
			continue
		}

		benefit := CalculateBenefit(item.Price, itemCategory(item.LineItem), true)
		if benefit.DiscountAmount > 0 {
			totalDiscount += benefit.DiscountAmount
			result.Breakdown = append(result.Breakdown, BenefitLine{
				Title:  item.Title,
				Saving: benefit.DiscountAmount,
				Label:  benefit.Label,
			})
		}
	}

	result.Discount = math.Round(totalDiscount)
	result.FinalTotal = subtotal - result.Discount

	return result
}

// itemCategory falls back to a title heuristic for legacy items that were
// stored without a category tag.
func itemCategory(item LineItem) domain.ServiceCategory {
	if item.Category != "" {
		return item.Category
	}
	if strings.Contains(strings.ToLower(item.Title), "hotel") {
		return domain.CategoryAccommodation
	}
	return domain.CategoryGastronomy
}
