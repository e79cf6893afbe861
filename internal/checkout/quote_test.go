package checkout

import (
	"testing"

	"escapada/internal/domain"
)

func TestQuote_DomesticSingleItem(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ID: "svc-1", Title: "City walking tour", BasePrice: 1000, Category: domain.CategoryOutdoor},
	}

	result := Quote(items, QuoteParams{Adults: 1, Children: 0, ForeignCard: false})

	if result.Subtotal != 1000 {
		t.Errorf("subtotal %.2f, want 1000", result.Subtotal)
	}
	if result.Discount != 0 {
		t.Errorf("discount %.2f, want 0", result.Discount)
	}
	if result.FinalTotal != 1000 {
		t.Errorf("final total %.2f, want 1000", result.FinalTotal)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("breakdown has %d entries, want 0", len(result.Breakdown))
	}

	if Deposit(result.FinalTotal) != 150 {
		t.Errorf("deposit %.2f, want 150", Deposit(result.FinalTotal))
	}
	if Balance(result.FinalTotal) != 850 {
		t.Errorf("balance %.2f, want 850", Balance(result.FinalTotal))
	}
}

func TestQuote_ForeignOutdoorTwoAdults(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ID: "svc-1", Title: "Horse riding", BasePrice: 1000, Category: domain.CategoryOutdoor},
	}

	result := Quote(items, QuoteParams{Adults: 2, Children: 0, ForeignCard: true})

	if result.Subtotal != 2000 {
		t.Errorf("subtotal %.2f, want 2000", result.Subtotal)
	}
	if result.Discount != 200 {
		t.Errorf("discount %.2f, want 200", result.Discount)
	}
	if result.FinalTotal != 1800 {
		t.Errorf("final total %.2f, want 1800", result.FinalTotal)
	}

	if Deposit(result.FinalTotal) != 270 {
		t.Errorf("deposit %.2f, want 270", Deposit(result.FinalTotal))
	}
	if Balance(result.FinalTotal) != 1530 {
		t.Errorf("balance %.2f, want 1530", Balance(result.FinalTotal))
	}

	if len(result.Breakdown) != 1 {
		t.Fatalf("breakdown has %d entries, want 1", len(result.Breakdown))
	}
	if result.Breakdown[0].Saving != 200 {
		t.Errorf("breakdown saving %.2f, want 200", result.Breakdown[0].Saving)
	}
	if result.Breakdown[0].Label != "activity benefit" {
		t.Errorf("breakdown label %q", result.Breakdown[0].Label)
	}
}

func TestQuote_PlanBGuaranteeAppendedButNeverDiscounted(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ID: "svc-1", Title: "Wine tasting", BasePrice: 500, Category: domain.CategoryGastronomy, PlanB: true},
	}

	result := Quote(items, QuoteParams{Adults: 1, Children: 0, ForeignCard: true})

	// Subtotal covers real items only.
	if result.Subtotal != 500 {
		t.Errorf("subtotal %.2f, want 500", result.Subtotal)
	}

	if len(result.Items) != 2 {
		t.Fatalf("priced items %d, want 2 (item + guarantee)", len(result.Items))
	}

	guarantee := result.Items[1]
	if guarantee.ID != GuaranteeItemID {
		t.Fatalf("last item %q, want synthetic guarantee", guarantee.ID)
	}
	if !guarantee.Synthetic {
		t.Error("guarantee item not marked synthetic")
	}
	if guarantee.Price != 75 {
		t.Errorf("guarantee price %.2f, want round(500*0.15)=75", guarantee.Price)
	}

	// 22% of 500, rounded once.
	if result.Discount != 110 {
		t.Errorf("discount %.2f, want 110", result.Discount)
	}
	if result.FinalTotal != 390 {
		t.Errorf("final total %.2f, want 390", result.FinalTotal)
	}

	// The guarantee never shows up in the savings breakdown.
	for _, line := range result.Breakdown {
		if line.Title == guarantee.Title {
			t.Error("guarantee item appeared in the discount breakdown")
		}
	}
}

func TestQuote_EmptyTrip(t *testing.T) {
	t.Parallel()

	result := Quote(nil, QuoteParams{Adults: 1, ForeignCard: true})

	if result.Subtotal != 0 || result.Discount != 0 || result.FinalTotal != 0 {
		t.Errorf("empty trip should be all-zero, got subtotal=%.2f discount=%.2f total=%.2f",
			result.Subtotal, result.Discount, result.FinalTotal)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("empty trip breakdown has %d entries", len(result.Breakdown))
	}
	if len(result.Items) != 0 {
		t.Errorf("empty trip priced %d items", len(result.Items))
	}
}

func TestQuote_ChildrenChargedHalfRate(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ID: "svc-1", Title: "Estancia day", BasePrice: 200, Category: domain.CategoryOutdoor},
	}

	result := Quote(items, QuoteParams{Adults: 2, Children: 3})

	// 200*2 + 200*0.5*3 = 700
	if result.Subtotal != 700 {
		t.Errorf("subtotal %.2f, want 700", result.Subtotal)
	}
}

func TestGroupPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base     float64
		adults   int
		children int
		want     float64
	}{
		{1000, 1, 0, 1000},
		{1000, 2, 0, 2000},
		{1000, 1, 2, 2000},
		{250.50, 2, 1, 626.25},
		{100, 0, 0, 0},
		{100, 0, 4, 200},
	}

	for _, tc := range cases {
		got := GroupPrice(tc.base, tc.adults, tc.children)
		if got != tc.want {
			t.Errorf("GroupPrice(%.2f, %d, %d) = %.2f, want %.2f",
				tc.base, tc.adults, tc.children, got, tc.want)
		}
	}
}

func TestQuote_VATExemptTripGetsBenefitOnDomesticCard(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ID: "svc-1", Title: "Posada night", BasePrice: 1000, Category: domain.CategoryAccommodation},
	}

	// Domestic card, but the trip itself is tax-exempt: the gate is an OR
	// of the two signals.
	result := Quote(items, QuoteParams{Adults: 1, ForeignCard: false, VATExempt: true})

	if result.Discount != 220 {
		t.Errorf("discount %.2f, want 220", result.Discount)
	}
	if result.FinalTotal != 780 {
		t.Errorf("final total %.2f, want 780", result.FinalTotal)
	}
}

func TestQuote_CategoryFallbackFromTitle(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ID: "svc-1", Title: "Hotel Costanera", BasePrice: 1000},
		{ID: "svc-2", Title: "Parrillada lunch", BasePrice: 1000},
	}

	result := Quote(items, QuoteParams{Adults: 1, ForeignCard: true})

	// Both fall back to a 22% category: accommodation via "hotel" in the
	// title, gastronomy otherwise.
	if result.Discount != 440 {
		t.Errorf("discount %.2f, want 440", result.Discount)
	}
}

func TestQuote_DiscountRoundedOnceAcrossItems(t *testing.T) {
	t.Parallel()

	// Three items at 33.35 each, outdoor: per-item discount 3.335. Rounding
	// per item (3+3+3 or 3.34*3) would diverge from rounding the sum
	// (10.005 -> 10).
	items := []LineItem{
		{ID: "a", Title: "Kayak", BasePrice: 33.35, Category: domain.CategoryOutdoor},
		{ID: "b", Title: "Bike rental", BasePrice: 33.35, Category: domain.CategoryOutdoor},
		{ID: "c", Title: "Sandboard", BasePrice: 33.35, Category: domain.CategoryOutdoor},
	}

	result := Quote(items, QuoteParams{Adults: 1, ForeignCard: true})

	if result.Discount != 10 {
		t.Errorf("discount %.2f, want 10 (rounded once over the sum)", result.Discount)
	}
}
