package checkout

import (
	"errors"
	"math"
	"testing"
)

func TestVerifyAndSplit_ReconstructsEveryPrice(t *testing.T) {
	t.Parallel()

	items := []PricedItem{
		{LineItem: LineItem{ID: "a"}, Price: 1000},
		{LineItem: LineItem{ID: "b"}, Price: 333.33},
		{LineItem: LineItem{ID: "c"}, Price: 0.01},
		{LineItem: LineItem{ID: "d"}, Price: 0},
	}

	splits, err := VerifyAndSplit(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(splits) != len(items) {
		t.Fatalf("got %d splits, want %d", len(splits), len(items))
	}

	for i, split := range splits {
		if math.Abs(split.Fee+split.Net-split.Price) >= 0.01 {
			t.Errorf("item %s: fee %.6f + net %.6f does not reconstruct price %.6f",
				split.ItemID, split.Fee, split.Net, split.Price)
		}
		if split.Fee != items[i].Price*0.15 {
			t.Errorf("item %s: fee %.6f, want %.6f", split.ItemID, split.Fee, items[i].Price*0.15)
		}
	}
}

func TestVerifyAndSplit_CorruptedPriceAbortsWholeSet(t *testing.T) {
	t.Parallel()

	// A price corrupted upstream (NaN from a bad read) cannot reconstruct;
	// no partial result may survive.
	items := []PricedItem{
		{LineItem: LineItem{ID: "good-1"}, Price: 1000},
		{LineItem: LineItem{ID: "corrupt"}, Price: math.NaN()},
		{LineItem: LineItem{ID: "good-2"}, Price: 500},
	}

	splits, err := VerifyAndSplit(items)
	if !errors.Is(err, ErrSplitIntegrity) {
		t.Fatalf("error %v, want ErrSplitIntegrity", err)
	}
	if splits != nil {
		t.Errorf("got %d splits on integrity failure, want none", len(splits))
	}
}

func TestVerifyAndSplit_SkipsSyntheticGuarantee(t *testing.T) {
	t.Parallel()

	items := []PricedItem{
		{LineItem: LineItem{ID: "svc-1"}, Price: 500},
		{LineItem: LineItem{ID: GuaranteeItemID}, Price: 75, Synthetic: true},
	}

	splits, err := VerifyAndSplit(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(splits) != 1 {
		t.Fatalf("got %d splits, want 1 (guarantee excluded)", len(splits))
	}
	if splits[0].ItemID == GuaranteeItemID {
		t.Error("guarantee item entered the payment split")
	}
}

func TestVerifyAndSplit_SyntheticCorruptionIgnored(t *testing.T) {
	t.Parallel()

	// Even a corrupted guarantee price must not block payment: the
	// guarantee is never part of the online charge.
	items := []PricedItem{
		{LineItem: LineItem{ID: "svc-1"}, Price: 500},
		{LineItem: LineItem{ID: GuaranteeItemID}, Price: math.NaN(), Synthetic: true},
	}

	if _, err := VerifyAndSplit(items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDepositAndBalance_Rounding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		total   float64
		deposit float64
		balance float64
	}{
		{1000, 150, 850},
		{1800, 270, 1530},
		{390, 59, 332}, // both halves round up independently
		{0, 0, 0},
	}

	for _, tc := range cases {
		if got := Deposit(tc.total); got != tc.deposit {
			t.Errorf("Deposit(%.2f) = %.2f, want %.2f", tc.total, got, tc.deposit)
		}
		if got := Balance(tc.total); got != tc.balance {
			t.Errorf("Balance(%.2f) = %.2f, want %.2f", tc.total, got, tc.balance)
		}
	}
}
