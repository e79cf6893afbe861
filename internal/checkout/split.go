package checkout

import (
	"errors"
	"math"
)

// DepositRate is the platform's online share; BalanceRate is what the
// tourist settles directly with the partner at the venue. These rates are
// applied twice on purpose: unrounded per item for booking bookkeeping,
// and rounded once at trip level for the actual card charge.
const (
	DepositRate = 0.15
	BalanceRate = 0.85
)

// splitTolerance bounds acceptable floating-point drift when a fee/net
// pair is reconstructed into the item price.
const splitTolerance = 0.01

// ErrSplitIntegrity means a per-item 15/85 split failed to reconstruct
// the item price. The payment attempt must be aborted without writes.
var ErrSplitIntegrity = errors.New("payment split does not reconstruct item price")

// PaymentSplit records the per-item fee/net division persisted with each
// partner booking.
type PaymentSplit struct {
	ItemID string
	Price  float64
	Fee    float64
	Net    float64
}

// VerifyAndSplit computes the 15/85 split for every real line item and
// verifies that fee + net reconstructs the price within tolerance. The
// check only trips on corrupted prices or rounding drift, but it gates
// money-moving writes, so any single failure rejects the whole set.
// The synthetic Plan B guarantee is not part of the online charge and is
// skipped.
func VerifyAndSplit(items []PricedItem) ([]PaymentSplit, error) {
	splits := make([]PaymentSplit, 0, len(items))

	for _, item := range items {
		if item.Synthetic {
			continue
		}

		fee := item.Price * DepositRate
		net := item.Price * BalanceRate

		if !(math.Abs(fee+net-item.Price) < splitTolerance) {
			return nil, ErrSplitIntegrity
		}

		splits = append(splits, PaymentSplit{
			ItemID: item.ID,
			Price:  item.Price,
			Fee:    fee,
			Net:    net,
		})
	}

	return splits, nil
}

// Deposit returns the online card charge: 15% of the discounted trip
// total, rounded to a whole currency unit.
func Deposit(total float64) float64 {
	return math.Round(total * DepositRate)
}

// Balance returns the remainder owed to the partners at the venue.
func Balance(total float64) float64 {
	return math.Round(total * BalanceRate)
}
