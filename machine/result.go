package machine

import (
	"slices"

	"vending"
)

// PurchaseResult is the outcome of one Purchase call: either a vended
// product with its change, or a failure reason.
type PurchaseResult struct {
	reason  FailureReason
	product vending.Product
	change  []vending.Coin
	denoms  vending.Denominations
}

func failed(reason FailureReason) PurchaseResult {
	return PurchaseResult{reason: reason}
}

func succeeded(p vending.Product, change []vending.Coin, denoms vending.Denominations) PurchaseResult {
	return PurchaseResult{product: p, change: change, denoms: denoms}
}

func (r PurchaseResult) OK() bool { return r.reason == 0 }

// Reason is zero on success.
func (r PurchaseResult) Reason() FailureReason { return r.reason }

// Err is nil on success, otherwise the sentinel for Reason.
func (r PurchaseResult) Err() error { return r.reason.Err() }

// Product is the zero Product on failure.
func (r PurchaseResult) Product() vending.Product { return r.product }

// VendedProductName is empty on failure.
func (r PurchaseResult) VendedProductName() string { return r.product.Name }

func (r PurchaseResult) HasChange() bool { return len(r.change) > 0 }

// Change returns the dispensed coins, largest first.
func (r PurchaseResult) Change() []vending.Coin { return slices.Clone(r.change) }

// TotalChange is the dispensed value in minor units.
func (r PurchaseResult) TotalChange() int { return vending.SumCoins(r.change) }

// ChangeLabels lists the dispensed coins by denomination label.
func (r PurchaseResult) ChangeLabels() []string {
	labels := make([]string, 0, len(r.change))
	for _, c := range r.change {
		labels = append(labels, r.denoms.Label(c))
	}
	return labels
}
