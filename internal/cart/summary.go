package cart

import "github.com/shopspring/decimal"

var (
	DefaultFreeShippingThreshold = decimal.NewFromInt(100)
	hundred                      = decimal.NewFromInt(100)
)

// ShippingPolicy carries the free shipping threshold shown on the cart page.
type ShippingPolicy struct {
	FreeShippingThreshold decimal.Decimal
}

// Summary is the order summary block of the cart page.
type Summary struct {
	TotalItems               int             `json:"total_items"`
	Subtotal                 decimal.Decimal `json:"subtotal"`
	Shipping                 decimal.Decimal `json:"shipping"`
	Total                    decimal.Decimal `json:"total"`
	FreeShippingThreshold    decimal.Decimal `json:"free_shipping_threshold"`
	RemainingForFreeShipping decimal.Decimal `json:"remaining_for_free_shipping"`
	FreeShippingProgress     decimal.Decimal `json:"free_shipping_progress"`
}

// Summarize derives the order summary from a cart state. Shipping is always free; the
// threshold only drives the progress indicator.
func Summarize(state State, policy ShippingPolicy) Summary {
	threshold := policy.FreeShippingThreshold
	if !threshold.IsPositive() {
		threshold = DefaultFreeShippingThreshold
	}

	remaining := threshold.Sub(state.Subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	progress := state.Subtotal.Div(threshold).Mul(hundred)
	if progress.GreaterThan(hundred) {
		progress = hundred
	}

	shipping := decimal.Zero
	return Summary{
		TotalItems:               state.TotalItems,
		Subtotal:                 state.Subtotal,
		Shipping:                 shipping,
		Total:                    state.Subtotal.Add(shipping),
		FreeShippingThreshold:    threshold,
		RemainingForFreeShipping: remaining,
		FreeShippingProgress:     progress.Round(0),
	}
}
