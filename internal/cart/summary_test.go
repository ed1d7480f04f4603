package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	policy := ShippingPolicy{FreeShippingThreshold: decimal.NewFromInt(100)}

	tests := []struct {
		name      string
		subtotal  string
		remaining string
		progress  string
	}{
		{name: "empty cart", subtotal: "0", remaining: "100", progress: "0"},
		{name: "partial", subtotal: "35.00", remaining: "65", progress: "35"},
		{name: "rounds progress", subtotal: "49.60", remaining: "50.40", progress: "50"},
		{name: "exactly at threshold", subtotal: "100", remaining: "0", progress: "100"},
		{name: "above threshold", subtotal: "250.10", remaining: "0", progress: "100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := State{Subtotal: decimal.RequireFromString(tc.subtotal), TotalItems: 1}
			got := Summarize(state, policy)

			assertAmount(t, tc.subtotal, got.Subtotal)
			assert.True(t, got.Shipping.IsZero())
			assertAmount(t, tc.subtotal, got.Total)
			assertAmount(t, "100", got.FreeShippingThreshold)
			assertAmount(t, tc.remaining, got.RemainingForFreeShipping)
			assertAmount(t, tc.progress, got.FreeShippingProgress)
			assert.Equal(t, 1, got.TotalItems)
		})
	}
}

func TestSummarizeFallsBackToDefaultThreshold(t *testing.T) {
	got := Summarize(State{Subtotal: decimal.NewFromInt(20)}, ShippingPolicy{})
	assertAmount(t, "100", got.FreeShippingThreshold)
	assertAmount(t, "80", got.RemainingForFreeShipping)
}
