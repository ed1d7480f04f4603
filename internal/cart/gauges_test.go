package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordedGauge struct {
	items    int
	subtotal float64
	calls    int
}

func (r *recordedGauge) SetCart(totalItems int, subtotal float64) {
	r.items = totalItems
	r.subtotal = subtotal
	r.calls++
}

func TestTrackGauges(t *testing.T) {
	store := NewStore()
	store.Add(product(1, "A", "2.50"))

	rec := &recordedGauge{}
	unsubscribe := TrackGauges(store, rec)
	assert.Equal(t, 1, rec.items)
	assert.InDelta(t, 2.5, rec.subtotal, 1e-9)

	store.UpdateQuantity(1, 4)
	assert.Equal(t, 4, rec.items)
	assert.InDelta(t, 10.0, rec.subtotal, 1e-9)

	unsubscribe()
	store.Clear()
	assert.Equal(t, 4, rec.items)
	assert.Equal(t, 2, rec.calls)
}
