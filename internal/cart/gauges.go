package cart

type gaugeRecorder interface {
	SetCart(totalItems int, subtotal float64)
}

// TrackGauges mirrors the cart aggregates into rec after every applied mutation and seeds it
// with the current state.
func TrackGauges(store *Store, rec gaugeRecorder) (unsubscribe func()) {
	if store == nil || rec == nil {
		return func() {}
	}
	state := store.State()
	rec.SetCart(state.TotalItems, state.Subtotal.InexactFloat64())
	return store.Subscribe(func(s State) {
		rec.SetCart(s.TotalItems, s.Subtotal.InexactFloat64())
	})
}
