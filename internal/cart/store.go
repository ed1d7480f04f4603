package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/luxe-storefront/internal/catalog"
)

// Item is the product snapshot captured when the product was first added.
type Item struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

// Line is one cart entry. Quantity is always at least 1.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is an immutable copy of the cart contents and aggregates.
type State struct {
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// Listener observes the cart after every applied mutation.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store is the single shared cart. Lines keep insertion order and product ids are unique.
// Mutations are serialized and listeners run synchronously, in registration order, after
// each applied change. Listeners may read the store but must not mutate it.
type Store struct {
	writeMu sync.Mutex

	mu    sync.RWMutex
	lines []Line
	index map[int]int

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

func NewStore() *Store {
	return &Store{index: map[int]int{}}
}

// Add inserts a new line with quantity 1, or bumps the quantity of the existing line.
// The stored snapshot is not refreshed on repeat adds.
func (s *Store) Add(p catalog.Product) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if idx, ok := s.index[p.ID]; ok {
		s.lines[idx].Quantity++
	} else {
		s.index[p.ID] = len(s.lines)
		s.lines = append(s.lines, Line{
			Item: Item{
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Image:     p.Image,
			},
			Quantity: 1,
		})
	}
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1 and unknown ids
// are ignored. It reports whether the cart changed.
func (s *Store) UpdateQuantity(productID, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx, ok := s.index[productID]
	if !ok || s.lines[idx].Quantity == quantity {
		s.mu.Unlock()
		return false
	}
	s.lines[idx].Quantity = quantity
	s.mu.Unlock()

	s.notify()
	return true
}

// Remove deletes the line for productID, keeping the order of the others. Unknown ids are
// ignored. It reports whether a line was removed.
func (s *Store) Remove(productID int) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx, ok := s.index[productID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.reindex()
	s.mu.Unlock()

	s.notify()
	return true
}

// Clear empties the cart. Listeners are notified even when it was already empty.
func (s *Store) Clear() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.lines = nil
	s.index = map[int]int{}
	s.mu.Unlock()

	s.notify()
}

// TakeAll empties the cart and returns what it held, in one step. Listeners are notified
// once, with the empty cart.
func (s *Store) TakeAll() State {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	taken := State{
		Lines:      s.linesLocked(),
		TotalItems: s.totalItemsLocked(),
		Subtotal:   s.subtotalLocked(),
	}
	s.lines = nil
	s.index = map[int]int{}
	s.mu.Unlock()

	s.notify()
	return taken
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalItemsLocked()
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subtotalLocked()
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linesLocked()
}

// Line returns the line for productID, if present.
func (s *Store) Line(productID int) (Line, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[productID]
	if !ok {
		return Line{}, false
	}
	return s.lines[idx], true
}

// State returns lines and aggregates read under the same lock.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Lines:      s.linesLocked(),
		TotalItems: s.totalItemsLocked(),
		Subtotal:   s.subtotalLocked(),
	}
}

// Subscribe registers fn and returns a func that removes it. Calling the returned func more
// than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// notify must be called with writeMu held and mu released.
func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	if len(subs) == 0 {
		return
	}
	state := s.State()
	for _, sub := range subs {
		sub.fn(state)
	}
}

func (s *Store) reindex() {
	s.index = make(map[int]int, len(s.lines))
	for i, l := range s.lines {
		s.index[l.ProductID] = i
	}
}

func (s *Store) linesLocked() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) totalItemsLocked() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

func (s *Store) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range s.lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}
