package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/luxe-storefront/internal/notifications"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

type stubSource struct {
	products []Product
	err      error
	calls    int
}

func (s *stubSource) ListProducts(context.Context) ([]Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []notifications.Notification
}

func (p *recordingPublisher) Publish(_ context.Context, n notifications.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
}

type recordingFetches struct {
	products int
	err      error
	calls    int
}

func (r *recordingFetches) ObserveCatalogFetch(_ time.Duration, products int, err error) {
	r.calls++
	r.products = products
	r.err = err
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(Params{}); err == nil {
		t.Fatalf("expected error without source")
	}
}

func TestCatalogStartsLoading(t *testing.T) {
	c, err := New(Params{Source: &stubSource{}})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	snap := c.Snapshot()
	if !snap.Loading || !c.Loading() {
		t.Fatalf("expected loading before first fetch")
	}
	if len(snap.Products) != 0 {
		t.Fatalf("expected empty products before first fetch")
	}
}

func TestCatalogLoadSuccess(t *testing.T) {
	source := &stubSource{products: sampleProducts()}
	publisher := &recordingPublisher{}
	fetches := &recordingFetches{}
	c, err := New(Params{Source: source, Publisher: publisher, Metrics: fetches, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	c.Load(context.Background())

	snap := c.Snapshot()
	if snap.Loading {
		t.Fatalf("expected loading to end")
	}
	if len(snap.Products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(snap.Products))
	}
	if len(snap.Categories) != 3 {
		t.Fatalf("unexpected categories %v", snap.Categories)
	}
	if !snap.MaxPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected max price %s", snap.MaxPrice)
	}
	if snap.LoadedAt.IsZero() {
		t.Fatalf("expected loaded at to be set")
	}
	if len(publisher.sent) != 0 {
		t.Fatalf("expected no notifications on success")
	}
	if fetches.calls != 1 || fetches.products != 4 || fetches.err != nil {
		t.Fatalf("unexpected fetch metrics %+v", fetches)
	}

	p, ok := c.Find(3)
	if !ok || p.Title != "Gold Hoops" {
		t.Fatalf("expected to find product 3, got %+v ok=%v", p, ok)
	}
	if _, ok := c.Find(99); ok {
		t.Fatalf("expected unknown id to be missing")
	}

	got := c.Search(Criteria{Query: "bag", Category: "bags", Price: PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(50)}})
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("unexpected search result %v", idsOf(got))
	}
}

func TestCatalogLoadFailureLeavesCatalogEmpty(t *testing.T) {
	source := &stubSource{products: sampleProducts()}
	publisher := &recordingPublisher{}
	fetches := &recordingFetches{}
	c, err := New(Params{Source: source, Publisher: publisher, Metrics: fetches, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	c.Load(context.Background())

	source.err = errors.New("offline")
	c.Load(context.Background())

	snap := c.Snapshot()
	if snap.Loading {
		t.Fatalf("expected loading to end after failure")
	}
	if len(snap.Products) != 0 {
		t.Fatalf("expected empty catalog after failed load, got %d", len(snap.Products))
	}
	if _, ok := c.Find(1); ok {
		t.Fatalf("expected lookups to miss after failed load")
	}
	if len(publisher.sent) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(publisher.sent))
	}
	n := publisher.sent[0]
	if n.Variant != notifications.VariantDestructive || n.Title != "Failed to load products" || n.Description != "Please try again later." {
		t.Fatalf("unexpected notification %+v", n)
	}
	if fetches.err == nil {
		t.Fatalf("expected fetch error to be recorded")
	}
	if source.calls != 2 {
		t.Fatalf("expected one fetch per load, got %d", source.calls)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _ := New(Params{Source: &stubSource{products: sampleProducts()}})
	c.Load(context.Background())

	snap := c.Snapshot()
	snap.Products[0].Title = "mutated"

	p, _ := c.Find(1)
	if p.Title != "Silk Scarf" {
		t.Fatalf("snapshot mutation leaked into catalog")
	}
}

type gatedSource struct {
	mu       sync.Mutex
	calls    int
	inflight int
	peak     int
	started  chan int
	release  chan struct{}
}

func (s *gatedSource) ListProducts(context.Context) ([]Product, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.inflight++
	if s.inflight > s.peak {
		s.peak = s.inflight
	}
	s.mu.Unlock()

	s.started <- call
	<-s.release

	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
	return sampleProducts()[:call], nil
}

func TestCatalogOverlappingLoadsRunInOrder(t *testing.T) {
	source := &gatedSource{started: make(chan int, 2), release: make(chan struct{})}
	c, err := New(Params{Source: source})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Load(context.Background())
	}()
	if call := <-source.started; call != 1 {
		t.Fatalf("expected first fetch, got %d", call)
	}
	go func() {
		defer wg.Done()
		c.Load(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	source.release <- struct{}{}

	if call := <-source.started; call != 2 {
		t.Fatalf("expected second fetch, got %d", call)
	}
	if !c.Loading() {
		t.Fatalf("expected loading while the second fetch is in flight")
	}
	source.release <- struct{}{}
	wg.Wait()

	if source.peak != 1 {
		t.Fatalf("expected fetches to run one at a time, peak was %d", source.peak)
	}
	snap := c.Snapshot()
	if snap.Loading || len(snap.Products) != 2 {
		t.Fatalf("expected the later load to win, got loading=%v products=%d", snap.Loading, len(snap.Products))
	}
}
