package notifications

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/luxe-storefront/pkg/enums"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

// Variant selects how a client should render the toast.
type Variant = enums.ToastVariant

const (
	VariantDefault     = enums.ToastVariantDefault
	VariantDestructive = enums.ToastVariantDestructive
)

const defaultCapacity = 50

// Notification is one transient, user-visible message.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Variant     Variant   `json:"variant"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher is the toast channel used by the catalog, cart and checkout.
type Publisher interface {
	Publish(ctx context.Context, n Notification)
}

// Feed buffers notifications until a client drains them. When full, the oldest entry is dropped.
type Feed struct {
	mu       sync.Mutex
	pending  []Notification
	capacity int
	logg     *logger.Logger
	now      func() time.Time
}

// NewFeed builds a bounded feed. A non-positive capacity falls back to the default.
func NewFeed(capacity int, logg *logger.Logger) *Feed {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Feed{
		capacity: capacity,
		logg:     logg,
		now:      time.Now,
	}
}

func (f *Feed) Publish(ctx context.Context, n Notification) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if !n.Variant.IsValid() {
		n.Variant = VariantDefault
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now().UTC()
	}
	n.Title = strings.TrimSpace(n.Title)
	n.Description = strings.TrimSpace(n.Description)

	f.mu.Lock()
	if len(f.pending) == f.capacity {
		f.pending = append(f.pending[:0], f.pending[1:]...)
	}
	f.pending = append(f.pending, n)
	f.mu.Unlock()

	if f.logg != nil {
		logCtx := f.logg.WithFields(ctx, map[string]any{
			"notification_id": n.ID.String(),
			"variant":         string(n.Variant),
			"title":           n.Title,
		})
		f.logg.Info(logCtx, "notification.published")
	}
}

// Drain returns pending notifications in publication order and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

// Pending returns a copy of the queued notifications without consuming them.
func (f *Feed) Pending() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.pending))
	copy(out, f.pending)
	return out
}
