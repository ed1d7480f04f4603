package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/notifications"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const (
	placedTitle       = "Checkout"
	placedDescription = "This is where you would normally proceed to payment."
)

type checkoutRecorder interface {
	IncCheckout()
}

// Receipt captures what the cart held when checkout ran.
type Receipt struct {
	ID       uuid.UUID    `json:"id"`
	Lines    []cart.Line  `json:"lines"`
	Summary  cart.Summary `json:"summary"`
	PlacedAt time.Time    `json:"placed_at"`
}

// Service runs the mocked checkout: no payment, no persistence, no network.
type Service interface {
	Checkout(ctx context.Context) (*Receipt, error)
}

type ServiceParams struct {
	Store     *cart.Store
	Publisher notifications.Publisher
	Policy    cart.ShippingPolicy
	Metrics   checkoutRecorder
	Logger    *logger.Logger
}

type service struct {
	store     *cart.Store
	publisher notifications.Publisher
	policy    cart.ShippingPolicy
	metrics   checkoutRecorder
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Publisher == nil {
		return nil, fmt.Errorf("notification publisher required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:     params.Store,
		publisher: params.Publisher,
		policy:    params.Policy,
		metrics:   params.Metrics,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Checkout always succeeds. The cart is captured, then cleared, and one notification is
// published. An empty cart yields a receipt with no lines.
func (s *service) Checkout(ctx context.Context) (*Receipt, error) {
	state := s.store.TakeAll()

	receipt := &Receipt{
		ID:       uuid.New(),
		Lines:    state.Lines,
		Summary:  cart.Summarize(state, s.policy),
		PlacedAt: s.now().UTC(),
	}

	s.publisher.Publish(ctx, notifications.Notification{
		Variant:     notifications.VariantDefault,
		Title:       placedTitle,
		Description: placedDescription,
	})
	if s.metrics != nil {
		s.metrics.IncCheckout()
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"receipt_id":  receipt.ID.String(),
		"total_items": state.TotalItems,
		"total":       receipt.Summary.Total.StringFixed(2),
	})
	s.logg.Info(logCtx, "checkout.placed")
	return receipt, nil
}
