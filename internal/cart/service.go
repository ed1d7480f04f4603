package cart

import (
	"context"
	"fmt"

	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/internal/notifications"
	"github.com/angelmondragon/luxe-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const (
	addedTitle          = "Added to cart"
	addedDescriptionFmt = "%s was added to your cart."
	removedTitle        = "Item removed"
	removedDescription  = "The item was removed from your cart."
)

type productFinder interface {
	Find(id int) (catalog.Product, bool)
}

type mutationRecorder interface {
	IncCartMutation(op string)
}

// Cart is the cart page view: lines plus the order summary.
type Cart struct {
	Lines   []Line  `json:"lines"`
	Summary Summary `json:"summary"`
}

// Service exposes the cart operations behind the HTTP surface.
type Service interface {
	AddProduct(ctx context.Context, productID int) (*Cart, error)
	SetQuantity(ctx context.Context, productID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, productID int) (*Cart, error)
	Clear(ctx context.Context) (*Cart, error)
	Summary(ctx context.Context) (*Cart, error)
}

// ServiceParams wires the cart service. Store, Products and Publisher are required.
type ServiceParams struct {
	Store     *Store
	Products  productFinder
	Publisher notifications.Publisher
	Policy    ShippingPolicy
	Metrics   mutationRecorder
	Logger    *logger.Logger
}

type service struct {
	store     *Store
	products  productFinder
	publisher notifications.Publisher
	policy    ShippingPolicy
	metrics   mutationRecorder
	logg      *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder required")
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
		products:  params.Products,
		publisher: params.Publisher,
		policy:    params.Policy,
		metrics:   params.Metrics,
		logg:      logg,
	}, nil
}

func (s *service) AddProduct(ctx context.Context, productID int) (*Cart, error) {
	product, ok := s.products.Find(productID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	s.store.Add(product)
	s.recordMutation(ctx, enums.CartOperationAdd, productID)
	s.publisher.Publish(ctx, notifications.Notification{
		Variant:     notifications.VariantDefault,
		Title:       addedTitle,
		Description: fmt.Sprintf(addedDescriptionFmt, product.Title),
	})
	return s.view(), nil
}

func (s *service) SetQuantity(ctx context.Context, productID, quantity int) (*Cart, error) {
	if s.store.UpdateQuantity(productID, quantity) {
		s.recordMutation(ctx, enums.CartOperationUpdate, productID)
	}
	return s.view(), nil
}

func (s *service) RemoveItem(ctx context.Context, productID int) (*Cart, error) {
	if s.store.Remove(productID) {
		s.recordMutation(ctx, enums.CartOperationRemove, productID)
		s.publisher.Publish(ctx, notifications.Notification{
			Variant:     notifications.VariantDefault,
			Title:       removedTitle,
			Description: removedDescription,
		})
	}
	return s.view(), nil
}

func (s *service) Clear(ctx context.Context) (*Cart, error) {
	s.store.Clear()
	s.recordMutation(ctx, enums.CartOperationClear, 0)
	return s.view(), nil
}

func (s *service) Summary(context.Context) (*Cart, error) {
	return s.view(), nil
}

func (s *service) view() *Cart {
	state := s.store.State()
	return &Cart{
		Lines:   state.Lines,
		Summary: Summarize(state, s.policy),
	}
}

func (s *service) recordMutation(ctx context.Context, op enums.CartOperation, productID int) {
	if s.metrics != nil {
		s.metrics.IncCartMutation(op.String())
	}
	logCtx := s.logg.WithField(ctx, "op", op.String())
	if productID > 0 {
		logCtx = s.logg.WithProductID(logCtx, productID)
	}
	s.logg.Debug(logCtx, "cart.mutated")
}
