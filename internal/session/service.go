package session

import (
	"context"

	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/orders"
)

// Service is the command surface used by the HTTP layer.
type Service interface {
	Catalog() *catalog.Catalog

	Product(ctx context.Context, sid string, idx int) (ProductView, error)
	SelectSize(ctx context.Context, sid string, idx, sizeID int) (ProductView, error)
	SelectMilk(ctx context.Context, sid string, idx, milkID int) (ProductView, error)
	ToggleExtra(ctx context.Context, sid string, idx, extraID int) (ProductView, error)
	StepQty(ctx context.Context, sid string, idx, delta int) (ProductView, error)

	AddToCart(ctx context.Context, sid string, sel Selection) (StateView, error)
	AddSavedSelection(ctx context.Context, sid string, idx int) (StateView, error)
	AdjustQty(ctx context.Context, sid, key string, delta int) (StateView, error)
	Remove(ctx context.Context, sid, key string) (StateView, error)
	Checkout(ctx context.Context, sid string) (StateView, error)
	ClearAll(ctx context.Context, sid string) (StateView, error)

	Cart(ctx context.Context, sid string) (StateView, error)
	ActiveOrder(ctx context.Context, sid string) (*orders.Order, error)
	Stages(ctx context.Context, sid string) (OrderView, error)
}

var _ Service = (*Manager)(nil)
