package session

import (
	"github.com/angelmondragon/brewcart/internal/cart"
	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/orders"
	"github.com/angelmondragon/brewcart/internal/preferences"
)

// ProductView is a product page: the product, its normalized preference and
// the unit price for the preferred size.
type ProductView struct {
	Index      int
	Product    catalog.Product
	Preference preferences.Record
	Options    string
	UnitPrice  int64
	// Persisted is false when the last write could not be stored; the
	// returned state is still authoritative for the session.
	Persisted bool
}

// StateView is the cart together with the active order it produced.
type StateView struct {
	Cart      cart.Cart
	Totals    cart.Totals
	Order     *orders.Order
	Persisted bool
}

// OrderView is the active order and its stage board.
type OrderView struct {
	Order *orders.Order
	Board orders.Board
}

// Selection is an explicit add-to-cart request.
type Selection struct {
	ProductIndex int
	Size         int
	Milk         int
	Extras       []int
	Qty          int
}
