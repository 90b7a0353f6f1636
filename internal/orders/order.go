package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/brewcart/internal/cart"
)

// ID identifies an order. Orders written by the storefront widget used
// millisecond timestamps, so numeric ids are kept as their decimal text.
type ID string

// NewID returns a fresh random id.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string {
	return string(id)
}

// numeric reports whether id is the canonical decimal text of an int64, so
// it can be written as a JSON number. "007" is not.
func (id ID) numeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON writes numeric ids as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a string or a number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	text := n.String()
	if i, err := n.Int64(); err == nil {
		text = fmt.Sprintf("%d", i)
	}
	*id = ID(text)
	return nil
}

// Item is a by-value copy of a cart line taken when the order was synced.
type Item struct {
	ProductIndex int    `json:"index"`
	Name         string `json:"name"`
	Options      string `json:"options"`
	Qty          int    `json:"qty"`
	UnitPrice    int64  `json:"unitPrice"`
	TotalPrice   int64  `json:"totalPrice"`
}

// Order is the single active order of a session.
type Order struct {
	ID              ID
	CreatedAt       time.Time
	Items           []Item
	Subtotal        int64
	DiscountPercent float64
	Discount        int64
}

// Total is Subtotal minus Discount.
func (o Order) Total() int64 {
	return o.Subtotal - o.Discount
}

type orderJSON struct {
	ID              ID         `json:"id"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	Timestamp       *int64     `json:"timestamp,omitempty"`
	Items           []Item     `json:"items"`
	Subtotal        int64      `json:"subtotal"`
	Discount        int64      `json:"discount"`
	DiscountPercent float64    `json:"discountPercent"`
}

// MarshalJSON writes both createdAt and the millisecond timestamp older
// readers expect.
func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []Item{}
	}
	created := o.CreatedAt.UTC()
	ms := created.UnixMilli()
	return json.Marshal(orderJSON{
		ID:              o.ID,
		CreatedAt:       &created,
		Timestamp:       &ms,
		Items:           items,
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		DiscountPercent: o.DiscountPercent,
	})
}

// UnmarshalJSON prefers createdAt and falls back to timestamp.
func (o *Order) UnmarshalJSON(data []byte) error {
	var aux orderJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	out := Order{
		ID:              aux.ID,
		Items:           aux.Items,
		Subtotal:        aux.Subtotal,
		DiscountPercent: aux.DiscountPercent,
		Discount:        aux.Discount,
	}
	switch {
	case aux.CreatedAt != nil:
		out.CreatedAt = aux.CreatedAt.UTC()
	case aux.Timestamp != nil:
		out.CreatedAt = time.UnixMilli(*aux.Timestamp).UTC()
	}
	*o = out
	return nil
}

// Snapshot copies the cart lines into order items.
func Snapshot(c cart.Cart) []Item {
	items := make([]Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, Item{
			ProductIndex: line.ProductIndex,
			Name:         line.Name,
			Options:      line.Options,
			Qty:          line.Qty,
			UnitPrice:    line.UnitPrice,
			TotalPrice:   line.TotalPrice,
		})
	}
	return items
}

// SyncFromCart creates the active order, or replaces the items and subtotal of
// existing while keeping its id and creation time. Discount fields are reset
// to 0 on every sync.
func SyncFromCart(existing *Order, c cart.Cart, now time.Time, newID func() ID) Order {
	subtotal := c.Totals().Total
	if existing == nil {
		if newID == nil {
			newID = NewID
		}
		return Order{
			ID:        newID(),
			CreatedAt: now.UTC(),
			Items:     Snapshot(c),
			Subtotal:  subtotal,
		}
	}

	out := *existing
	out.Items = Snapshot(c)
	out.Subtotal = subtotal
	out.DiscountPercent = 0
	out.Discount = 0
	return out
}

// Reconcile returns the order that should be active after a cart mutation:
// nil when the cart is empty, otherwise the synced snapshot.
func Reconcile(existing *Order, c cart.Cart, now time.Time, newID func() ID) *Order {
	if c.IsEmpty() {
		return nil
	}
	order := SyncFromCart(existing, c, now, newID)
	return &order
}
