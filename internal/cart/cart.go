package cart

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/preferences"
	"github.com/angelmondragon/brewcart/internal/pricing"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrProductNotFound = errors.New("product not found")
)

// Line is one priced entry. TotalPrice always equals Qty x UnitPrice.
type Line struct {
	Key          string `json:"key"`
	ProductIndex int    `json:"index"`
	Name         string `json:"name"`
	Options      string `json:"options"`
	UnitPrice    int64  `json:"unitPrice"`
	Qty          int    `json:"qty"`
	TotalPrice   int64  `json:"totalPrice"`
}

func (l Line) withQty(qty int) Line {
	l.Qty = preferences.ClampQty(qty)
	l.TotalPrice = pricing.LineTotal(l.UnitPrice, l.Qty)
	return l
}

// Cart holds lines in first-added order. No two lines share a key.
type Cart struct {
	Items []Line `json:"items"`
}

// MarshalJSON always writes items as an array.
func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Line{}
	}
	return json.Marshal(struct {
		Items []Line `json:"items"`
	}{Items: items})
}

// Totals sums quantities and stored line totals.
type Totals struct {
	Qty   int   `json:"qty"`
	Total int64 `json:"total"`
}

// BuildKey joins product index, size, milk and the ascending extras with "|".
// The key does not depend on the order extras were picked in.
func BuildKey(productIndex, size, milk int, extras []int) string {
	sorted := make([]int, 0, len(extras))
	seen := make(map[int]struct{}, len(extras))
	for _, id := range extras {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join([]string{
		strconv.Itoa(productIndex),
		strconv.Itoa(size),
		strconv.Itoa(milk),
		strings.Join(parts, ","),
	}, "|")
}

// NewLine prices rec for the product at productIndex.
func NewLine(cat *catalog.Catalog, productIndex int, rec preferences.Record) (Line, error) {
	product, ok := cat.Product(productIndex)
	if !ok {
		return Line{}, ErrProductNotFound
	}
	unit := pricing.UnitPriceFor(cat, product, rec.Size)
	line := Line{
		Key:          BuildKey(productIndex, rec.Size, rec.Milk, rec.Extras),
		ProductIndex: productIndex,
		Name:         product.Name,
		Options:      cat.DisplayName(rec.Selection()),
		UnitPrice:    unit,
	}
	return line.withQty(rec.Qty), nil
}

func (c Cart) clone() Cart {
	items := make([]Line, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

func (c Cart) index(key string) int {
	for i, line := range c.Items {
		if line.Key == key {
			return i
		}
	}
	return -1
}

// Find returns the line with key.
func (c Cart) Find(key string) (Line, bool) {
	if i := c.index(key); i >= 0 {
		return c.Items[i], true
	}
	return Line{}, false
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddOrMerge appends line, or adds its qty to the existing line with the same
// key. Merged quantities clamp to 99 and keep the existing unit price.
func AddOrMerge(c Cart, line Line) Cart {
	out := c.clone()
	if i := out.index(line.Key); i >= 0 {
		out.Items[i] = out.Items[i].withQty(out.Items[i].Qty + line.Qty)
		return out
	}
	out.Items = append(out.Items, line.withQty(line.Qty))
	return out
}

// AdjustQty moves a line's qty by delta, clamped to [1, 99].
func AdjustQty(c Cart, key string, delta int) (Cart, error) {
	out := c.clone()
	i := out.index(key)
	if i < 0 {
		return c, ErrLineNotFound
	}
	out.Items[i] = out.Items[i].withQty(preferences.ShiftQty(out.Items[i].Qty, delta))
	return out, nil
}

// Remove drops the line with key.
func Remove(c Cart, key string) (Cart, error) {
	i := c.index(key)
	if i < 0 {
		return c, ErrLineNotFound
	}
	items := make([]Line, 0, len(c.Items)-1)
	items = append(items, c.Items[:i]...)
	items = append(items, c.Items[i+1:]...)
	return Cart{Items: items}, nil
}

// Totals sums qty and the stored TotalPrice of each line.
func (c Cart) Totals() Totals {
	var t Totals
	for _, line := range c.Items {
		t.Qty += line.Qty
		t.Total += line.TotalPrice
	}
	return t
}
