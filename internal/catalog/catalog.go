package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/brewcart/pkg/enums"
)

// Option is one entry of the sizes, milks or extras collections.
type Option struct {
	ID   int              `json:"id"`
	Name string           `json:"name"`
	Mult *decimal.Decimal `json:"mult,omitempty"`
}

// Multiplier returns the size multiplier, defaulting to 1 when absent.
func (o Option) Multiplier() decimal.Decimal {
	if o.Mult == nil {
		return decimal.NewFromInt(1)
	}
	return *o.Mult
}

// Options mirrors options.json.
type Options struct {
	Sizes  []Option `json:"sizes"`
	Milks  []Option `json:"milks"`
	Extras []Option `json:"extras"`
}

// Category mirrors one entry of categories.json.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product mirrors one entry of products.json. Products are addressed by position.
type Product struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    int             `json:"category"`
	Description string          `json:"desc"`
	Image       string          `json:"image"`
}

// Selection is a product's chosen size, milk and extras as catalog ids.
type Selection struct {
	Size   int
	Milk   int
	Extras []int
}

// Catalog is the read-only reference table shared by every session.
type Catalog struct {
	Categories []Category
	Products   []Product
	Options    Options
}

// New validates the collections and returns a catalog. Sizes and milks must be
// non-empty so FirstOption always has a default to offer. Every problem found
// is reported, not only the first.
func New(categories []Category, products []Product, options Options) (*Catalog, error) {
	var errs []error
	if len(options.Sizes) == 0 {
		errs = append(errs, fmt.Errorf("catalog has no sizes"))
	}
	if len(options.Milks) == 0 {
		errs = append(errs, fmt.Errorf("catalog has no milks"))
	}
	errs = append(errs,
		uniqueIDs(enums.OptionKindSize, options.Sizes),
		uniqueIDs(enums.OptionKindMilk, options.Milks),
		uniqueIDs(enums.OptionKindExtra, options.Extras),
	)
	for i, p := range products {
		if p.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("product %d (%s) has a negative price", i, p.Name))
		}
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return &Catalog{Categories: categories, Products: products, Options: options}, nil
}

func uniqueIDs(kind enums.OptionKind, opts []Option) error {
	seen := make(map[int]struct{}, len(opts))
	for _, opt := range opts {
		if _, ok := seen[opt.ID]; ok {
			return fmt.Errorf("duplicate %s id %d", kind, opt.ID)
		}
		seen[opt.ID] = struct{}{}
	}
	return nil
}

func (c *Catalog) collection(kind enums.OptionKind) []Option {
	switch kind {
	case enums.OptionKindSize:
		return c.Options.Sizes
	case enums.OptionKindMilk:
		return c.Options.Milks
	case enums.OptionKindExtra:
		return c.Options.Extras
	default:
		return nil
	}
}

// Resolve looks up id in the named collection. The boolean is false when the
// id is not part of the catalog.
func (c *Catalog) Resolve(kind enums.OptionKind, id int) (Option, bool) {
	for _, opt := range c.collection(kind) {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// FirstOption returns the first entry of the collection.
func (c *Catalog) FirstOption(kind enums.OptionKind) (Option, bool) {
	opts := c.collection(kind)
	if len(opts) == 0 {
		return Option{}, false
	}
	return opts[0], true
}

// ResolveOrFirst resolves id and falls back to the first catalog entry.
func (c *Catalog) ResolveOrFirst(kind enums.OptionKind, id int) (Option, bool) {
	if opt, ok := c.Resolve(kind, id); ok {
		return opt, true
	}
	return c.FirstOption(kind)
}

// Product returns the product at index.
func (c *Catalog) Product(index int) (Product, bool) {
	if index < 0 || index >= len(c.Products) {
		return Product{}, false
	}
	return c.Products[index], true
}

// DisplayName renders "size; milk; extra1, extra2". The extras segment is
// omitted when nothing resolves. Unknown size or milk ids print as the raw id.
func (c *Catalog) DisplayName(sel Selection) string {
	sizeName := strconv.Itoa(sel.Size)
	if opt, ok := c.Resolve(enums.OptionKindSize, sel.Size); ok {
		sizeName = opt.Name
	}
	milkName := strconv.Itoa(sel.Milk)
	if opt, ok := c.Resolve(enums.OptionKindMilk, sel.Milk); ok {
		milkName = opt.Name
	}

	extras := make([]string, 0, len(sel.Extras))
	for _, id := range sel.Extras {
		if opt, ok := c.Resolve(enums.OptionKindExtra, id); ok {
			extras = append(extras, opt.Name)
		}
	}

	out := sizeName + "; " + milkName
	if len(extras) > 0 {
		out += "; " + strings.Join(extras, ", ")
	}
	return out
}
