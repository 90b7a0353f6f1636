// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/brewcart/internal/catalog"
)

const (
	SizeShort  = 1
	SizeTall   = 2
	SizeGrande = 3
	SizeVenti  = 4

	MilkOat    = 1
	MilkSoy    = 2
	MilkAlmond = 3

	ExtraSugar = 1
	ExtraMilk  = 2
)

// Catalog returns sizes short/tall/grande/venti (x1, x1.1, x1.25, x1.5), milks
// oat/soy/almond, extras sugar/milk and three products priced 100, 150 and 105.
func Catalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Category{{ID: 1, Name: "Hot Coffee"}, {ID: 2, Name: "Cold Coffee"}},
		[]catalog.Product{
			{Name: "Cappuccino", Price: decimal.NewFromInt(100), Category: 1, Description: "foam", Image: "1.png"},
			{Name: "Latte", Price: decimal.NewFromInt(150), Category: 1, Description: "milk", Image: "2.png"},
			{Name: "Cold Brew", Price: decimal.NewFromInt(105), Category: 2, Description: "ice", Image: "4.png"},
		},
		catalog.Options{
			Sizes: []catalog.Option{
				{ID: SizeShort, Name: "Short", Mult: mult("1")},
				{ID: SizeTall, Name: "Tall", Mult: mult("1.1")},
				{ID: SizeGrande, Name: "Grande", Mult: mult("1.25")},
				{ID: SizeVenti, Name: "Venti", Mult: mult("1.5")},
			},
			Milks: []catalog.Option{
				{ID: MilkOat, Name: "Oat"},
				{ID: MilkSoy, Name: "Soy"},
				{ID: MilkAlmond, Name: "Almond"},
			},
			Extras: []catalog.Option{
				{ID: ExtraSugar, Name: "Sugar"},
				{ID: ExtraMilk, Name: "Milk"},
			},
		},
	)
	if err != nil {
		t.Fatalf("build fixture catalog: %v", err)
	}
	return cat
}

func mult(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}
