package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/catalog/catalogtest"
	"github.com/angelmondragon/brewcart/internal/pricing"
	"github.com/angelmondragon/brewcart/pkg/enums"
)

func TestUnitPriceAppliesSizeMultiplier(t *testing.T) {
	cat := catalogtest.Catalog(t)
	cappuccino, _ := cat.Product(0)
	tall, _ := cat.Resolve(enums.OptionKindSize, catalogtest.SizeTall)

	if got := pricing.UnitPrice(cappuccino, &tall); got != 110 {
		t.Fatalf("expected 110, got %d", got)
	}
}

func TestUnitPriceRoundsHalfAwayFromZero(t *testing.T) {
	cat := catalogtest.Catalog(t)
	coldBrew, _ := cat.Product(2)

	cases := []struct {
		size int
		want int64
	}{
		{catalogtest.SizeShort, 105},
		{catalogtest.SizeTall, 116},   // 115.5
		{catalogtest.SizeGrande, 131}, // 131.25
		{catalogtest.SizeVenti, 158},  // 157.5
	}
	for _, tc := range cases {
		if got := pricing.UnitPriceFor(cat, coldBrew, tc.size); got != tc.want {
			t.Fatalf("size %d: expected %d, got %d", tc.size, tc.want, got)
		}
	}
}

func TestUnitPriceDefaults(t *testing.T) {
	cat := catalogtest.Catalog(t)
	latte, _ := cat.Product(1)

	if got := pricing.UnitPrice(latte, nil); got != 150 {
		t.Fatalf("expected multiplier 1 without a size, got %d", got)
	}
	if got := pricing.UnitPriceFor(cat, latte, 77); got != 150 {
		t.Fatalf("expected unknown size to price as the first size, got %d", got)
	}

	noMult := catalog.Option{ID: 9, Name: "Mystery"}
	if got := pricing.UnitPrice(latte, &noMult); got != 150 {
		t.Fatalf("expected missing mult to default to 1, got %d", got)
	}
}

func TestUnitPriceNeverNegative(t *testing.T) {
	product := catalog.Product{Name: "Odd", Price: decimal.NewFromInt(10)}
	neg := decimal.NewFromInt(-2)
	if got := pricing.UnitPrice(product, &catalog.Option{ID: 1, Mult: &neg}); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestDiscount(t *testing.T) {
	if got := pricing.Discount(330, decimal.Zero); got != 0 {
		t.Fatalf("expected zero discount, got %d", got)
	}
	if got := pricing.Discount(330, decimal.NewFromInt(10)); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	if got := pricing.Discount(225, decimal.NewFromInt(10)); got != 23 {
		t.Fatalf("expected 22.5 to round to 23, got %d", got)
	}
}

func TestFormat(t *testing.T) {
	cases := map[enums.Currency]string{
		enums.CurrencyINR: "₹330",
		enums.CurrencyUSD: "$330",
		enums.CurrencyEUR: "€330",
	}
	for currency, want := range cases {
		if got := pricing.Format(currency, 330); got != want {
			t.Fatalf("%s: expected %q, got %q", currency, want, got)
		}
	}
	if got := pricing.LineTotal(110, 3); got != 330 {
		t.Fatalf("expected line total 330, got %d", got)
	}
}
