// Package pricing turns catalog prices into whole currency units.
//
// All rounding is round-half-away-from-zero on exact decimal values, so
// 105 x 1.1 = 115.5 becomes 116 regardless of float representation.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice returns round(basePrice x size multiplier). A nil size prices at
// multiplier 1. The result is never negative.
func UnitPrice(product catalog.Product, size *catalog.Option) int64 {
	mult := decimal.NewFromInt(1)
	if size != nil {
		mult = size.Multiplier()
	}
	return wholeUnits(product.Price.Mul(mult))
}

// UnitPriceFor resolves sizeID against the catalog, falling back to the first
// size when it is unknown.
func UnitPriceFor(cat *catalog.Catalog, product catalog.Product, sizeID int) int64 {
	size, ok := cat.ResolveOrFirst(enums.OptionKindSize, sizeID)
	if !ok {
		return UnitPrice(product, nil)
	}
	return UnitPrice(product, &size)
}

// LineTotal is qty x unitPrice.
func LineTotal(unitPrice int64, qty int) int64 {
	return unitPrice * int64(qty)
}

// Discount returns round(subtotal x percent / 100).
func Discount(subtotal int64, percent decimal.Decimal) int64 {
	if percent.IsZero() {
		return 0
	}
	return wholeUnits(decimal.NewFromInt(subtotal).Mul(percent).Div(hundred))
}

// Format renders an amount in whole units with the currency symbol, e.g. ₹330.
func Format(currency enums.Currency, amount int64) string {
	return currency.Symbol() + decimal.NewFromInt(amount).StringFixed(0)
}

func wholeUnits(v decimal.Decimal) int64 {
	rounded := v.Round(0)
	if rounded.IsNegative() {
		return 0
	}
	return rounded.IntPart()
}
