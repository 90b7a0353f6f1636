package products

import (
	productdto "github.com/angelmondragon/brewcart/api/controllers/products/dto"
	"github.com/angelmondragon/brewcart/internal/pricing"
	"github.com/angelmondragon/brewcart/internal/session"
	"github.com/angelmondragon/brewcart/pkg/enums"
)

func newProductPage(view session.ProductView, currency enums.Currency) productdto.ProductPage {
	extras := view.Preference.Extras
	if extras == nil {
		extras = []int{}
	}
	lineTotal := pricing.LineTotal(view.UnitPrice, view.Preference.Qty)
	return productdto.ProductPage{
		Index:       view.Index,
		Name:        view.Product.Name,
		Description: view.Product.Description,
		Image:       view.Product.Image,
		Category:    view.Product.Category,
		BasePrice:   view.Product.Price.String(),
		Preference: productdto.Preference{
			Size:   view.Preference.Size,
			Milk:   view.Preference.Milk,
			Extras: extras,
			Qty:    view.Preference.Qty,
		},
		Options:          view.Options,
		UnitPrice:        view.UnitPrice,
		UnitPriceDisplay: pricing.Format(currency, view.UnitPrice),
		LineTotal:        lineTotal,
		LineTotalDisplay: pricing.Format(currency, lineTotal),
		Currency:         currency.String(),
	}
}
