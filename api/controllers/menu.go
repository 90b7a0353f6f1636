package controllers

import (
	"math"
	"net/http"

	"github.com/angelmondragon/brewcart/api/responses"
	"github.com/angelmondragon/brewcart/api/validators"
	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/pricing"
	"github.com/angelmondragon/brewcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
	"github.com/angelmondragon/brewcart/pkg/logger"
)

const maxCategoryID = math.MaxInt32

type menuCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type menuProduct struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Category     int    `json:"category"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
}

type menuOption struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Multiplier string `json:"multiplier,omitempty"`
}

type menuOptions struct {
	Sizes  []menuOption `json:"sizes"`
	Milks  []menuOption `json:"milks"`
	Extras []menuOption `json:"extras"`
}

// MenuCategories lists the catalog categories.
func MenuCategories(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		out := make([]menuCategory, 0, len(cat.Categories))
		for _, c := range cat.Categories {
			out = append(out, menuCategory{ID: c.ID, Name: c.Name})
		}
		responses.WriteSuccess(w, out)
	}
}

// MenuProducts lists products in catalog order. The index is the id used by
// every product and cart route. An optional ?category= filters by category id.
func MenuProducts(cat *catalog.Catalog, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		category, err := validators.ParseQueryInt(r, "category", 0, 0, maxCategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]menuProduct, 0, len(cat.Products))
		for i, p := range cat.Products {
			if category != 0 && p.Category != category {
				continue
			}
			price := pricing.UnitPrice(p, nil)
			out = append(out, menuProduct{
				Index:        i,
				Name:         p.Name,
				Description:  p.Description,
				Image:        p.Image,
				Category:     p.Category,
				Price:        price,
				PriceDisplay: pricing.Format(currency, price),
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// MenuOptions lists sizes, milks and extras.
func MenuOptions(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, menuOptions{
			Sizes:  toMenuOptions(cat.Options.Sizes, true),
			Milks:  toMenuOptions(cat.Options.Milks, false),
			Extras: toMenuOptions(cat.Options.Extras, false),
		})
	}
}

func toMenuOptions(opts []catalog.Option, withMultiplier bool) []menuOption {
	out := make([]menuOption, 0, len(opts))
	for _, o := range opts {
		item := menuOption{ID: o.ID, Name: o.Name}
		if withMultiplier {
			item.Multiplier = o.Multiplier().String()
		}
		out = append(out, item)
	}
	return out
}
