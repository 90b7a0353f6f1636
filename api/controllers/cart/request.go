package cart

import (
	cartdto "github.com/angelmondragon/brewcart/api/controllers/cart/dto"
	"github.com/angelmondragon/brewcart/internal/session"
)

func toSelection(payload cartdto.AddItemRequest) session.Selection {
	sel := session.Selection{
		Size:   payload.Size,
		Milk:   payload.Milk,
		Extras: payload.Extras,
		Qty:    payload.Qty,
	}
	if payload.ProductIndex != nil {
		sel.ProductIndex = *payload.ProductIndex
	}
	return sel
}
