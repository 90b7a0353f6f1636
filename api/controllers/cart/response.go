package cart

import (
	cartdto "github.com/angelmondragon/brewcart/api/controllers/cart/dto"
	"github.com/angelmondragon/brewcart/internal/cart"
	"github.com/angelmondragon/brewcart/internal/orders"
	"github.com/angelmondragon/brewcart/internal/pricing"
	"github.com/angelmondragon/brewcart/internal/session"
	"github.com/angelmondragon/brewcart/pkg/enums"
)

func newCart(view session.StateView, currency enums.Currency) cartdto.Cart {
	items := make([]cartdto.Line, 0, len(view.Cart.Items))
	for _, line := range view.Cart.Items {
		items = append(items, newLine(line, currency))
	}
	return cartdto.Cart{
		Items:        items,
		TotalQty:     view.Totals.Qty,
		Total:        view.Totals.Total,
		TotalDisplay: pricing.Format(currency, view.Totals.Total),
		Currency:     currency.String(),
		Order:        newOrder(view.Order, currency),
	}
}

func newLine(line cart.Line, currency enums.Currency) cartdto.Line {
	return cartdto.Line{
		Key:               line.Key,
		ProductIndex:      line.ProductIndex,
		Name:              line.Name,
		Options:           line.Options,
		Qty:               line.Qty,
		UnitPrice:         line.UnitPrice,
		TotalPrice:        line.TotalPrice,
		UnitPriceDisplay:  pricing.Format(currency, line.UnitPrice),
		TotalPriceDisplay: pricing.Format(currency, line.TotalPrice),
	}
}

func newOrderItems(items []orders.Item, currency enums.Currency) []cartdto.OrderItem {
	out := make([]cartdto.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, cartdto.OrderItem{
			ProductIndex:      item.ProductIndex,
			Name:              item.Name,
			Options:           item.Options,
			Qty:               item.Qty,
			UnitPrice:         item.UnitPrice,
			TotalPrice:        item.TotalPrice,
			TotalPriceDisplay: pricing.Format(currency, item.TotalPrice),
		})
	}
	return out
}

func newOrder(order *orders.Order, currency enums.Currency) *cartdto.Order {
	if order == nil {
		return nil
	}
	return &cartdto.Order{
		ID:              order.ID.String(),
		CreatedAt:       order.CreatedAt,
		Items:           newOrderItems(order.Items, currency),
		Subtotal:        order.Subtotal,
		DiscountPercent: order.DiscountPercent,
		Discount:        order.Discount,
		Total:           order.Total(),
		SubtotalDisplay: pricing.Format(currency, order.Subtotal),
		DiscountDisplay: pricing.Format(currency, order.Discount),
		TotalDisplay:    pricing.Format(currency, order.Total()),
	}
}

func newOrderStatus(view session.OrderView, currency enums.Currency) cartdto.OrderStatus {
	stages := make([]cartdto.Stage, 0, len(view.Board.Buckets))
	for _, bucket := range view.Board.Buckets {
		stages = append(stages, cartdto.Stage{
			Stage: bucket.Stage.String(),
			Items: newOrderItems(bucket.Items, currency),
		})
	}
	return cartdto.OrderStatus{
		Order:    newOrder(view.Order, currency),
		Stages:   stages,
		Currency: currency.String(),
	}
}
