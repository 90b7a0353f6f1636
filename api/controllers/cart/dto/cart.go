package cartdto

import "time"

// Line is one cart entry with display-formatted prices.
type Line struct {
	Key               string `json:"key"`
	ProductIndex      int    `json:"product_index"`
	Name              string `json:"name"`
	Options           string `json:"options"`
	Qty               int    `json:"qty"`
	UnitPrice         int64  `json:"unit_price"`
	TotalPrice        int64  `json:"total_price"`
	UnitPriceDisplay  string `json:"unit_price_display"`
	TotalPriceDisplay string `json:"total_price_display"`
}

// Cart is the session cart together with its active order.
type Cart struct {
	Items        []Line `json:"items"`
	TotalQty     int    `json:"total_qty"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
	Currency     string `json:"currency"`
	Order        *Order `json:"order"`
}

// OrderItem is a line captured in the order snapshot.
type OrderItem struct {
	ProductIndex      int    `json:"product_index"`
	Name              string `json:"name"`
	Options           string `json:"options"`
	Qty               int    `json:"qty"`
	UnitPrice         int64  `json:"unit_price"`
	TotalPrice        int64  `json:"total_price"`
	TotalPriceDisplay string `json:"total_price_display"`
}

// Order is the active order with formatted totals.
type Order struct {
	ID              string      `json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	DiscountPercent float64     `json:"discount_percent"`
	Discount        int64       `json:"discount"`
	Total           int64       `json:"total"`
	SubtotalDisplay string      `json:"subtotal_display"`
	DiscountDisplay string      `json:"discount_display"`
	TotalDisplay    string      `json:"total_display"`
}

// Stage is one column of the order stage board.
type Stage struct {
	Stage string      `json:"stage"`
	Items []OrderItem `json:"items"`
}

// OrderStatus is the active order (null when there is none) and its board.
type OrderStatus struct {
	Order    *Order  `json:"order"`
	Stages   []Stage `json:"stages"`
	Currency string  `json:"currency"`
}
