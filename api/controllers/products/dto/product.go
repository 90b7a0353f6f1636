package productdto

// Preference is the remembered selection for one product.
type Preference struct {
	Size   int   `json:"size"`
	Milk   int   `json:"milk"`
	Extras []int `json:"extras"`
	Qty    int   `json:"qty"`
}

// ProductPage is a product with the session's preference applied.
type ProductPage struct {
	Index            int        `json:"index"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Image            string     `json:"image"`
	Category         int        `json:"category"`
	BasePrice        string     `json:"base_price"`
	Preference       Preference `json:"preference"`
	Options          string     `json:"options"`
	UnitPrice        int64      `json:"unit_price"`
	UnitPriceDisplay string     `json:"unit_price_display"`
	LineTotal        int64      `json:"line_total"`
	LineTotalDisplay string     `json:"line_total_display"`
	Currency         string     `json:"currency"`
}

// OptionRequest picks a size or milk by id.
type OptionRequest struct {
	ID int `json:"id" validate:"required"`
}

// QtyRequest steps the preferred quantity.
type QtyRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}
