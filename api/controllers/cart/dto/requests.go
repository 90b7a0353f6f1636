package cartdto

// AddItemRequest adds an explicit selection. Qty defaults to 1 and is clamped
// to the allowed range.
type AddItemRequest struct {
	ProductIndex *int  `json:"product_index" validate:"required,gte=0"`
	Size         int   `json:"size" validate:"required"`
	Milk         int   `json:"milk" validate:"required"`
	Extras       []int `json:"extras,omitempty" validate:"omitempty,dive,gte=0"`
	Qty          int   `json:"qty,omitempty" validate:"gte=0"`
}

// QtyRequest moves a line quantity.
type QtyRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}
