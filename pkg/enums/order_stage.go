package enums

import "fmt"

// OrderStage is the display lifecycle bucket an order item sits in.
type OrderStage string

const (
	OrderStageOrdered   OrderStage = "ordered"
	OrderStagePreparing OrderStage = "preparing"
	OrderStageFinishing OrderStage = "finishing"
	OrderStageServed    OrderStage = "served"
)

var validOrderStages = []OrderStage{
	OrderStageOrdered,
	OrderStagePreparing,
	OrderStageFinishing,
	OrderStageServed,
}

// String implements fmt.Stringer.
func (o OrderStage) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStage.
func (o OrderStage) IsValid() bool {
	for _, candidate := range validOrderStages {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStage converts raw input into an OrderStage.
func ParseOrderStage(value string) (OrderStage, error) {
	for _, candidate := range validOrderStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order stage %q", value)
}

// OrderStages returns every stage in display order.
func OrderStages() []OrderStage {
	out := make([]OrderStage, len(validOrderStages))
	copy(out, validOrderStages)
	return out
}
