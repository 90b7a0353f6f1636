package enums

import "fmt"

// OptionKind names one of the option catalog collections.
type OptionKind string

const (
	OptionKindSize  OptionKind = "sizes"
	OptionKindMilk  OptionKind = "milks"
	OptionKindExtra OptionKind = "extras"
)

var validOptionKinds = []OptionKind{
	OptionKindSize,
	OptionKindMilk,
	OptionKindExtra,
}

// String implements fmt.Stringer.
func (o OptionKind) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OptionKind.
func (o OptionKind) IsValid() bool {
	for _, candidate := range validOptionKinds {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOptionKind converts raw input into an OptionKind.
func ParseOptionKind(value string) (OptionKind, error) {
	for _, candidate := range validOptionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option kind %q", value)
}
