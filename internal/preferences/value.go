package preferences

import (
	"bytes"
	"encoding/json"
	"math"
)

type valueKind uint8

const (
	kindInvalid valueKind = iota
	kindRaw
	kindResolved
)

// OptionValue is a persisted option selection before migration: either a
// legacy string name, a numeric catalog id, or something unusable.
type OptionValue struct {
	kind valueKind
	raw  string
	id   int
}

// Raw wraps a legacy string-encoded option.
func Raw(name string) OptionValue {
	return OptionValue{kind: kindRaw, raw: name}
}

// Resolved wraps a numeric catalog id.
func Resolved(id int) OptionValue {
	return OptionValue{kind: kindResolved, id: id}
}

// Invalid is a value that carries no usable selection.
func Invalid() OptionValue {
	return OptionValue{}
}

// ID returns the numeric id when the value is already resolved.
func (v OptionValue) ID() (int, bool) {
	return v.id, v.kind == kindResolved
}

// Name returns the legacy string when the value is raw.
func (v OptionValue) Name() (string, bool) {
	return v.raw, v.kind == kindRaw
}

// IsValid reports whether the value is raw or resolved.
func (v OptionValue) IsValid() bool {
	return v.kind != kindInvalid
}

// UnmarshalJSON never fails: integral numbers become Resolved, strings become
// Raw and everything else becomes Invalid.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	*v = decodeOptionValue(data)
	return nil
}

// MarshalJSON writes the value back in the encoding it was read with.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindResolved:
		return json.Marshal(v.id)
	case kindRaw:
		return json.Marshal(v.raw)
	default:
		return []byte("null"), nil
	}
}

func decodeOptionValue(data []byte) OptionValue {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Invalid()
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Invalid()
		}
		return Raw(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if n, ok := integral(data); ok {
			return Resolved(n)
		}
	}
	return Invalid()
}

// integral parses a JSON number that holds a whole value within int range.
func integral(data []byte) (int, bool) {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
