package preferences

import (
	"encoding/json"

	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/pkg/enums"
)

const (
	DefaultSize = 1
	DefaultMilk = 1
	MinQty      = 1
	MaxQty      = 99
)

// Record is a product's last-used selection with numeric catalog ids.
// Extras behaves as a set that remembers insertion order.
type Record struct {
	Size   int   `json:"size"`
	Milk   int   `json:"milk"`
	Extras []int `json:"extras"`
	Qty    int   `json:"qty"`
}

// RawRecord is a persisted preference as found in storage, before migration.
type RawRecord struct {
	Size   OptionValue
	Milk   OptionValue
	Extras []OptionValue
	Qty    json.RawMessage
}

// UnmarshalJSON accepts any object shape. Missing or mistyped fields decode to
// values the migrator falls back on.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Size   json.RawMessage `json:"size"`
		Milk   json.RawMessage `json:"milk"`
		Extras json.RawMessage `json:"extras"`
		Qty    json.RawMessage `json:"qty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	out := RawRecord{
		Size: decodeOptionValue(aux.Size),
		Milk: decodeOptionValue(aux.Milk),
		Qty:  aux.Qty,
	}
	var extras []json.RawMessage
	if err := json.Unmarshal(aux.Extras, &extras); err == nil {
		out.Extras = make([]OptionValue, 0, len(extras))
		for _, raw := range extras {
			out.Extras = append(out.Extras, decodeOptionValue(raw))
		}
	}
	*r = out
	return nil
}

// Default is the selection a product starts with on first view.
func Default() Record {
	return Record{Size: DefaultSize, Milk: DefaultMilk, Extras: []int{}, Qty: MinQty}
}

// ToRaw lifts a record back to the storage boundary type.
func ToRaw(r Record) RawRecord {
	extras := make([]OptionValue, 0, len(r.Extras))
	for _, id := range r.Extras {
		extras = append(extras, Resolved(id))
	}
	qty, _ := json.Marshal(r.Qty)
	return RawRecord{
		Size:   Resolved(r.Size),
		Milk:   Resolved(r.Milk),
		Extras: extras,
		Qty:    qty,
	}
}

// Selection returns the option part of the record.
func (r Record) Selection() catalog.Selection {
	return catalog.Selection{Size: r.Size, Milk: r.Milk, Extras: append([]int(nil), r.Extras...)}
}

// HasExtra reports whether id is selected.
func (r Record) HasExtra(id int) bool {
	for _, existing := range r.Extras {
		if existing == id {
			return true
		}
	}
	return false
}

// WithSize returns a copy with the size replaced.
func (r Record) WithSize(id int) Record {
	out := r.clone()
	out.Size = id
	return out
}

// WithMilk returns a copy with the milk replaced.
func (r Record) WithMilk(id int) Record {
	out := r.clone()
	out.Milk = id
	return out
}

// ToggleExtra adds id when absent and removes it when present.
func (r Record) ToggleExtra(id int) Record {
	out := r.clone()
	if !r.HasExtra(id) {
		out.Extras = append(out.Extras, id)
		return out
	}
	kept := out.Extras[:0]
	for _, existing := range out.Extras {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	out.Extras = kept
	return out
}

// StepQty moves qty by delta, clamped to [MinQty, MaxQty].
func (r Record) StepQty(delta int) Record {
	out := r.clone()
	out.Qty = ShiftQty(r.Qty, delta)
	return out
}

func (r Record) clone() Record {
	out := r
	out.Extras = make([]int, len(r.Extras))
	copy(out.Extras, r.Extras)
	return out
}

// ClampQty bounds a quantity to [MinQty, MaxQty].
func ClampQty(qty int) int {
	if qty < MinQty {
		return MinQty
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}

// ShiftQty adds delta to qty and clamps the result. delta is bounded to
// ±MaxQty first so the sum cannot overflow.
func ShiftQty(qty, delta int) int {
	switch {
	case delta > MaxQty:
		delta = MaxQty
	case delta < -MaxQty:
		delta = -MaxQty
	}
	return ClampQty(ClampQty(qty) + delta)
}

// Normalize makes every id resolve against cat: unknown size or milk becomes
// the first catalog entry and unknown extras are dropped.
func Normalize(r Record, cat *catalog.Catalog) Record {
	out := r.clone()
	if _, ok := cat.Resolve(enums.OptionKindSize, out.Size); !ok {
		if first, ok := cat.FirstOption(enums.OptionKindSize); ok {
			out.Size = first.ID
		}
	}
	if _, ok := cat.Resolve(enums.OptionKindMilk, out.Milk); !ok {
		if first, ok := cat.FirstOption(enums.OptionKindMilk); ok {
			out.Milk = first.ID
		}
	}
	extras := make([]int, 0, len(out.Extras))
	for _, id := range out.Extras {
		if _, ok := cat.Resolve(enums.OptionKindExtra, id); ok {
			extras = append(extras, id)
		}
	}
	out.Extras = extras
	out.Qty = ClampQty(out.Qty)
	return out
}
