package orders

import (
	"bytes"
	"encoding/json"
)

// Record is the persisted form of the orders namespace. Only the active order
// is meaningful; it is written as a one-element sequence so older readers that
// take the last element keep working.
type Record struct {
	Active *Order
}

// MarshalJSON writes [] when there is no active order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Active == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Order{*r.Active})
}

// UnmarshalJSON accepts a sequence (last element wins), a single order object,
// or null.
func (r *Record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Record{}
		return nil
	}

	if data[0] == '[' {
		var seq []json.RawMessage
		if err := json.Unmarshal(data, &seq); err != nil {
			return err
		}
		*r = Record{}
		if len(seq) == 0 {
			return nil
		}
		last := bytes.TrimSpace(seq[len(seq)-1])
		if bytes.Equal(last, []byte("null")) {
			return nil
		}
		var order Order
		if err := json.Unmarshal(last, &order); err != nil {
			return err
		}
		r.Active = &order
		return nil
	}

	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return err
	}
	*r = Record{Active: &order}
	return nil
}
