package preferences

import (
	"encoding/json"
	"strconv"
)

// Book maps a product index, rendered as a decimal string, to its preference.
type Book map[string]Record

// UnmarshalJSON migrates every entry. Entries that are not JSON objects are
// skipped so one bad product cannot reset the others.
func (b *Book) UnmarshalJSON(data []byte) error {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out := make(Book, len(entries))
	for key, entry := range entries {
		var raw RawRecord
		if err := json.Unmarshal(entry, &raw); err != nil {
			continue
		}
		out[key] = Migrate(raw)
	}
	*b = out
	return nil
}

// Key renders a product index the way the book is keyed.
func Key(productIndex int) string {
	return strconv.Itoa(productIndex)
}

// Get returns the stored record for the product.
func (b Book) Get(productIndex int) (Record, bool) {
	rec, ok := b[Key(productIndex)]
	return rec, ok
}

// With returns a copy of the book holding rec for the product.
func (b Book) With(productIndex int, rec Record) Book {
	out := make(Book, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	out[Key(productIndex)] = rec.clone()
	return out
}
