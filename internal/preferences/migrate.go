package preferences

import (
	"encoding/json"
	"math"
)

var (
	legacySizes  = map[string]int{"short": 1, "tall": 2, "grande": 3, "venti": 4}
	legacyMilks  = map[string]int{"oat": 1, "soy": 2, "almond": 3}
	legacyExtras = map[string]int{"sugar": 1, "milk": 2}
)

// Migrate upgrades a stored record to numeric ids. Numeric values pass through
// untouched, legacy names map through the fixed tables, and anything else
// falls back: size and milk to 1, extras are dropped. It never fails and
// Migrate(ToRaw(Migrate(r))) equals Migrate(r).
func Migrate(raw RawRecord) Record {
	return Record{
		Size:   migrateSingle(raw.Size, legacySizes, DefaultSize),
		Milk:   migrateSingle(raw.Milk, legacyMilks, DefaultMilk),
		Extras: migrateExtras(raw.Extras),
		Qty:    migrateQty(raw.Qty),
	}
}

func migrateSingle(v OptionValue, table map[string]int, fallback int) int {
	if id, ok := v.ID(); ok {
		return id
	}
	if name, ok := v.Name(); ok {
		if id, ok := table[name]; ok {
			return id
		}
	}
	return fallback
}

func migrateExtras(values []OptionValue) []int {
	out := make([]int, 0, len(values))
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		id, ok := v.ID()
		if !ok {
			name, isRaw := v.Name()
			if !isRaw {
				continue
			}
			if id, ok = legacyExtras[name]; !ok {
				continue
			}
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func migrateQty(raw json.RawMessage) int {
	if len(raw) == 0 {
		return MinQty
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || math.IsNaN(f) {
		return MinQty
	}
	switch {
	case f >= MaxQty:
		return MaxQty
	case f <= MinQty:
		return MinQty
	}
	return ClampQty(int(math.Round(f)))
}
