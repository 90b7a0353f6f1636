package preferences

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeRaw(t *testing.T, body string) RawRecord {
	t.Helper()
	var raw RawRecord
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return raw
}

func TestMigrateLegacyStrings(t *testing.T) {
	raw := decodeRaw(t, `{"size":"tall","milk":"oat","extras":["milk","bogus"],"qty":1}`)
	got := Migrate(raw)
	want := Record{Size: 2, Milk: 1, Extras: []int{2}, Qty: 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMigrateFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Record
	}{
		{
			name: "unknown size string",
			body: `{"size":"unknown-string","milk":2,"extras":[],"qty":3}`,
			want: Record{Size: 1, Milk: 2, Extras: []int{}, Qty: 3},
		},
		{
			name: "unknown extra dropped, sugar kept",
			body: `{"size":1,"milk":1,"extras":["unknown-string","sugar"],"qty":1}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{1}, Qty: 1},
		},
		{
			name: "mistyped fields",
			body: `{"size":true,"milk":{"id":2},"extras":"sugar","qty":"lots"}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{}, Qty: 1},
		},
		{
			name: "missing fields",
			body: `{}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{}, Qty: 1},
		},
		{
			name: "numeric ids pass through",
			body: `{"size":4,"milk":3,"extras":[2,1],"qty":5}`,
			want: Record{Size: 4, Milk: 3, Extras: []int{2, 1}, Qty: 5},
		},
		{
			name: "fractional ids are unusable",
			body: `{"size":2.5,"milk":1,"extras":[1.5,2, null],"qty":2}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{2}, Qty: 2},
		},
		{
			name: "duplicate extras collapse",
			body: `{"size":1,"milk":1,"extras":["sugar",1,2,"milk"],"qty":1}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{1, 2}, Qty: 1},
		},
		{
			name: "qty clamped",
			body: `{"size":1,"milk":1,"extras":[],"qty":250}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{}, Qty: 99},
		},
		{
			name: "qty below range",
			body: `{"size":1,"milk":1,"extras":[],"qty":-4}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{}, Qty: 1},
		},
		{
			name: "case sensitive legacy names",
			body: `{"size":"Tall","milk":"SOY","extras":["Sugar"],"qty":1}`,
			want: Record{Size: 1, Milk: 1, Extras: []int{}, Qty: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Migrate(decodeRaw(t, tc.body))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	bodies := []string{
		`{"size":"tall","milk":"oat","extras":["milk","bogus"],"qty":1}`,
		`{"size":"venti","milk":"almond","extras":["sugar","milk","sugar"],"qty":120}`,
		`{"size":7,"milk":-2,"extras":[9,"x"],"qty":0}`,
		`{"size":null}`,
	}
	for _, body := range bodies {
		once := Migrate(decodeRaw(t, body))
		twice := Migrate(ToRaw(once))
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("migration not idempotent for %s: %+v vs %+v", body, once, twice)
		}

		// round trip through storage encoding as well
		encoded, err := json.Marshal(once)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if again := Migrate(decodeRaw(t, string(encoded))); !reflect.DeepEqual(once, again) {
			t.Fatalf("stored record changed on reload: %+v vs %+v", once, again)
		}
	}
}

func TestOptionValueJSON(t *testing.T) {
	cases := map[string]OptionValue{
		`3`:       Resolved(3),
		`"tall"`:  Raw("tall"),
		`null`:    Invalid(),
		`[1]`:     Invalid(),
		`1e2`:     Resolved(100),
		`"":`:     Invalid(),
		`-1`:      Resolved(-1),
		`{"a":1}`: Invalid(),
	}
	for body, want := range cases {
		got := decodeOptionValue([]byte(body))
		if got != want {
			t.Fatalf("%s: expected %+v, got %+v", body, want, got)
		}
	}

	out, err := json.Marshal([]OptionValue{Resolved(2), Raw("oat"), Invalid()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `[2,"oat",null]` {
		t.Fatalf("unexpected encoding %s", out)
	}
}
