package builtin

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/pkg/records"
)

func TestCoerceTypes(t *testing.T) {
	t.Parallel()

	c := Coerce{Types: map[string]string{
		"quantity":     "int",
		"is_chiller":   "bool",
		"invoice_date": "date",
		"unit_price":   "decimal",
		"brand":        "string",
	}}
	in := []records.Record{{
		"quantity":     " 12 ",
		"is_chiller":   "true",
		"invoice_date": "2016-05-31 00:00:00",
		"unit_price":   []byte("13.50"),
		"brand":        " Northwind ",
		"untouched":    " x ",
	}}
	got := c.Apply(in)[0]

	if got["quantity"] != int64(12) {
		t.Errorf("quantity = %#v; want int64(12)", got["quantity"])
	}
	if got["is_chiller"] != true {
		t.Errorf("is_chiller = %#v; want true", got["is_chiller"])
	}
	wantDate := time.Date(2016, 5, 31, 0, 0, 0, 0, time.UTC)
	if d, ok := got["invoice_date"].(time.Time); !ok || !d.Equal(wantDate) {
		t.Errorf("invoice_date = %#v; want %v", got["invoice_date"], wantDate)
	}
	if d, ok := got["unit_price"].(decimal.Decimal); !ok || !d.Equal(decimal.RequireFromString("13.5")) {
		t.Errorf("unit_price = %#v; want 13.5", got["unit_price"])
	}
	if got["brand"] != "Northwind" {
		t.Errorf("brand = %#v", got["brand"])
	}
	if got["untouched"] != " x " {
		t.Errorf("untouched = %#v", got["untouched"])
	}
	if in[0]["quantity"] != " 12 " {
		t.Fatalf("input mutated")
	}
}

func TestCoerceLeavesBadValues(t *testing.T) {
	t.Parallel()

	got := Coerce{Types: map[string]string{"q": "int", "d": "date", "e": "int"}}.Apply([]records.Record{
		{"q": "twelve", "d": "31/05/2016", "e": "  "},
	})[0]
	if got["q"] != "twelve" || got["d"] != "31/05/2016" {
		t.Fatalf("bad values should pass through unchanged: %#v", got)
	}
	if got["e"] != nil {
		t.Fatalf("blank text should become nil, got %#v", got["e"])
	}
}
