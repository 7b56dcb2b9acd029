package source

import (
	"context"
	"testing"

	"salesmart/pkg/records"
)

func TestStaticCoercesText(t *testing.T) {
	t.Parallel()

	s := Static{
		Products: {{"product_id": " 5 ", "is_chiller": "true", "supplier_id": ""}},
	}
	got, err := s.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	want := records.Record{"product_id": int64(5), "is_chiller": true, "supplier_id": nil}
	for k, v := range want {
		if got[0][k] != v {
			t.Errorf("%s = %#v, want %#v", k, got[0][k], v)
		}
	}
	if lines, _ := s.InvoiceLines(context.Background()); len(lines) != 0 {
		t.Errorf("absent entity returned %d rows", len(lines))
	}
}

func TestParseEntity(t *testing.T) {
	t.Parallel()

	for _, e := range Entities {
		got, err := ParseEntity(string(e))
		if err != nil || got != e {
			t.Errorf("ParseEntity(%q) = %q, %v", e, got, err)
		}
	}
	if _, err := ParseEntity("orders"); err == nil {
		t.Error("expected error")
	}
}
