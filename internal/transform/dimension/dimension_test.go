package dimension

import (
	"reflect"
	"testing"

	"salesmart/internal/locale"
	"salesmart/pkg/records"
)

var es = locale.MustFor("es")

func TestBuildKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	raw := []records.Record{
		{"employee_id": int32(7), "full_name": "Kayla Woodcock", "preferred_name": "Kayla"},
		{"employee_id": int64(7), "full_name": "K. Woodcock", "preferred_name": "KW"},
		{"employee_id": "8", "full_name": "Hudson Onslow", "preferred_name": nil},
	}
	tbl, err := Build(Employee, raw, es)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := [][]any{
		{int64(7), "Kayla Woodcock", "Kayla"},
		{int64(8), "Hudson Onslow", "Desconocido"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %#v\nwant %#v", tbl.Rows, want)
	}
	if raw[2]["preferred_name"] != nil {
		t.Fatalf("input mutated: %#v", raw[2])
	}
}

func TestBuildDropsMissingKeys(t *testing.T) {
	t.Parallel()

	raw := []records.Record{
		{"customer_id": nil, "customer_name": "ghost"},
		{"customer_name": "no key column"},
		{"customer_id": "  ", "customer_name": "blank"},
		{"customer_id": 1, "customer_name": "Tailspin Toys"},
	}
	tbl, err := Build(Customer, raw, es)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tbl.Len() != 1 || tbl.Rows[0][0] != int64(1) {
		t.Fatalf("rows = %#v", tbl.Rows)
	}
}

// Natural keys are unique and present; declared text columns are never
// missing after a build.
func TestBuildUniquenessAndTotality(t *testing.T) {
	t.Parallel()

	var raw []records.Record
	for i := 0; i < 50; i++ {
		r := records.Record{"supplier_id": i % 13}
		if i%3 == 0 {
			r["supplier_name"] = "Supplier"
		}
		if i%4 == 0 {
			r["city"] = "  "
		}
		raw = append(raw, r)
	}
	raw = append(raw, records.Record{"supplier_name": "keyless"})

	tbl, err := Build(Supplier, raw, es)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tbl.Len() != 13 {
		t.Fatalf("rows = %d; want 13", tbl.Len())
	}
	seen := map[any]bool{}
	for _, row := range tbl.Rows {
		if row[0] == nil || seen[row[0]] {
			t.Fatalf("bad key %v", row[0])
		}
		seen[row[0]] = true
		for j, v := range row[1:] {
			s, ok := v.(string)
			if !ok || s == "" {
				t.Fatalf("column %s missing in %#v", tbl.Columns[j+1].Name, row)
			}
		}
	}
}

func TestBuildProductFlagsAndRefs(t *testing.T) {
	t.Parallel()

	raw := []records.Record{
		{"product_id": 1, "product_name": "USB rocket launcher", "is_chiller": false, "supplier_id": int32(12)},
		{"product_id": 2, "product_name": "Chocolate frogs", "is_chiller": true, "supplier_id": "4"},
		{"product_id": 3, "product_name": "Mystery", "is_chiller": nil},
		{"product_id": 4, "product_name": "Odd flag", "is_chiller": "maybe", "supplier_id": ""},
	}
	tbl, err := Build(Product, raw, es)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	chiller := tbl.Values("is_chiller")
	if want := []any{"No", "Sí", "Desconocido", "Desconocido"}; !reflect.DeepEqual(chiller, want) {
		t.Errorf("is_chiller = %#v; want %#v", chiller, want)
	}
	suppliers := tbl.Values("supplier_id")
	if want := []any{int64(12), int64(4), nil, nil}; !reflect.DeepEqual(suppliers, want) {
		t.Errorf("supplier_id = %#v; want %#v", suppliers, want)
	}
	if got := tbl.Values("brand"); got[0] != "Desconocido" {
		t.Errorf("brand = %#v", got)
	}
}

func TestBuildEnglishSentinel(t *testing.T) {
	t.Parallel()

	tbl, err := Build(Employee, []records.Record{{"employee_id": 2}}, locale.MustFor("en"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := []any{int64(2), "Unknown", "Unknown"}; !reflect.DeepEqual(tbl.Rows[0], want) {
		t.Fatalf("row = %#v", tbl.Rows[0])
	}
}

func TestSpecsValidate(t *testing.T) {
	t.Parallel()

	for _, s := range All() {
		if err := s.Validate(); err != nil {
			t.Errorf("%s: %v", s.Table, err)
		}
		if got := len(s.Schema()); got != len(s.Columns) {
			t.Errorf("%s: schema has %d columns", s.Table, got)
		}
	}

	bad := []Spec{
		{Key: "id", Columns: []string{"id"}},
		{Table: "t", Columns: []string{"id"}},
		{Table: "t", Key: "id", Columns: []string{"name", "id"}, Text: []string{"name"}},
		{Table: "t", Key: "id", Columns: []string{"id", "extra"}},
		{Table: "t", Key: "id", Text: []string{"a"}, Flags: []string{"a"}, Columns: []string{"id", "a"}},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
