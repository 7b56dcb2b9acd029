package ddl

import (
	"reflect"
	"strings"
	"testing"

	"salesmart/pkg/records"
)

func bracket(s string) string { return "[" + s + "]" }

func TestColumnClauses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         TableDef
		want        []string
		errContains string
	}{
		{
			name:        "empty FQN",
			def:         TableDef{FQN: " ", Columns: []ColumnDef{{Name: "id", SQLType: "INT"}}},
			errContains: "table FQN must not be empty",
		},
		{
			name:        "no columns",
			def:         TableDef{FQN: "t"},
			errContains: "at least one column is required",
		},
		{
			name:        "empty column name",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{SQLType: "INT"}}},
			errContains: "column with empty name",
		},
		{
			name:        "missing type",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id"}}},
			errContains: "missing SQLType",
		},
		{
			name:        "duplicate column",
			def:         TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id", SQLType: "INT"}, {Name: "id", SQLType: "INT"}}},
			errContains: "duplicate column",
		},
		{
			name: "nullable and key",
			def: TableDef{FQN: "t", Columns: []ColumnDef{
				{Name: "id", SQLType: "INT", Nullable: true, PrimaryKey: true},
				{Name: "name", SQLType: "TEXT"},
				{Name: "ref", SQLType: "INT", Nullable: true},
			}},
			want: []string{"[id] INT NOT NULL", "[name] TEXT NOT NULL", "[ref] INT", "PRIMARY KEY ([id])"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ColumnClauses("test", tt.def, bracket)
			if tt.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("err = %v; want it to contain %q", err, tt.errContains)
				}
				if !strings.HasPrefix(err.Error(), "test ddl:") {
					t.Fatalf("err = %v; want dialect prefix", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestQuoteFQN(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"t":          "[t]",
		"dbo.t":      "[dbo].[t]",
		" .mart..t ": "[mart].[t]",
		"":           "",
	} {
		if got := QuoteFQN(in, bracket); got != want {
			t.Errorf("QuoteFQN(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestFromTable(t *testing.T) {
	t.Parallel()

	tbl := records.Table{
		Name: "dim_product",
		Columns: []records.Column{
			{Name: "product_id", Type: records.Integer, PrimaryKey: true},
			{Name: "product_name", Type: records.TextType},
			{Name: "supplier_id", Type: records.Integer, Nullable: true},
		},
	}
	got := FromTable(tbl, "mart", func(ct records.ColumnType) string { return strings.ToUpper(ct.String()) })
	want := TableDef{
		FQN: "mart.dim_product",
		Columns: []ColumnDef{
			{Name: "product_id", SQLType: "INTEGER", PrimaryKey: true},
			{Name: "product_name", SQLType: "TEXT"},
			{Name: "supplier_id", SQLType: "INTEGER", Nullable: true},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
	if q := Qualify("", "t"); q != "t" {
		t.Fatalf("Qualify without schema = %q", q)
	}
}
