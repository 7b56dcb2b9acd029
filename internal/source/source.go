// Package source extracts the raw entities the mart is built from.
package source

import (
	"context"
	"fmt"

	"salesmart/internal/transformer/builtin"
	"salesmart/pkg/records"
)

// Extractor returns the five raw entity sets. Each call is independent and
// may run concurrently with the others.
type Extractor interface {
	InvoiceLines(ctx context.Context) ([]records.Record, error)
	Customers(ctx context.Context) ([]records.Record, error)
	Employees(ctx context.Context) ([]records.Record, error)
	Products(ctx context.Context) ([]records.Record, error)
	Suppliers(ctx context.Context) ([]records.Record, error)
}

// Entity names one extract.
type Entity string

const (
	InvoiceLines Entity = "invoice_lines"
	Customers    Entity = "customers"
	Employees    Entity = "employees"
	Products     Entity = "products"
	Suppliers    Entity = "suppliers"
)

// Entities lists every entity in extraction order.
var Entities = []Entity{InvoiceLines, Customers, Employees, Products, Suppliers}

// ParseEntity maps a config key onto an Entity.
func ParseEntity(s string) (Entity, error) {
	for _, e := range Entities {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown entity %q", s)
}

// coercions type the columns drivers may hand back as text. SQL Server
// returns DECIMAL as []byte and SQLite has no date type.
var coercions = map[Entity]builtin.Coerce{
	InvoiceLines: {Types: map[string]string{
		"invoice_id":      "int",
		"invoice_line_id": "int",
		"customer_id":     "int",
		"employee_id":     "int",
		"product_id":      "int",
		"invoice_date":    "date",
		"quantity":        "decimal",
		"unit_price":      "decimal",
		"tax_amount":      "decimal",
		"extended_price":  "decimal",
		"line_profit":     "decimal",
	}},
	Customers: {Types: map[string]string{"customer_id": "int"}},
	Employees: {Types: map[string]string{"employee_id": "int"}},
	Products:  {Types: map[string]string{"product_id": "int", "supplier_id": "int", "is_chiller": "bool"}},
	Suppliers: {Types: map[string]string{"supplier_id": "int"}},
}

// Coerce applies the entity's column typing to raw.
func Coerce(e Entity, raw []records.Record) []records.Record {
	c, ok := coercions[e]
	if !ok {
		return raw
	}
	return c.Apply(raw)
}

// Static serves fixed record sets, for tests and dry runs. Missing entities
// extract as empty.
type Static map[Entity][]records.Record

var _ Extractor = Static(nil)

func (s Static) get(e Entity) ([]records.Record, error) {
	return Coerce(e, s[e]), nil
}

func (s Static) InvoiceLines(context.Context) ([]records.Record, error) { return s.get(InvoiceLines) }
func (s Static) Customers(context.Context) ([]records.Record, error)    { return s.get(Customers) }
func (s Static) Employees(context.Context) ([]records.Record, error)    { return s.get(Employees) }
func (s Static) Products(context.Context) ([]records.Record, error)     { return s.get(Products) }
func (s Static) Suppliers(context.Context) ([]records.Record, error)    { return s.get(Suppliers) }
