// Package fact aggregates invoice lines into the sales fact table.
//
// Lines are resolved against the built dimensions (supplier through the
// product dimension, date through the calendar), filtered for referential
// integrity, grouped on the five-part grain and summed. Lines that fail a
// check are not repaired: they are returned as rejects with the reason of the
// first failing check, in this order: customer, product, employee, supplier,
// date, measures.
package fact

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"salesmart/internal/transform/calendar"
	"salesmart/internal/transform/dimension"
	"salesmart/pkg/records"
)

// TableName is the persisted name of the fact table.
const TableName = "fact_sales"

// Raw invoice-line columns.
const (
	LineInvoiceID     = "invoice_id"
	LineID            = "invoice_line_id"
	LineCustomerID    = "customer_id"
	LineEmployeeID    = "employee_id"
	LineProductID     = "product_id"
	LineDate          = "invoice_date"
	LineQuantity      = "quantity"
	LineUnitPrice     = "unit_price"
	LineTaxAmount     = "tax_amount"
	LineExtendedPrice = "extended_price"
	LineProfit        = "line_profit"
)

// Columns is the fixed output schema.
var Columns = []records.Column{
	{Name: "sale_id", Type: records.Integer, PrimaryKey: true},
	{Name: "date_id", Type: records.Integer},
	{Name: "product_id", Type: records.Integer},
	{Name: "customer_id", Type: records.Integer},
	{Name: "employee_id", Type: records.Integer},
	{Name: "supplier_id", Type: records.Integer},
	{Name: "quantity", Type: records.Decimal},
	{Name: "gross_amount", Type: records.Decimal},
	{Name: "tax_amount", Type: records.Decimal},
	{Name: "net_amount", Type: records.Decimal},
	{Name: "profit", Type: records.Decimal},
}

// Reason says why a line was left out of the fact.
type Reason string

const (
	UnknownCustomer Reason = "unknown_customer"
	UnknownProduct  Reason = "unknown_product"
	UnknownEmployee Reason = "unknown_employee"
	UnknownSupplier Reason = "unknown_supplier"
	MissingDate     Reason = "missing_date"
	UnknownDate     Reason = "unknown_date"
	InvalidMeasure  Reason = "invalid_measure"
)

// Reasons lists every reason in check order.
var Reasons = []Reason{
	UnknownCustomer, UnknownProduct, UnknownEmployee, UnknownSupplier,
	MissingDate, UnknownDate, InvalidMeasure,
}

// Reject identifies one excluded line. InvoiceID and LineID are the raw
// values and may be nil when the extract does not carry them.
type Reject struct {
	InvoiceID any
	LineID    any
	Reason    Reason
	Detail    string
}

// Dimensions are the built tables the fact is checked against.
type Dimensions struct {
	Calendar  *calendar.Calendar
	Customers records.Table
	Products  records.Table
	Employees records.Table
	Suppliers records.Table
}

// Result is the aggregated fact plus the lines that did not make it in.
type Result struct {
	Table    records.Table
	Rejects  []Reject
	Accepted int
}

// RejectCounts tallies rejects per reason.
func (r Result) RejectCounts() map[Reason]int {
	out := make(map[Reason]int, len(Reasons))
	for _, rj := range r.Rejects {
		out[rj.Reason]++
	}
	return out
}

// Measures are the summed values of one grain cell. Every measure is the
// plain sum of one raw line column; nothing is derived.
type Measures struct {
	Quantity decimal.Decimal
	Gross    decimal.Decimal
	Tax      decimal.Decimal
	Net      decimal.Decimal
	Profit   decimal.Decimal
}

func (m Measures) add(o Measures) Measures {
	return Measures{
		Quantity: m.Quantity.Add(o.Quantity),
		Gross:    m.Gross.Add(o.Gross),
		Tax:      m.Tax.Add(o.Tax),
		Net:      m.Net.Add(o.Net),
		Profit:   m.Profit.Add(o.Profit),
	}
}

// grain is the five-part group key. Components are canonical keys.
type grain struct {
	date     int64
	product  any
	customer any
	employee any
	supplier any
}

// Build resolves, filters and aggregates lines. Neither lines nor dims are
// modified.
func Build(lines []records.Record, dims Dimensions) (Result, error) {
	if dims.Calendar == nil {
		return Result{}, fmt.Errorf("fact: calendar is required")
	}
	customers := dims.Customers.KeySet(dimension.Customer.Key)
	employees := dims.Employees.KeySet(dimension.Employee.Key)
	suppliers := dims.Suppliers.KeySet(dimension.Supplier.Key)
	productSupplier, err := supplierOfProduct(dims.Products)
	if err != nil {
		return Result{}, err
	}

	var (
		res    Result
		sums   = make(map[grain]Measures)
		grains []grain
	)
	for _, ln := range lines {
		g, m, reason, detail := resolve(ln, dims.Calendar, customers, employees, suppliers, productSupplier)
		if reason != "" {
			res.Rejects = append(res.Rejects, Reject{
				InvoiceID: ln[LineInvoiceID],
				LineID:    ln[LineID],
				Reason:    reason,
				Detail:    detail,
			})
			continue
		}
		res.Accepted++
		prev, seen := sums[g]
		if !seen {
			grains = append(grains, g)
		}
		sums[g] = prev.add(m)
	}

	sort.Slice(grains, func(i, j int) bool { return lessGrain(grains[i], grains[j]) })

	rows := make([][]any, len(grains))
	for i, g := range grains {
		m := sums[g]
		rows[i] = []any{
			int64(i + 1),
			g.date,
			g.product,
			g.customer,
			g.employee,
			g.supplier,
			m.Quantity,
			m.Gross,
			m.Tax,
			m.Net,
			m.Profit,
		}
	}
	res.Table = records.Table{Name: TableName, Columns: Columns, Rows: rows}
	return res, nil
}

// supplierOfProduct maps product key to the supplier key carried by the
// product dimension. Products without a supplier map to nil.
func supplierOfProduct(products records.Table) (map[any]any, error) {
	pi := products.Index(dimension.Product.Key)
	si := products.Index("supplier_id")
	if pi < 0 || si < 0 {
		return nil, fmt.Errorf("fact: product table %q lacks %s or supplier_id", products.Name, dimension.Product.Key)
	}
	out := make(map[any]any, len(products.Rows))
	for _, row := range products.Rows {
		pk, ok := records.Key(row[pi])
		if !ok {
			continue
		}
		sk, _ := records.Key(row[si])
		out[pk] = sk
	}
	return out, nil
}

func resolve(
	ln records.Record,
	cal *calendar.Calendar,
	customers, employees, suppliers map[any]struct{},
	productSupplier map[any]any,
) (grain, Measures, Reason, string) {
	var g grain

	customer, ok := records.Key(ln[LineCustomerID])
	if !ok || !member(customers, customer) {
		return g, Measures{}, UnknownCustomer, fmt.Sprint(ln[LineCustomerID])
	}
	product, ok := records.Key(ln[LineProductID])
	if !ok {
		return g, Measures{}, UnknownProduct, "<nil>"
	}
	supplier, known := productSupplier[product]
	if !known {
		return g, Measures{}, UnknownProduct, fmt.Sprint(product)
	}
	employee, ok := records.Key(ln[LineEmployeeID])
	if !ok || !member(employees, employee) {
		return g, Measures{}, UnknownEmployee, fmt.Sprint(ln[LineEmployeeID])
	}
	if supplier == nil || !member(suppliers, supplier) {
		return g, Measures{}, UnknownSupplier, fmt.Sprint(supplier)
	}
	day, ok := calendar.DateOf(ln[LineDate])
	if !ok {
		return g, Measures{}, MissingDate, fmt.Sprint(ln[LineDate])
	}
	dateID, ok := cal.Lookup(day)
	if !ok {
		return g, Measures{}, UnknownDate, day.String()
	}
	m, err := measures(ln)
	if err != nil {
		return g, Measures{}, InvalidMeasure, err.Error()
	}

	g = grain{date: dateID, product: product, customer: customer, employee: employee, supplier: supplier}
	return g, m, "", ""
}

func member(set map[any]struct{}, k any) bool {
	_, ok := set[k]
	return ok
}

// measures reads one line's values. gross is the extended price and net is
// the unit price.
func measures(ln records.Record) (Measures, error) {
	qty, err := Decimal(ln[LineQuantity])
	if err != nil {
		return Measures{}, fmt.Errorf("%s: %w", LineQuantity, err)
	}
	unit, err := Decimal(ln[LineUnitPrice])
	if err != nil {
		return Measures{}, fmt.Errorf("%s: %w", LineUnitPrice, err)
	}
	tax, err := Decimal(ln[LineTaxAmount])
	if err != nil {
		return Measures{}, fmt.Errorf("%s: %w", LineTaxAmount, err)
	}
	ext, err := Decimal(ln[LineExtendedPrice])
	if err != nil {
		return Measures{}, fmt.Errorf("%s: %w", LineExtendedPrice, err)
	}
	profit, err := Decimal(ln[LineProfit])
	if err != nil {
		return Measures{}, fmt.Errorf("%s: %w", LineProfit, err)
	}
	return Measures{
		Quantity: qty,
		Gross:    ext,
		Tax:      tax,
		Net:      unit,
		Profit:   profit,
	}, nil
}

// Decimal reads a measure. Missing values are zero.
func Decimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return t, nil
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, nil
		}
		return *t, nil
	case int64:
		return decimal.NewFromInt(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int32:
		return decimal.NewFromInt32(t), nil
	case int16:
		return decimal.NewFromInt(int64(t)), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case []byte:
		return Decimal(string(t))
	case string:
		s, ok := records.Text(t)
		if !ok {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse %q: %w", s, err)
		}
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("unsupported type %T", v)
}

func lessGrain(a, b grain) bool {
	if a.date != b.date {
		return a.date < b.date
	}
	for _, pair := range [...][2]any{
		{a.product, b.product},
		{a.customer, b.customer},
		{a.employee, b.employee},
		{a.supplier, b.supplier},
	} {
		if c := records.Compare(pair[0], pair[1]); c != 0 {
			return c < 0
		}
	}
	return false
}
