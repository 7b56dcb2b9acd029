package cli

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salesmart/internal/mart"

	_ "salesmart/internal/storage/sqlite"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionAndTables(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil || !strings.HasPrefix(out, "salesmart ") {
		t.Fatalf("version: %q, %v", out, err)
	}
	out, err = execute(t, "tables")
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	for _, name := range mart.Order {
		if !strings.Contains(out, name) {
			t.Errorf("tables output lacks %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "date_id integer pk") {
		t.Errorf("tables output lacks typed columns:\n%s", out)
	}
}

func TestValidateRejectsMissingDSN(t *testing.T) {
	t.Setenv("SALESMART_SOURCE_DSN", "")
	cfg := filepath.Join(t.TempDir(), "salesmart.yaml")
	if err := os.WriteFile(cfg, []byte("storage:\n  kind: sqlite\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "validate", "--config", cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

// seedSource writes a tiny WideWorldImporters-shaped extract into SQLite and
// returns a config file that reads it and loads into another SQLite file.
func seedSource(t *testing.T) (cfgPath, martPath string) {
	t.Helper()
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "wwi.db")
	martPath = filepath.Join(dir, "mart.db")

	db, err := sql.Open("sqlite", srcPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	for _, s := range []string{
		`CREATE TABLE invoice_lines (invoice_id INTEGER, invoice_line_id INTEGER, customer_id INTEGER,
			employee_id INTEGER, product_id INTEGER, invoice_date TEXT, quantity INTEGER,
			unit_price TEXT, tax_amount TEXT, extended_price TEXT, line_profit TEXT)`,
		`INSERT INTO invoice_lines VALUES
			(1, 1, 1, 2, 100, '2013-01-01', 10, '13.00', '19.50', '149.50', '85.00'),
			(1, 2, 1, 2, 100, '2013-01-01', 5, '13.00', '9.75', '74.75', '42.50'),
			(2, 3, 2, 2, 101, '2013-01-03', 1, '32.00', '4.80', '36.80', '16.00'),
			(3, 4, 7, 2, 101, '2013-01-03', 1, '32.00', '4.80', '36.80', '16.00')`,
		`CREATE TABLE customers (customer_id INTEGER, customer_name TEXT, category_name TEXT,
			city TEXT, province TEXT, country TEXT)`,
		`INSERT INTO customers VALUES (1, 'Tailspin Toys', 'Novelty Shop', 'Lisco', 'Nebraska', 'United States'),
			(2, 'Wingtip Toys', NULL, '', NULL, 'United States')`,
		`CREATE TABLE employees (employee_id INTEGER, full_name TEXT, preferred_name TEXT)`,
		`INSERT INTO employees VALUES (2, 'Kayla Woodcock', 'Kayla')`,
		`CREATE TABLE products (product_id INTEGER, product_name TEXT, size TEXT, brand TEXT,
			is_chiller INTEGER, package_type TEXT, supplier_id INTEGER)`,
		`INSERT INTO products VALUES (100, 'USB missile launcher', NULL, 'Northwind', 0, 'Each', 12),
			(101, 'Chocolate beetles 250g', '250g', NULL, 1, 'Bag', 4)`,
		`CREATE TABLE suppliers (supplier_id INTEGER, supplier_name TEXT, category_name TEXT,
			city TEXT, province TEXT, country TEXT)`,
		`INSERT INTO suppliers VALUES (12, 'The Gift Shop', 'Novelty', 'Ruthsburg', 'Maryland', 'United States'),
			(4, 'Fabrikam, Inc.', 'Clothing', 'Lakeview Heights', 'Kentucky', 'United States')`,
	} {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("seed: %v\n%s", err, s)
		}
	}

	cfgPath = filepath.Join(dir, "salesmart.yaml")
	body := fmt.Sprintf(`job: cli-test
source:
  kind: sqlite
  dsn: %q
  queries:
    invoice_lines: SELECT * FROM invoice_lines
    customers: SELECT * FROM customers
    employees: SELECT * FROM employees
    products: SELECT * FROM products
    suppliers: SELECT * FROM suppliers
storage:
  kind: sqlite
  dsn: %q
  batch_size: 2
`, srcPath, martPath)
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath, martPath
}

func TestRunEndToEndSQLite(t *testing.T) {
	cfg, martPath := seedSource(t)

	out, err := execute(t, "run", "--config", cfg, "--log-level", "warn")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "rejected invoice lines: 1") {
		t.Errorf("summary lacks reject count:\n%s", out)
	}

	db, err := sql.Open("sqlite", martPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	counts := map[string]int{"dim_date": 3, "dim_customer": 2, "dim_product": 2, "dim_employee": 1, "dim_supplier": 2, "fact_sales": 2}
	for table, want := range counts {
		var got int
		if err := db.QueryRow(`SELECT COUNT(*) FROM "` + table + `"`).Scan(&got); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s rows = %d, want %d", table, got, want)
		}
	}

	var qty int64
	var net, gross string
	if err := db.QueryRow(`SELECT quantity, CAST(net_amount AS TEXT), CAST(gross_amount AS TEXT) FROM fact_sales WHERE sale_id = 1`).Scan(&qty, &net, &gross); err != nil {
		t.Fatalf("fact row: %v", err)
	}
	if qty != 15 || net != "26" || gross != "224.25" {
		t.Errorf("fact row 1 = qty %d net %s gross %s", qty, net, gross)
	}

	var city, chiller string
	if err := db.QueryRow(`SELECT city FROM dim_customer WHERE customer_id = 2`).Scan(&city); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT is_chiller FROM dim_product WHERE product_id = 101`).Scan(&chiller); err != nil {
		t.Fatal(err)
	}
	if city != "Desconocido" || chiller != "Sí" {
		t.Errorf("city=%q chiller=%q", city, chiller)
	}

	var dayName string
	if err := db.QueryRow(`SELECT day_name FROM dim_date WHERE date_id = 1`).Scan(&dayName); err != nil {
		t.Fatal(err)
	}
	if dayName != "Martes" {
		t.Errorf("2013-01-01 day_name = %q, want Martes", dayName)
	}

	// A second run replaces, never appends.
	if _, err := execute(t, "run", "--config", cfg, "--log-level", "error"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM fact_sales`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("fact rows after rerun = %d, %v", n, err)
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg, martPath := seedSource(t)
	out, err := execute(t, "run", "--config", cfg, "--dry-run", "--log-level", "error")
	if err != nil {
		t.Fatalf("run --dry-run: %v", err)
	}
	if !strings.Contains(out, "fact_sales") {
		t.Errorf("summary = %q", out)
	}
	if _, err := os.Stat(martPath); !os.IsNotExist(err) {
		t.Fatalf("dry run created %s (err=%v)", martPath, err)
	}
}
