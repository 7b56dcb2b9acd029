package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
	_ "modernc.org/sqlite"

	"salesmart/internal/logging"
	"salesmart/pkg/records"
)

// Config selects the source database and optional per-entity query
// overrides.
type Config struct {
	// Kind is "sqlserver" or "sqlite".
	Kind    string
	DSN     string
	Queries map[Entity]string
}

// SQL extracts entities by running one query each over database/sql.
type SQL struct {
	db      *sql.DB
	queries map[Entity]string
}

var _ Extractor = (*SQL)(nil)

// Open connects to the source and returns the extractor plus a close func.
func Open(ctx context.Context, cfg Config) (*SQL, func(), error) {
	driver, err := driverFor(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("source: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("source: ping: %w", err)
	}
	return NewSQL(db, cfg.Queries), func() { _ = db.Close() }, nil
}

// NewSQL wraps an open handle. overrides replace DefaultQueries per entity.
func NewSQL(db *sql.DB, overrides map[Entity]string) *SQL {
	q := make(map[Entity]string, len(DefaultQueries))
	for e, s := range DefaultQueries {
		q[e] = s
	}
	for e, s := range overrides {
		if strings.TrimSpace(s) != "" {
			q[e] = s
		}
	}
	return &SQL{db: db, queries: q}
}

func driverFor(cfg Config) (string, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return "", fmt.Errorf("source: DSN must not be empty")
	}
	switch cfg.Kind {
	case "sqlserver", "mssql":
		if _, err := msdsn.Parse(cfg.DSN); err != nil {
			return "", fmt.Errorf("source: sqlserver dsn: %w", err)
		}
		return "sqlserver", nil
	case "sqlite":
		return "sqlite", nil
	}
	return "", fmt.Errorf("source: unsupported kind %q", cfg.Kind)
}

func (s *SQL) InvoiceLines(ctx context.Context) ([]records.Record, error) {
	return s.extract(ctx, InvoiceLines)
}
func (s *SQL) Customers(ctx context.Context) ([]records.Record, error) {
	return s.extract(ctx, Customers)
}
func (s *SQL) Employees(ctx context.Context) ([]records.Record, error) {
	return s.extract(ctx, Employees)
}
func (s *SQL) Products(ctx context.Context) ([]records.Record, error) {
	return s.extract(ctx, Products)
}
func (s *SQL) Suppliers(ctx context.Context) ([]records.Record, error) {
	return s.extract(ctx, Suppliers)
}

func (s *SQL) extract(ctx context.Context, e Entity) ([]records.Record, error) {
	start := time.Now()
	out, err := Query(ctx, s.db, s.queries[e])
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", e, err)
	}
	logging.Debug().Str("entity", string(e)).Int("rows", len(out)).Dur("elapsed", time.Since(start)).Msg("extracted")
	return Coerce(e, out), nil
}

// Query runs q and returns each row keyed by its lower-cased column label.
// []byte values are copied into strings.
func Query(ctx context.Context, db *sql.DB, q string) ([]records.Record, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		cols[i] = strings.ToLower(c)
	}

	var out []records.Record
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(records.Record, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				rec[c] = string(b)
			} else {
				rec[c] = vals[i]
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
