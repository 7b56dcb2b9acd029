//go:build integration

package mssql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/internal/storage"
	"salesmart/pkg/records"
)

// getTestDSN reads TEST_MSSQL_DSN; the caller is skipped when it is empty.
func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_MSSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MSSQL_DSN not set; skipping MSSQL integration tests")
	}
	return dsn
}

func TestLoaderReplaceIntegration(t *testing.T) {
	dsn := getTestDSN(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	l, err := storage.NewLoader(ctx, storage.Config{Kind: "mssql", DSN: dsn, Schema: "dbo"}, 2, "test")
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	defer l.Close()

	tbl := records.Table{
		Name: "salesmart_probe",
		Columns: []records.Column{
			{Name: "id", Type: records.Integer, PrimaryKey: true},
			{Name: "label", Type: records.TextType, Nullable: true},
			{Name: "amount", Type: records.Decimal},
		},
		Rows: [][]any{
			{int64(1), "Sí", decimal.RequireFromString("1.25")},
			{int64(2), nil, decimal.Zero},
			{int64(3), "Desconocido", decimal.RequireFromString("-3")},
		},
	}
	for i := 0; i < 2; i++ {
		n, err := l.Replace(ctx, tbl)
		if err != nil {
			t.Fatalf("Replace #%d: %v", i, err)
		}
		if n != 3 {
			t.Fatalf("Replace #%d wrote %d rows, want 3", i, n)
		}
	}
}
