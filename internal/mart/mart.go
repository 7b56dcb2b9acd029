// Package mart runs the end-to-end build: extract, derive the dimensions and
// the fact, then persist every table with full-replace semantics.
package mart

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"salesmart/internal/locale"
	"salesmart/internal/logging"
	"salesmart/internal/metrics"
	"salesmart/internal/source"
	"salesmart/internal/transform/calendar"
	"salesmart/internal/transform/dimension"
	"salesmart/internal/transform/fact"
	"salesmart/pkg/records"
)

// Sink persists one whole table, replacing whatever was there.
type Sink interface {
	Replace(ctx context.Context, t records.Table) (int64, error)
}

// Options tune a run. The zero value builds Spanish labels under the job
// name "salesmart".
type Options struct {
	Job    string
	Locale string
	// DryRun builds every table but persists nothing.
	DryRun bool
	// RejectSample caps how many rejected lines are logged individually.
	RejectSample int
}

const defaultRejectSample = 5

// TableReport summarizes one built table.
type TableReport struct {
	Name        string
	Rows        int
	Written     int64
	Fingerprint uint64
}

// Report describes a finished run. Tables are in persistence order.
type Report struct {
	RunID     string
	Tables    []TableReport
	Accepted  int
	Rejects   map[fact.Reason]int
	Durations map[string]time.Duration
	DryRun    bool
}

// Rejected returns the total number of rejected invoice lines.
func (r Report) Rejected() int {
	n := 0
	for _, c := range r.Rejects {
		n += c
	}
	return n
}

// Order is the persistence order: calendar, dimensions, then the fact.
var Order = []string{
	calendar.TableName,
	dimension.Customer.Table,
	dimension.Product.Table,
	dimension.Employee.Table,
	dimension.Supplier.Table,
	fact.TableName,
}

type extracts struct {
	lines, customers, employees, products, suppliers []records.Record
}

// Run executes one full build. Extraction and dimension building run
// concurrently; the fact and persistence are sequential. The first error
// aborts the run; tables already persisted stay as written.
func Run(ctx context.Context, ex source.Extractor, sink Sink, opts Options) (Report, error) {
	if opts.Job == "" {
		opts.Job = "salesmart"
	}
	if opts.Locale == "" {
		opts.Locale = locale.Default
	}
	if opts.RejectSample <= 0 {
		opts.RejectSample = defaultRejectSample
	}
	names, err := locale.For(opts.Locale)
	if err != nil {
		return Report{}, err
	}
	if sink == nil && !opts.DryRun {
		return Report{}, fmt.Errorf("mart: sink is required unless dry run")
	}

	rep := Report{
		RunID:     uuid.NewString(),
		Durations: make(map[string]time.Duration, 4),
		DryRun:    opts.DryRun,
	}
	log := logging.Logger.With().Str("run_id", rep.RunID).Str("job", opts.Job).Logger()
	log.Info().Str("locale", names.Tag.String()).Bool("dry_run", opts.DryRun).Msg("run started")

	step := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		d := time.Since(start)
		rep.Durations[name] = d
		metrics.RecordStep(opts.Job, name, err, d)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.Debug().Str("step", name).Dur("elapsed", d).Msg("step done")
		return nil
	}

	var raw extracts
	if err := step("extract", func() error { return extractAll(ctx, ex, &raw) }); err != nil {
		return rep, err
	}

	var (
		cal  *calendar.Calendar
		dims = make([]records.Table, len(dimension.All()))
	)
	if err := step("dimensions", func() error {
		var g errgroup.Group
		g.Go(func() error {
			c, err := calendar.Build(raw.lines, fact.LineDate, names)
			cal = c
			return err
		})
		inputs := map[string][]records.Record{
			dimension.Customer.Table: raw.customers,
			dimension.Product.Table:  raw.products,
			dimension.Employee.Table: raw.employees,
			dimension.Supplier.Table: raw.suppliers,
		}
		for i, spec := range dimension.All() {
			g.Go(func() error {
				t, err := dimension.Build(spec, inputs[spec.Table], names)
				dims[i] = t
				return err
			})
		}
		return g.Wait()
	}); err != nil {
		return rep, err
	}
	byName := make(map[string]records.Table, len(Order))
	for _, t := range dims {
		byName[t.Name] = t
	}
	byName[calendar.TableName] = cal.Table()

	var res fact.Result
	if err := step("fact", func() error {
		var err error
		res, err = fact.Build(raw.lines, fact.Dimensions{
			Calendar:  cal,
			Customers: byName[dimension.Customer.Table],
			Products:  byName[dimension.Product.Table],
			Employees: byName[dimension.Employee.Table],
			Suppliers: byName[dimension.Supplier.Table],
		})
		return err
	}); err != nil {
		return rep, err
	}
	byName[fact.TableName] = res.Table
	rep.Accepted = res.Accepted
	rep.Rejects = res.RejectCounts()
	reportRejects(log, opts, res)

	for _, name := range Order {
		t := byName[name]
		rep.Tables = append(rep.Tables, TableReport{Name: name, Rows: t.Len(), Fingerprint: t.Fingerprint()})
		metrics.RecordRows(opts.Job, name, "built", int64(t.Len()))
	}

	if opts.DryRun {
		log.Info().Int("tables", len(rep.Tables)).Msg("dry run: nothing persisted")
		return rep, nil
	}

	if err := step("load", func() error {
		for i, name := range Order {
			n, err := sink.Replace(ctx, byName[name])
			if err != nil {
				return fmt.Errorf("persist %s: %w", name, err)
			}
			rep.Tables[i].Written = n
			metrics.RecordRows(opts.Job, name, "loaded", n)
		}
		return nil
	}); err != nil {
		return rep, err
	}

	log.Info().
		Int("tables", len(rep.Tables)).
		Int("fact_rows", res.Table.Len()).
		Int("rejected", rep.Rejected()).
		Msg("load completed")
	return rep, nil
}

func extractAll(ctx context.Context, ex source.Extractor, out *extracts) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range []struct {
		entity source.Entity
		fn     func(context.Context) ([]records.Record, error)
		dst    *[]records.Record
	}{
		{source.InvoiceLines, ex.InvoiceLines, &out.lines},
		{source.Customers, ex.Customers, &out.customers},
		{source.Employees, ex.Employees, &out.employees},
		{source.Products, ex.Products, &out.products},
		{source.Suppliers, ex.Suppliers, &out.suppliers},
	} {
		g.Go(func() error {
			rs, err := job.fn(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", job.entity, err)
			}
			*job.dst = rs
			return nil
		})
	}
	return g.Wait()
}

func reportRejects(log zerolog.Logger, opts Options, res fact.Result) {
	if len(res.Rejects) == 0 {
		return
	}
	counts := res.RejectCounts()
	reasons := make([]string, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		n := counts[fact.Reason(r)]
		metrics.RecordRejects(opts.Job, r, int64(n))
		log.Warn().Str("reason", r).Int("lines", n).Msg("invoice lines rejected")
	}
	for i, rj := range res.Rejects {
		if i == opts.RejectSample {
			log.Warn().Int("suppressed", len(res.Rejects)-i).Msg("additional rejects not shown")
			break
		}
		log.Warn().
			Interface("invoice_id", rj.InvoiceID).
			Interface("invoice_line_id", rj.LineID).
			Str("reason", string(rj.Reason)).
			Str("detail", rj.Detail).
			Msg("reject")
	}
}
