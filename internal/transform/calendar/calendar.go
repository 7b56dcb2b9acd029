// Package calendar builds the date dimension: one row per calendar day between
// the earliest and latest transaction date, with no gaps, keyed by a surrogate
// that increases with the date.
package calendar

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"salesmart/internal/locale"
	"salesmart/internal/transformer/builtin"
	"salesmart/pkg/records"
)

// TableName is the persisted name of the date dimension.
const TableName = "dim_date"

// ErrNoDates is returned when no input row carries a usable transaction date,
// leaving the calendar range undefined.
var ErrNoDates = errors.New("calendar: no valid transaction dates")

// Output columns, in persisted order.
const (
	ColDateID    = "date_id"
	ColFullDate  = "full_date"
	ColDay       = "day"
	ColMonth     = "month"
	ColYear      = "year"
	ColDayName   = "day_name"
	ColMonthName = "month_name"
	ColWeekday   = "weekday"
	ColHalfYear  = "half_year"
	ColQuarter   = "quarter"
	ColWeekend   = "is_weekend"
)

// Columns is the fixed output schema.
var Columns = []records.Column{
	{Name: ColDateID, Type: records.Integer, PrimaryKey: true},
	{Name: ColFullDate, Type: records.Date},
	{Name: ColDay, Type: records.Integer},
	{Name: ColMonth, Type: records.Integer},
	{Name: ColYear, Type: records.Integer},
	{Name: ColDayName, Type: records.TextType},
	{Name: ColMonthName, Type: records.TextType},
	{Name: ColWeekday, Type: records.Integer},
	{Name: ColHalfYear, Type: records.Integer},
	{Name: ColQuarter, Type: records.Integer},
	{Name: ColWeekend, Type: records.TextType},
}

// Day is one calendar row.
type Day struct {
	ID        int64
	Date      civil.Date
	Day       int
	Month     int
	Year      int
	DayName   string
	MonthName string
	Weekday   int // 1..7, Monday = 1
	HalfYear  int
	Quarter   int
	Weekend   string
}

// Calendar is the built date dimension. It is read-only after Build.
type Calendar struct {
	Days  []Day
	index map[civil.Date]int64
}

// Build derives the calendar from the field column of lines. Rows whose date
// is missing or unparseable are ignored; if none remain, ErrNoDates is
// returned.
func Build(lines []records.Record, field string, names locale.Names) (*Calendar, error) {
	var (
		lo, hi civil.Date
		seen   bool
	)
	for _, r := range lines {
		d, ok := DateOf(r[field])
		if !ok {
			continue
		}
		if !seen || d.Before(lo) {
			lo = d
		}
		if !seen || d.After(hi) {
			hi = d
		}
		seen = true
	}
	if !seen {
		return nil, ErrNoDates
	}

	n := hi.DaysSince(lo) + 1
	c := &Calendar{
		Days:  make([]Day, 0, n),
		index: make(map[civil.Date]int64, n),
	}
	for d := lo; !d.After(hi); d = d.AddDays(1) {
		day := newDay(int64(len(c.Days)+1), d, names)
		c.Days = append(c.Days, day)
		c.index[d] = day.ID
	}
	return c, nil
}

func newDay(id int64, d civil.Date, names locale.Names) Day {
	wd := d.In(time.UTC).Weekday()
	half := 1
	if d.Month > time.June {
		half = 2
	}
	return Day{
		ID:        id,
		Date:      d,
		Day:       d.Day,
		Month:     int(d.Month),
		Year:      d.Year,
		DayName:   names.DayName(wd),
		MonthName: names.MonthName(d.Month),
		Weekday:   locale.ISOWeekday(wd),
		HalfYear:  half,
		Quarter:   (int(d.Month)-1)/3 + 1,
		Weekend:   weekendLabel(locale.ISOWeekday(wd), names),
	}
}

func weekendLabel(isoWeekday int, names locale.Names) string {
	switch {
	case isoWeekday >= 6 && isoWeekday <= 7:
		return names.Yes
	case isoWeekday >= 1 && isoWeekday <= 5:
		return names.No
	default:
		return names.Unknown
	}
}

// Len returns the number of days.
func (c *Calendar) Len() int { return len(c.Days) }

// Lookup returns the surrogate key of d.
func (c *Calendar) Lookup(d civil.Date) (int64, bool) {
	id, ok := c.index[d]
	return id, ok
}

// Range returns the first and last day.
func (c *Calendar) Range() (civil.Date, civil.Date) {
	if len(c.Days) == 0 {
		return civil.Date{}, civil.Date{}
	}
	return c.Days[0].Date, c.Days[len(c.Days)-1].Date
}

// Table renders the calendar in the persisted column order. full_date is a
// time.Time at UTC midnight so every driver binds it as a date.
func (c *Calendar) Table() records.Table {
	rows := make([][]any, len(c.Days))
	for i, d := range c.Days {
		rows[i] = []any{
			d.ID,
			d.Date.In(time.UTC),
			int64(d.Day),
			int64(d.Month),
			int64(d.Year),
			d.DayName,
			d.MonthName,
			int64(d.Weekday),
			int64(d.HalfYear),
			int64(d.Quarter),
			d.Weekend,
		}
	}
	return records.Table{Name: TableName, Columns: Columns, Rows: rows}
}

// DateOf truncates a transaction timestamp to its calendar date. The fact
// aggregator joins through the same function, so both sides always agree on
// granularity. Accepted inputs: time.Time, *time.Time, civil.Date, and text
// in one of builtin.DateLayouts.
func DateOf(v any) (civil.Date, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return civil.Date{}, false
		}
		return civil.DateOf(t), true
	case *time.Time:
		if t == nil {
			return civil.Date{}, false
		}
		return DateOf(*t)
	case civil.Date:
		return t, t.IsValid()
	case civil.DateTime:
		return t.Date, t.Date.IsValid()
	case string:
		t = strings.TrimSpace(t)
		if d, err := civil.ParseDate(t); err == nil {
			return d, true
		}
		if ts, ok := builtin.ParseDate(t, builtin.DateLayouts); ok {
			return civil.DateOf(ts), true
		}
	case []byte:
		return DateOf(string(t))
	}
	return civil.Date{}, false
}
