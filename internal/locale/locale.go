// Package locale provides the localized labels written into the mart: day and
// month names for the date dimension and the yes/no/unknown vocabulary used by
// flag columns and missing-value sentinels.
//
// Spanish is the default so the output matches the existing reports built on
// top of the mart. Names are stored lower case and title-cased per language
// with golang.org/x/text/cases, the same way the reports expect them
// ("Miércoles", "Enero").
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default is the locale used when none is configured.
const Default = "es"

// Names holds every label for one locale. Days start on Monday.
type Names struct {
	Tag     language.Tag
	Days    [7]string
	Months  [12]string
	Yes     string
	No      string
	Unknown string
}

type vocabulary struct {
	days    [7]string
	months  [12]string
	yes     string
	no      string
	unknown string
}

var vocabularies = map[string]vocabulary{
	"es": {
		days:    [7]string{"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo"},
		months:  [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		yes:     "sí",
		no:      "no",
		unknown: "desconocido",
	},
	"en": {
		days:    [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
		months:  [12]string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
		yes:     "yes",
		no:      "no",
		unknown: "unknown",
	},
}

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// Supported lists the base languages with a vocabulary.
func Supported() []string { return []string{"es", "en"} }

// For resolves a BCP 47 tag ("es", "es-ES", "en-US") to its Names. Tags
// without a vocabulary of their own are rejected.
func For(tag string) (Names, error) {
	if tag == "" {
		tag = Default
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Names{}, fmt.Errorf("locale %q: %w", tag, err)
	}
	matched, _, conf := matcher.Match(t)
	want, _ := t.Base()
	base, _ := matched.Base()
	if conf == language.No || base != want {
		return Names{}, fmt.Errorf("locale %q: no vocabulary (supported: %v)", tag, Supported())
	}
	v, ok := vocabularies[base.String()]
	if !ok {
		return Names{}, fmt.Errorf("locale %q: no vocabulary (supported: %v)", tag, Supported())
	}

	bt := language.Make(base.String())
	title := cases.Title(bt)
	n := Names{Tag: bt}
	for i, d := range v.days {
		n.Days[i] = title.String(d)
	}
	for i, m := range v.months {
		n.Months[i] = title.String(m)
	}
	n.Yes = title.String(v.yes)
	n.No = title.String(v.no)
	n.Unknown = title.String(v.unknown)
	return n, nil
}

// MustFor is For that panics; intended for package-level defaults and tests.
func MustFor(tag string) Names {
	n, err := For(tag)
	if err != nil {
		panic(err)
	}
	return n
}

// DayName returns the localized name of wd.
func (n Names) DayName(wd time.Weekday) string { return n.Days[ISOWeekday(wd)-1] }

// MonthName returns the localized name of m.
func (n Names) MonthName(m time.Month) string { return n.Months[m-1] }

// ISOWeekday numbers days 1..7 starting on Monday.
func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
