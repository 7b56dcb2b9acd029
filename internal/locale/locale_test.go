package locale

import (
	"testing"
	"time"
)

func TestSpanishNames(t *testing.T) {
	t.Parallel()

	n, err := For("es-ES")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if got := n.DayName(time.Wednesday); got != "Miércoles" {
		t.Errorf("Wednesday = %q; want Miércoles", got)
	}
	if got := n.DayName(time.Sunday); got != "Domingo" {
		t.Errorf("Sunday = %q; want Domingo", got)
	}
	if got := n.MonthName(time.January); got != "Enero" {
		t.Errorf("January = %q; want Enero", got)
	}
	if n.Yes != "Sí" || n.No != "No" || n.Unknown != "Desconocido" {
		t.Errorf("labels = %q/%q/%q", n.Yes, n.No, n.Unknown)
	}
}

func TestDefaultIsSpanish(t *testing.T) {
	t.Parallel()

	n, err := For("")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if n.Unknown != "Desconocido" {
		t.Fatalf("Unknown = %q", n.Unknown)
	}
}

func TestEnglishNames(t *testing.T) {
	t.Parallel()

	n := MustFor("en-US")
	if got := n.DayName(time.Saturday); got != "Saturday" {
		t.Errorf("Saturday = %q", got)
	}
	if got := n.MonthName(time.December); got != "December" {
		t.Errorf("December = %q", got)
	}
	if n.Unknown != "Unknown" {
		t.Errorf("Unknown = %q", n.Unknown)
	}
}

func TestUnsupportedLocale(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"ja", "tlh", "fr", "de", "ca", "pt-BR", "not a tag!"} {
		if n, err := For(tag); err == nil {
			t.Errorf("For(%q) = %v; expected error", tag, n.Tag)
		}
	}
}

func TestRegionalVariants(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]string{"es-MX": "Lunes", "es-419": "Lunes", "en-GB": "Monday"} {
		n, err := For(tag)
		if err != nil {
			t.Errorf("For(%q): %v", tag, err)
			continue
		}
		if got := n.DayName(time.Monday); got != want {
			t.Errorf("For(%q) Monday = %q; want %q", tag, got, want)
		}
	}
}

func TestISOWeekday(t *testing.T) {
	t.Parallel()

	want := map[time.Weekday]int{
		time.Monday: 1, time.Tuesday: 2, time.Wednesday: 3, time.Thursday: 4,
		time.Friday: 5, time.Saturday: 6, time.Sunday: 7,
	}
	for wd, n := range want {
		if got := ISOWeekday(wd); got != n {
			t.Errorf("ISOWeekday(%v) = %d; want %d", wd, got, n)
		}
	}
}
