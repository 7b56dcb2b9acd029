package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	callsCounters   []counterCall
	callsHistograms []histCall
	flushCount      int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type histCall struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsCounters = append(f.callsCounters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsHistograms = append(f.callsHistograms, histCall{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

func install(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	prev := SetBackend(fb)
	t.Cleanup(func() { SetBackend(prev) })
	return fb
}

func TestRecordStep_SuccessAndFailure(t *testing.T) {
	fb := install(t)

	RecordStep("mart", "extract", nil, 2*time.Second)
	RecordStep("mart", "load", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.callsCounters) != 2 || len(fb.callsHistograms) != 2 {
		t.Fatalf("counters=%d histograms=%d; want 2/2", len(fb.callsCounters), len(fb.callsHistograms))
	}

	cc0 := fb.callsCounters[0]
	if cc0.name != StepTotal || cc0.delta != 1 {
		t.Fatalf("counter[0] = %#v", cc0)
	}
	if cc0.labels["job"] != "mart" || cc0.labels["step"] != "extract" || cc0.labels["status"] != "success" {
		t.Fatalf("counter[0].labels = %v", cc0.labels)
	}
	h0 := fb.callsHistograms[0]
	if h0.name != StepDurationSeconds || h0.value < 1.999 || h0.value > 2.001 {
		t.Fatalf("hist[0] = %#v", h0)
	}

	if got := fb.callsCounters[1].labels["status"]; got != "failure" {
		t.Fatalf("counter[1].labels[status] = %q; want failure", got)
	}
	if h1 := fb.callsHistograms[1]; h1.value < 1.499 || h1.value > 1.501 {
		t.Fatalf("hist[1].value = %v; want ~1.5", h1.value)
	}
}

func TestRecordRowsRejectsBatches(t *testing.T) {
	fb := install(t)

	RecordRows("mart", "dim_date", "built", 3)
	RecordRows("mart", "dim_date", "loaded", 0) // ignored
	RecordRejects("mart", "unknown_product", 2)
	RecordRejects("mart", "unknown_customer", -1) // ignored
	RecordBatches("mart", "fact_sales", 4)

	want := []counterCall{
		{RowsTotal, 3, Labels{"job": "mart", "table": "dim_date", "stage": "built"}},
		{RejectsTotal, 2, Labels{"job": "mart", "reason": "unknown_product"}},
		{BatchesTotal, 4, Labels{"job": "mart", "table": "fact_sales"}},
	}
	if len(fb.callsCounters) != len(want) {
		t.Fatalf("calls = %#v", fb.callsCounters)
	}
	for i, w := range want {
		got := fb.callsCounters[i]
		if got.name != w.name || got.delta != w.delta {
			t.Fatalf("counter[%d] = %#v; want %#v", i, got, w)
		}
		for k, v := range w.labels {
			if got.labels[k] != v {
				t.Fatalf("counter[%d].labels[%s] = %q; want %q", i, k, got.labels[k], v)
			}
		}
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	fb := install(t)

	if err := Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("expected flushCount=1, got %d", fb.flushCount)
	}

	// SetBackend(nil) should not nil out the backend.
	if prev := SetBackend(nil); prev != fb {
		t.Fatalf("SetBackend(nil) returned %v; want current backend", prev)
	}
	if current() != fb {
		t.Fatal("SetBackend(nil) should not change backend")
	}
}
