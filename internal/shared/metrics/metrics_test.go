package metrics

import (
	"strings"
	"testing"
)

func TestHistogramRendersCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var b strings.Builder
	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
		b.WriteString(formatFloat(snap.buckets[i]))
		b.WriteString("=")
		b.WriteString(formatFloat(float64(cumulative)))
		b.WriteString(" ")
	}
	if got := b.String(); got != "10=1 100=2 " {
		t.Fatalf("unexpected cumulative buckets: %q", got)
	}
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected count/sum: %d %v", snap.count, snap.sum)
	}
}

func TestRecordOutcomeRendersLabels(t *testing.T) {
	before := Outcomes("chat", "fallback")
	RecordOutcome("chat", "fallback")
	if Outcomes("chat", "fallback") != before+1 {
		t.Fatal("expected counter to increase")
	}
	out := Render()
	if !strings.Contains(out, `feature_results_total{feature="chat",source="fallback"}`) {
		t.Fatalf("missing labelled sample in:\n%s", out)
	}
	if !strings.Contains(out, "http_request_duration_ms_bucket{le=\"+Inf\"}") {
		t.Fatalf("missing histogram in:\n%s", out)
	}
}
