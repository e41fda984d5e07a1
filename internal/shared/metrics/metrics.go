package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	llmCallsTotal    atomic.Uint64
	llmFailuresTotal atomic.Uint64

	outcomes = newCounterVec()

	requestDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 10000, 30000})
)

// IncLLMCall increments the model call counter.
func IncLLMCall() {
	llmCallsTotal.Add(1)
}

// IncLLMFailure increments the failed model call counter.
func IncLLMFailure() {
	llmFailuresTotal.Add(1)
}

// RecordOutcome counts one feature result by the branch that produced it
// ("ai" or "fallback").
func RecordOutcome(feature, source string) {
	outcomes.Inc(feature, source)
}

// ObserveRequestDurationMs records a request duration in milliseconds.
func ObserveRequestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	requestDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "llm_calls_total", "Total generative model calls", llmCallsTotal.Load())
	writeCounter(&buf, "llm_failures_total", "Generative model calls that failed", llmFailuresTotal.Load())
	writeCounterVec(&buf, "feature_results_total", "Feature results by source", outcomes.Snapshot())
	writeHistogram(&buf, "http_request_duration_ms", "Request duration in milliseconds", requestDuration.Snapshot())
	return buf.String()
}

type counterKey struct {
	feature string
	source  string
}

type counterVec struct {
	mu     sync.Mutex
	values map[counterKey]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[counterKey]uint64)}
}

func (v *counterVec) Inc(feature, source string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[counterKey{feature: feature, source: source}]++
}

func (v *counterVec) Get(feature, source string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[counterKey{feature: feature, source: source}]
}

type counterSample struct {
	key   counterKey
	value uint64
}

func (v *counterVec) Snapshot() []counterSample {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]counterSample, 0, len(v.values))
	for k, val := range v.values {
		out = append(out, counterSample{key: k, value: val})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].key.feature != out[j].key.feature {
			return out[i].key.feature < out[j].key.feature
		}
		return out[i].key.source < out[j].key.source
	})
	return out
}

// Outcomes returns the current count for feature and source.
func Outcomes(feature, source string) uint64 {
	return outcomes.Get(feature, source)
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound holds it; rendering
// accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, samples []counterSample) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, s := range samples {
		fmt.Fprintf(buf, "%s{feature=%q,source=%q} %d\n", name, s.key.feature, s.key.source, s.value)
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
