package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	recommendationsPersistedTotal atomic.Uint64
	recommendationsNoMatchTotal   atomic.Uint64
	cardsBuiltTotal               atomic.Uint64
	cardBuildFailedTotal          atomic.Uint64

	cardBuildDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// AddRecommendationsPersisted adds to the persisted rows counter.
func AddRecommendationsPersisted(n int) {
	if n > 0 {
		recommendationsPersistedTotal.Add(uint64(n))
	}
}

// AddRecommendationsNoMatch adds to the NO_MATCH rows counter.
func AddRecommendationsNoMatch(n int) {
	if n > 0 {
		recommendationsNoMatchTotal.Add(uint64(n))
	}
}

// AddCardsBuilt adds to the built cards counter.
func AddCardsBuilt(n int) {
	if n > 0 {
		cardsBuiltTotal.Add(uint64(n))
	}
}

// IncCardBuildFailed increments the failed card-build counter.
func IncCardBuildFailed() {
	cardBuildFailedTotal.Add(1)
}

// ObserveCardBuildDurationMs records a card-build duration in milliseconds.
func ObserveCardBuildDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	cardBuildDuration.Observe(value)
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
	writeCounter(&buf, "recommendations_persisted_total", "Total recommendation rows persisted", recommendationsPersistedTotal.Load())
	writeCounter(&buf, "recommendations_no_match_total", "Total recommendation rows persisted without a catalog match", recommendationsNoMatchTotal.Load())
	writeCounter(&buf, "cards_built_total", "Total upgrade cards built", cardsBuiltTotal.Load())
	writeCounter(&buf, "card_build_failed_total", "Total card builds that failed", cardBuildFailedTotal.Load())
	writeHistogram(&buf, "card_build_duration_ms", "Card build duration in milliseconds", cardBuildDuration.Snapshot())
	return buf.String()
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
