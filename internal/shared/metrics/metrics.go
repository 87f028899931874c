package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	inspectionsScheduledTotal atomic.Uint64
	inspectionsCompletedTotal atomic.Uint64
	scoreRowsSeededTotal      atomic.Uint64
	scoreSeedRepairsTotal     atomic.Uint64

	scheduleDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500})
)

// IncInspectionScheduled increments the scheduled counter.
func IncInspectionScheduled() {
	inspectionsScheduledTotal.Add(1)
}

// IncInspectionCompleted increments the completed counter.
func IncInspectionCompleted() {
	inspectionsCompletedTotal.Add(1)
}

// AddScoreRowsSeeded records score rows materialized from a template.
func AddScoreRowsSeeded(n int) {
	if n > 0 {
		scoreRowsSeededTotal.Add(uint64(n))
	}
}

// IncScoreSeedRepair increments the lazy re-seed counter.
func IncScoreSeedRepair() {
	scoreSeedRepairsTotal.Add(1)
}

// ObserveScheduleDurationMs records a schedule operation duration in milliseconds.
func ObserveScheduleDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scheduleDuration.Observe(value)
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
	writeCounter(&buf, "inspections_scheduled_total", "Total inspections scheduled", inspectionsScheduledTotal.Load())
	writeCounter(&buf, "inspections_completed_total", "Total inspections completed", inspectionsCompletedTotal.Load())
	writeCounter(&buf, "inspection_score_rows_seeded_total", "Total score rows materialized from templates", scoreRowsSeededTotal.Load())
	writeCounter(&buf, "inspection_score_seed_repairs_total", "Total reads that re-seeded missing score rows", scoreSeedRepairsTotal.Load())
	writeHistogram(&buf, "inspection_schedule_duration_ms", "Schedule operation duration in milliseconds", scheduleDuration.Snapshot())
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
