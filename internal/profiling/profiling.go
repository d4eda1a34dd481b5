package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lightweight per-frame CPU profiler. Every tracked duration also feeds a
// Prometheus histogram labelled by operation name.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)

	registry   = prometheus.NewRegistry()
	opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voxl",
		Name:      "operation_duration_seconds",
		Help:      "Duration of tracked chunk operations.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"op"})
)

func init() {
	registry.MustRegister(opDuration)
}

// Registry returns the registry holding the profiling metrics.
func Registry() *prometheus.Registry { return registry }

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("store.Publish")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		opDuration.WithLabelValues(name).Observe(d.Seconds())
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current per-frame totals.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest totals, e.g.
// "meshing.Job:4.2ms, worldgen.FillCaves:2.1ms".
func TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	ss := Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
