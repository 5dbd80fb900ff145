package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Label      string // route pattern ("POST /api/chat") or statement ("SELECT profile")
	StatusCode int    // 0 for queries
	DurationMs float64
	Timestamp  time.Time
}

// Failed reports whether a request entry ended in a server error.
func (e Entry) Failed() bool {
	return e.Kind == KindRequest && e.StatusCode >= 500
}

// Collector is a fixed-size ring buffer for timing entries.
// Writes overwrite the oldest entry once full; aggregation happens in Snapshot.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   atomic.Int64
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: none; size <= 0 selects DefaultRingSize
// POST: Returns a ready-to-use collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Record appends an entry to the ring buffer.
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	c.count.Add(1)
}

// TotalRecorded returns the number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return c.count.Load()
}

// Snapshot is the aggregated view served on the admin perf endpoint.
type Snapshot struct {
	Since          time.Time   `json:"since"`
	TotalRecorded  int64       `json:"totalRecorded"`
	Requests       int         `json:"requests"`
	ServerErrors   int         `json:"serverErrors"`
	RequestP50Ms   float64     `json:"requestP50Ms"`
	RequestP95Ms   float64     `json:"requestP95Ms"`
	RequestP99Ms   float64     `json:"requestP99Ms"`
	SlowestRoutes  []LabelStat `json:"slowestRoutes"`
	SlowestQueries []LabelStat `json:"slowestQueries"`
}

// LabelStat aggregates timing for a single route or statement.
type LabelStat struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Errors  int     `json:"errors,omitempty"`
	AvgMs   float64 `json:"avgMs"`
	MaxMs   float64 `json:"maxMs"`
	TotalMs float64 `json:"totalMs"`
}

// Snapshot aggregates entries recorded at or after since.
// PRE: topN >= 0
// POST: Returns percentiles over requests and the topN slowest labels by average
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.entries)
	c.mu.Unlock()

	var durations []float64
	routes := make(map[string]*LabelStat)
	queries := make(map[string]*LabelStat)
	snap := Snapshot{Since: since, TotalRecorded: c.TotalRecorded()}

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		stats := queries
		if e.Kind == KindRequest {
			stats = routes
			durations = append(durations, e.DurationMs)
			snap.Requests++
		}
		s, ok := stats[e.Label]
		if !ok {
			s = &LabelStat{Label: e.Label}
			stats[e.Label] = s
		}
		s.Count++
		s.TotalMs += e.DurationMs
		s.MaxMs = math.Max(s.MaxMs, e.DurationMs)
		if e.Failed() {
			s.Errors++
			snap.ServerErrors++
		}
	}

	snap.SlowestRoutes = topByAvg(routes, topN)
	snap.SlowestQueries = topByAvg(queries, topN)
	if len(durations) > 0 {
		sort.Float64s(durations)
		snap.RequestP50Ms = percentile(durations, 50)
		snap.RequestP95Ms = percentile(durations, 95)
		snap.RequestP99Ms = percentile(durations, 99)
	}
	return snap
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func topByAvg(stats map[string]*LabelStat, n int) []LabelStat {
	list := make([]LabelStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs == list[j].AvgMs {
			return list[i].Label < list[j].Label
		}
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
