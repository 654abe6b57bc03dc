package query

import (
	"container/heap"
	"sort"

	"github.com/quakemap/quake-backend-go/internal/models"
)

const (
	// DefaultLimit caps a result set when the caller supplies no limit.
	DefaultLimit = 500
	// MaxLimit is the hard ceiling on any requested limit.
	MaxLimit = 5000
)

// EventSource is the read side of the event store the executor scans.
type EventSource interface {
	Ready() bool
	Events() []models.Event
}

// Less is the result ordering: occurrence time descending, ties broken by
// ID ascending. Which events survive the cap depends only on this ordering,
// never on load order.
func Less(a, b *models.Event) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.After(b.OccurredAt)
	}
	return a.ID < b.ID
}

// Execute scans the store once, retains events satisfying the predicate and
// returns the first limit of them under the result ordering, together with
// summary stats over every match (capped or not). Memory stays bounded by
// the limit: events cut by the cap are never materialized.
func Execute(src EventSource, pred Predicate, limit int) (*models.ResultSet, error) {
	if src == nil || !src.Ready() {
		return nil, ErrStoreNotReady
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var (
		top      = topHeap{limit: limit}
		matched  int
		sumMag   float64
		maxMag   float64
		sumDepth float64
	)

	events := src.Events()
	for i := range events {
		e := &events[i]
		if !pred(e) {
			continue
		}
		matched++
		sumMag += e.Magnitude
		sumDepth += e.DepthKm
		if e.Magnitude > maxMag {
			maxMag = e.Magnitude
		}
		top.consider(e)
	}

	results := make([]models.Event, len(top.items))
	for i, e := range top.items {
		results[i] = *e
	}
	sort.Slice(results, func(i, j int) bool {
		return Less(&results[i], &results[j])
	})

	rs := &models.ResultSet{
		Events:       results,
		Truncated:    matched > len(results),
		TotalMatched: matched,
	}
	if matched > 0 {
		rs.Stats = models.Stats{
			Count:        matched,
			AvgMagnitude: sumMag / float64(matched),
			MaxMagnitude: maxMag,
			AvgDepthKm:   sumDepth / float64(matched),
		}
	}
	return rs, nil
}

// topHeap keeps the best limit events seen so far, with the worst retained
// event at the root so it can be evicted cheaply.
type topHeap struct {
	items []*models.Event
	limit int
}

func (h *topHeap) Len() int           { return len(h.items) }
func (h *topHeap) Less(i, j int) bool { return Less(h.items[j], h.items[i]) }
func (h *topHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *topHeap) Push(x interface{}) { h.items = append(h.items, x.(*models.Event)) }
func (h *topHeap) Pop() interface{} {
	n := len(h.items)
	e := h.items[n-1]
	h.items = h.items[:n-1]
	return e
}

func (h *topHeap) consider(e *models.Event) {
	if len(h.items) < h.limit {
		heap.Push(h, e)
		return
	}
	// Root is the worst retained event; replace it if e ranks higher.
	if Less(e, h.items[0]) {
		h.items[0] = e
		heap.Fix(h, 0)
	}
}
