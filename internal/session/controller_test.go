package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakemap/quake-backend-go/internal/models"
	"github.com/quakemap/quake-backend-go/internal/render"
)

func filterWithMag(mag float64) models.Filter {
	return models.Filter{Viewport: models.World(), MinMagnitude: mag}
}

// countingPipeline records every filter it executes.
type countingPipeline struct {
	mu      sync.Mutex
	filters []models.Filter
	calls   atomic.Int32
	delay   time.Duration
	err     error
}

func (p *countingPipeline) run(f models.Filter) (*render.Views, error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.filters = append(p.filters, f)
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return nil, p.err
	}
	return &render.Views{}, nil
}

func TestDebounceCoalescesRapidChanges(t *testing.T) {
	p := &countingPipeline{}
	c := NewController(p.run, 50*time.Millisecond, time.Second)

	// Three changes inside one debounce window: one query, last filter wins.
	first := c.Submit(filterWithMag(4.0), Continuous)
	second := c.Submit(filterWithMag(4.5), Continuous)
	third := c.Submit(filterWithMag(5.0), Continuous)

	out1 := <-first
	out2 := <-second
	assert.ErrorIs(t, out1.Err, ErrSuperseded)
	assert.ErrorIs(t, out2.Err, ErrSuperseded)

	out3 := <-third
	require.NoError(t, out3.Err)
	require.NotNil(t, out3.Views)

	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, []models.Filter{filterWithMag(5.0)}, p.filters)
}

func TestDiscreteInputBypassesDebounce(t *testing.T) {
	p := &countingPipeline{}
	c := NewController(p.run, time.Hour, time.Second)

	start := time.Now()
	out := <-c.Submit(filterWithMag(4.0), Discrete)

	require.NoError(t, out.Err)
	assert.Less(t, time.Since(start), time.Second,
		"discrete inputs must not wait out the debounce window")
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestLastWriterWins(t *testing.T) {
	var calls atomic.Int32
	pipeline := func(f models.Filter) (*render.Views, error) {
		// First query is slow, second fast, so they complete out of order.
		if calls.Add(1) == 1 {
			time.Sleep(150 * time.Millisecond)
		}
		return &render.Views{TotalMatched: int(f.MinMagnitude * 10)}, nil
	}
	c := NewController(pipeline, 0, time.Second)

	slow := c.Submit(filterWithMag(4.0), Discrete)
	time.Sleep(20 * time.Millisecond)
	fast := c.Submit(filterWithMag(6.0), Discrete)

	fastOut := <-fast
	require.NoError(t, fastOut.Err)
	assert.Equal(t, 60, fastOut.Views.TotalMatched)

	// The slow query's result arrives after a newer one rendered and must
	// be discarded, never merged.
	slowOut := <-slow
	assert.ErrorIs(t, slowOut.Err, ErrSuperseded)
}

func TestOlderQueryDeliversWhenItFinishesFirst(t *testing.T) {
	p := &countingPipeline{}
	c := NewController(p.run, 0, time.Second)

	out1 := <-c.Submit(filterWithMag(4.0), Discrete)
	out2 := <-c.Submit(filterWithMag(5.0), Discrete)

	require.NoError(t, out1.Err)
	require.NoError(t, out2.Err)
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestQueryTimeout(t *testing.T) {
	p := &countingPipeline{delay: 500 * time.Millisecond}
	c := NewController(p.run, 0, 30*time.Millisecond)

	out := <-c.Submit(filterWithMag(4.0), Discrete)
	assert.ErrorIs(t, out.Err, ErrQueryTimeout)
}

func TestPipelineErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	p := &countingPipeline{err: wantErr}
	c := NewController(p.run, 0, time.Second)

	out := <-c.Submit(filterWithMag(4.0), Discrete)
	assert.ErrorIs(t, out.Err, wantErr)
}

func TestStateReturnsToIdle(t *testing.T) {
	p := &countingPipeline{}
	c := NewController(p.run, 10*time.Millisecond, time.Second)

	assert.Equal(t, Idle, c.State())

	reply := c.Submit(filterWithMag(4.0), Continuous)
	assert.Equal(t, Pending, c.State())

	<-reply
	assert.Eventually(t, func() bool { return c.State() == Idle },
		time.Second, 5*time.Millisecond)
}

func TestManagerIsolatesSessions(t *testing.T) {
	p := &countingPipeline{}
	m := NewManager(p.run, 50*time.Millisecond, time.Second, time.Hour)

	a := m.Get("session-a")
	b := m.Get("session-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Get("session-a"))

	// A pending change in one session must not debounce away another
	// session's change.
	replyA := a.Submit(filterWithMag(4.0), Continuous)
	replyB := b.Submit(filterWithMag(5.0), Continuous)

	outA := <-replyA
	outB := <-replyB
	assert.NoError(t, outA.Err)
	assert.NoError(t, outB.Err)
	assert.Equal(t, int32(2), p.calls.Load())
}
