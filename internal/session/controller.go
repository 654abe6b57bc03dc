package session

import (
	"errors"
	"sync"
	"time"

	"github.com/quakemap/quake-backend-go/internal/models"
	"github.com/quakemap/quake-backend-go/internal/render"
)

var (
	// ErrSuperseded reports that a newer filter change replaced this
	// submission, either before its debounce window elapsed or before its
	// query result came back. The caller keeps its previous render.
	ErrSuperseded = errors.New("submission superseded by a newer filter change")

	// ErrQueryTimeout reports a query that exceeded the configured bound.
	// It is transient; the prior render stays intact.
	ErrQueryTimeout = errors.New("query timed out")
)

// State is the controller's position in its interaction cycle.
type State int

const (
	Idle State = iota
	Pending
	Querying
)

// InputKind distinguishes continuous controls (slider drag, map pan), which
// are debounced, from discrete ones (a single click), which query
// immediately.
type InputKind int

const (
	Continuous InputKind = iota
	Discrete
)

// Pipeline runs one filter through build, execute and compose.
type Pipeline func(f models.Filter) (*render.Views, error)

// Outcome is the single reply to one submission.
type Outcome struct {
	Views *render.Views
	Err   error
}

// Controller coalesces one session's filter changes into queries. Rapid
// continuous changes within the debounce window collapse into a single
// query using the newest filter; results arriving after a newer filter has
// already been rendered are discarded (last-writer-wins). In-flight queries
// are never aborted, only their results dropped.
type Controller struct {
	pipeline Pipeline
	debounce time.Duration
	timeout  time.Duration

	mu        sync.Mutex
	state     State
	timer     *time.Timer
	seq       uint64 // last assigned submission sequence
	pending   *submission
	inFlight  int
	delivered uint64 // highest sequence rendered so far
	touched   time.Time
}

type submission struct {
	seq    uint64
	filter models.Filter
	reply  chan Outcome
}

// NewController creates a controller for one session.
func NewController(pipeline Pipeline, debounce, timeout time.Duration) *Controller {
	return &Controller{
		pipeline: pipeline,
		debounce: debounce,
		timeout:  timeout,
		touched:  time.Now(),
	}
}

// Submit records a filter change and returns a channel that receives
// exactly one outcome: the rendered views if this submission won, or
// ErrSuperseded / ErrQueryTimeout / a pipeline error otherwise.
func (c *Controller) Submit(f models.Filter, kind InputKind) <-chan Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touched = time.Now()
	c.seq++
	sub := &submission{seq: c.seq, filter: f, reply: make(chan Outcome, 1)}

	// A not-yet-fired pending submission loses to this one outright.
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.pending != nil {
		c.pending.reply <- Outcome{Err: ErrSuperseded}
		c.pending = nil
	}

	if kind == Discrete || c.debounce <= 0 {
		c.startQueryLocked(sub)
		return sub.reply
	}

	c.pending = sub
	c.state = Pending
	c.timer = time.AfterFunc(c.debounce, func() { c.fire(sub) })
	return sub.reply
}

// fire moves a debounced submission into Querying once its window elapses
// without a newer change.
func (c *Controller) fire(sub *submission) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != sub {
		return // superseded while the timer was firing
	}
	c.pending = nil
	c.timer = nil
	c.startQueryLocked(sub)
}

func (c *Controller) startQueryLocked(sub *submission) {
	c.state = Querying
	c.inFlight++
	go c.runQuery(sub)
}

func (c *Controller) runQuery(sub *submission) {
	type result struct {
		views *render.Views
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := c.pipeline(sub.filter)
		done <- result{v, err}
	}()

	var out Outcome
	select {
	case r := <-done:
		out = Outcome{Views: r.views, Err: r.err}
	case <-time.After(c.timeout):
		out = Outcome{Err: ErrQueryTimeout}
	}

	c.mu.Lock()
	c.inFlight--
	if c.inFlight == 0 && c.pending == nil {
		c.state = Idle
	}
	if out.Err == nil {
		if sub.seq > c.delivered {
			c.delivered = sub.seq
		} else {
			// A newer filter already rendered; drop this stale result.
			out = Outcome{Err: ErrSuperseded}
		}
	}
	c.mu.Unlock()

	sub.reply <- out
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IdleSince reports the last time this session submitted a change.
func (c *Controller) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}
