package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quakemap/quake-backend-go/internal/metrics"
	"github.com/quakemap/quake-backend-go/internal/middleware"
	"github.com/quakemap/quake-backend-go/internal/query"
	"github.com/quakemap/quake-backend-go/internal/render"
	"github.com/quakemap/quake-backend-go/internal/service"
	"github.com/quakemap/quake-backend-go/internal/session"
	"github.com/quakemap/quake-backend-go/pkg/response"
)

// QuakeHandler serves the page shell and the filter fragments.
type QuakeHandler struct {
	svc      *service.QuakeService
	sessions *session.Manager
	metrics  *metrics.Metrics
}

// NewQuakeHandler creates a new quake handler.
func NewQuakeHandler(svc *service.QuakeService, sessions *session.Manager, m *metrics.Metrics) *QuakeHandler {
	return &QuakeHandler{
		svc:      svc,
		sessions: sessions,
		metrics:  m,
	}
}

// Index handles GET /. It renders the full page with the default filter
// (last 30 days, M4+, world viewport).
func (h *QuakeHandler) Index(c *gin.Context) {
	f := h.svc.DefaultFilter(time.Now().UTC())

	var views *render.Views
	if h.svc.Ready() {
		v, err := h.svc.Query(f)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		views = v
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Views":     views,
		"Loading":   views == nil,
		"DateRange": h.svc.DateRange(),
		"Filters": gin.H{
			"StartDate": f.TimeRange.Start.Format(time.DateOnly),
			"EndDate":   f.TimeRange.End.Format(time.DateOnly),
			"MinMag":    f.MinMagnitude,
		},
	})
}

// Quakes handles GET /quakes. One request is one filter-change event: it is
// debounced per session, queried, and answered with the marker fragment
// plus out-of-band table and stats fragments. A submission that loses to a
// newer one gets 204 so the client keeps its current render.
func (h *QuakeHandler) Quakes(c *gin.Context) {
	f, kind, err := parseFilter(c)
	if err != nil {
		h.count("invalid")
		inlineError(c, err.Error())
		return
	}
	// Reject malformed bounds before a query is issued; Build re-validates.
	if err := query.Validate(f); err != nil {
		h.count("invalid")
		inlineError(c, err.Error())
		return
	}

	ctrl := h.sessions.Get(middleware.SessionID(c))
	start := time.Now()
	out := <-ctrl.Submit(f, kind)
	h.observe(out, time.Since(start))

	switch {
	case out.Err == nil:
		c.HTML(http.StatusOK, "quakes.html", out.Views)
	case errors.Is(out.Err, session.ErrSuperseded):
		c.Status(http.StatusNoContent)
	case errors.Is(out.Err, query.ErrInvalidFilter):
		inlineError(c, out.Err.Error())
	case errors.Is(out.Err, query.ErrStoreNotReady):
		// Transient startup race: show a loading notice that re-polls once
		// the dataset should be in.
		c.Header("HX-Reswap", "none")
		c.HTML(http.StatusOK, "loading.html", gin.H{
			"RetryURL": c.Request.URL.RequestURI(),
		})
	case errors.Is(out.Err, session.ErrQueryTimeout):
		c.Header("HX-Reswap", "none")
		c.HTML(http.StatusOK, "toast.html", gin.H{
			"Message": "The query took too long. Showing previous results.",
		})
	default:
		c.Header("HX-Reswap", "none")
		c.HTML(http.StatusOK, "toast.html", gin.H{
			"Message": "Something went wrong. Showing previous results.",
		})
	}
}

// Health handles GET /health.
func (h *QuakeHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"ready":  h.svc.Ready(),
		"events": h.svc.EventCount(),
	})
}

// inlineError reports a filter problem next to the controls without
// touching the current markers or table.
func inlineError(c *gin.Context, msg string) {
	c.Header("HX-Reswap", "none")
	c.HTML(http.StatusOK, "filter_error.html", gin.H{"Message": msg})
}

func (h *QuakeHandler) observe(out session.Outcome, took time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.QueryDuration.Observe(took.Seconds())
	h.count(outcomeLabel(out.Err))
	if out.Err == nil {
		h.metrics.ResultSize.Observe(float64(out.Views.Shown()))
	}
}

func (h *QuakeHandler) count(outcome string) {
	if h.metrics != nil {
		h.metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, session.ErrSuperseded):
		return "superseded"
	case errors.Is(err, session.ErrQueryTimeout):
		return "timeout"
	case errors.Is(err, query.ErrInvalidFilter):
		return "invalid"
	case errors.Is(err, query.ErrStoreNotReady):
		return "not_ready"
	default:
		return "error"
	}
}
