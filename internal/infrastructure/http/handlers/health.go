package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

// Health serves the liveness and readiness probes.
type Health struct {
	started time.Time
	names   []string
	checks  map[string]PingFunc
}

// NewHealth builds the probes from named checks. Nil checks are dropped so
// optional stores can be passed unconditionally.
func NewHealth(started time.Time, checks map[string]PingFunc) *Health {
	h := &Health{started: started, checks: make(map[string]PingFunc, len(checks))}
	for name, fn := range checks {
		if fn == nil {
			continue
		}
		h.checks[name] = fn
		h.names = append(h.names, name)
	}
	sort.Strings(h.names)
	return h
}

type liveReport struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Live reports that the process is serving.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  liveReport
// @Router       /health [get]
func (h *Health) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, liveReport{
		Status: "ok",
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
	})
}

type checkReport struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type readyReport struct {
	Status string                 `json:"status"`
	Checks map[string]checkReport `json:"checks"`
}

// Ready pings every dependency concurrently and answers 503 if any fails.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readyReport
// @Failure      503  {object}  readyReport
// @Router       /health/ready [get]
func (h *Health) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		report = readyReport{Status: "ok", Checks: make(map[string]checkReport, len(h.names))}
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range h.names {
		ping := h.checks[name]
		g.Go(func() error {
			start := time.Now()
			err := ping(gctx)
			r := checkReport{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				r.Status, r.Error = "unhealthy", err.Error()
			}
			mu.Lock()
			report.Checks[name] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	code := http.StatusOK
	for _, r := range report.Checks {
		if r.Status != "ok" {
			report.Status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}
	return c.JSON(code, report)
}
