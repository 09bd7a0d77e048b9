package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/landing/pkg/logger"
)

// Health statuses reported by the probe handlers.
const (
	StatusAlive       = "alive"
	StatusReady       = "ready"
	StatusUnavailable = "unavailable"
)

// DefaultCheckTimeout bounds a single readiness run when no timeout is given.
const DefaultCheckTimeout = 2 * time.Second

// Check is a named dependency probe, e.g. a database ping.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// HealthReport is the JSON body written by the probe handlers.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler reports that the process is up. It never touches dependencies.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeReport(w, http.StatusOK, HealthReport{Status: StatusAlive})
	}
}

// ReadinessHandler runs every check concurrently under a shared timeout.
// It answers 200 when all pass and 503 otherwise. Failure details are
// logged, never returned to the client.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		var (
			mu     sync.Mutex
			wg     sync.WaitGroup
			failed bool
		)
		report := HealthReport{Status: StatusReady, Checks: make(map[string]string, len(checks))}

		for _, c := range checks {
			wg.Add(1)
			go func(c Check) {
				defer wg.Done()
				err := c.Probe(ctx)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed = true
					report.Checks[c.Name] = "fail"
					log.ErrorContext(ctx, "readiness check failed",
						logger.Component("httpserver"),
						slog.String("check", c.Name),
						logger.Error(err),
					)
					return
				}
				report.Checks[c.Name] = "ok"
			}(c)
		}
		wg.Wait()

		status := http.StatusOK
		if failed {
			status = http.StatusServiceUnavailable
			report.Status = StatusUnavailable
		}
		writeReport(w, status, report)
	}
}

func writeReport(w http.ResponseWriter, status int, report HealthReport) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}
