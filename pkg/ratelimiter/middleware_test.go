package ratelimiter_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/ratelimiter"
)

type recordingObserver struct {
	mu        sync.Mutex
	decisions []bool
}

func (o *recordingObserver) ObserveAdmission(_ string, allowed bool) {
	o.mu.Lock()
	o.decisions = append(o.decisions, allowed)
	o.mu.Unlock()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	policy := ratelimiter.Policy{Name: "checkout", Limit: 2, Window: time.Minute}

	t.Run("panics on misconfiguration", func(t *testing.T) {
		t.Parallel()
		limiter, _ := newLimiter(t)

		assert.Panics(t, func() { ratelimiter.Middleware(limiter, policy, nil) })
		assert.Panics(t, func() { ratelimiter.Middleware(nil, policy, ratelimiter.ClientIP) })
		assert.Panics(t, func() {
			ratelimiter.Middleware(limiter, ratelimiter.Policy{Limit: 1}, ratelimiter.ClientIP)
		})
	})

	t.Run("headers and 429", func(t *testing.T) {
		t.Parallel()
		limiter, _ := newLimiter(t)
		obs := &recordingObserver{}

		handler := ratelimiter.Middleware(limiter, policy, ratelimiter.ClientIP,
			ratelimiter.WithObserver(obs),
		)(okHandler())

		for i := range 2 {
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(1-i), rec.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, strconv.FormatInt(epoch.Add(time.Minute).Unix(), 10), rec.Header().Get("X-RateLimit-Reset"))
		}

		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []bool{true, true, false}, obs.decisions)

		// A different client is unaffected.
		req = httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("custom limit handler", func(t *testing.T) {
		t.Parallel()
		limiter, _ := newLimiter(t)

		var called bool
		handler := ratelimiter.Middleware(limiter, ratelimiter.Policy{Name: "n", Limit: 0, Window: time.Minute},
			ratelimiter.ClientIP,
			ratelimiter.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, res *ratelimiter.Result) {
				called = true
				w.WriteHeader(http.StatusTeapot)
			}),
		)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("store failure is not admitted", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimiter.New(failingStore{})
		require.NoError(t, err)

		var gotErr error
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})
		handler := ratelimiter.Middleware(limiter, policy, ratelimiter.ClientIP,
			ratelimiter.WithOnError(func(w http.ResponseWriter, r *http.Request, err error) {
				gotErr = err
				w.WriteHeader(http.StatusInternalServerError)
			}),
		)(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.ErrorIs(t, gotErr, ratelimiter.ErrStoreUnavailable)
	})

	t.Run("empty key shares the unknown bucket", func(t *testing.T) {
		t.Parallel()
		limiter, _ := newLimiter(t)

		handler := ratelimiter.Middleware(limiter, ratelimiter.Policy{Name: "u", Limit: 1, Window: time.Minute},
			func(*http.Request) string { return "" },
		)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestMiddleware_LogsDenial(t *testing.T) {
	t.Parallel()
	limiter, _ := newLimiter(t)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := ratelimiter.Middleware(limiter, ratelimiter.Policy{Name: "checkout", Limit: 1, Window: time.Minute},
		func(*http.Request) string { return "203.0.113.7" },
		ratelimiter.WithLogger(log),
	)(okHandler())

	for range 2 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request rate limited", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "checkout", entry["policy"])
	assert.Equal(t, "203.0.113.7", entry["client_ip"])
}
