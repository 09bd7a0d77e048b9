package modules_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/handler"
	"github.com/dmitrymomot/landing/modules"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, ratelimiter.Policy, string) (*ratelimiter.Result, error) {
	return nil, errors.Join(ratelimiter.ErrStoreUnavailable, errors.New("dial tcp 10.0.0.9:6379: refused"))
}

type countingObserver struct {
	allowed, denied int
}

func (o *countingObserver) ObserveAdmission(_ string, allowed bool) {
	if allowed {
		o.allowed++
	} else {
		o.denied++
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdmission_FailsClosed(t *testing.T) {
	t.Parallel()

	mw := modules.Admission{
		Limiter: brokenLimiter{},
		Policy:  ratelimiter.Policy{Name: "checkout", Limit: 5, Window: time.Minute},
	}.Middleware(handler.NewErrorResponder(nil, nil))

	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Something went wrong. Please try again later.","code":"internal_error"}`, rec.Body.String())
}

func TestAdmission_DeniesWithEnvelope(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := ratelimiter.New(store)
	require.NoError(t, err)

	obs := &countingObserver{}
	mw := modules.Admission{
		Limiter:  limiter,
		Policy:   ratelimiter.Policy{Name: "newsletter", Limit: 1, Window: time.Minute},
		KeyFunc:  func(*http.Request) string { return "same" },
		Observer: obs,
	}.Middleware(nil)
	h := mw(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"quota_exceeded"`)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, 1, obs.allowed)
	assert.Equal(t, 1, obs.denied)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	email, err := modules.NormalizeEmail("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", email)

	_, err = modules.NormalizeEmail("")
	assert.Error(t, err)

	_, err = modules.NormalizeEmail("jane@localhost")
	assert.Error(t, err)
}

func TestRouter_MountsOnlyConfigured(t *testing.T) {
	t.Parallel()

	r := modules.Router(modules.RouterOptions{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
