package newsletter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/handler"
	"github.com/dmitrymomot/landing/modules"
	"github.com/dmitrymomot/landing/modules/newsletter"
	"github.com/dmitrymomot/landing/pkg/i18n"
	subscriptions "github.com/dmitrymomot/landing/pkg/newsletter"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
)

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Data    struct {
		Message string `json:"message"`
		Email   string `json:"email"`
	} `json:"data"`
}

func newRouter(t *testing.T, resolver newsletter.Resolver, limit int, messages handler.Messages) http.Handler {
	t.Helper()

	store := ratelimiter.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := ratelimiter.New(store)
	require.NoError(t, err)

	svc := newsletter.NewService(
		newsletter.Config{},
		resolver,
		modules.Admission{
			Limiter: limiter,
			Policy:  ratelimiter.Policy{Name: "newsletter", Limit: limit, Window: time.Minute},
		},
		handler.NewErrorResponder(nil, messages),
		messages,
	)
	return modules.Router(modules.RouterOptions{Newsletter: svc})
}

func post(t *testing.T, h http.Handler, ip, body string, header ...string) response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":1234"
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var res response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	if res.Success {
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	return res
}

func TestSubscribe_AllOutcomesLookTheSame(t *testing.T) {
	t.Parallel()

	store := subscriptions.NewMemoryStore()
	resolver := subscriptions.NewResolver(store)
	h := newRouter(t, resolver, 100, nil)

	first := post(t, h, "10.0.0.1", `{"email":"Reader@Example.com"}`)
	require.True(t, first.Success)
	assert.Equal(t, "reader@example.com", first.Data.Email)
	assert.NotEmpty(t, first.Data.Message)

	again := post(t, h, "10.0.0.1", `{"email":"reader@example.com"}`)
	assert.Equal(t, first, again)

	lapsed := subscriptions.NewSubscriber("lapsed@example.com", time.Now().Add(-time.Hour))
	lapsed.Active = false
	deactivatedAt := time.Now().Add(-time.Minute)
	lapsed.DeactivatedAt = &deactivatedAt
	_, err := store.Insert(context.Background(), lapsed)
	require.NoError(t, err)

	reactivated := post(t, h, "10.0.0.1", `{"email":"lapsed@example.com"}`)
	require.True(t, reactivated.Success)
	assert.Equal(t, first.Data.Message, reactivated.Data.Message)

	sub, err := store.FindByEmail(context.Background(), "lapsed@example.com")
	require.NoError(t, err)
	assert.True(t, sub.Active)
	assert.Nil(t, sub.DeactivatedAt)
	assert.Equal(t, 2, store.Len())
}

func TestSubscribe_ConcurrentFirstTime(t *testing.T) {
	t.Parallel()

	store := subscriptions.NewMemoryStore()
	h := newRouter(t, subscriptions.NewResolver(store), 100, nil)

	const n = 20
	var wg sync.WaitGroup
	results := make([]response, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = post(t, h, "10.0.0.2", `{"email":"race@example.com"}`)
		}()
	}
	wg.Wait()

	for _, res := range results {
		assert.True(t, res.Success)
		assert.Equal(t, "race@example.com", res.Data.Email)
	}
	assert.Equal(t, 1, store.Len())
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (subscriptions.Result, error) {
	return subscriptions.Result{}, errors.Join(subscriptions.ErrStorage, errors.New("pq: connection reset by 10.1.2.3"))
}

func TestSubscribe_StorageFailure(t *testing.T) {
	t.Parallel()

	h := newRouter(t, failingResolver{}, 5, nil)
	res := post(t, h, "10.0.0.3", `{"email":"reader@example.com"}`)

	assert.False(t, res.Success)
	assert.Equal(t, "storage_error", res.Code)
	assert.NotContains(t, res.Error, "10.1.2.3")
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	t.Parallel()

	h := newRouter(t, subscriptions.NewResolver(subscriptions.NewMemoryStore()), 5, nil)
	res := post(t, h, "10.0.0.4", `{"email":"nope"}`)

	assert.False(t, res.Success)
	assert.Equal(t, "validation_error", res.Code)
}

func TestSubscribe_RateLimited(t *testing.T) {
	t.Parallel()

	store := subscriptions.NewMemoryStore()
	h := newRouter(t, subscriptions.NewResolver(store), 2, nil)

	assert.True(t, post(t, h, "10.0.0.5", `{"email":"a@example.com"}`).Success)
	assert.True(t, post(t, h, "10.0.0.5", `{"email":"b@example.com"}`).Success)

	res := post(t, h, "10.0.0.5", `{"email":"c@example.com"}`)
	assert.False(t, res.Success)
	assert.Equal(t, "quota_exceeded", res.Code)
	assert.Equal(t, 2, store.Len(), "denied request must not mutate storage")
}

func TestSubscribe_OtherMethodsKeepQuota(t *testing.T) {
	t.Parallel()

	store := subscriptions.NewMemoryStore()
	h := newRouter(t, subscriptions.NewResolver(store), 1, nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/newsletter", nil)
		req.RemoteAddr = "10.0.0.6:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}

	assert.True(t, post(t, h, "10.0.0.6", `{"email":"a@example.com"}`).Success)
	assert.Equal(t, "quota_exceeded", post(t, h, "10.0.0.6", `{"email":"b@example.com"}`).Code)
}

func TestSubscribe_LocalizedMessages(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("en:\n  newsletter:\n    subscribed: \"Thanks for subscribing!\"\n  errors:\n    validation_error: \"Please enter a valid email address.\"\n")},
		"locales/de.yaml": {Data: []byte("de:\n  newsletter:\n    subscribed: \"Danke für dein Abo!\"\n  errors:\n    validation_error: \"Bitte gib eine gültige E-Mail-Adresse ein.\"\n")},
	}
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "locales"))
	require.NoError(t, err)

	h := i18n.Middleware(i18n.DefaultLangExtractor(tr.Matcher()))(
		newRouter(t, subscriptions.NewResolver(subscriptions.NewMemoryStore()), 10, tr),
	)

	res := post(t, h, "10.0.0.6", `{"email":"reader@example.com"}`, "Accept-Language", "de-DE,de;q=0.9")
	assert.Equal(t, "Danke für dein Abo!", res.Data.Message)

	res = post(t, h, "10.0.0.6", `{"email":"bad"}`, "Accept-Language", "de")
	assert.Equal(t, "Bitte gib eine gültige E-Mail-Adresse ein.", res.Error)

	res = post(t, h, "10.0.0.6", `{"email":"reader@example.com"}`)
	assert.Equal(t, "Thanks for subscribing!", res.Data.Message)
}
