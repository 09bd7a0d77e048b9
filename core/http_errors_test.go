package core_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/core"
	"github.com/dmitrymomot/landing/pkg/billing"
	"github.com/dmitrymomot/landing/pkg/binder"
	"github.com/dmitrymomot/landing/pkg/newsletter"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/validator"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	validationErr := validator.Apply(validator.RequiredString("email", ""))

	tests := []struct {
		name string
		err  error
		want core.HTTPError
	}{
		{"validation rules", validationErr, core.ErrValidation},
		{"wrapped validation rules", fmt.Errorf("checkout: %w", validationErr), core.ErrValidation},
		{"missing content type", fmt.Errorf("%w: x", binder.ErrMissingContentType), core.ErrValidation},
		{"unsupported media type", binder.ErrUnsupportedMediaType, core.ErrValidation},
		{"malformed json", fmt.Errorf("%w: eof", binder.ErrFailedToParseJSON), core.ErrValidation},
		{"empty body", binder.ErrEmptyBody, core.ErrValidation},
		{"checkout empty email", billing.ErrEmptyEmail, core.ErrValidation},
		{"newsletter empty email", newsletter.ErrEmptyEmail, core.ErrValidation},
		{"body too large", fmt.Errorf("%w: max 4096 bytes", binder.ErrBodyTooLarge), core.ErrPayloadTooLarge},
		{"rate limited", ratelimiter.ErrRateLimited, core.ErrQuotaExceeded},
		{"configuration", billing.ErrConfiguration, core.ErrConfiguration},
		{"configuration wins over input", errors.Join(billing.ErrConfiguration, billing.ErrEmptyEmail), core.ErrConfiguration},
		{"provider", errors.Join(billing.ErrProvider, context.DeadlineExceeded), core.ErrProvider},
		{"storage", errors.Join(newsletter.ErrStorage, errors.New("connection reset")), core.ErrStorage},
		{"admission store down", errors.Join(ratelimiter.ErrStoreUnavailable, errors.New("dial tcp")), core.ErrInternal},
		{"unknown", errors.New("boom"), core.ErrInternal},
		{"nil", nil, core.ErrInternal},
		{"explicit http error", fmt.Errorf("route: %w", core.ErrNotFound), core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, core.Classify(tt.err))
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "quota_exceeded", core.ErrQuotaExceeded.Error())
	assert.Equal(t, http.StatusTooManyRequests, core.ErrQuotaExceeded.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, core.ErrPayloadTooLarge.Code)

	for _, e := range []core.HTTPError{core.ErrConfiguration, core.ErrProvider, core.ErrStorage, core.ErrInternal} {
		assert.Equal(t, http.StatusInternalServerError, e.Code, e.Key)
	}

	assert.True(t, core.ErrQuotaExceeded.Retryable())
	assert.True(t, core.ErrProvider.Retryable())
	assert.True(t, core.ErrStorage.Retryable())
	assert.False(t, core.ErrValidation.Retryable())
	assert.False(t, core.ErrConfiguration.Retryable())

	custom := core.NewHTTPError(http.StatusTeapot, "teapot")
	assert.Equal(t, core.HTTPError{Code: 418, Key: "teapot"}, custom)
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", custom), custom))
}
