package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/pkg/validator"
)

func TestRequiredString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"non-empty", "a", true},
		{"empty", "", false},
		{"whitespace only", " \t\n", false},
		{"padded", "  a  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, validator.RequiredString("f", tt.value).Check())
		})
	}
}

func TestMaxLenString(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MaxLenString("f", strings.Repeat("a", 320), 320).Check())
	assert.False(t, validator.MaxLenString("f", strings.Repeat("a", 321), 320).Check())
	assert.True(t, validator.MaxLenString("f", "", 0).Check())

	// Counts characters, not bytes.
	assert.True(t, validator.MaxLenString("f", "ééé", 3).Check())

	rule := validator.MaxLenString("email", "x", 320)
	assert.Equal(t, "validation.max_length", rule.Error.TranslationKey)
	assert.Equal(t, 320, rule.Error.TranslationValues["max"])
	assert.Equal(t, "must be at most 320 characters long", rule.Error.Message)
}
