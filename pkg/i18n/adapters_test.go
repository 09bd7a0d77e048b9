package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/i18n"
)

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	t.Run("merges files", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"a.yaml": {Data: []byte("en:\n  a: one\n")},
			"b.yaml": {Data: []byte("en:\n  b: two\nes:\n  a: uno\n")},
		}
		got, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "one", "b": "two"}, got["en"])
		assert.Equal(t, map[string]any{"a": "uno"}, got["es"])
	})

	t.Run("no supported files", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"a.json": {Data: []byte(`{}`)}}
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, ".").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslationSrc)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fstest.MapFS{}, "locales").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"a.yaml": {Data: []byte("en: [unterminated")}}
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, ".").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("language must be a map", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"a.yaml": {Data: []byte("en: hello\n")}}
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, ".").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fstest.MapFS{}, ".").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestYAMLParser_SupportsFileExtension(t *testing.T) {
	t.Parallel()

	p := i18n.NewYAMLParser()
	assert.True(t, p.SupportsFileExtension(".yaml"))
	assert.True(t, p.SupportsFileExtension("YML"))
	assert.False(t, p.SupportsFileExtension(".json"))
	assert.False(t, p.SupportsFileExtension(""))
}
