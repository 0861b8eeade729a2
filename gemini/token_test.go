package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/supplier"
	"github.com/fwojciec/supplier/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter(t *testing.T) {
	t.Parallel()

	// An empty model selects the default tokenizer.
	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ supplier.TokenCounter = tc
	ctx := context.Background()

	t.Run("an empty corpus has no tokens", func(t *testing.T) {
		t.Parallel()

		n, err := tc.CountTokens(ctx, "")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("counts grow with the corpus", func(t *testing.T) {
		t.Parallel()

		fragment := " About Acme Precision sheet metal fabrication in Austin, Texas."
		one, err := tc.CountTokens(ctx, fragment)
		require.NoError(t, err)
		require.Positive(t, one)

		three, err := tc.CountTokens(ctx, strings.Repeat(fragment, 3))
		require.NoError(t, err)
		assert.Greater(t, three, one)
	})

	t.Run("a prompt counts more than its template", func(t *testing.T) {
		t.Parallel()

		prompt, err := tc.CountMessages(ctx, supplier.ExtractionMessages("Acme machines aerospace parts in Dayton."))
		require.NoError(t, err)

		template, err := tc.CountTokens(ctx, supplier.ExtractionTemplate)
		require.NoError(t, err)

		assert.Greater(t, prompt, template)
	})

	t.Run("no messages count as zero", func(t *testing.T) {
		t.Parallel()

		n, err := tc.CountMessages(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-gemini-model")
	require.Error(t, err)
}
