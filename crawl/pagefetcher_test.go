package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/supplier"
	"github.com/fwojciec/supplier/crawl"
	"github.com/fwojciec/supplier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFetcher_FetchText(t *testing.T) {
	t.Parallel()

	t.Run("joins title and normalized text", func(t *testing.T) {
		t.Parallel()

		p := &crawl.PageFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*supplier.ExtractResult, error) {
					return &supplier.ExtractResult{Title: "About", Text: "  We make\n\twidgets  "}, nil
				},
			},
		}

		text, err := p.FetchText(context.Background(), "https://acme.example/about")

		require.NoError(t, err)
		assert.Equal(t, "About We make widgets", text)
	})

	t.Run("wraps fetch failure as EFETCH", func(t *testing.T) {
		t.Parallel()

		p := &crawl.PageFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
			Extractor: &mock.Extractor{},
		}

		_, err := p.FetchText(context.Background(), "https://acme.example/about")

		require.Error(t, err)
		assert.Equal(t, supplier.EFETCH, supplier.ErrorCode(err))
		assert.Contains(t, supplier.ErrorMessage(err), "connection refused")
	})

	t.Run("wraps extract failure as EFETCH", func(t *testing.T) {
		t.Parallel()

		p := &crawl.PageFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*supplier.ExtractResult, error) {
					return nil, errors.New("bad html")
				},
			},
		}

		_, err := p.FetchText(context.Background(), "https://acme.example/about")

		require.Error(t, err)
		assert.Equal(t, supplier.EFETCH, supplier.ErrorCode(err))
	})
}
