package goquery_test

import (
	"testing"

	"github.com/fwojciec/supplier"
	"github.com/fwojciec/supplier/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyPage = `<!DOCTYPE html>
<html>
<head>
	<title>Acme Widgets</title>
	<style>body { color: red; }</style>
	<script>var tracking = "secret";</script>
</head>
<body>
	<h1>Welcome   to Acme</h1>
	<script>console.log("inline")</script>
	<p>
		We build
		precision widgets.
	</p>
	<a href="/about">About</a>
	<a href="contact#form">Contact</a>
	<a href="https://facebook.com/acme">Facebook</a>
	<a href="mailto:sales@acme.example">Email</a>
	<a href="javascript:void(0)">Menu</a>
	<a href="/about">About again</a>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns title and normalized body text", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(companyPage)

		require.NoError(t, err)
		assert.Equal(t, "Acme Widgets", result.Title)
		assert.Contains(t, result.Text, "Welcome to Acme We build precision widgets.")
		assert.NotContains(t, result.Text, "inline")
		assert.NotContains(t, result.Text, "color: red")
		assert.NotContains(t, result.Text, "  ")
	})

	t.Run("returns empty title when page has none", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract("<html><body><p>Only body</p></body></html>")

		require.NoError(t, err)
		assert.Empty(t, result.Title)
		assert.Equal(t, "Only body", result.Text)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, supplier.EINVALID, supplier.ErrorCode(err))
	})
}

func TestExtractTexts(t *testing.T) {
	t.Parallel()

	texts, err := goquery.ExtractTexts(companyPage)

	require.NoError(t, err)
	assert.Contains(t, texts, "Welcome   to Acme")
	assert.Contains(t, texts, "About")
	for _, text := range texts {
		assert.NotEmpty(t, text)
		assert.NotContains(t, text, "inline")
	}
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves anchors and skips non-HTTP links", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractLinks(companyPage, "https://acme.example/home/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://acme.example/about",
			"https://acme.example/home/contact#form",
			"https://facebook.com/acme",
			"https://acme.example/about",
		}, links)
	})

	t.Run("honours base element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><base href="https://cdn.acme.example/site/"></head><body><a href="products">Products</a></body></html>`

		links, err := goquery.ExtractLinks(html, "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.acme.example/site/products"}, links)
	})

	t.Run("rejects invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractLinks(companyPage, "://bad")

		require.Error(t, err)
		assert.Equal(t, supplier.EINVALID, supplier.ErrorCode(err))
	})
}
