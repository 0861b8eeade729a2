package supplier_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/supplier"
	"github.com/stretchr/testify/assert"
)

func TestFilterLinks(t *testing.T) {
	t.Parallel()

	t.Run("removes social media links", func(t *testing.T) {
		t.Parallel()

		links := []string{
			"https://acme.example/about",
			"https://www.facebook.com/acme",
			"https://twitter.com/acme",
			"https://acme.example/contact",
			"https://instagram.com/acme",
			"https://www.youtube.com/@acme",
		}

		got := supplier.FilterLinks(links)

		assert.Equal(t, []string{
			"https://acme.example/about",
			"https://acme.example/contact",
		}, got)
	})

	t.Run("never returns blocked links and never grows", func(t *testing.T) {
		t.Parallel()

		sets := [][]string{
			nil,
			{"https://a.example"},
			{"https://youtube.com/x", "https://youtube.com/y"},
			{"https://a.example/facebook-page", "https://b.example", "https://twitter.example"},
		}
		for _, links := range sets {
			got := supplier.FilterLinks(links)

			assert.LessOrEqual(t, len(got), len(links))
			for _, link := range got {
				for _, blocked := range supplier.BlockedDomains {
					assert.False(t, strings.Contains(link, blocked), "link %q contains %q", link, blocked)
				}
			}
		}
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		t.Parallel()

		got := supplier.FilterLinks([]string{"https://FACEBOOK.com/acme"})

		assert.Equal(t, []string{"https://FACEBOOK.com/acme"}, got)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, supplier.FilterLinks(nil))
	})
}

func TestUniqueLinks(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates preserving first occurrence order", func(t *testing.T) {
		t.Parallel()

		got := supplier.UniqueLinks([]string{"b", "a", "b", "c", "a"}, 10)

		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("caps to the first distinct links", func(t *testing.T) {
		t.Parallel()

		var hrefs []string
		for i := 0; i < 15; i++ {
			hrefs = append(hrefs, string(rune('a'+i)), string(rune('a'+i)))
		}

		got := supplier.UniqueLinks(hrefs, supplier.DiscoveredLinkLimit)

		assert.Len(t, got, supplier.DiscoveredLinkLimit)
		assert.Equal(t, "a", got[0])
		assert.Equal(t, "j", got[9])
	})

	t.Run("skips empty hrefs", func(t *testing.T) {
		t.Parallel()

		got := supplier.UniqueLinks([]string{"", "a", ""}, 10)

		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("non-positive limit disables the cap", func(t *testing.T) {
		t.Parallel()

		got := supplier.UniqueLinks([]string{"a", "b", "c"}, 0)

		assert.Equal(t, []string{"a", "b", "c"}, got)
	})
}
