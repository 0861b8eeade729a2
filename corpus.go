package supplier

import (
	"context"
	"strings"
	"unicode/utf8"
)

// CorpusLimit is the maximum number of characters in an aggregated corpus.
const CorpusLimit = 10000

// Aggregator harvests text from a set of links and merges it into a corpus.
type Aggregator interface {
	// Aggregate fetches every link concurrently and returns the merged text of
	// the pages that succeeded, truncated to CorpusLimit. Per-link failures are
	// dropped; an empty corpus is a valid result. When ctx ends first, the
	// corpus of the links that already succeeded is returned with ctx's error.
	Aggregate(ctx context.Context, links []string) (corpus string, err error)
}

// NormalizeSpace collapses every run of whitespace to a single space and
// trims the result.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fragment builds the text contributed by one page: its title followed by
// its normalized body text.
func Fragment(title, text string) string {
	return title + " " + NormalizeSpace(text)
}

// Truncate returns the first n characters of s. Truncating a string that is
// already at most n characters long returns it unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
