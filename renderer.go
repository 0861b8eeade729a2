package supplier

import "context"

// DiscoveredLinkLimit is the maximum number of distinct outbound links kept
// from a rendered seed page.
const DiscoveredLinkLimit = 10

// RenderedPage holds what a renderer observed on a page.
type RenderedPage struct {
	URL string

	// Texts holds the trimmed, non-empty inner text of every element under
	// the document body, in document order.
	Texts []string

	// Links holds distinct anchor targets in discovery order, capped at
	// DiscoveredLinkLimit.
	Links []string
}

// Renderer renders a page (usually in a browser) and reports its visible
// text and outbound links.
type Renderer interface {
	// Render opens a rendering session, navigates to the URL and extracts
	// texts and links. The session is released before Render returns,
	// on every path. Failures are reported as ERENDER.
	Render(ctx context.Context, url string) (*RenderedPage, error)

	// Close releases long-lived resources such as the browser process.
	Close() error
}

// UniqueLinks returns the distinct non-empty hrefs in first-seen order,
// truncated to the first limit entries. A limit <= 0 disables the cap.
func UniqueLinks(hrefs []string, limit int) []string {
	seen := make(map[string]struct{}, len(hrefs))
	links := make([]string, 0, min(len(hrefs), max(limit, 0)))
	for _, href := range hrefs {
		if href == "" {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		if limit > 0 && len(links) >= limit {
			break
		}
		seen[href] = struct{}{}
		links = append(links, href)
	}
	return links
}

// Browser expressions evaluated on the rendered page. Both evaluate to an
// array of strings.
const (
	// TextsExpression collects the trimmed inner text of every element under
	// the body, skipping elements without text.
	TextsExpression = `Array.from(document.querySelectorAll("body *"), (el) => (el.innerText || "").trim()).filter((text) => text.length > 0)`

	// LinksExpression collects the resolved href of every anchor.
	LinksExpression = `Array.from(document.querySelectorAll("a"), (a) => a.href)`
)
