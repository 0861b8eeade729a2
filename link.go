package supplier

import "strings"

// BlockedDomains lists substrings that exclude a link from harvesting.
// Matching is a case-sensitive substring test on the whole URL.
var BlockedDomains = []string{"facebook", "twitter", "instagram", "youtube"}

// FilterLinks returns the links that contain none of the BlockedDomains
// substrings, preserving order. The input slice is not modified.
func FilterLinks(links []string) []string {
	filtered := make([]string, 0, len(links))
	for _, link := range links {
		if isBlocked(link) {
			continue
		}
		filtered = append(filtered, link)
	}
	return filtered
}

func isBlocked(link string) bool {
	for _, domain := range BlockedDomains {
		if strings.Contains(link, domain) {
			return true
		}
	}
	return false
}
