package crawl

import (
	"fmt"
	"strings"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatSummary renders a one-line report of a finished crawl. Failure
// counters are only listed when non-zero.
func FormatSummary(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Visited %d %s, discovered %d", r.Visited, plural(r.Visited, "page", "pages"), r.Discovered)

	var failures []string
	if r.FetchFailed > 0 {
		failures = append(failures, fmt.Sprintf("%d fetch failed", r.FetchFailed))
	}
	if r.SaveFailed > 0 {
		failures = append(failures, fmt.Sprintf("%d save failed", r.SaveFailed))
	}
	if r.InvalidHrefs > 0 {
		failures = append(failures, fmt.Sprintf("%d invalid %s", r.InvalidHrefs, plural(r.InvalidHrefs, "href", "hrefs")))
	}
	if len(failures) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(failures, ", "))
		b.WriteString(")")
	}

	if r.Stopped {
		b.WriteString("; stopped with links pending")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
