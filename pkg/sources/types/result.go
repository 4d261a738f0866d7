package types

import (
	"fmt"
	"strings"
)

// Result is a normalized post listing.
// Either field may be empty when the upstream record was missing or failed to load.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (r Result) IsEmpty() bool {
	return r.Title == "" && r.URL == ""
}

func (r Result) String() string {
	if r.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("* \t %s: %s", r.Title, r.URL)
}

// RenderResults formats a header line followed by one line per result.
func RenderResults(header string, results []Result) string {
	out := strings.Builder{}
	out.WriteString(header)
	out.WriteString("\n")
	for _, r := range results {
		out.WriteString(r.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ResultsToMap maps titles to urls. Later duplicates win, empty results are skipped.
func ResultsToMap(results []Result) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		if r.IsEmpty() {
			continue
		}
		out[r.Title] = r.URL
	}
	return out
}
