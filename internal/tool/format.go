package tool

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kitbuilder587/kagi-search/internal/search"
)

const (
	MsgNoCredential = "Error: No Kagi API key found. Provide it via plugin config, KAGI_API_KEY env var, or ~/.config/kagi/api_key file."

	untitled = "Untitled"
)

// FormatResults renders organic results as a numbered list followed by the
// count/latency/balance footer. results must be non-empty.
func FormatResults(results []search.SearchResult, meta search.Meta) string {
	var sb strings.Builder

	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		title := r.Title
		if title == "" {
			title = untitled
		}
		sb.WriteString(fmt.Sprintf("%d. **%s**\n   %s", i+1, title, r.URL))
		if r.Snippet != "" {
			sb.WriteString("\n   " + r.Snippet)
		}
		if r.Published != "" {
			sb.WriteString("\n   Published: " + r.Published)
		}
	}

	sb.WriteString(fmt.Sprintf("\n\n---\n_Kagi Search · %d results · %sms · balance: $%.2f_",
		len(results),
		strconv.FormatFloat(meta.Ms, 'f', -1, 64),
		roundCents(meta.APIBalance),
	))
	return sb.String()
}

// %.2f округляет половину к чётному, нам нужно 9.125 -> 9.13
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func FormatNoResults(query string) string {
	return `No results found for "` + query + `"`
}

func FormatStatusError(e *search.StatusError) string {
	detail := e.Body
	if detail == "" {
		detail = e.Status
	}
	return fmt.Sprintf("Kagi API error %d: %s", e.StatusCode, detail)
}

func FormatAPIErrors(e search.APIErrors) string {
	return "Kagi API error: " + strings.Join(e.Messages(), "; ")
}

func FormatFailure(err error) string {
	return "Kagi search failed: " + err.Error()
}
