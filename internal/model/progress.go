package model

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Stage texts shown under the progress bar.
const (
	StageStarting   = "Starting competitive analysis..."
	StageAnalyzing  = "Analyzing competitor websites and extracting UI/UX metrics..."
	StageFinalizing = "Finalizing competitive analysis results..."

	// ActivityComplete replaces a current_url that reports completion.
	ActivityComplete = "✅ Analysis complete"

	// activityAnalyzingPrefix precedes the hostname being analyzed.
	activityAnalyzingPrefix = "🔍 Analyzing: "
)

// Progress is the display state derived from a job's counters.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`

	// Summary reads "<completed> of <total> websites analyzed".
	Summary string `json:"summary"`

	// Activity describes what the server is doing right now.
	// It is empty when the server sent no activity text.
	Activity string `json:"activity,omitempty"`

	// Stage is one of StageStarting, StageAnalyzing or StageFinalizing.
	Stage string `json:"stage"`
}

// RenderProgress is the progress rendering policy.
// It is a pure function of the three values reported by the server.
func RenderProgress(completed, total int, currentURL string) Progress {
	return Progress{
		Completed: completed,
		Total:     total,
		Percent:   Percent(completed, total),
		Summary:   fmt.Sprintf("%d of %d websites analyzed", completed, total),
		Activity:  Activity(currentURL),
		Stage:     Stage(completed, total),
	}
}

// Percent returns completed/total*100, or 0 when total is not positive.
// The result is clamped to [0, 100].
func Percent(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(completed) / float64(total) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// Activity turns the server's current_url into display text.
func Activity(currentURL string) string {
	switch {
	case currentURL == "":
		return ""
	case strings.HasPrefix(currentURL, "Completed") || strings.Contains(currentURL, "completed"):
		return ActivityComplete
	case strings.HasPrefix(currentURL, "http"):
		return activityAnalyzingPrefix + Hostname(currentURL)
	default:
		return currentURL
	}
}

// Stage picks the stage text for the given counters.
func Stage(completed, total int) string {
	switch {
	case total > 0 && completed == total:
		return StageFinalizing
	case completed > 0:
		return StageAnalyzing
	default:
		return StageStarting
	}
}

// Hostname returns the display hostname of rawURL without a leading "www.".
// Punycode labels are converted to Unicode. When rawURL has no hostname it is
// returned unchanged.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	display, err := idna.Display.ToUnicode(host)
	if err != nil {
		return host
	}
	return display
}

// Bar renders the percentage as a fixed-width ASCII bar such as
// "[##########..........]".
func (p Progress) Bar(width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := int(p.Percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
