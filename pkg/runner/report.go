package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/serology/pkg/domain"
)

// ConclusionMarkdown renders a conclusion view as a markdown report listing
// the answers that led to it. Question views yield an empty string.
func ConclusionMarkdown(title string, view domain.View) string {
	if !view.IsConclusion() {
		return ""
	}

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	fmt.Fprintf(&b, "## %s\n\n", view.Text)

	if len(view.Findings) > 0 {
		b.WriteString("| # | Marker | Result |\n")
		b.WriteString("|---|--------|--------|\n")
		for i, f := range view.Findings {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, f.Label, f.Selection)
		}
		b.WriteString("\n")
	}
	return b.String()
}
