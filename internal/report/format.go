package report

import "fmt"

// Format selects a report rendering, spec.md §6's `generateReport(format
// ∈ {"cli","json"})`.
type Format string

const (
	FormatCLI  Format = "cli"
	FormatJSON Format = "json"
)

// Render dispatches doc to the requested rendering.
func Render(doc Document, format Format) (string, error) {
	switch format {
	case FormatCLI, "":
		return RenderText(doc), nil
	case FormatJSON:
		return RenderJSON(doc)
	default:
		return "", fmt.Errorf("report: unknown format %q", format)
	}
}
