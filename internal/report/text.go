package report

import (
	"fmt"
	"sort"
	"strings"
)

// RenderText renders doc as human-readable lines grouped by package in
// the same highest-risk-first order as the structured view (spec.md
// §4.7's "text view").
func RenderText(doc Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "bheeshma report v%s — %s\n", doc.Version, doc.Timestamp)
	fmt.Fprintf(&b, "packages: %d   signals: %d\n", doc.Summary.TotalPackages, doc.Summary.TotalSignals)
	fmt.Fprintf(&b, "risk distribution: critical=%d high=%d medium=%d low=%d\n\n",
		doc.Summary.RiskDistribution.Critical, doc.Summary.RiskDistribution.High,
		doc.Summary.RiskDistribution.Medium, doc.Summary.RiskDistribution.Low)

	if len(doc.Packages) == 0 {
		b.WriteString("no attributed packages observed\n")
		return b.String()
	}

	for _, pkg := range doc.Packages {
		fmt.Fprintf(&b, "%s@%s  score=%d  risk=%s  signals=%d\n", pkg.Name, pkg.Version, pkg.TrustScore, pkg.RiskLevel, pkg.SignalCount)
		for _, typ := range sortedTypeKeys(pkg.Behaviors) {
			fmt.Fprintf(&b, "  %-14s %d\n", typ, pkg.Behaviors[typ])
		}
	}

	return b.String()
}

func sortedTypeKeys(behaviors map[string]int) []string {
	keys := make([]string, 0, len(behaviors))
	for k := range behaviors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
