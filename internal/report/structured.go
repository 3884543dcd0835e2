// Package report builds the two report projections over a scored signal
// buffer described in spec.md §4.7: a structured JSON wire format and an
// equivalent human-readable text rendering.
package report

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/bb1nfosec/bheeshma/internal/scoring"
	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

const wireVersion = "1.0"

// Document is the structured (JSON) report shape, spec.md §6's "Report
// wire format".
type Document struct {
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	Summary   Summary         `json:"summary"`
	Packages  []PackageReport `json:"packages"`
	Signals   []SignalReport  `json:"signals"`
}

// Summary aggregates package and signal counts plus a risk histogram.
type Summary struct {
	TotalPackages    int              `json:"totalPackages"`
	TotalSignals     int              `json:"totalSignals"`
	RiskDistribution RiskDistribution `json:"riskDistribution"`
}

// RiskDistribution counts packages per risk tier.
type RiskDistribution struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// PackageReport is one dependency's scored summary.
type PackageReport struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	TrustScore  int            `json:"trustScore"`
	RiskLevel   string         `json:"riskLevel"`
	SignalCount int            `json:"signalCount"`
	Behaviors   map[string]int `json:"behaviors"`
}

// SignalReport is one projected signal entry.
type SignalReport struct {
	Timestamp string         `json:"timestamp"`
	Type      string         `json:"type"`
	Package   string         `json:"package"`
	Version   string         `json:"version"`
	Metadata  map[string]any `json:"metadata"`
}

// Build assembles a Document from the signal buffer and its scores.
// Packages are sorted ascending by score, i.e. highest risk first, per
// spec.md §4.7. now is injected rather than read from time.Now directly
// so report generation stays deterministic under test.
func Build(signals []signal.Signal, scores map[signal.Identity]scoring.PackageScore, now time.Time) Document {
	doc := Document{
		Version:   wireVersion,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	attributedCount := 0
	for _, s := range signals {
		attributedCount++
		doc.Signals = append(doc.Signals, projectSignal(s))
	}

	ids := make([]signal.Identity, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := scores[ids[i]], scores[ids[j]]
		if si.Score != sj.Score {
			return si.Score < sj.Score
		}
		return ids[i].Key() < ids[j].Key()
	})

	dist := RiskDistribution{}
	for _, id := range ids {
		ps := scores[id]
		doc.Packages = append(doc.Packages, PackageReport{
			Name:        id.Name,
			Version:     id.Version,
			TrustScore:  ps.Score,
			RiskLevel:   string(ps.Tier),
			SignalCount: sumStats(ps.Stats),
			Behaviors:   statsToBehaviors(ps.Stats),
		})
		switch ps.Tier {
		case scoring.Critical:
			dist.Critical++
		case scoring.High:
			dist.High++
		case scoring.Medium:
			dist.Medium++
		case scoring.Low:
			dist.Low++
		}
	}

	doc.Summary = Summary{
		TotalPackages:    len(ids),
		TotalSignals:     attributedCount,
		RiskDistribution: dist,
	}
	return doc
}

// projectSignal keeps only the closed projection set spec.md §6 names:
// variable, path, operation, host, port, protocol, command. url, method,
// urlPath, headers, and suspicious are richer fields this module tracks
// internally but are not part of the wire format.
func projectSignal(s signal.Signal) SignalReport {
	md := s.Projected()
	meta := make(map[string]any)
	if md.Variable != "" {
		meta["variable"] = md.Variable
	}
	if md.Path != "" {
		meta["path"] = md.Path
	}
	if md.Operation != "" {
		meta["operation"] = md.Operation
	}
	if md.Host != "" {
		meta["host"] = md.Host
	}
	if md.Port != 0 {
		meta["port"] = md.Port
	}
	if md.Protocol != "" {
		meta["protocol"] = md.Protocol
	}
	if md.Command != "" {
		meta["command"] = md.Command
	}

	return SignalReport{
		Timestamp: s.Timestamp().UTC().Format(time.RFC3339),
		Type:      string(s.Type()),
		Package:   s.Package().Name,
		Version:   s.Package().Version,
		Metadata:  meta,
	}
}

func sumStats(stats map[signal.Type]int) int {
	total := 0
	for _, n := range stats {
		total += n
	}
	return total
}

func statsToBehaviors(stats map[signal.Type]int) map[string]int {
	out := make(map[string]int, len(stats))
	for t, n := range stats {
		out[string(t)] = n
	}
	return out
}

// RenderJSON serializes doc as indented JSON, matching spec.md §6's
// "json" output format.
func RenderJSON(doc Document) (string, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
