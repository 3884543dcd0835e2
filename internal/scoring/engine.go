// Package scoring reduces a signal buffer to a per-package risk score. It
// is a pure function over its inputs (spec.md §4.4): no streaming state,
// no cooldown windows — unlike a streaming, windowed scorer, which this
// package deliberately does not generalize from (see DESIGN.md).
package scoring

import "github.com/bb1nfosec/bheeshma/pkg/signal"

// Weights maps a signal type to the points subtracted from a package's
// score for each occurrence.
type Weights map[signal.Type]int

// DefaultWeights returns spec.md §4.4's default weight table.
func DefaultWeights() Weights {
	return Weights{
		signal.ShellExec:    20,
		signal.FsWrite:      10,
		signal.HttpRequest:  10,
		signal.NetConnect:   8,
		signal.HttpsRequest: 8,
		signal.EnvAccess:    5,
		signal.FsRead:       3,
	}
}

// PackageScore is the scoring result for one dependency.
type PackageScore struct {
	Package signal.Identity
	Score   int
	Tier    Tier
	Stats   map[signal.Type]int
}

// Score groups signals by attributed package and computes each package's
// score per spec.md §4.4's algorithm: start at 100, subtract the weight
// of each signal's type in order, floor at 0 and stop subtracting once
// the floor is hit (the short-circuit is an optimization only — once at
// 0, further subtractions would stay 0 — so it never changes the result).
// Unattributed signals cannot occur here: signal.Signal always carries an
// attributed Package, per the interception layer's attribution-filtering
// invariant.
func Score(signals []signal.Signal, weights Weights, thresholds Thresholds) map[signal.Identity]PackageScore {
	type accumulator struct {
		score int
		floor bool
		stats map[signal.Type]int
	}
	byPackage := make(map[signal.Identity]*accumulator)

	for _, s := range signals {
		id := s.Package()
		acc, ok := byPackage[id]
		if !ok {
			acc = &accumulator{score: 100, stats: make(map[signal.Type]int)}
			byPackage[id] = acc
		}
		acc.stats[s.Type()]++
		if acc.floor {
			continue
		}
		acc.score -= weights[s.Type()]
		if acc.score <= 0 {
			acc.score = 0
			acc.floor = true
		}
	}

	out := make(map[signal.Identity]PackageScore, len(byPackage))
	for id, acc := range byPackage {
		out[id] = PackageScore{
			Package: id,
			Score:   acc.score,
			Tier:    thresholds.classify(acc.score),
			Stats:   acc.stats,
		}
	}
	return out
}
