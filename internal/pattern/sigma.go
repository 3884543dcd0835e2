package pattern

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	sigma "github.com/bradleyjkemp/sigma-go"
	sigmaevaluator "github.com/bradleyjkemp/sigma-go/evaluator"
)

//go:embed rules/*.yml
var embeddedRules embed.FS

// compiledRule pairs a parsed Sigma rule with its compiled evaluator and
// the category (this codebase's stand-in for Sigma's Windows/Sysmon
// logsource, repurposed to select which signal category a rule applies
// to) and the finding kind/severity it produces when matched.
type compiledRule struct {
	eval     *sigmaevaluator.RuleEvaluator
	category string
	title    string
	severity Severity
}

// sigmaEngine evaluates the embedded signature rules against
// signal-derived event maps. Adapted from a Sysmon-oriented Sigma
// engine: the parse/compile/evaluate pipeline is unchanged, only
// the logsource category and event-field vocabulary are repurposed from
// Windows event log fields to this system's signal metadata fields.
type sigmaEngine struct {
	rules []compiledRule
	ctx   context.Context
}

func loadSigmaEngine() (*sigmaEngine, error) {
	entries, err := embeddedRules.ReadDir("rules")
	if err != nil {
		return nil, fmt.Errorf("read embedded rules: %w", err)
	}

	var compiled []compiledRule
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := fs.ReadFile(embeddedRules, "rules/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read rule %s: %w", entry.Name(), err)
		}
		rule, err := sigma.ParseRule(raw)
		if err != nil {
			return nil, fmt.Errorf("parse rule %s: %w", entry.Name(), err)
		}
		compiled = append(compiled, compiledRule{
			eval:     sigmaevaluator.ForRule(rule),
			category: strings.ToLower(strings.TrimSpace(rule.Logsource.Category)),
			title:    rule.Title,
			severity: Severity(strings.ToLower(strings.TrimSpace(rule.Level))),
		})
	}

	return &sigmaEngine{rules: compiled, ctx: context.Background()}, nil
}

// apply evaluates every rule whose category matches against event, and
// returns the matching rules' title/severity pairs.
func (e *sigmaEngine) apply(category string, event map[string]interface{}) []compiledRule {
	if e == nil || len(e.rules) == 0 {
		return nil
	}
	var matched []compiledRule
	for _, rule := range e.rules {
		if rule.category != category {
			continue
		}
		res, err := rule.eval.Matches(e.ctx, event)
		if err != nil {
			continue
		}
		if res.Match {
			matched = append(matched, rule)
		}
	}
	return matched
}
