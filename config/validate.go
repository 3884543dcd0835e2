package config

import "fmt"

// Validate checks cfg against spec.md §6's validation rules and returns
// every violation found (not just the first), so a caller logging the
// error list sees the complete picture. An empty return means cfg is
// usable as-is.
func Validate(cfg Config) []error {
	var errs []error

	for name, weight := range cfg.RiskWeights {
		if !knownSignalTypes[name] {
			errs = append(errs, fmt.Errorf("config: riskWeights: unknown signal type %q", name))
			continue
		}
		if weight < 0 || weight > 100 {
			errs = append(errs, fmt.Errorf("config: riskWeights[%s]: weight %d out of range [0,100]", name, weight))
		}
	}

	for _, t := range []struct {
		name  string
		value int
	}{{"critical", cfg.Thresholds.Critical}, {"high", cfg.Thresholds.High}, {"medium", cfg.Thresholds.Medium}} {
		if t.value < 0 || t.value > 100 {
			errs = append(errs, fmt.Errorf("config: thresholds.%s: %d out of range [0,100]", t.name, t.value))
		}
	}
	if !(cfg.Thresholds.Critical < cfg.Thresholds.High && cfg.Thresholds.High < cfg.Thresholds.Medium) {
		errs = append(errs, fmt.Errorf(
			"config: thresholds must satisfy critical < high < medium, got critical=%d high=%d medium=%d",
			cfg.Thresholds.Critical, cfg.Thresholds.High, cfg.Thresholds.Medium))
	}

	if cfg.Performance.MaxSignals < 1 {
		errs = append(errs, fmt.Errorf("config: performance.maxSignals must be positive, got %d", cfg.Performance.MaxSignals))
	}

	if cfg.Output.Verbosity != "" && !knownVerbosity[cfg.Output.Verbosity] {
		errs = append(errs, fmt.Errorf("config: output.verbosity: unknown value %q", cfg.Output.Verbosity))
	}

	return errs
}
