// Package bheeshma is a runtime dependency behavior monitor: installed
// into a host program, it intercepts standard-library entry points
// (environment, filesystem, network, HTTP, process) that third-party
// dependencies call, attributes each call to the responsible module, and
// turns the resulting signal buffer into risk scores, threat findings,
// and reports. See SPEC_FULL.md for the full component design.
package bheeshma

import (
	"sync"
	"time"

	"github.com/bb1nfosec/bheeshma/config"
	"github.com/bb1nfosec/bheeshma/internal/intercept"
	"github.com/bb1nfosec/bheeshma/internal/pattern"
	"github.com/bb1nfosec/bheeshma/internal/report"
	"github.com/bb1nfosec/bheeshma/internal/scoring"
	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// Version is the report wire-format version string.
const Version = "1.0"

// InstallResult reports the outcome of Install (spec.md §6).
type InstallResult struct {
	Success      bool
	Installed    []string
	Failed       []string
	ConfigErrors []error
}

// UninstallResult reports the outcome of Uninstall.
type UninstallResult struct {
	Success     bool
	Uninstalled []string
}

// MonitorOptions configures the Monitor convenience wrapper.
type MonitorOptions struct {
	Config       *config.Config
	ReportFormat report.Format
}

// MonitorResult is Monitor's return value: the error (if any) from the
// monitored function, the report built from whatever it did, and the
// Pattern Analyzer's findings over the same run.
type MonitorResult struct {
	Err     error
	Report  string
	Threats pattern.ThreatResult
}

type state struct {
	buffer  *signal.Buffer
	cfg     config.Config
	metrics *report.Metrics
}

var (
	mu      sync.Mutex
	current *state

	analyzerOnce sync.Once
	analyzer     *pattern.Analyzer
	analyzerErr  error
)

func getAnalyzer() (*pattern.Analyzer, error) {
	analyzerOnce.Do(func() {
		analyzer, analyzerErr = pattern.NewAnalyzer()
	})
	return analyzer, analyzerErr
}

// Install activates interception using cfg (nil uses config.Default()).
// Invalid configuration degrades to the default configuration; the
// validation errors are returned in ConfigErrors rather than raised,
// matching spec.md §7's "Structured" error category for install.
func Install(cfg *config.Config) InstallResult {
	mu.Lock()
	defer mu.Unlock()

	var resolved config.Config
	var configErrors []error
	if cfg == nil {
		resolved = config.Default()
	} else {
		validated, errs := config.LoadFromObject(*cfg)
		resolved = validated
		configErrors = errs
	}

	buf := signal.NewBuffer()
	metrics := report.NewMetrics()
	current = &state{buffer: buf, cfg: resolved, metrics: metrics}

	interceptCfg := intercept.Config{
		Env:       resolved.Hooks.Env,
		Fs:        resolved.Hooks.Fs,
		Net:       resolved.Hooks.Net,
		HTTP:      resolved.Hooks.HTTP,
		Exec:      resolved.Hooks.ChildProcess,
		Whitelist: resolved.Whitelist,
		Blacklist: resolved.Blacklist,
	}
	intercept.Install(buf, interceptCfg)
	if resolved.Performance.Track {
		metrics.ObserveInstall()
	}

	return InstallResult{
		Success:      true,
		Installed:    activeHookNames(interceptCfg),
		ConfigErrors: configErrors,
	}
}

// Uninstall deactivates interception and clears the monitor's state.
func Uninstall() UninstallResult {
	mu.Lock()
	defer mu.Unlock()

	var names []string
	if current != nil {
		names = activeHookNames(intercept.Config{
			Env: current.cfg.Hooks.Env, Fs: current.cfg.Hooks.Fs, Net: current.cfg.Hooks.Net,
			HTTP: current.cfg.Hooks.HTTP, Exec: current.cfg.Hooks.ChildProcess,
		})
		current.buffer.Clear()
	}
	res := intercept.Uninstall()
	current = nil
	return UninstallResult{Success: res.Uninstalled, Uninstalled: names}
}

// GetSignals returns a snapshot copy of the signal buffer. Empty if
// interception is not installed.
func GetSignals() []signal.Signal {
	mu.Lock()
	st := current
	mu.Unlock()
	if st == nil {
		return nil
	}
	return st.buffer.Snapshot()
}

// GetScores computes per-package risk scores from the current signal
// buffer using the active configuration's weights and thresholds.
func GetScores() map[signal.Identity]scoring.PackageScore {
	mu.Lock()
	st := current
	mu.Unlock()

	weights := scoring.DefaultWeights()
	thresholds := scoring.DefaultThresholds()
	var signals []signal.Signal
	if st != nil {
		signals = st.buffer.Snapshot()
		weights = weightsFromConfig(st.cfg)
		thresholds = scoring.Thresholds{
			Critical: st.cfg.Thresholds.Critical,
			High:     st.cfg.Thresholds.High,
			Medium:   st.cfg.Thresholds.Medium,
		}
	}
	return scoring.Score(signals, weights, thresholds)
}

// GenerateReport builds the report document from the current signal
// buffer and scores, rendered in format.
func GenerateReport(format report.Format) (string, error) {
	mu.Lock()
	st := current
	mu.Unlock()

	signals := GetSignals()
	scores := GetScores()
	doc := report.Build(signals, scores, time.Now())

	if st != nil && st.cfg.Performance.Track {
		st.metrics.ObserveSignals(signals)
		st.metrics.ObserveReportBuilt()
	}

	return report.Render(doc, format)
}

// AnalyzePatterns runs the Pattern Analyzer's detectors over signals.
func AnalyzePatterns(signals []signal.Signal, cfg pattern.Config) (pattern.ThreatResult, error) {
	a, err := getAnalyzer()
	if err != nil {
		return pattern.ThreatResult{}, err
	}
	return a.Analyze(signals, cfg), nil
}

// GetThreats runs the Pattern Analyzer over the current signal buffer
// using the active configuration's own detector flags (config.Patterns,
// converted by patternConfigFromConfig). Empty if interception is not
// installed or patterns.enabled is false.
func GetThreats() (pattern.ThreatResult, error) {
	mu.Lock()
	st := current
	mu.Unlock()
	if st == nil || !st.cfg.Patterns.Enabled {
		return pattern.ThreatResult{}, nil
	}
	return AnalyzePatterns(st.buffer.Snapshot(), patternConfigFromConfig(st.cfg))
}

// patternConfigFromConfig maps the wire schema's Patterns block (spec.md
// §6) to the Pattern Analyzer's detector Config. The wire schema names
// its fourth flag detectObfuscation, but spec.md §4.5 only describes four
// detector groups — crypto-miner, data exfiltration, backdoor, and
// credential theft — with no separate obfuscation detector, so
// detectObfuscation is this schema's name for the credential-theft flag.
func patternConfigFromConfig(cfg config.Config) pattern.Config {
	if !cfg.Patterns.Enabled {
		return pattern.Config{}
	}
	return pattern.Config{
		CryptoMiner:      cfg.Patterns.DetectCryptoMiners,
		DataExfiltration: cfg.Patterns.DetectDataExfiltration,
		Backdoor:         cfg.Patterns.DetectBackdoors,
		CredentialTheft:  cfg.Patterns.DetectObfuscation,
	}
}

// Monitor installs interception, runs fn, builds a report and runs
// pattern analysis, then uninstalls — the single-call convenience
// wrapper from spec.md §6. Uninstall always runs, even if fn returns an
// error, so a host using Monitor never leaks an active interception
// session.
func Monitor(fn func() error, opts MonitorOptions) (MonitorResult, error) {
	Install(opts.Config)
	defer Uninstall()

	err := fn()

	threats, threatsErr := GetThreats()
	if threatsErr != nil {
		return MonitorResult{Err: err}, threatsErr
	}

	rendered, reportErr := GenerateReport(opts.ReportFormat)
	if reportErr != nil {
		return MonitorResult{Err: err, Threats: threats}, reportErr
	}
	return MonitorResult{Err: err, Report: rendered, Threats: threats}, nil
}

func activeHookNames(cfg intercept.Config) []string {
	var names []string
	if cfg.Env {
		names = append(names, "env")
	}
	if cfg.Fs {
		names = append(names, "fs")
	}
	if cfg.Net {
		names = append(names, "net")
	}
	if cfg.HTTP {
		names = append(names, "http")
	}
	if cfg.Exec {
		names = append(names, "childProcess")
	}
	return names
}

func weightsFromConfig(cfg config.Config) scoring.Weights {
	weights := scoring.DefaultWeights()
	for name, w := range cfg.RiskWeights {
		weights[signal.Type(name)] = w
	}
	return weights
}
