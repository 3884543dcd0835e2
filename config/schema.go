// Package config implements the monitor's external configuration schema
// (spec.md §6): discovery from disk, caller-provided overrides,
// validation with fallback to defaults, and the JSON wire shape used by
// `.bheeshmarc.json` and its sibling filenames.
package config

// Config is the root configuration object, matching spec.md §6's schema
// field-for-field.
type Config struct {
	Hooks       Hooks          `json:"hooks"`
	RiskWeights map[string]int `json:"riskWeights"`
	Thresholds  Thresholds     `json:"thresholds"`
	Whitelist   []string       `json:"whitelist"`
	Blacklist   []string       `json:"blacklist"`
	Patterns    Patterns       `json:"patterns"`
	Performance Performance    `json:"performance"`
	Output      Output         `json:"output"`
}

// Hooks toggles each interception hook independently.
type Hooks struct {
	Env          bool `json:"env"`
	Fs           bool `json:"fs"`
	Net          bool `json:"net"`
	ChildProcess bool `json:"childProcess"`
	HTTP         bool `json:"http"`
}

// Thresholds is the risk-tier boundary configuration (spec.md §4.4/§6).
// Field names follow the wire schema, not the tier names: Medium is the
// score at/above which a package is LOW risk.
type Thresholds struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

// Patterns toggles the Pattern Analyzer's detector groups.
type Patterns struct {
	Enabled                bool `json:"enabled"`
	DetectCryptoMiners     bool `json:"detectCryptoMiners"`
	DetectDataExfiltration bool `json:"detectDataExfiltration"`
	DetectBackdoors        bool `json:"detectBackdoors"`
	DetectObfuscation      bool `json:"detectObfuscation"`
}

// Performance controls in-process metrics and buffer sizing.
type Performance struct {
	Track      bool `json:"track"`
	MaxSignals int  `json:"maxSignals"`
}

// Output controls report rendering.
type Output struct {
	Formats            []string `json:"formats"`
	Verbosity          string   `json:"verbosity"`
	IncludeStackTraces bool     `json:"includeStackTraces"`
}

// knownSignalTypes is the closed set of signal type names valid as
// riskWeights keys, matching pkg/signal.Type's enum.
var knownSignalTypes = map[string]bool{
	"EnvAccess":    true,
	"FsRead":       true,
	"FsWrite":      true,
	"NetConnect":   true,
	"HttpRequest":  true,
	"HttpsRequest": true,
	"ShellExec":    true,
}

// knownVerbosity is the closed set of valid Output.Verbosity values.
var knownVerbosity = map[string]bool{"quiet": true, "normal": true, "verbose": true}
