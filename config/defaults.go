package config

// Default returns the built-in configuration used whenever discovery
// finds nothing and no caller override is supplied, and as the fallback
// target when validation fails (spec.md §6/§7 "Structured" errors).
func Default() Config {
	return Config{
		Hooks: Hooks{Env: true, Fs: true, Net: true, ChildProcess: true, HTTP: true},
		RiskWeights: map[string]int{
			"ShellExec":    20,
			"FsWrite":      10,
			"HttpRequest":  10,
			"NetConnect":   8,
			"HttpsRequest": 8,
			"EnvAccess":    5,
			"FsRead":       3,
		},
		Thresholds: Thresholds{Critical: 30, High: 60, Medium: 80},
		Whitelist:  nil,
		Blacklist:  nil,
		Patterns: Patterns{
			Enabled:                true,
			DetectCryptoMiners:     true,
			DetectDataExfiltration: true,
			DetectBackdoors:        true,
			DetectObfuscation:      false,
		},
		Performance: Performance{Track: false, MaxSignals: 10000},
		Output: Output{
			Formats:            []string{"cli"},
			Verbosity:          "normal",
			IncludeStackTraces: false,
		},
	}
}

// discoveryFileNames is the fixed priority order spec.md §6 specifies for
// locating a config file in the current working directory.
var discoveryFileNames = []string{
	".bheeshmarc.json",
	".bheeshmarc",
	"bheeshma.config.json",
	"bheeshma.config.js",
}
