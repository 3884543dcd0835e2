// Package pattern implements the threat detectors described in spec.md
// §4.5: signature checks for crypto-mining and backdoor behavior, and a
// cross-signal correlation check for data exfiltration.
package pattern

import "github.com/bb1nfosec/bheeshma/pkg/signal"

// Severity is a finding's threat level.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityNone     Severity = "none"
)

// Kind identifies which detector/rule produced a finding.
type Kind string

const (
	KindCryptoMinerProcess     Kind = "CryptoMinerProcess"
	KindCryptoMinerPool        Kind = "CryptoMinerPool"
	KindCryptoMinerEnv         Kind = "CryptoMinerEnv"
	KindExfiltrationHTTP       Kind = "ExfiltrationHttp"
	KindSensitiveFilePlusHTTP  Kind = "SensitiveFilePlusHttp"
	KindBackdoorReverseShell   Kind = "BackdoorReverseShell"
	KindBackdoorRATTool        Kind = "BackdoorRatTool"
	KindBackdoorSuspiciousPort Kind = "BackdoorSuspiciousPort"
	KindCredentialEnv          Kind = "CredentialEnv"
	KindCredentialFile         Kind = "CredentialFile"
)

// ThreatFinding is one detector hit, attributable to the package whose
// signal triggered it.
type ThreatFinding struct {
	Kind     Kind
	Severity Severity
	Package  signal.Identity
	Detail   string
	Evidence []string
}

// Config enables/disables each detector group independently (spec.md §6).
type Config struct {
	CryptoMiner      bool
	DataExfiltration bool
	Backdoor         bool
	CredentialTheft  bool
}

// AllEnabled returns a Config with every detector active.
func AllEnabled() Config {
	return Config{CryptoMiner: true, DataExfiltration: true, Backdoor: true, CredentialTheft: true}
}

// ThreatResult is the Pattern Analyzer's output.
type ThreatResult struct {
	Findings        []ThreatFinding
	TotalFindings   int
	HighestSeverity Severity
}
