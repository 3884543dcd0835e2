package pattern

import "github.com/bb1nfosec/bheeshma/pkg/signal"

// Analyzer runs the signature and correlation detectors over a signal
// buffer. Construct once with NewAnalyzer and reuse: the embedded Sigma
// rule set is parsed a single time at construction.
type Analyzer struct {
	sigma *sigmaEngine
}

// NewAnalyzer compiles the embedded Sigma rule set. Returns an error only
// if the embedded rules fail to parse, which would be a build-time defect
// in this codebase rather than a runtime condition a host can trigger.
func NewAnalyzer() (*Analyzer, error) {
	engine, err := loadSigmaEngine()
	if err != nil {
		return nil, err
	}
	return &Analyzer{sigma: engine}, nil
}

// Analyze runs every enabled detector group against signals and rolls the
// findings up into a ThreatResult.
func (a *Analyzer) Analyze(signals []signal.Signal, cfg Config) ThreatResult {
	var findings []ThreatFinding
	findings = append(findings, runSignatureDetectors(a.sigma, signals, cfg)...)
	if cfg.DataExfiltration {
		findings = append(findings, runCorrelationDetector(signals)...)
	}
	return ThreatResult{
		Findings:        findings,
		TotalFindings:   len(findings),
		HighestSeverity: highestSeverity(findings),
	}
}

// highestSeverity implements spec.md §4.5's summary rule: critical if any
// crypto-miner or backdoor finding exists; else high if any exfiltration
// or credential finding exists; else medium if any finding exists; else
// none.
func highestSeverity(findings []ThreatFinding) Severity {
	if len(findings) == 0 {
		return SeverityNone
	}
	hasCriticalGroup := false
	hasHighGroup := false
	for _, f := range findings {
		switch f.Kind {
		case KindCryptoMinerProcess, KindCryptoMinerPool, KindCryptoMinerEnv,
			KindBackdoorReverseShell, KindBackdoorRATTool, KindBackdoorSuspiciousPort:
			hasCriticalGroup = true
		case KindExfiltrationHTTP, KindSensitiveFilePlusHTTP, KindCredentialEnv, KindCredentialFile:
			hasHighGroup = true
		}
	}
	switch {
	case hasCriticalGroup:
		return SeverityCritical
	case hasHighGroup:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
