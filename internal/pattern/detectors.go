package pattern

import (
	"strings"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// sigmaKind maps a matched rule's title to the finding Kind exposed to
// callers. The embedded rule set is small and fixed, so a direct lookup
// table is clearer than deriving the kind from the rule file name.
var sigmaKind = map[string]Kind{
	"Cryptomining process execution":                           KindCryptoMinerProcess,
	"Connection to known mining pool domain":                   KindCryptoMinerPool,
	"Mining-related environment variable access":                KindCryptoMinerEnv,
	"Reverse shell command pattern":                             KindBackdoorReverseShell,
	"Remote access/tunneling tool invocation":                   KindBackdoorRATTool,
	"Connection to a well-known backdoor port":                  KindBackdoorSuspiciousPort,
	"Access to a known secret-bearing environment variable":     KindCredentialEnv,
	"Read of a known credential file":                           KindCredentialFile,
	"Outbound request to a known exfiltration-friendly service": KindExfiltrationHTTP,
}

// runSignatureDetectors evaluates every embedded Sigma rule against each
// signal in buffer. Several rule categories are shared by more than one
// detector group (shellexec carries both crypto-miner and backdoor
// rules), so gating happens per matched rule's own Kind via kindEnabled,
// not per category — each of the four detector groups in cfg must be
// independently toggleable per spec.md §4.5.
func runSignatureDetectors(engine *sigmaEngine, buffer []signal.Signal, cfg Config) []ThreatFinding {
	var findings []ThreatFinding
	for _, s := range buffer {
		category, event := eventFor(s)
		if category == "" {
			continue
		}
		for _, rule := range engine.apply(category, event) {
			kind, ok := sigmaKind[rule.title]
			if !ok || !kindEnabled(kind, cfg) {
				continue
			}
			findings = append(findings, ThreatFinding{
				Kind:     kind,
				Severity: rule.severity,
				Package:  s.Package(),
				Detail:   rule.title,
				Evidence: []string{eventEvidence(s)},
			})
		}
	}
	return findings
}

// kindEnabled reports whether the detector group that owns kind is
// active in cfg.
func kindEnabled(kind Kind, cfg Config) bool {
	switch kind {
	case KindCryptoMinerProcess, KindCryptoMinerPool, KindCryptoMinerEnv:
		return cfg.CryptoMiner
	case KindBackdoorReverseShell, KindBackdoorRATTool, KindBackdoorSuspiciousPort:
		return cfg.Backdoor
	case KindCredentialEnv, KindCredentialFile:
		return cfg.CredentialTheft
	case KindExfiltrationHTTP:
		return cfg.DataExfiltration
	default:
		return false
	}
}

// eventFor converts a signal into the (category, event-map) shape the
// Sigma evaluator expects: a flat map of field name to value, keyed by
// the same field vocabulary the embedded rules reference.
func eventFor(s signal.Signal) (string, map[string]interface{}) {
	md := s.Metadata()
	switch s.Type() {
	case signal.ShellExec:
		return "shellexec", map[string]interface{}{"CommandLine": strings.ToLower(md.Command)}
	case signal.NetConnect:
		return "net", map[string]interface{}{"Port": md.Port, "Host": md.Host}
	case signal.HttpRequest, signal.HttpsRequest:
		return "http", map[string]interface{}{"Url": strings.ToLower(md.URL)}
	case signal.EnvAccess:
		return "env", map[string]interface{}{"EnvVar": md.Variable}
	case signal.FsRead:
		return "fsread", map[string]interface{}{"Path": md.Path}
	default:
		return "", nil
	}
}

func eventEvidence(s signal.Signal) string {
	md := s.Metadata()
	switch s.Type() {
	case signal.ShellExec:
		return md.Command
	case signal.NetConnect:
		return md.Host
	case signal.HttpRequest, signal.HttpsRequest:
		return md.URL
	case signal.EnvAccess:
		return md.Variable
	case signal.FsRead:
		return md.Path
	default:
		return ""
	}
}
