package pattern

import (
	"strings"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// sensitiveFileSubstrings mirrors credential_file.yml's path list: the
// correlation detector needs the same substrings as a plain Go slice
// since, unlike the signature detectors, it must tally matches across
// the whole buffer rather than evaluate one event at a time.
var sensitiveFileSubstrings = []string{
	".npmrc", ".env", ".aws/credentials", ".ssh/id_rsa", ".ssh/id_ed25519", ".docker/config.json",
}

// runCorrelationDetector implements spec.md §4.5's data-exfiltration
// correlation: any package with at least one sensitive-file FsRead AND at
// least one HTTP(S) request anywhere in the buffer gets a critical
// SensitiveFilePlusHttp finding listing the sensitive files observed.
func runCorrelationDetector(buffer []signal.Signal) []ThreatFinding {
	sensitiveReads := make(map[signal.Identity][]string)
	hasHTTP := make(map[signal.Identity]bool)

	for _, s := range buffer {
		switch s.Type() {
		case signal.FsRead:
			path := s.Metadata().Path
			for _, substr := range sensitiveFileSubstrings {
				if strings.Contains(path, substr) {
					sensitiveReads[s.Package()] = append(sensitiveReads[s.Package()], path)
					break
				}
			}
		case signal.HttpRequest, signal.HttpsRequest:
			hasHTTP[s.Package()] = true
		}
	}

	var findings []ThreatFinding
	for pkg, files := range sensitiveReads {
		if !hasHTTP[pkg] {
			continue
		}
		findings = append(findings, ThreatFinding{
			Kind:     KindSensitiveFilePlusHTTP,
			Severity: SeverityCritical,
			Package:  pkg,
			Detail:   "sensitive file read and outbound HTTP(S) request by the same package",
			Evidence: files,
		})
	}
	return findings
}
