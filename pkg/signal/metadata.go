package signal

// Metadata holds the type-specific fields attached to a Signal. Only the
// keys relevant to the signal's Type are populated; values are sanitized
// by the interception layer before a Signal is constructed (secret values
// are never captured here, only names/paths/hosts/ports/templates).
type Metadata struct {
	Variable   string            // EnvAccess
	Path       string            // FsRead / FsWrite
	Operation  string            // FsRead / FsWrite / ShellExec: originating API name
	Host       string            // NetConnect / HttpRequest / HttpsRequest
	Port       int               // NetConnect / HttpRequest / HttpsRequest
	Protocol   string            // NetConnect: tcp|http|https
	URL        string            // HttpRequest / HttpsRequest
	Method     string            // HttpRequest / HttpsRequest
	URLPath    string            // HttpRequest / HttpsRequest
	Headers    map[string]string // HttpRequest / HttpsRequest: keys present, values redacted
	Suspicious *Suspicious       // HttpRequest / HttpsRequest
	Command    string            // ShellExec: sanitized command template
}

// Suspicious is the heuristic subrecord attached to HTTP(S) signals.
type Suspicious struct {
	IsIPAddress     bool     `json:"isIpAddress"`
	SuspiciousTLD   bool     `json:"suspiciousTld"`
	NonStandardPort bool     `json:"nonStandardPort"`
	PastebinLike    bool     `json:"pastebinLike"`
	Indicators      []string `json:"indicators"`
}

// maxMetadataStringLen is the report-projection truncation threshold from
// spec.md §4.1.
const maxMetadataStringLen = 500

const truncationSuffix = "…[TRUNCATED]"

// truncate shortens s to maxMetadataStringLen runes, appending the
// truncation marker, if it exceeds the limit.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMetadataStringLen {
		return s
	}
	return string(r[:maxMetadataStringLen]) + truncationSuffix
}

// validate enforces the required-metadata-per-type table from spec.md §3.
// Called once at construction time; invalid combinations are an
// implementation bug in the interception layer, not a runtime condition a
// host can trigger, so callers treat a non-nil error as fatal (see
// signal.New).
func (m Metadata) validate(t Type) error {
	switch t {
	case EnvAccess:
		if m.Variable == "" {
			return errMissingField(t, "variable")
		}
	case FsRead, FsWrite:
		if m.Path == "" {
			return errMissingField(t, "path")
		}
		if m.Operation == "" {
			return errMissingField(t, "operation")
		}
	case NetConnect:
		if m.Host == "" {
			return errMissingField(t, "host")
		}
		switch m.Protocol {
		case "tcp", "http", "https":
		default:
			return errInvalidField(t, "protocol", m.Protocol)
		}
	case HttpRequest, HttpsRequest:
		if m.URL == "" {
			return errMissingField(t, "url")
		}
		if m.Method == "" {
			return errMissingField(t, "method")
		}
		if m.Host == "" {
			return errMissingField(t, "host")
		}
	case ShellExec:
		if m.Command == "" {
			return errMissingField(t, "command")
		}
		if m.Operation == "" {
			return errMissingField(t, "operation")
		}
	default:
		return errUnknownType(t)
	}
	return nil
}

// projected returns a copy of m with the stack-adjacent fields truncated
// per the report projection rules in spec.md §4.1 and §6 (allowed metadata
// keys are exactly variable/path/operation/host/port/protocol/command for
// the wire format; url/method/urlPath/headers/suspicious travel alongside
// for the richer structured view but are dropped by the wire-format
// projector in internal/report).
func (m Metadata) projected() Metadata {
	out := m
	out.Path = truncate(m.Path)
	out.Command = truncate(m.Command)
	out.URL = truncate(m.URL)
	return out
}
