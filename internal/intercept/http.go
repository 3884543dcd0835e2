package intercept

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

var httpClientDo = func(c *http.Client, req *http.Request) (*http.Response, error) {
	return c.Do(req)
}

// HTTPView is the monitored facade over outbound HTTP(S) requests
// (spec.md §4.3's "HTTP/HTTPS hook"). Do is the single entry point; Get
// and Post are convenience wrappers matching the standard library's own
// package-level helpers.
type HTTPView struct {
	client *http.Client
}

// HTTP returns a monitored facade wrapping client. A nil client uses
// http.DefaultClient.
func HTTP(client *http.Client) HTTPView {
	if client == nil {
		client = http.DefaultClient
	}
	return HTTPView{client: client}
}

func (h HTTPView) Do(req *http.Request) (*http.Response, error) {
	resp, err := httpClientDo(h.client, req)
	emitHTTP(req)
	return resp, err
}

func (h HTTPView) Get(url string) (*http.Response, error) {
	req, reqErr := http.NewRequest(http.MethodGet, url, nil)
	if reqErr != nil {
		return nil, reqErr
	}
	return h.Do(req)
}

func (h HTTPView) Post(u, contentType string, body io.Reader) (*http.Response, error) {
	req, reqErr := http.NewRequest(http.MethodPost, u, body)
	if reqErr != nil {
		return nil, reqErr
	}
	req.Header.Set("Content-Type", contentType)
	return h.Do(req)
}

var ipv4Pattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

var suspiciousTLDs = []string{".tk", ".ml", ".ga", ".cf", ".gq", ".xyz"}

var pastebinHosts = []string{"pastebin.com", "paste.ee", "hastebin.com", "dpaste.com"}

var standardPorts = map[int]bool{80: true, 443: true, 8080: true}

func emitHTTP(req *http.Request) {
	if req == nil || req.URL == nil {
		return
	}
	typ := signal.HttpRequest
	defaultPort := 80
	if req.URL.Scheme == "https" {
		typ = signal.HttpsRequest
		defaultPort = 443
	}

	host, port := hostPort(req.URL, defaultPort)
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := make(map[string]string, len(req.Header))
	for name, values := range req.Header {
		headers[name] = redactHeaderValue(name, strings.Join(values, ","))
	}

	meta := signal.Metadata{
		URL:        req.URL.String(),
		Method:     method,
		Host:       host,
		Port:       port,
		URLPath:    req.URL.Path,
		Headers:    headers,
		Suspicious: suspiciousness(host, port),
	}
	emit(typ, meta, 2, cfgHTTP())
}

func hostPort(u *url.URL, defaultPort int) (string, int) {
	host := u.Hostname()
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return host, n
		}
	}
	return host, defaultPort
}

// redactHeaderValue implements spec.md §4.3's header redaction: a header
// whose lowercase name contains "auth", "token", or "key" becomes
// [REDACTED]; every other header's value becomes [PRESENT] (values are
// never captured, only the fact that the header exists).
func redactHeaderValue(name, _ string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "auth") || strings.Contains(lower, "token") || strings.Contains(lower, "key") {
		return "[REDACTED]"
	}
	return "[PRESENT]"
}

// suspiciousness computes the HTTP suspiciousness heuristic subrecord per
// spec.md §4.3, independent checks each contributing to Indicators.
func suspiciousness(host string, port int) *signal.Suspicious {
	s := &signal.Suspicious{}

	if ipv4Pattern.MatchString(host) {
		s.IsIPAddress = true
		s.Indicators = append(s.Indicators, "Direct IP request")
	}
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			s.SuspiciousTLD = true
			s.Indicators = append(s.Indicators, "Suspicious TLD: "+tld)
			break
		}
	}
	if !standardPorts[port] {
		s.NonStandardPort = true
		s.Indicators = append(s.Indicators, "Non-standard port: "+strconv.Itoa(port))
	}
	for _, p := range pastebinHosts {
		if strings.Contains(host, p) {
			s.PastebinLike = true
			s.Indicators = append(s.Indicators, "Paste-service-like host: "+host)
			break
		}
	}
	return s
}
