package intercept

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// Since signal.CaptureStack records *actual* runtime frames (this test
// binary's own call stack), exercising real attribution end-to-end would
// require a call site that genuinely lives under vendor/ or pkg/mod/.
// These tests instead verify the two properties that don't require a
// resolvable frame: passthrough behavior and the install/uninstall
// round-trip. Attribution resolution itself is covered by
// internal/attribution's own tests.

func TestUninstallIsIdempotentWhenNeverInstalled(t *testing.T) {
	current = nil
	res := Uninstall()
	if res.Uninstalled {
		t.Fatalf("expected Uninstalled=false when nothing was installed")
	}
}

func TestInstallUninstallRoundTrip(t *testing.T) {
	buf := signal.NewBuffer()
	Install(buf, AllEnabled())
	if !Installed() {
		t.Fatalf("expected Installed() true after Install")
	}
	Env().Getenv("PATH")
	Uninstall()
	if Installed() {
		t.Fatalf("expected Installed() false after Uninstall")
	}
	// No frame in this test binary resolves to a dependency, so no signal
	// should have been appended even while installed.
	if buf.Len() != 0 {
		t.Fatalf("expected zero signals without a resolvable stack, got %d", buf.Len())
	}
	// The wrapped binding itself is never reassigned by Install/Uninstall,
	// so a subsequent call after Uninstall still forwards correctly.
	if v := Env().Getenv("PATH"); v == "" {
		t.Skip("PATH not set in test environment")
	}
}

func TestDisabledHookEmitsNoSignal(t *testing.T) {
	buf := signal.NewBuffer()
	Install(buf, Config{}) // every hook off
	Env().Getenv("HOME")
	Fs().ReadFile(os.DevNull)
	if buf.Len() != 0 {
		t.Fatalf("expected no signals with all hooks disabled, got %d", buf.Len())
	}
	Uninstall()
}

func TestAllowedByListsBlacklistBlocksMatch(t *testing.T) {
	cfg := Config{Blacklist: []string{"evil-*"}}
	if allowedByLists(cfg, "evil-lib") {
		t.Fatalf("expected evil-lib blocked by blacklist")
	}
	if !allowedByLists(cfg, "good-lib") {
		t.Fatalf("expected good-lib unaffected by an unrelated blacklist pattern")
	}
}

func TestAllowedByListsWhitelistRestrictsToMatch(t *testing.T) {
	cfg := Config{Whitelist: []string{"good-*"}}
	if !allowedByLists(cfg, "good-lib") {
		t.Fatalf("expected good-lib allowed by whitelist")
	}
	if allowedByLists(cfg, "other-lib") {
		t.Fatalf("expected other-lib blocked, it matches no whitelist pattern")
	}
}

func TestAllowedByListsEmptyWhitelistAllowsEverything(t *testing.T) {
	if !allowedByLists(Config{}, "anything") {
		t.Fatalf("expected an empty whitelist to allow any package name")
	}
}

func TestAllowedByListsBlacklistOverridesWhitelist(t *testing.T) {
	cfg := Config{Whitelist: []string{"lib-*"}, Blacklist: []string{"lib-bad"}}
	if allowedByLists(cfg, "lib-bad") {
		t.Fatalf("expected blacklist to win when a name matches both lists")
	}
	if !allowedByLists(cfg, "lib-good") {
		t.Fatalf("expected lib-good still allowed by the whitelist")
	}
}

func TestFsViewForwardsReturnValue(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bheeshma-test")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	f.Close()
	if err := os.WriteFile(f.Name(), []byte("hello"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	Uninstall() // ensure no context installed
	data, err := Fs().ReadFile(f.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestHTTPSuspiciousHeuristic(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://192.168.1.100:8080/x", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	host, port := hostPort(req.URL, 80)
	s := suspiciousness(host, port)
	if !s.IsIPAddress {
		t.Fatalf("expected IsIPAddress true")
	}
	if !s.NonStandardPort {
		t.Fatalf("expected NonStandardPort true for port %d", port)
	}
	found := map[string]bool{}
	for _, ind := range s.Indicators {
		found[ind] = true
	}
	if !found["Direct IP request"] {
		t.Fatalf("expected indicator 'Direct IP request', got %v", s.Indicators)
	}
	if !found["Non-standard port: 8080"] {
		t.Fatalf("expected indicator 'Non-standard port: 8080', got %v", s.Indicators)
	}
}

func TestHeaderRedaction(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Authorization", "[REDACTED]"},
		{"X-Api-Token", "[REDACTED]"},
		{"X-Secret-Key", "[REDACTED]"},
		{"Content-Type", "[PRESENT]"},
	}
	for _, c := range cases {
		if got := redactHeaderValue(c.name, "super-secret-value"); got != c.want {
			t.Fatalf("redactHeaderValue(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestSanitizeCommandRedactsFlagsAndEnvAssignments(t *testing.T) {
	cmd := "deploy --password=hunter2 --token hunter3 AWS_SECRET=shhh run"
	out := sanitizeCommand(cmd)
	for _, secret := range []string{"hunter2", "hunter3", "shhh"} {
		if contains(out, secret) {
			t.Fatalf("sanitized command %q still contains secret %q", out, secret)
		}
	}
}

func TestSanitizeCommandTruncates(t *testing.T) {
	long := "echo "
	for i := 0; i < 60; i++ {
		long += "argument "
	}
	out := sanitizeCommand(long)
	if len(out) > maxCommandLen+len("…[TRUNCATED]") {
		t.Fatalf("expected truncated output, got len=%d", len(out))
	}
}

func contains(haystack, needle string) bool {
	return len(needle) > 0 && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}

func TestNetSplitHostPortDefaults(t *testing.T) {
	host, port := splitHostPort("not-a-valid-address")
	if host != "localhost" || port != 0 {
		t.Fatalf("expected localhost/0 default, got %s/%d", host, port)
	}
	host, port = splitHostPort("example.com:9000")
	if host != "example.com" || port != 9000 {
		t.Fatalf("unexpected parse: %s/%d", host, port)
	}
}

func TestNormalizePathRejectsUnknownTypes(t *testing.T) {
	if _, ok := normalizePath(42); ok {
		t.Fatalf("expected numeric descriptor to be rejected")
	}
	if _, ok := normalizePath(nil); ok {
		t.Fatalf("expected nil to be rejected")
	}
	if _, ok := normalizePath("relative/path"); !ok {
		t.Fatalf("expected string path to resolve")
	}
}

func TestHTTPViewDoReachesServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	Uninstall()
	resp, err := HTTP(nil).Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
