package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverPriorityOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bheeshma.config.json"), "{}")
	writeFile(t, filepath.Join(dir, ".bheeshmarc.json"), "{}")

	path, ok := Discover(dir)
	if !ok {
		t.Fatalf("expected discovery to find a file")
	}
	if filepath.Base(path) != ".bheeshmarc.json" {
		t.Fatalf("expected .bheeshmarc.json to win priority, got %s", path)
	}
}

func TestDiscoverReturnsFalseWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	if _, ok := Discover(dir); ok {
		t.Fatalf("expected no discovery in an empty directory")
	}
}

func TestLoadFallsBackToDefaultOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, errs := Load(dir)
	if len(errs) != 0 {
		t.Fatalf("expected no errors for missing config, got %v", errs)
	}
	if cfg.Performance.MaxSignals != Default().Performance.MaxSignals {
		t.Fatalf("expected default config")
	}
}

func TestLoadValidJSONFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".bheeshmarc.json"), `{
		"hooks": {"env": true, "fs": false, "net": true, "childProcess": true, "http": true},
		"riskWeights": {"ShellExec": 25},
		"thresholds": {"critical": 20, "high": 50, "medium": 75},
		"performance": {"track": true, "maxSignals": 500}
	}`)
	cfg, errs := Load(dir)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Hooks.Fs {
		t.Fatalf("expected fs hook disabled")
	}
	if cfg.RiskWeights["ShellExec"] != 25 {
		t.Fatalf("expected overridden ShellExec weight")
	}
	if cfg.Performance.MaxSignals != 500 {
		t.Fatalf("expected overridden maxSignals")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".bheeshmarc.json"), `{"hooks": {"telemetry": true}}`)
	cfg, errs := Load(dir)
	if len(errs) == 0 {
		t.Fatalf("expected an error for unknown hook name")
	}
	if cfg.Performance.MaxSignals != Default().Performance.MaxSignals {
		t.Fatalf("expected fallback to default config")
	}
}

func TestLoadRefusesNodeModulesPath(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "node_modules", "evil")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(nested, ".bheeshmarc.json")
	writeFile(t, path, "{}")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected refusal for a config file under node_modules")
	}
}

func TestValidateRejectsBadThresholdOrder(t *testing.T) {
	cfg := Default()
	cfg.Thresholds = Thresholds{Critical: 60, High: 50, Medium: 80}
	errs := Validate(cfg)
	if len(errs) == 0 {
		t.Fatalf("expected threshold ordering violation")
	}
}

func TestValidateRejectsOutOfRangeWeight(t *testing.T) {
	cfg := Default()
	cfg.RiskWeights["ShellExec"] = 150
	errs := Validate(cfg)
	if len(errs) == 0 {
		t.Fatalf("expected out-of-range weight violation")
	}
}

func TestValidateRejectsNonPositiveMaxSignals(t *testing.T) {
	cfg := Default()
	cfg.Performance.MaxSignals = 0
	errs := Validate(cfg)
	if len(errs) == 0 {
		t.Fatalf("expected maxSignals violation")
	}
}

func TestLoadFromObjectPanicsOnUnsupportedType(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for unsupported LoadFromObject input")
		}
	}()
	LoadFromObject(42)
}

func TestLoadFromObjectAcceptsNilForDefaults(t *testing.T) {
	cfg, errs := LoadFromObject(nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Performance.MaxSignals != Default().Performance.MaxSignals {
		t.Fatalf("expected default config")
	}
}

func TestExtractJSObjectLiteralFromModuleExports(t *testing.T) {
	src := []byte("module.exports = {\n  \"hooks\": {\"env\": true}\n};\n")
	out, ok := extractJSObjectLiteral(src)
	if !ok {
		t.Fatalf("expected extraction to succeed")
	}
	var cfg Config
	if err := json.Unmarshal(out, &cfg); err != nil {
		t.Fatalf("expected extracted text to parse as JSON: %v", err)
	}
	if !cfg.Hooks.Env {
		t.Fatalf("expected hooks.env true")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
