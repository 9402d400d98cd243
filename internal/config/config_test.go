package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Qdrant.Host != "localhost" {
		t.Errorf("expected default host localhost, got %q", cfg.Qdrant.Host)
	}
	if cfg.Qdrant.Port != 6333 {
		t.Errorf("expected default port 6333, got %d", cfg.Qdrant.Port)
	}
	if cfg.Probe.MaxAttempts != 30 {
		t.Errorf("expected default max_attempts 30, got %d", cfg.Probe.MaxAttempts)
	}
	if cfg.Probe.DelaySec != 2 {
		t.Errorf("expected default delay_sec 2, got %d", cfg.Probe.DelaySec)
	}
	if got := cfg.Qdrant.BaseURL(); got != "http://localhost:6333" {
		t.Errorf("expected base URL http://localhost:6333, got %q", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QDRANT_HOST", "qdrant.internal")
	t.Setenv("QDRANT_PORT", "7333")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Qdrant.Host != "qdrant.internal" {
		t.Errorf("expected host from QDRANT_HOST, got %q", cfg.Qdrant.Host)
	}
	if cfg.Qdrant.Port != 7333 {
		t.Errorf("expected port from QDRANT_PORT, got %d", cfg.Qdrant.Port)
	}
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	t.Setenv("QDRANT_PORT", "not-a-port")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid QDRANT_PORT")
	}
}

func TestLoad_FileWithVarExpansion(t *testing.T) {
	t.Setenv("TEST_QDRANT_HOST", "10.0.0.5")
	path := writeConfig(t, `
qdrant:
  host: ${TEST_QDRANT_HOST}
  port: ${TEST_QDRANT_PORT:-6334}
probe:
  max_attempts: 5
  delay_sec: 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Qdrant.Host != "10.0.0.5" {
		t.Errorf("expected expanded host, got %q", cfg.Qdrant.Host)
	}
	if cfg.Qdrant.Port != 6334 {
		t.Errorf("expected default-expanded port 6334, got %d", cfg.Qdrant.Port)
	}
	if cfg.Probe.MaxAttempts != 5 {
		t.Errorf("expected max_attempts 5, got %d", cfg.Probe.MaxAttempts)
	}
	if cfg.Probe.DelaySec != 1 {
		t.Errorf("expected delay_sec 1, got %d", cfg.Probe.DelaySec)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	t.Setenv("QDRANT_HOST", "from-env")
	path := writeConfig(t, `
qdrant:
  host: from-file
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Qdrant.Host != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.Qdrant.Host)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		Qdrant: QdrantConfig{Host: "localhost", Port: 70000},
		Probe:  ProbeConfig{MaxAttempts: 1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	expected := "qdrant.port must be between 1 and 65535, got 70000"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Config{
		Qdrant:  QdrantConfig{Host: "localhost", Port: 6333},
		Probe:   ProbeConfig{MaxAttempts: 1},
		Logging: LoggingConfig{Level: "verbose"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	expected := `logging.level must be debug, info, warn or error, got "verbose"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ZeroAttempts(t *testing.T) {
	cfg := Config{
		Qdrant: QdrantConfig{Host: "localhost", Port: 6333},
		Probe:  ProbeConfig{MaxAttempts: 0},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero max_attempts")
	}
}
