package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `
telegram:
  token: "123:abc"
  run_mode: longpoll
weather:
  api_key: "owm-key"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Fatalf("backend = %q, want file default", cfg.Storage.Backend)
	}
	if cfg.Storage.File == "" {
		t.Fatal("file backend must get a default path")
	}
	if cfg.Core.Telegram.Token != "123:abc" {
		t.Fatalf("token = %q", cfg.Core.Telegram.Token)
	}
}

func TestLoadSQLRequiresDriverDetails(t *testing.T) {
	body := minimalYAML + `
storage:
  backend: sql
database:
  driver: sqlite
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("sqlite without path must fail validation")
	}

	body += `  path: /tmp/fitbot.db
`
	if _, err := Load(writeConfig(t, body)); err != nil {
		t.Fatalf("sqlite with path: %v", err)
	}
}

func TestLoadRejectsMissingWeatherKey(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("missing weather api key must fail validation")
	}
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("STORAGE_FILE", "/tmp/override.json")
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.File != "/tmp/override.json" {
		t.Fatalf("env overlay ignored, file = %q", cfg.Storage.File)
	}
}
