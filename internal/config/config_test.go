package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	writeFile(t, path, `
limit = 50
seed = ["alpha", "beta"]
scripts = ["setup.lua"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != 50 {
		t.Errorf("Limit = %d, want 50", cfg.Limit)
	}
	if len(cfg.Seed) != 2 || cfg.Seed[0] != "alpha" {
		t.Errorf("Seed = %v, want [alpha beta]", cfg.Seed)
	}
	if len(cfg.Scripts) != 1 || cfg.Scripts[0] != "setup.lua" {
		t.Errorf("Scripts = %v, want [setup.lua]", cfg.Scripts)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	writeFile(t, path, `
limit: 25
seed:
  - gamma
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != 25 {
		t.Errorf("Limit = %d, want 25", cfg.Limit)
	}
	if len(cfg.Seed) != 1 || cfg.Seed[0] != "gamma" {
		t.Errorf("Seed = %v, want [gamma]", cfg.Seed)
	}
}

func TestLoadDefaultsApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	writeFile(t, path, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != Default().Limit {
		t.Errorf("Limit = %d, want default %d", cfg.Limit, Default().Limit)
	}
}

func TestLoadNegativeLimitClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neg.toml")
	writeFile(t, path, "limit = -5\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limit != 0 {
		t.Errorf("Limit = %d, want 0", cfg.Limit)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.ini")
	writeFile(t, path, "limit = 1\n")

	if _, err := Load(path); err == nil {
		t.Error("Load should reject unknown extensions")
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "limit = [broken\n")

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
	if perr.Unwrap() == nil {
		t.Error("ParseError should wrap the underlying error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	writeFile(t, path, "limit = 1\n")

	changes := make(chan Config, 4)
	w, err := Watch(path,
		func(cfg Config) { changes <- cfg },
		func(err error) { t.Logf("watch error: %v", err) },
		WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	writeFile(t, path, "limit = 7\n")

	select {
	case cfg := <-changes:
		if cfg.Limit != 7 {
			t.Errorf("Limit = %d, want 7", cfg.Limit)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	writeFile(t, path, "limit = 1\n")

	changes := make(chan Config, 4)
	w, err := Watch(path,
		func(cfg Config) { changes <- cfg },
		nil,
		WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "limit = 9\n")

	select {
	case cfg := <-changes:
		t.Errorf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	writeFile(t, path, "limit = 1\n")

	w, err := Watch(path, func(Config) {}, nil)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	w.Close()
	w.Close()
}
