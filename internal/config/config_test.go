package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLASSDECK_API_URL", "")
	t.Setenv("CLASSDECK_TOKEN", "")
	t.Setenv("CLASSDECK_LOG_LEVEL", "")
	t.Setenv("CLASSDECK_ENV", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://api.classdeck.dev" {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.LogLevel != "info" || cfg.Env != "prod" {
		t.Errorf("defaults = %q/%q, want info/prod", cfg.LogLevel, cfg.Env)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty with no env and no file", cfg.Token)
	}
}

func TestLoadTokenPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".classdeck")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("file-token\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CLASSDECK_TOKEN", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Token != "file-token" {
		t.Errorf("Token = %q, want trimmed file token", cfg.Token)
	}

	t.Setenv("CLASSDECK_TOKEN", "env-token")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, env var must win over the file", cfg.Token)
	}
}

func TestPaths(t *testing.T) {
	cfg := Config{Dir: "/home/admin/.classdeck"}
	if got := cfg.TokenPath(); !strings.HasSuffix(got, filepath.Join(".classdeck", "token")) {
		t.Errorf("TokenPath = %q", got)
	}
	if got := cfg.LogPath(); !strings.HasSuffix(got, "classdeck.log") {
		t.Errorf("LogPath = %q", got)
	}
}
