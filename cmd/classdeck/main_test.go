package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mirandavy/classdeck/internal/config"
)

func TestRunLogout(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{Dir: dir}

	// Nothing saved yet.
	if err := runLogout(cfg); err != nil {
		t.Fatalf("runLogout with no token: %v", err)
	}

	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("tok"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := runLogout(cfg); err != nil {
		t.Fatalf("runLogout: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("token file should be removed")
	}
}
