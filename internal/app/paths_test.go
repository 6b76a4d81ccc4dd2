package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saadjs/kcal-trends/internal/app"
)

func TestDefaultPathsShareConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := app.ConfigDir()
	if err != nil {
		t.Fatalf("config dir: %v", err)
	}
	dbPath, err := app.DefaultDBPath()
	if err != nil {
		t.Fatalf("db path: %v", err)
	}
	cfgPath, err := app.DefaultConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if filepath.Dir(dbPath) != dir || filepath.Dir(cfgPath) != dir {
		t.Fatalf("expected both paths under %s, got %s and %s", dir, dbPath, cfgPath)
	}
	if filepath.Base(dir) != "kcal" {
		t.Fatalf("expected kcal dir, got %s", dir)
	}
}

func TestEnsureDBDirCreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "kcal.db")
	if err := app.EnsureDBDir(path); err != nil {
		t.Fatalf("ensure db dir: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory at %s", filepath.Dir(path))
	}
}
