package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no rcb.yaml here

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.MajorVersion != 15 {
		t.Errorf("MajorVersion = %d, want 15", cfg.MajorVersion)
	}
	if cfg.Store != StoreJSON || cfg.Listen != ":8080" || cfg.SanitizeHTML {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rcb.yaml")
	content := "hive_root: /farm/extensions\nstore: sqlite\nsanitize_html: true\nlisten: \":9000\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Setenv("RCB_LISTEN", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}
	if cfg.HiveRoot != "/farm/extensions" || cfg.Store != StoreSQLite || !cfg.SanitizeHTML {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Listen != ":9100" {
		t.Errorf("Listen = %q, want env override :9100", cfg.Listen)
	}
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rcb.yaml"), []byte("data_dir: /srv/content\n"), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	chdir(t, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.DataDir != "/srv/content" {
		t.Errorf("DataDir = %q, want /srv/content", cfg.DataDir)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing explicit file) succeeded, expected error")
	}

	tests := []struct {
		name    string
		content string
	}{
		{"Unknown store", "store: mongo\n"},
		{"Bad version", "major_version: 0\n"},
		{"Bad log level", "log_level: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() with %q succeeded, expected error", tt.content)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) failed: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
