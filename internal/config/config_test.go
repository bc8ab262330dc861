package config

import (
	"os"
	"path/filepath"
	"testing"

	"creditget/internal/credit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WriteMode != "A" {
		t.Errorf("WriteMode = %q, want %q", cfg.WriteMode, "A")
	}
	if cfg.ParallelJobs != 1 {
		t.Errorf("ParallelJobs = %d, want 1", cfg.ParallelJobs)
	}
	if cfg.RequestTimeoutSecs != 10 {
		t.Errorf("RequestTimeoutSecs = %d, want 10", cfg.RequestTimeoutSecs)
	}
	if cfg.UserAgent == "" {
		t.Error("UserAgent should have a default")
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.SourceDir = "/music"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"mode B", func(c *Config) { c.WriteMode = "B" }, false},
		{"lowercase mode", func(c *Config) { c.WriteMode = "b" }, false},
		{"empty source dir", func(c *Config) { c.SourceDir = "" }, true},
		{"unknown mode", func(c *Config) { c.WriteMode = "C" }, true},
		{"zero parallel jobs", func(c *Config) { c.ParallelJobs = 0 }, true},
		{"too many parallel jobs", func(c *Config) { c.ParallelJobs = 11 }, true},
		{"max parallel jobs", func(c *Config) { c.ParallelJobs = 10 }, false},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSecs = 0 }, true},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WriteMode = "B"
	cfg.IntegrateUnwritable = true
	cfg.Overwrite = OverwriteFlags{Composer: true}

	p := cfg.Policy()
	if p.Mode != credit.ModeIntegrated {
		t.Errorf("Mode = %v, want integrated", p.Mode)
	}
	if !p.IntegrateUnwritable {
		t.Error("IntegrateUnwritable = false, want true")
	}
	if !p.Overwrite[credit.RoleComposer] {
		t.Error("composer overwrite not carried into policy")
	}
	if p.Overwrite[credit.RoleLyricist] {
		t.Error("lyricist overwrite set without being configured")
	}
}

func TestSaveAndLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.SourceDir = "/music/rips"
	cfg.WriteMode = "B"
	cfg.ParallelJobs = 4
	cfg.Overwrite.Lyricist = true

	if err := SaveConfigFile(cfg, path); err != nil {
		t.Fatalf("SaveConfigFile() error = %v", err)
	}

	loaded, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}

	if loaded.SourceDir != cfg.SourceDir {
		t.Errorf("SourceDir = %q, want %q", loaded.SourceDir, cfg.SourceDir)
	}
	if loaded.WriteMode != "B" {
		t.Errorf("WriteMode = %q, want %q", loaded.WriteMode, "B")
	}
	if loaded.ParallelJobs != 4 {
		t.Errorf("ParallelJobs = %d, want 4", loaded.ParallelJobs)
	}
	if !loaded.Overwrite.Lyricist {
		t.Error("Overwrite.Lyricist = false, want true")
	}
}

func TestLoadConfigFilePartial(t *testing.T) {
	// Fields absent from the file keep their defaults.
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source_dir: /music\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.SourceDir != "/music" {
		t.Errorf("SourceDir = %q", cfg.SourceDir)
	}
	if cfg.WriteMode != "A" || cfg.ParallelJobs != 1 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v, want defaults for missing file", err)
	}
	if cfg.WriteMode != "A" {
		t.Errorf("WriteMode = %q, want default", cfg.WriteMode)
	}
}

func TestLoadConfigFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source_dir: [broken\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("LoadConfigFile() should fail on invalid YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := ExpandHome("~/Music")
	want := filepath.Join(home, "Music")
	if got != want {
		t.Errorf("ExpandHome(~/Music) = %q, want %q", got, want)
	}

	if got := ExpandHome("/absolute/path"); got != "/absolute/path" {
		t.Errorf("ExpandHome(/absolute/path) = %q", got)
	}
}
