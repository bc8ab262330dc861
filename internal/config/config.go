package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"creditget/internal/credit"

	"gopkg.in/yaml.v3"
)

// OverwriteFlags enables replacing existing tag values, per role.
type OverwriteFlags struct {
	Comment  bool `yaml:"comment"`
	Lyricist bool `yaml:"lyricist"`
	Composer bool `yaml:"composer"`
	Remixer  bool `yaml:"remixer"`
}

// Config contains the program configuration
type Config struct {
	SourceDir           string         `yaml:"source_dir"`
	WriteMode           string         `yaml:"write_mode"` // "A" (individual) or "B" (integrated)
	IntegrateUnwritable bool           `yaml:"integrate_unwritable"`
	Overwrite           OverwriteFlags `yaml:"overwrite"`
	ParallelJobs        int            `yaml:"parallel_jobs"`
	RequestTimeoutSecs  int            `yaml:"request_timeout_seconds"`
	UserAgent           string         `yaml:"user_agent"`
	Verbose             bool           `yaml:"verbose"`
	DryRun              bool           `yaml:"dry_run"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		WriteMode:          "A",
		ParallelJobs:       1,
		RequestTimeoutSecs: 10,
		UserAgent:          "creditget/1.0",
	}
}

// RequestTimeout returns the HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// Policy converts the configured flags into the core policy object.
// Validate must have accepted the config first.
func (c *Config) Policy() credit.Policy {
	mode, err := credit.ParseMode(c.WriteMode)
	if err != nil {
		mode = credit.ModeIndividual
	}
	return credit.Policy{
		Mode: mode,
		Overwrite: map[credit.Role]bool{
			credit.RoleComment:  c.Overwrite.Comment,
			credit.RoleLyricist: c.Overwrite.Lyricist,
			credit.RoleComposer: c.Overwrite.Composer,
			credit.RoleRemixer:  c.Overwrite.Remixer,
		},
		IntegrateUnwritable: c.IntegrateUnwritable,
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.SourceDir = ExpandHome(cfg.SourceDir)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./creditget.yaml",
		"./creditget.yml",
		filepath.Join(home, ".config", "creditget", "config.yaml"),
		filepath.Join(home, ".config", "creditget", "config.yml"),
		filepath.Join(home, ".creditget.yaml"),
		filepath.Join(home, ".creditget.yml"),
	}

	for _, path := range locations {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "creditget", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "creditget", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source directory cannot be empty")
	}

	if _, err := credit.ParseMode(c.WriteMode); err != nil {
		return err
	}

	if c.ParallelJobs < 1 {
		return fmt.Errorf("parallel jobs must be at least 1, got %d", c.ParallelJobs)
	}
	if c.ParallelJobs > 10 {
		return fmt.Errorf("parallel jobs cannot exceed 10 (to avoid hammering the remote site), got %d", c.ParallelJobs)
	}

	if c.RequestTimeoutSecs < 1 {
		return fmt.Errorf("request_timeout_seconds must be at least 1, got %d", c.RequestTimeoutSecs)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user_agent cannot be empty")
	}

	return nil
}
