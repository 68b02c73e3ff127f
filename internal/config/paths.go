package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains the directories the service works in. Relative paths
// are resolved against the current working directory at startup.
type PathsConfig struct {
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR" validate:"required"`
	WebDir       string `yaml:"web_dir" envconfig:"WEB_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Resolve returns the absolute form of every configured directory.
func (p PathsConfig) Resolve() (PathsConfig, error) {
	out := p
	for _, dir := range []*string{&out.ProcessedDir, &out.WebDir, &out.LogsDir} {
		if *dir == "" {
			continue
		}
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return PathsConfig{}, fmt.Errorf("resolve path %q: %w", *dir, err)
		}
		*dir = abs
	}
	return out, nil
}

// EnsureDirectories creates every configured directory that does not exist
// yet. Called once at startup so request handlers never race on mkdir.
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.ProcessedDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
