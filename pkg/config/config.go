package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.expandVars()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if len(cfg.Include) == 0 {
		return errors.New("include: no datasets included")
	}

	if cfg.ArchiveFile == "" {
		return errors.New("archive_file: a local archive path is required")
	}

	if cfg.ResultDir == "" {
		return errors.New("result_dir: an output directory is required")
	}

	switch cfg.Format {
	case "ts", "arff":
	default:
		return fmt.Errorf("format: invalid format %q (must be ts or arff)", cfg.Format)
	}

	// ArchiveURL is optional: with no URL the archive must already exist
	if cfg.ArchiveURL != "" {
		u, err := url.Parse(cfg.ArchiveURL)
		if err != nil {
			return fmt.Errorf("archive_url: invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("archive_url: url scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return errors.New("archive_url: url must have a host")
		}
	}

	if cfg.MissingValue == "" {
		cfg.MissingValue = DefaultMissingValue
	}

	return nil
}

// expandVars expands environment variables in the string config fields.
func (c *Config) expandVars() {
	c.ArchiveFile = expandEnvVar(c.ArchiveFile)
	c.ResultDir = expandEnvVar(c.ResultDir)
	c.MissingValue = expandEnvVar(c.MissingValue)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
