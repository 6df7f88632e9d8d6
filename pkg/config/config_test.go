package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
archive_file: /data/datasets.zip
result_dir: /data/npy
format: ts
include:
  - Coffee
  - GunPoint
sentinel: -999
label_column: true
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ArchiveFile != "/data/datasets.zip" {
		t.Errorf("ArchiveFile = %q, want /data/datasets.zip", cfg.ArchiveFile)
	}
	if !reflect.DeepEqual(cfg.Include, []string{"Coffee", "GunPoint"}) {
		t.Errorf("Include = %v, want [Coffee GunPoint]", cfg.Include)
	}
	if cfg.Sentinel != -999 {
		t.Errorf("Sentinel = %v, want -999", cfg.Sentinel)
	}
	if !cfg.LabelColumn {
		t.Error("LabelColumn = false, want true")
	}
	// defaults fill unset fields
	if cfg.MissingValue != DefaultMissingValue {
		t.Errorf("MissingValue = %q, want default %q", cfg.MissingValue, DefaultMissingValue)
	}
	if cfg.ArchiveURL != DefaultArchiveURL {
		t.Errorf("ArchiveURL = %q, want default", cfg.ArchiveURL)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	content := `
archive_file: from-yaml.zip
result_dir: from-yaml
include:
  - FromYaml
`
	path := writeTempFile(t, "config.yaml", content)

	t.Setenv(EnvArchiveFile, "from-env.zip")
	t.Setenv(EnvResultDir, "from-env")
	t.Setenv(EnvInclude, "Coffee, GunPoint")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ArchiveFile != "from-env.zip" {
		t.Errorf("ArchiveFile = %q, want from-env.zip", cfg.ArchiveFile)
	}
	if cfg.ResultDir != "from-env" {
		t.Errorf("ResultDir = %q, want from-env", cfg.ResultDir)
	}
	if !reflect.DeepEqual(cfg.Include, []string{"Coffee", "GunPoint"}) {
		t.Errorf("Include = %v, want [Coffee GunPoint]", cfg.Include)
	}
}

func TestLoad_ExpandsVariables(t *testing.T) {
	content := `
archive_file: ${TSBUNDLE_TEST_ARCHIVE}
result_dir: $TSBUNDLE_TEST_RESULT
missing_value: ${TSBUNDLE_TEST_MISSING}
include:
  - Coffee
`
	path := writeTempFile(t, "config.yaml", content)

	t.Setenv("TSBUNDLE_TEST_ARCHIVE", "/data/datasets.zip")
	t.Setenv("TSBUNDLE_TEST_RESULT", "/data/npy")
	t.Setenv("TSBUNDLE_TEST_MISSING", "-42")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ArchiveFile != "/data/datasets.zip" {
		t.Errorf("ArchiveFile = %q, want expanded /data/datasets.zip", cfg.ArchiveFile)
	}
	if cfg.ResultDir != "/data/npy" {
		t.Errorf("ResultDir = %q, want expanded /data/npy", cfg.ResultDir)
	}
	if cfg.MissingValue != "-42" {
		t.Errorf("MissingValue = %q, want expanded \"-42\"", cfg.MissingValue)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TSBUNDLE_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"${TSBUNDLE_TEST_VAR}", "value"},
		{"$TSBUNDLE_TEST_VAR", "value"},
		{"plain", "plain"},
		{"", ""},
		{"${TSBUNDLE_TEST_UNSET}", ""},
	}
	for _, tt := range tests {
		if got := expandEnvVar(tt.in); got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no datasets", func(c *Config) { c.Include = nil }, "no datasets included"},
		{"no archive file", func(c *Config) { c.ArchiveFile = "" }, "archive_file"},
		{"no result dir", func(c *Config) { c.ResultDir = "" }, "result_dir"},
		{"bad format", func(c *Config) { c.Format = "csv" }, "invalid format"},
		{"bad url scheme", func(c *Config) { c.ArchiveURL = "ftp://example.com/a.zip" }, "scheme"},
		{"url without host", func(c *Config) { c.ArchiveURL = "http://" }, "host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Include = []string{"Coffee"}
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_NoURLIsAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = []string{"Coffee"}
	cfg.ArchiveURL = ""
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil (URL is optional)", err)
	}
}
