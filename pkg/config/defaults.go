package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	DefaultArchiveURL   = "http://www.timeseriesclassification.com/Downloads/Archives/Univariate2018_arff.zip"
	DefaultArchiveFile  = "datasets.zip"
	DefaultResultDir    = "npy"
	DefaultFormat       = "ts"
	DefaultMissingValue = "NaN"
	DefaultSentinel     = -1e30
)

// Environment variable names.
const (
	EnvArchiveFile = "CB_DATASET_FILE"
	EnvResultDir   = "CB_RESULT_DIR"
	EnvInclude     = "CB_INCLUDE_DATASET"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ArchiveURL:   DefaultArchiveURL,
		ArchiveFile:  DefaultArchiveFile,
		ResultDir:    DefaultResultDir,
		Format:       DefaultFormat,
		MissingValue: DefaultMissingValue,
		Sentinel:     DefaultSentinel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if file := os.Getenv(EnvArchiveFile); file != "" {
		c.ArchiveFile = file
	}
	if dir := os.Getenv(EnvResultDir); dir != "" {
		c.ResultDir = dir
	}
	if include := os.Getenv(EnvInclude); include != "" {
		c.Include = c.Include[:0]
		for _, name := range strings.Split(include, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Include = append(c.Include, name)
			}
		}
	}
}
