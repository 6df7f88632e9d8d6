// Package config provides configuration loading and validation for tsbundle.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// ArchiveURL is downloaded when ArchiveFile does not exist locally.
	ArchiveURL string `yaml:"archive_url,omitempty"`

	// ArchiveFile is the local path of the dataset zip archive.
	ArchiveFile string `yaml:"archive_file"`

	// ResultDir receives one .npy bundle per converted member.
	ResultDir string `yaml:"result_dir"`

	// Include lists the dataset names to convert (required).
	Include []string `yaml:"include"`

	// Format selects which archive members to convert: "ts" or "arff".
	Format string `yaml:"format"`

	// MissingValue replaces the "?" placeholder in .ts files before
	// numeric parsing. Defaults to "NaN".
	MissingValue string `yaml:"missing_value,omitempty"`

	// Sentinel is the end-of-series value used to pad ragged series.
	Sentinel float64 `yaml:"sentinel,omitempty"`

	// LabelColumn appends the encoded class label to the data table
	// instead of writing a separate label array.
	LabelColumn bool `yaml:"label_column,omitempty"`

	// Compress writes zstd-compressed .npy.zst bundles.
	Compress bool `yaml:"compress,omitempty"`
}
