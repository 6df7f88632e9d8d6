package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsbundle/tsbundle/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a tsbundle configuration file without converting anything.

Checks:
  - YAML syntax
  - Required fields (include list, archive path, result dir)
  - Archive URL validity
  - Local archive existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Format:     %s\n", cfg.Format)
	fmt.Printf("  Archive:    %s\n", cfg.ArchiveFile)
	fmt.Printf("  Result dir: %s\n", cfg.ResultDir)
	fmt.Printf("  Datasets:   %s\n", strings.Join(cfg.Include, ", "))

	// Check whether the archive is already present (warning only)
	if _, err := os.Stat(cfg.ArchiveFile); err != nil {
		if cfg.ArchiveURL != "" {
			fmt.Printf("\nNote: %s does not exist, convert will download it from\n  %s\n",
				cfg.ArchiveFile, cfg.ArchiveURL)
		} else {
			fmt.Printf("\nWarning: %s does not exist and no archive_url is configured\n",
				cfg.ArchiveFile)
		}
	}

	return nil
}
