// Package cli provides the command-line interface for tsbundle.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsbundle/tsbundle/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tsbundle",
		Short: "Convert time-series classification archives to binary bundles",
		Long: `tsbundle downloads public time-series classification archives and
re-encodes their ARFF and .ts members into NumPy .npy array bundles.

The pipeline per run:
  - fetch the archive if the local copy does not exist
  - walk the zip members, selecting the configured datasets
  - parse each _TRAIN/_TEST member (.ts or ARFF)
  - pad ragged series with the end-of-series sentinel
  - write one fixed-shape float32 bundle per member`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
