package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsbundle/tsbundle/pkg/bundle"
	"github.com/tsbundle/tsbundle/pkg/config"
	"github.com/tsbundle/tsbundle/pkg/fetch"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ConvertOptions holds command-line options for the convert command.
type ConvertOptions struct {
	ResultDir    string
	SkipDownload bool
	Quiet        bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <config-file>",
		Short: "Convert an archive into .npy bundles",
		Long: `Convert the datasets listed in the configuration file into NumPy
array bundles.

The archive is downloaded first when the configured local copy does not
exist. Members that fail to parse are reported and skipped; the rest of
the archive still converts.

Exit codes:
  0 - All selected members converted
  1 - Some members could not be converted
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ResultDir, "result-dir", "o", "", "Override the configured output directory")
	cmd.Flags().BoolVar(&opts.SkipDownload, "skip-download", false, "Fail instead of downloading a missing archive")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-file output")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.ResultDir != "" {
		cfg.ResultDir = opts.ResultDir
	}

	if err := ensureArchive(ctx, cfg, opts); err != nil {
		return err
	}

	report, err := bundle.Convert(cfg.ArchiveFile, cfg.ResultDir, bundle.Options{
		Format:       cfg.Format,
		Include:      cfg.Include,
		MissingValue: cfg.MissingValue,
		Sentinel:     cfg.Sentinel,
		LabelColumn:  cfg.LabelColumn,
		Compress:     cfg.Compress,
	})
	if err != nil {
		return err
	}

	if !opts.Quiet {
		for _, path := range report.Written {
			fmt.Printf("wrote %s\n", path)
		}
		for _, failed := range report.Failed {
			fmt.Fprintf(os.Stderr, "skipped %s: %v\n", failed.Member, failed.Err)
		}
	}
	fmt.Printf("%d file(s) written, %d member(s) failed, %d member(s) skipped\n",
		len(report.Written), len(report.Failed), report.Skipped)

	if len(report.Written) == 0 && len(report.Failed) == 0 {
		return fmt.Errorf("no archive members matched datasets %v", cfg.Include)
	}
	if len(report.Failed) > 0 {
		ExitCode = 1
	}
	return nil
}

// ensureArchive downloads the configured archive when the local copy is
// missing. An existing file is never re-fetched.
func ensureArchive(ctx context.Context, cfg *config.Config, opts *ConvertOptions) error {
	if _, err := os.Stat(cfg.ArchiveFile); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking archive %s: %w", cfg.ArchiveFile, err)
	}

	if cfg.ArchiveURL == "" || opts.SkipDownload {
		return fmt.Errorf("archive %s does not exist and downloading is disabled", cfg.ArchiveFile)
	}

	fmt.Fprintf(os.Stderr, "downloading %s\n", cfg.ArchiveURL)
	progress := func(written, total int64) {
		if total > 0 {
			fmt.Fprintf(os.Stderr, "\r%d/%d bytes (%d%%)", written, total, written*100/total)
		} else {
			fmt.Fprintf(os.Stderr, "\r%d bytes", written)
		}
	}
	if opts.Quiet {
		progress = nil
	}

	if err := fetch.NewClient().Download(ctx, cfg.ArchiveURL, cfg.ArchiveFile, progress); err != nil {
		if !opts.Quiet {
			fmt.Fprintln(os.Stderr)
		}
		return err
	}
	if !opts.Quiet {
		fmt.Fprintln(os.Stderr)
	}
	return nil
}
