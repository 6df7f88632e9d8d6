package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsbundle/tsbundle/pkg/tsfile"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	MissingValue string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file.ts>",
		Short: "Parse a .ts file and print its structure",
		Long: `Parse a single .ts file and print its metadata, dimension count,
instance count, and per-dimension series lengths.

Useful for checking whether an archive member will convert before
running a full conversion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.MissingValue, "missing-value", tsfile.DefaultMissingValue,
		"Replacement for the ? placeholder")

	return cmd
}

func runInspect(path string, opts *InspectOptions) error {
	result, err := tsfile.ParseFile(path, tsfile.WithMissingValue(opts.MissingValue))
	if err != nil {
		if pe, ok := tsfile.AsParseError(err); ok {
			return fmt.Errorf("%s: %s error: %w", path, pe.Kind, err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("problem:     %s\n", result.Problem)
	fmt.Printf("instances:   %d\n", result.Len())
	fmt.Printf("dimensions:  %d\n", result.NumDimensions())
	fmt.Printf("univariate:  %v\n", result.Univariate)
	fmt.Printf("timestamps:  %v", result.Timestamps)
	if result.Timestamps {
		fmt.Printf(" (%s)", result.TimeKind)
	}
	fmt.Println()

	if result.HasLabels {
		fmt.Printf("labels:      %s\n", strings.Join(result.ClassLabels, " "))
	} else {
		fmt.Printf("labels:      none\n")
	}

	for d := 0; d < result.NumDimensions(); d++ {
		minLen, maxLen := result.Instances[0][d].Len(), result.Instances[0][d].Len()
		for _, inst := range result.Instances[1:] {
			if l := inst[d].Len(); l < minLen {
				minLen = l
			} else if l > maxLen {
				maxLen = l
			}
		}
		if minLen == maxLen {
			fmt.Printf("dim %d:       length %d\n", d, maxLen)
		} else {
			fmt.Printf("dim %d:       length %d-%d (ragged)\n", d, minLen, maxLen)
		}
	}

	return nil
}
