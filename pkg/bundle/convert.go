package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/tsbundle/tsbundle/pkg/arff"
	"github.com/tsbundle/tsbundle/pkg/npy"
	"github.com/tsbundle/tsbundle/pkg/tsfile"
)

// FormatTS and FormatARFF name the supported member formats.
const (
	FormatTS   = "ts"
	FormatARFF = "arff"
)

// Options configures one conversion run.
type Options struct {
	// Format selects which members to convert: FormatTS or FormatARFF.
	Format string

	// Include lists the dataset names to convert. Members of other
	// datasets are skipped.
	Include []string

	// MissingValue replaces the "?" placeholder before numeric parsing
	// (.ts files only).
	MissingValue string

	// Sentinel pads ragged series to each dimension's maximum length.
	Sentinel float64

	// LabelColumn appends the encoded label as the final table column.
	// When false, labels are written as a separate <base>_labels file.
	LabelColumn bool

	// Compress writes zstd-compressed .npy.zst files.
	Compress bool
}

// MemberError records one member that could not be converted.
type MemberError struct {
	Member string
	Err    error
}

// Report summarizes a conversion run.
type Report struct {
	// Written lists the output files produced, in member order.
	Written []string

	// Skipped counts members that matched no selection rule.
	Skipped int

	// Failed lists members whose parsing or encoding failed. Parse
	// failures do not abort the run; the member is unconvertible and
	// reported here.
	Failed []MemberError
}

// Convert reads the zip archive at archivePath and writes one bundle per
// selected member into resultDir. It returns an error only for problems
// with the archive or output directory themselves; per-member failures
// are collected in the report.
func Convert(archivePath, resultDir string, opts Options) (*Report, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating result dir %s: %w", resultDir, err)
	}

	report := &Report{}
	for _, file := range reader.File {
		member, ok := splitMember(file.Name, "."+opts.Format)
		if !ok || !included(member.Dataset, opts.Include) {
			report.Skipped++
			continue
		}

		written, err := convertMember(file, member, resultDir, opts)
		if err != nil {
			report.Failed = append(report.Failed, MemberError{Member: file.Name, Err: err})
			continue
		}
		report.Written = append(report.Written, written...)
	}
	sort.Strings(report.Written)
	return report, nil
}

func convertMember(file *zip.File, member Member, resultDir string, opts Options) ([]string, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening member: %w", err)
	}
	defer rc.Close()

	switch opts.Format {
	case FormatARFF:
		return convertARFF(rc, member, resultDir, opts)
	default:
		return convertTS(rc, member, resultDir, opts)
	}
}

func convertTS(r io.Reader, member Member, resultDir string, opts Options) ([]string, error) {
	var parseOpts []tsfile.Option
	if opts.MissingValue != "" {
		parseOpts = append(parseOpts, tsfile.WithMissingValue(opts.MissingValue))
	}
	res, err := tsfile.Parse(r, parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	data, shape, err := Pack(res, opts.Sentinel, opts.LabelColumn)
	if err != nil {
		return nil, err
	}
	out, err := npy.WriteFile(filepath.Join(resultDir, member.Base+".npy"), data, shape, opts.Compress)
	if err != nil {
		return nil, err
	}
	written := []string{out}

	if !opts.LabelColumn {
		if labels, labelShape := PackLabels(res); labels != nil {
			out, err := npy.WriteFile(filepath.Join(resultDir, member.Base+"_labels.npy"), labels, labelShape, opts.Compress)
			if err != nil {
				return nil, err
			}
			written = append(written, out)
		}
	}
	return written, nil
}

func convertARFF(r io.Reader, member Member, resultDir string, opts Options) ([]string, error) {
	rel, err := arff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	data, shape, err := PackRelation(rel)
	if err != nil {
		return nil, err
	}
	out, err := npy.WriteFile(filepath.Join(resultDir, member.Base+".npy"), data, shape, opts.Compress)
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}
