// Package tsfile parses the .ts time-series classification text format.
package tsfile

import "time"

// TimeKind identifies how timestamps are represented in a timestamped file.
// A file must use one representation throughout; the first tuple locks it in.
type TimeKind int

const (
	// TimeKindNone means the file has no timestamps (@timestamps false).
	TimeKindNone TimeKind = iota

	// TimeKindInteger means timestamps are integer offsets, e.g. (0,3.5).
	TimeKindInteger

	// TimeKindCalendar means timestamps are calendar dates or date-times,
	// e.g. (2021-01-01,3.5).
	TimeKindCalendar
)

func (k TimeKind) String() string {
	switch k {
	case TimeKindInteger:
		return "integer"
	case TimeKindCalendar:
		return "calendar"
	default:
		return "none"
	}
}

// Series holds the observations of one dimension of one instance.
// Exactly one of Index or Times is populated when the file is timestamped;
// both are nil otherwise.
type Series struct {
	// Values are the numeric observations, in file order. May be empty.
	Values []float64

	// Index holds integer timestamp offsets, parallel to Values.
	Index []int64

	// Times holds calendar timestamps, parallel to Values.
	Times []time.Time
}

// Len returns the number of observations in the series.
func (s Series) Len() int {
	return len(s.Values)
}

// Instance is one case of the dataset: one series per declared dimension.
type Instance []Series

// ParseResult is the full, read-only output of one parse pass.
type ParseResult struct {
	// Problem is the value of the @problemname tag.
	Problem string

	// Timestamps reports whether the file declared @timestamps true.
	Timestamps bool

	// Univariate reports whether the file declared @univariate true.
	Univariate bool

	// HasLabels reports whether the file declared @classlabel true.
	HasLabels bool

	// ClassLabels is the declared label vocabulary, in declaration order.
	// Empty when HasLabels is false.
	ClassLabels []string

	// TimeKind is the timestamp representation locked in by the first tuple.
	// TimeKindNone for non-timestamped files.
	TimeKind TimeKind

	// Instances holds one entry per data line, each with NumDimensions series.
	Instances []Instance

	// Labels is parallel to Instances when HasLabels is true, nil otherwise.
	// Every entry is drawn from ClassLabels.
	Labels []string
}

// Len returns the number of parsed instances.
func (r *ParseResult) Len() int {
	return len(r.Instances)
}

// NumDimensions returns the dimension count fixed by the first data line.
func (r *ParseResult) NumDimensions() int {
	if len(r.Instances) == 0 {
		return 0
	}
	return len(r.Instances[0])
}

// LabelIndex returns the position of label in the declared vocabulary,
// or -1 if the label is not declared.
func (r *ParseResult) LabelIndex(label string) int {
	for i, l := range r.ClassLabels {
		if l == label {
			return i
		}
	}
	return -1
}
