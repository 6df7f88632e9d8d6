package tsfile

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	tagProblemName = "@problemname"
	tagTimestamps  = "@timestamps"
	tagUnivariate  = "@univariate"
	tagClassLabel  = "@classlabel"
	tagData        = "@data"

	// missingPlaceholder is the token the format uses for a missing
	// observation; it is substituted with the configured replacement
	// before numeric parsing.
	missingPlaceholder = "?"
)

// DefaultMissingValue is the replacement for missing-value placeholders
// when no option overrides it. strconv.ParseFloat accepts it as NaN.
const DefaultMissingValue = "NaN"

// Option configures a parse pass.
type Option func(*parser)

// WithMissingValue sets the string substituted for the "?" placeholder
// before numeric parsing.
func WithMissingValue(replacement string) Option {
	return func(p *parser) {
		p.missingValue = replacement
	}
}

// parser holds all state for one parse pass. Nothing escapes the pass;
// independent calls to Parse never share state.
type parser struct {
	missingValue string

	line int // 1-based, current line

	// metadata flags: each tag must appear exactly once before @data
	sawProblem    bool
	sawTimestamps bool
	sawUnivariate bool
	sawClassLabel bool
	sawData       bool

	problem     string
	timestamps  bool
	univariate  bool
	hasLabels   bool
	classLabels []string

	// numDims is fixed by the first data line; -1 until then.
	numDims  int
	timeKind TimeKind

	instances []Instance
	labels    []string
}

// Parse reads a complete .ts file from r and returns its table of series,
// or a *ParseError describing the first violation encountered.
func Parse(r io.Reader, opts ...Option) (*ParseResult, error) {
	p := &parser{
		missingValue: DefaultMissingValue,
		numDims:      -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.run(r)
}

// ParseFile parses the .ts file at path.
func ParseFile(path string, opts ...Option) (*ParseResult, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

func (p *parser) run(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024) // long multivariate lines

	sawContent := false
	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sawContent = true

		if err := p.consumeLine(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	switch {
	case !sawContent:
		return nil, p.wholeFileError(KindEmpty, "empty file")
	case !p.sawData:
		return nil, p.wholeFileError(KindMetadataOnly, "metadata present but no @data section")
	case len(p.instances) == 0:
		return nil, p.wholeFileError(KindNoData, "@data section contains no instances")
	}

	return &ParseResult{
		Problem:     p.problem,
		Timestamps:  p.timestamps,
		Univariate:  p.univariate,
		HasLabels:   p.hasLabels,
		ClassLabels: p.classLabels,
		TimeKind:    p.timeKind,
		Instances:   p.instances,
		Labels:      p.labels,
	}, nil
}

func (p *parser) wholeFileError(kind Kind, msg string) error {
	return &ParseError{Kind: kind, Message: msg}
}

func (p *parser) consumeLine(line string) error {
	if strings.HasPrefix(line, "@") {
		return p.consumeTag(line)
	}
	if !p.sawData {
		return p.errorf(KindOrdering, "data line before @data tag")
	}
	line = strings.ReplaceAll(line, missingPlaceholder, p.missingValue)
	if p.timestamps {
		return p.consumeTimestampedLine(line)
	}
	return p.consumeDataLine(line)
}

// consumeTag validates and records one @-tag line.
func (p *parser) consumeTag(line string) error {
	if p.sawData {
		return p.errorf(KindOrdering, "metadata tag %q after @data section started", firstToken(line))
	}

	tokens := strings.Fields(line)
	tag := strings.ToLower(tokens[0])

	switch tag {
	case tagProblemName:
		if len(tokens) != 2 {
			return p.errorf(KindMetadata, "%s requires exactly one value", tagProblemName)
		}
		p.problem = tokens[1]
		p.sawProblem = true

	case tagTimestamps:
		v, err := p.parseBool(tag, tokens)
		if err != nil {
			return err
		}
		p.timestamps = v
		p.sawTimestamps = true

	case tagUnivariate:
		v, err := p.parseBool(tag, tokens)
		if err != nil {
			return err
		}
		p.univariate = v
		p.sawUnivariate = true

	case tagClassLabel:
		if len(tokens) < 2 {
			return p.errorf(KindMetadata, "%s requires a true/false value", tagClassLabel)
		}
		switch strings.ToLower(tokens[1]) {
		case "true":
			if len(tokens) < 3 {
				return p.errorf(KindMetadata, "%s true requires at least one label", tagClassLabel)
			}
			p.hasLabels = true
			p.classLabels = append([]string(nil), tokens[2:]...)
		case "false":
			if len(tokens) != 2 {
				return p.errorf(KindMetadata, "%s false takes no labels", tagClassLabel)
			}
		default:
			return p.errorf(KindBoolean, "%s value %q is not true or false", tagClassLabel, tokens[1])
		}
		p.sawClassLabel = true

	case tagData:
		if len(tokens) != 1 {
			return p.errorf(KindMetadata, "%s tag takes no value", tagData)
		}
		if !p.sawProblem || !p.sawTimestamps || !p.sawUnivariate || !p.sawClassLabel {
			return p.errorf(KindMetadata, "incomplete metadata before %s (need %s, %s, %s, %s)",
				tagData, tagProblemName, tagTimestamps, tagUnivariate, tagClassLabel)
		}
		p.sawData = true

	default:
		return p.errorf(KindMetadata, "unknown tag %q", tokens[0])
	}

	return nil
}

func (p *parser) parseBool(tag string, tokens []string) (bool, error) {
	if len(tokens) != 2 {
		return false, p.errorf(KindMetadata, "%s requires exactly one value", tag)
	}
	switch strings.ToLower(tokens[1]) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, p.errorf(KindBoolean, "%s value %q is not true or false", tag, tokens[1])
}

// consumeDataLine handles the non-timestamped branch: colon-separated
// dimensions of comma-separated values, optionally ending with a label.
func (p *parser) consumeDataLine(line string) error {
	segments := strings.Split(line, ":")

	var label string
	if p.hasLabels {
		if len(segments) < 2 {
			return p.errorf(KindLabel, "missing class label segment")
		}
		label = strings.TrimSpace(segments[len(segments)-1])
		segments = segments[:len(segments)-1]
		if p.labelIndex(label) < 0 {
			return p.errorf(KindLabel, "class label %q is not in the declared vocabulary", label)
		}
	}

	if p.numDims < 0 {
		p.numDims = len(segments)
	} else if len(segments) != p.numDims {
		return p.errorf(KindDimensions, "line has %d dimensions, first data line has %d",
			len(segments), p.numDims)
	}

	instance := make(Instance, len(segments))
	for dim, segment := range segments {
		series, err := p.parseValueList(segment, dim)
		if err != nil {
			return err
		}
		instance[dim] = series
	}

	p.instances = append(p.instances, instance)
	if p.hasLabels {
		p.labels = append(p.labels, label)
	}
	return nil
}

// parseValueList parses one dimension's comma-separated observations.
// An empty segment is a zero-length series.
func (p *parser) parseValueList(segment string, dim int) (Series, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return Series{Values: []float64{}}, nil
	}

	parts := strings.Split(segment, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Series{}, p.errorf(KindValue, "dimension %d: %q is not a number", dim, strings.TrimSpace(part))
		}
		values = append(values, v)
	}
	return Series{Values: values}, nil
}

func (p *parser) labelIndex(label string) int {
	for i, l := range p.classLabels {
		if l == label {
			return i
		}
	}
	return -1
}

func firstToken(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}
