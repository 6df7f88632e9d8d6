package tsfile

import (
	"errors"
	"fmt"
)

// Kind categorizes fatal parse errors so callers can report why a file
// could not be converted. Any Kind means "skip this file"; there is no
// recoverable subset.
type Kind string

const (
	// KindOrdering indicates metadata appearing after data has started,
	// or data appearing before the @data tag.
	KindOrdering Kind = "ordering"

	// KindMetadata indicates a missing, incomplete, or malformed metadata tag.
	KindMetadata Kind = "metadata"

	// KindBoolean indicates a tag value that is not "true" or "false".
	KindBoolean Kind = "boolean"

	// KindLabel indicates a class label outside the declared vocabulary,
	// or a missing label on a line when labels are declared.
	KindLabel Kind = "label"

	// KindDimensions indicates a line whose dimension count differs from
	// the count fixed by the first data line.
	KindDimensions Kind = "dimensions"

	// KindTuple indicates a malformed (timestamp,value) tuple: unterminated,
	// no internal comma, an unparseable timestamp, or a trailing comma with
	// no tuple following.
	KindTuple Kind = "tuple"

	// KindTimestamp indicates a tuple whose timestamp representation
	// conflicts with the one already locked in for the file.
	KindTimestamp Kind = "timestamp"

	// KindValue indicates a non-numeric observation value.
	KindValue Kind = "value"

	// KindEmpty indicates an input with no content at all.
	KindEmpty Kind = "empty"

	// KindMetadataOnly indicates metadata with no @data tag.
	KindMetadataOnly Kind = "metadata-only"

	// KindNoData indicates a @data tag followed by zero instances.
	KindNoData Kind = "no-data"
)

// ParseError is the single fatal error type produced by Parse. Line is
// 1-based; Line 0 means the error concerns the file as a whole.
type ParseError struct {
	Kind    Kind
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// AsParseError unwraps err into a *ParseError if it is one.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func (p *parser) errorf(kind Kind, format string, args ...interface{}) error {
	return &ParseError{Kind: kind, Line: p.line, Message: fmt.Sprintf(format, args...)}
}
