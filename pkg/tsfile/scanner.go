package tsfile

import (
	"strconv"
	"strings"
	"time"
)

// lineState enumerates the per-line scanner states for timestamped data.
type lineState int

const (
	// awaitDimOrLabel: at the start of a dimension, expecting "(", ":" for
	// an empty dimension, or (when labels are declared) the trailing label.
	awaitDimOrLabel lineState = iota

	// inTuple: between "(" and ")", accumulating the tuple body.
	inTuple

	// afterTuple: a tuple just closed; expecting "," for another tuple or
	// ":" to end the dimension.
	afterTuple
)

// calendarLayouts are the accepted calendar timestamp forms. Layouts with
// an internal comma are supported because tuple splitting uses the last
// comma, not the first.
var calendarLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// consumeTimestampedLine scans one data line of (timestamp,value) tuples.
// Dimensions are separated by ":", tuples within a dimension by ",", and
// a trailing bare token is the class label when labels are declared.
func (p *parser) consumeTimestampedLine(line string) error {
	var (
		state        = awaitDimOrLabel
		dims         []Series
		cur          Series
		tupleStart   int
		pendingComma bool // a "," was consumed, so a tuple must follow
		label        string
		labelSeen    bool
	)

	commitDim := func() {
		if cur.Values == nil {
			cur.Values = []float64{}
		}
		dims = append(dims, cur)
		cur = Series{}
	}

scan:
	for i := 0; i < len(line); i++ {
		c := line[i]

		switch state {
		case awaitDimOrLabel:
			switch {
			case c == ' ' || c == '\t':
				// skip
			case c == '(':
				state = inTuple
				tupleStart = i + 1
				pendingComma = false
			case c == ':':
				if pendingComma {
					return p.errorf(KindTuple, "dimension %d: trailing comma with no tuple following", len(dims))
				}
				commitDim()
			default:
				if pendingComma {
					return p.errorf(KindTuple, "dimension %d: expected a tuple after comma, found %q", len(dims), string(c))
				}
				if !p.hasLabels {
					return p.errorf(KindTuple, "dimension %d: unexpected character %q, expected tuple", len(dims), string(c))
				}
				label = strings.TrimSpace(line[i:])
				labelSeen = true
				break scan
			}

		case inTuple:
			if c == ')' {
				tup, err := p.parseTuple(line[tupleStart:i], len(dims))
				if err != nil {
					return err
				}
				cur.Values = append(cur.Values, tup.value)
				switch p.timeKind {
				case TimeKindInteger:
					cur.Index = append(cur.Index, tup.index)
				case TimeKindCalendar:
					cur.Times = append(cur.Times, tup.when)
				}
				state = afterTuple
			}

		case afterTuple:
			switch c {
			case ' ', '\t':
				// skip
			case ',':
				state = awaitDimOrLabel
				pendingComma = true
			case ':':
				commitDim()
				state = awaitDimOrLabel
			default:
				return p.errorf(KindTuple, "dimension %d: unexpected character %q after tuple", len(dims), string(c))
			}
		}
	}

	// end of line
	switch {
	case state == inTuple:
		return p.errorf(KindTuple, "dimension %d: tuple missing closing parenthesis", len(dims))
	case pendingComma:
		return p.errorf(KindTuple, "dimension %d: line ends with a trailing comma", len(dims))
	case state == afterTuple:
		commitDim()
	case state == awaitDimOrLabel && !labelSeen && len(line) > 0 && line[len(line)-1] == ':':
		// bare trailing ":" marks a final empty dimension
		commitDim()
	}

	if p.hasLabels {
		if !labelSeen {
			return p.errorf(KindLabel, "line does not end with a class label")
		}
		if p.labelIndex(label) < 0 {
			return p.errorf(KindLabel, "class label %q is not in the declared vocabulary", label)
		}
		if len(dims) == 0 {
			return p.errorf(KindLabel, "line has a class label but no dimension data")
		}
	}

	if p.numDims < 0 {
		p.numDims = len(dims)
	} else if len(dims) != p.numDims {
		return p.errorf(KindDimensions, "line has %d dimensions, first data line has %d", len(dims), p.numDims)
	}

	p.instances = append(p.instances, Instance(dims))
	if p.hasLabels {
		p.labels = append(p.labels, label)
	}
	return nil
}

// tupleResult is one parsed (timestamp,value) tuple. Only the slot
// matching the locked-in TimeKind is valid.
type tupleResult struct {
	index int64
	when  time.Time
	value float64
}

// parseTuple parses one tuple body (the text between parentheses).
// The value is everything after the LAST comma, so calendar timestamps
// containing commas ("Jan 2, 2021") split correctly.
func (p *parser) parseTuple(body string, dim int) (tupleResult, error) {
	comma := strings.LastIndex(body, ",")
	if comma < 0 {
		return tupleResult{}, p.errorf(KindTuple, "dimension %d: tuple %q has no comma between timestamp and value", dim, body)
	}

	valueStr := strings.TrimSpace(body[comma+1:])
	if valueStr == "" {
		return tupleResult{}, p.errorf(KindTuple, "dimension %d: tuple %q has no value", dim, body)
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return tupleResult{}, p.errorf(KindTuple, "dimension %d: tuple value %q is not a number", dim, valueStr)
	}

	tsStr := strings.TrimSpace(body[:comma])
	if tsStr == "" {
		return tupleResult{}, p.errorf(KindTuple, "dimension %d: tuple %q has no timestamp", dim, body)
	}

	// integer offset first, calendar timestamp as fallback
	if idx, err := strconv.ParseInt(tsStr, 10, 64); err == nil {
		if err := p.lockTimeKind(TimeKindInteger, dim); err != nil {
			return tupleResult{}, err
		}
		return tupleResult{index: idx, value: value}, nil
	}

	when, ok := parseCalendar(tsStr)
	if !ok {
		return tupleResult{}, p.errorf(KindTuple, "dimension %d: %q is not an integer or calendar timestamp", dim, tsStr)
	}
	if err := p.lockTimeKind(TimeKindCalendar, dim); err != nil {
		return tupleResult{}, err
	}
	return tupleResult{when: when, value: value}, nil
}

// lockTimeKind enforces one timestamp representation per file.
func (p *parser) lockTimeKind(kind TimeKind, dim int) error {
	if p.timeKind == TimeKindNone {
		p.timeKind = kind
		return nil
	}
	if p.timeKind != kind {
		return p.errorf(KindTimestamp, "dimension %d: %s timestamp in a file using %s timestamps",
			dim, kind, p.timeKind)
	}
	return nil
}

func parseCalendar(s string) (time.Time, bool) {
	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
