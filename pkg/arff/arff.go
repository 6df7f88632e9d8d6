// Package arff reads ARFF relation files into numeric row matrices.
//
// Only the subset used by time-series classification archives is
// supported: numeric attributes, nominal attributes (encoded as their
// vocabulary index), comment lines, and "?" for missing values.
package arff

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Attribute describes one declared @attribute.
type Attribute struct {
	// Name is the attribute name as declared.
	Name string

	// Nominal holds the vocabulary for nominal attributes; nil for numeric.
	Nominal []string
}

// Numeric reports whether the attribute holds plain numeric values.
func (a Attribute) Numeric() bool {
	return a.Nominal == nil
}

// Relation is the parsed content of one ARFF file. Nominal cells are
// stored as the float64 index of the value in the attribute vocabulary;
// missing cells are NaN.
type Relation struct {
	Name       string
	Attributes []Attribute
	Rows       [][]float64
}

// ClassAttribute returns the final attribute when it is nominal, which is
// how classification archives store the label column. ok is false for
// fully numeric relations.
func (r *Relation) ClassAttribute() (Attribute, bool) {
	if len(r.Attributes) == 0 {
		return Attribute{}, false
	}
	last := r.Attributes[len(r.Attributes)-1]
	if last.Numeric() {
		return Attribute{}, false
	}
	return last, true
}

// Parse reads a complete ARFF file from r.
func Parse(r io.Reader) (*Relation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	rel := &Relation{}
	line := 0
	inData := false

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		if strings.HasPrefix(text, "@") {
			if err := parseDeclaration(rel, text, line, &inData); err != nil {
				return nil, err
			}
			continue
		}

		if !inData {
			return nil, fmt.Errorf("line %d: data row before @data tag", line)
		}
		row, err := parseRow(rel, text, line)
		if err != nil {
			return nil, err
		}
		rel.Rows = append(rel.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if rel.Name == "" && len(rel.Attributes) == 0 && len(rel.Rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if !inData {
		return nil, fmt.Errorf("no @data section")
	}
	if len(rel.Rows) == 0 {
		return nil, fmt.Errorf("@data section contains no rows")
	}
	return rel, nil
}

// ParseFile parses the ARFF file at path.
func ParseFile(path string) (*Relation, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func parseDeclaration(rel *Relation, text string, line int, inData *bool) error {
	fields := strings.Fields(text)
	switch strings.ToLower(fields[0]) {
	case "@relation":
		if len(fields) < 2 {
			return fmt.Errorf("line %d: @relation requires a name", line)
		}
		rel.Name = strings.Trim(fields[1], "'\"")

	case "@attribute":
		if len(fields) < 3 {
			return fmt.Errorf("line %d: @attribute requires a name and a type", line)
		}
		attr := Attribute{Name: strings.Trim(fields[1], "'\"")}
		typeSpec := strings.TrimSpace(text[strings.Index(text, fields[1])+len(fields[1]):])
		switch {
		case strings.HasPrefix(typeSpec, "{"):
			end := strings.Index(typeSpec, "}")
			if end < 0 {
				return fmt.Errorf("line %d: nominal attribute %q missing closing brace", line, attr.Name)
			}
			for _, v := range strings.Split(typeSpec[1:end], ",") {
				attr.Nominal = append(attr.Nominal, strings.Trim(strings.TrimSpace(v), "'\""))
			}
			if len(attr.Nominal) == 0 {
				return fmt.Errorf("line %d: nominal attribute %q has no values", line, attr.Name)
			}
		case strings.EqualFold(typeSpec, "numeric"), strings.EqualFold(typeSpec, "real"), strings.EqualFold(typeSpec, "integer"):
			// numeric, nothing to record
		default:
			return fmt.Errorf("line %d: unsupported attribute type %q", line, typeSpec)
		}
		rel.Attributes = append(rel.Attributes, attr)

	case "@data":
		if len(rel.Attributes) == 0 {
			return fmt.Errorf("line %d: @data before any @attribute", line)
		}
		*inData = true

	default:
		return fmt.Errorf("line %d: unknown declaration %q", line, fields[0])
	}
	return nil
}

func parseRow(rel *Relation, text string, line int) ([]float64, error) {
	cells := strings.Split(text, ",")
	if len(cells) != len(rel.Attributes) {
		return nil, fmt.Errorf("line %d: row has %d values, relation declares %d attributes",
			line, len(cells), len(rel.Attributes))
	}

	row := make([]float64, len(cells))
	for i, cell := range cells {
		cell = strings.Trim(strings.TrimSpace(cell), "'\"")
		if cell == "?" {
			row[i] = math.NaN()
			continue
		}

		attr := rel.Attributes[i]
		if attr.Numeric() {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: attribute %q: %q is not a number", line, attr.Name, cell)
			}
			row[i] = v
			continue
		}

		idx := -1
		for j, nominal := range attr.Nominal {
			if nominal == cell {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("line %d: attribute %q: value %q is not in %v", line, attr.Name, cell, attr.Nominal)
		}
		row[i] = float64(idx)
	}
	return row, nil
}
