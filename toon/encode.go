package toon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidValue reports an encoder input that is not a well-formed value
// tree: a cyclic reference or an unrecognized kind.
var ErrInvalidValue = errors.New("toon: invalid source value")

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int

	// SortKeys renders object keys and table columns in ascending
	// lexicographic order instead of insertion order.
	SortKeys bool

	// IncludeStats asks for conversion statistics alongside the text.
	// Encode ignores it; EncodeWithStats is the stats-returning entry
	// point, and callers threading options through should branch on it.
	IncludeStats bool
}

// DefaultEncodeOptions returns the defaults: two-space indent, insertion
// order, no stats.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{IndentWidth: 2}
}

// Encode renders a value as TOON text. The output has no trailing newline,
// and no line carries trailing whitespace outside a quoted scalar span.
func Encode(v *Value, opts EncodeOptions) (string, error) {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	e := &encoder{opts: opts, active: make(map[*Value]bool)}

	switch v.Kind() {
	case KindObject:
		e.encodeObject(v, 0)
	case KindArray:
		e.encodeArray("root", v, 0)
	default:
		e.writeLine(0, stringifyScalar(v))
	}

	if e.err != nil {
		return "", e.err
	}
	return strings.Join(e.lines, "\n"), nil
}

// EncodeWithStats renders a value and additionally computes conversion
// statistics against the pretty-printed JSON form of the same value.
func EncodeWithStats(v *Value, opts EncodeOptions) (string, ConversionStats, error) {
	text, err := Encode(v, opts)
	if err != nil {
		return "", ConversionStats{}, err
	}
	jsonText, err := ToJSONIndent(v, "  ")
	if err != nil {
		return "", ConversionStats{}, err
	}
	return text, ComputeStats(string(jsonText), text), nil
}

type encoder struct {
	lines  []string
	opts   EncodeOptions
	err    error
	active map[*Value]bool // containers on the current recursion path
}

// writeLine appends one output line at the given depth, trimming trailing
// whitespace per the format contract.
func (e *encoder) writeLine(depth int, text string) {
	line := strings.Repeat(" ", e.opts.IndentWidth*depth) + text
	e.lines = append(e.lines, strings.TrimRight(line, " \t"))
}

// enter marks a container as being encoded; a revisit means a cycle.
func (e *encoder) enter(v *Value) bool {
	if e.active[v] {
		e.err = fmt.Errorf("%w: cyclic reference", ErrInvalidValue)
		return false
	}
	e.active[v] = true
	return true
}

func (e *encoder) leave(v *Value) {
	delete(e.active, v)
}

func (e *encoder) sortedFields(v *Value) []Field {
	fields := v.objVal
	if !e.opts.SortKeys || len(fields) <= 1 {
		return fields
	}
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return sorted
}

func (e *encoder) encodeObject(v *Value, depth int) {
	if e.err != nil || !e.enter(v) {
		return
	}
	defer e.leave(v)

	for _, f := range e.sortedFields(v) {
		switch f.Value.Kind() {
		case KindObject:
			e.writeLine(depth, f.Key+":")
			e.encodeObject(f.Value, depth+1)
		case KindArray:
			e.encodeArray(f.Key, f.Value, depth)
		case KindNull, KindBool, KindNumber, KindString, KindUndefined:
			e.writeLine(depth, f.Key+": "+stringifyScalar(f.Value))
		default:
			e.err = fmt.Errorf("%w: unknown kind %d", ErrInvalidValue, f.Value.Kind())
			return
		}
	}
}

func (e *encoder) encodeArray(key string, v *Value, depth int) {
	if e.err != nil || !e.enter(v) {
		return
	}
	defer e.leave(v)

	elems := v.arrVal

	// Fixed convention: empty arrays always declare zero columns.
	if len(elems) == 0 {
		e.writeLine(depth, fmt.Sprintf("%s[0]{}:", key))
		return
	}

	decision := classifyTable(elems)
	if decision.Tabular {
		e.encodeTable(key, elems, decision.Columns, depth)
		return
	}

	// Generic layout: one element per line-group.
	e.writeLine(depth, fmt.Sprintf("%s[%d]:", key, len(elems)))
	for i, elem := range elems {
		switch elem.Kind() {
		case KindObject:
			e.encodeObject(elem, depth+1)
		case KindArray:
			e.encodeArray(fmt.Sprintf("[%d]", i), elem, depth+1)
		case KindNull, KindBool, KindNumber, KindString, KindUndefined:
			e.writeLine(depth+1, stringifyScalar(elem))
		default:
			e.err = fmt.Errorf("%w: unknown kind %d", ErrInvalidValue, elem.Kind())
			return
		}
	}
}

func (e *encoder) encodeTable(key string, rows []*Value, columns []string, depth int) {
	if e.opts.SortKeys {
		columns = sortedCopy(columns)
	}

	e.writeLine(depth, fmt.Sprintf("%s[%d]{%s}:", key, len(rows), strings.Join(columns, ",")))

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i] = stringifyScalar(row.Get(col))
		}
		e.writeLine(depth+1, strings.Join(cells, ","))
	}
}
