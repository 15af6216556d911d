package toon

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedInput reports TOON text whose structural header lines
// violate the grammar. Wrapped by every *DecodeError.
var ErrMalformedInput = errors.New("toon: malformed input")

// DecodeError is a grammar violation with source context.
type DecodeError struct {
	Line    int    // 1-based line number
	Text    string // offending line content
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("toon: line %d: %s: %q", e.Line, e.Message, e.Text)
}

func (e *DecodeError) Unwrap() error { return ErrMalformedInput }

// ============================================================
// Line Grammar
// ============================================================
//
// The grammar is line-oriented and indentation-sensitive. Header and
// key-value names are restricted to [A-Za-z0-9_]+, plus the positional
// pseudo-key form [i] the encoder emits for nested arrays. A line that
// looks like an array header but fails the strict pattern is a hard
// error; any other unrecognized line is skipped for forward
// compatibility with annotations.

var (
	tableHeaderPat  = regexp.MustCompile(`^(\w+|\[\d+\])\[(\d+)\]\{([^{}]*)\}:$`)
	arrayHeaderPat  = regexp.MustCompile(`^(\w+|\[\d+\])\[(\d+)\]:$`)
	objectHeaderPat = regexp.MustCompile(`^(\w+):$`)
	keyValuePat     = regexp.MustCompile(`^(\w+): ((?s:.*))$`)

	// headerCandidatePat spots lines that can only have been meant as
	// array headers; failing the strict patterns above makes them
	// malformed rather than skippable.
	headerCandidatePat = regexp.MustCompile(`^(\w+|\[\d+\])\[`)
)

// line is one non-blank input line with its indentation stripped.
type line struct {
	num    int
	indent int
	text   string
}

// cursor is the decoder position, threaded by reference through the
// recursive productions. Blank lines never reach it.
type cursor struct {
	lines []line
	pos   int
}

func newCursor(input string) *cursor {
	raw := strings.Split(input, "\n")
	c := &cursor{lines: make([]line, 0, len(raw))}
	for i := 0; i < len(raw); i++ {
		num := i + 1
		r := strings.TrimSuffix(raw[i], "\r")
		// A quoted scalar may carry raw newlines, leaving the physical
		// line with an open quote. Rejoin until the quotes balance so the
		// span stays on one logical line. Quote doubling keeps balanced
		// lines even, so the parity test never misfires on encoder output.
		for strings.Count(r, `"`)%2 == 1 && i+1 < len(raw) {
			i++
			r += "\n" + strings.TrimSuffix(raw[i], "\r")
		}
		r = strings.TrimRight(r, " \t")
		if r == "" {
			continue
		}
		indent := 0
		for indent < len(r) && r[indent] == ' ' {
			indent++
		}
		c.lines = append(c.lines, line{num: num, indent: indent, text: r[indent:]})
	}
	return c
}

func (c *cursor) done() bool {
	return c.pos >= len(c.lines)
}

func (c *cursor) peek() (line, bool) {
	if c.done() {
		return line{}, false
	}
	return c.lines[c.pos], true
}

func (c *cursor) next() line {
	ln := c.lines[c.pos]
	c.pos++
	return ln
}

func malformed(ln line, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Line: ln.num, Text: ln.text, Message: fmt.Sprintf(format, args...)}
}

// ============================================================
// Decode
// ============================================================

// Decode parses TOON text into a Value.
//
// The document is an object body at column zero, with two special forms:
// a lone non-structural line is a bare scalar document, and a document
// consisting solely of a "root"-keyed array block is the array itself
// (the synthetic key the encoder puts on top-level arrays).
func Decode(text string) (*Value, error) {
	c := newCursor(text)

	first, ok := c.peek()
	if !ok {
		return Object(), nil
	}

	if len(c.lines) == 1 && !isStructuralLine(first.text) {
		return parseScalar(first.text), nil
	}

	rootHeader := isRootArrayHeader(first.text)

	obj, err := parseObjectBlock(c, first.indent, false)
	if err != nil {
		return nil, err
	}

	if rootHeader && obj.Len() == 1 && obj.objVal[0].Key == "root" {
		return obj.objVal[0].Value, nil
	}
	return obj, nil
}

func isStructuralLine(text string) bool {
	return tableHeaderPat.MatchString(text) ||
		arrayHeaderPat.MatchString(text) ||
		objectHeaderPat.MatchString(text) ||
		keyValuePat.MatchString(text) ||
		headerCandidatePat.MatchString(text)
}

func isRootArrayHeader(text string) bool {
	if m := tableHeaderPat.FindStringSubmatch(text); m != nil {
		return m[1] == "root"
	}
	if m := arrayHeaderPat.FindStringSubmatch(text); m != nil {
		return m[1] == "root"
	}
	return false
}

// parseObjectBlock consumes key lines at indentation >= minIndent,
// returning when the input dedents below it or runs out.
//
// inArray is set when the block is a generic-array element: there an
// unrecognized line ends the element instead of being skipped, so scalar
// siblings are not swallowed.
func parseObjectBlock(c *cursor, minIndent int, inArray bool) (*Value, error) {
	obj := Object()

	for {
		ln, ok := c.peek()
		if !ok || ln.indent < minIndent {
			return obj, nil
		}

		switch {
		case tableHeaderPat.MatchString(ln.text):
			m := tableHeaderPat.FindStringSubmatch(ln.text)
			arr, err := parseTable(c, m)
			if err != nil {
				return nil, err
			}
			obj.Set(m[1], arr)

		case arrayHeaderPat.MatchString(ln.text):
			m := arrayHeaderPat.FindStringSubmatch(ln.text)
			arr, err := parseGenericArray(c, m)
			if err != nil {
				return nil, err
			}
			obj.Set(m[1], arr)

		case objectHeaderPat.MatchString(ln.text):
			c.next()
			child, err := parseObjectBlock(c, ln.indent+1, false)
			if err != nil {
				return nil, err
			}
			obj.Set(objectHeaderPat.FindStringSubmatch(ln.text)[1], child)

		case keyValuePat.MatchString(ln.text):
			m := keyValuePat.FindStringSubmatch(ln.text)
			c.next()
			obj.Set(m[1], parseScalar(m[2]))

		case headerCandidatePat.MatchString(ln.text):
			return nil, malformed(ln, "malformed array header")

		default:
			if inArray {
				return obj, nil
			}
			// Lenient recovery: unrecognized non-header lines are
			// tolerated as unknown annotations.
			c.next()
		}
	}
}

// parseTable consumes a tabular header and its declared row count.
// m is the tableHeaderPat match of the current line.
func parseTable(c *cursor, m []string) (*Value, error) {
	header := c.next()

	count, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, malformed(header, "invalid row count %q", m[2])
	}

	var columns []string
	if m[3] != "" {
		columns = strings.Split(m[3], ",")
	}
	if count > 0 && len(columns) == 0 {
		return nil, malformed(header, "table declares %d rows but no columns", count)
	}

	arr := Array()
	for i := 0; i < count; i++ {
		ln, ok := c.peek()
		if !ok || ln.indent <= header.indent {
			return nil, malformed(header, "table truncated: expected %d rows, got %d", count, i)
		}
		c.next()

		cells := splitRow(ln.text)
		if len(cells) != len(columns) {
			return nil, malformed(ln, "row has %d cells, expected %d", len(cells), len(columns))
		}

		fields := make([]Field, len(columns))
		for j, col := range columns {
			fields[j] = Field{Key: col, Value: parseScalar(cells[j])}
		}
		arr.Append(Object(fields...))
	}
	return arr, nil
}

// parseGenericArray consumes a generic array header and up to the
// declared element count. The count is an upper bound rather than a hard
// contract: adjacent object elements merge under this grammar, so a
// dedent before count elements ends the array instead of failing.
func parseGenericArray(c *cursor, m []string) (*Value, error) {
	header := c.next()

	count, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, malformed(header, "invalid element count %q", m[2])
	}

	arr := Array()
	if count == 0 {
		return arr, nil
	}

	body, ok := c.peek()
	if !ok || body.indent <= header.indent {
		return arr, nil
	}
	elemIndent := body.indent

	for arr.Len() < count {
		ln, ok := c.peek()
		if !ok || ln.indent < elemIndent {
			return arr, nil
		}
		if ln.indent > elemIndent {
			// Stray deep line with no parent element: skip.
			c.next()
			continue
		}

		switch {
		// A positional pseudo-key header ([i]) is a nested array element;
		// a named header is the first field of an object element.
		case tableHeaderPat.MatchString(ln.text) && isPseudoKey(tableHeaderPat.FindStringSubmatch(ln.text)[1]):
			elem, err := parseTable(c, tableHeaderPat.FindStringSubmatch(ln.text))
			if err != nil {
				return nil, err
			}
			arr.Append(elem)

		case arrayHeaderPat.MatchString(ln.text) && isPseudoKey(arrayHeaderPat.FindStringSubmatch(ln.text)[1]):
			elem, err := parseGenericArray(c, arrayHeaderPat.FindStringSubmatch(ln.text))
			if err != nil {
				return nil, err
			}
			arr.Append(elem)

		case tableHeaderPat.MatchString(ln.text) || arrayHeaderPat.MatchString(ln.text) ||
			objectHeaderPat.MatchString(ln.text) || keyValuePat.MatchString(ln.text):
			elem, err := parseObjectBlock(c, elemIndent, true)
			if err != nil {
				return nil, err
			}
			arr.Append(elem)

		case headerCandidatePat.MatchString(ln.text):
			return nil, malformed(ln, "malformed array header")

		default:
			c.next()
			arr.Append(parseScalar(ln.text))
		}
	}
	return arr, nil
}

// isPseudoKey reports whether a header name is the positional [i] form
// the encoder gives to nested array elements.
func isPseudoKey(name string) bool {
	return strings.HasPrefix(name, "[")
}

// splitRow splits a table row on commas outside quoted spans, keeping
// the quotes for parseScalar to strip.
func splitRow(s string) []string {
	var cells []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '"':
			b.WriteByte(ch)
			if inQuotes && i+1 < len(s) && s[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			cells = append(cells, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	return append(cells, b.String())
}
