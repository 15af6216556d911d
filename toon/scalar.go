package toon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches plain decimal numbers. ParseFloat alone is too
// permissive here: it also accepts Inf, NaN and hex floats, none of which
// are numbers in this format.
var decimalPattern = regexp.MustCompile(`^-?(0|[1-9]\d*|\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`)

// ============================================================
// Scalar Codec
// ============================================================
//
// Scalars travel as bare text. The only escaping transformation is
// CSV-style: a string containing a comma, a double quote, or a newline is
// wrapped in double quotes and interior quotes are doubled. No backslash
// escapes exist anywhere in the format.

// stringifyScalar renders a scalar value as cell/line text.
func stringifyScalar(v *Value) string {
	if v == nil {
		return "null"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.numVal)
	case KindString:
		return quoteIfNeeded(v.strVal)
	case KindUndefined:
		// Legacy pass-through; decodes back as a bare string.
		return "undefined"
	default:
		return ""
	}
}

// formatNumber returns the canonical decimal text of a number.
// Integral values carry no fraction; others use the shortest
// representation that round-trips through float64.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) &&
		f >= -9007199254740991 && f <= 9007199254740991 {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Normalize exponent marker: E -> e
	return strings.ReplaceAll(s, "E", "e")
}

// quoteIfNeeded applies the CSV-style quoting rule to a string.
func quoteIfNeeded(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// parseScalar parses a single cell/line token into a Value.
//
// Precedence is fixed: a fully quoted token is always a string; then the
// literals null/true/false; then any valid decimal number; anything else
// is a bare string. A token that is empty after trimming is the empty
// string, never null.
func parseScalar(text string) *Value {
	t := strings.TrimSpace(text)

	if len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"' {
		return Str(unquoteCell(t))
	}

	switch t {
	case "":
		return Str("")
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if decimalPattern.MatchString(t) {
		if n, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(n, 0) {
			return Number(n)
		}
	}

	return Str(t)
}

// unquoteCell strips one enclosing pair of double quotes and collapses
// doubled interior quotes.
func unquoteCell(t string) string {
	inner := t[1 : len(t)-1]
	if !strings.Contains(inner, `"`) {
		return inner
	}
	return strings.ReplaceAll(inner, `""`, `"`)
}
