package toon

import "testing"

func TestStringifyScalar(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", Null(), "null"},
		{"nil value", nil, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Number(42), "42"},
		{"negative int", Number(-7), "-7"},
		{"zero", Number(0), "0"},
		{"float", Number(3.14), "3.14"},
		{"large", Number(1e21), "1e+21"},
		{"small", Number(0.5), "0.5"},
		{"plain string", Str("hello"), "hello"},
		{"string with space", Str("hello world"), "hello world"},
		{"comma forces quotes", Str("a,b"), `"a,b"`},
		{"quote doubles", Str(`say "hi"`), `"say ""hi"""`},
		{"newline forces quotes", Str("a\nb"), "\"a\nb\""},
		{"empty string", Str(""), ""},
		{"undefined legacy", Undefined(), "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringifyScalar(tt.v); got != tt.want {
				t.Errorf("stringifyScalar() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *Value
	}{
		{"null literal", "null", Null()},
		{"true literal", "true", Bool(true)},
		{"false literal", "false", Bool(false)},
		{"int", "42", Number(42)},
		{"negative float", "-3.5", Number(-3.5)},
		{"exponent", "1e3", Number(1000)},
		{"leading dot", ".5", Number(0.5)},
		{"bare string", "hello", Str("hello")},
		{"spaced string trims", "  hi  ", Str("hi")},
		{"empty is empty string", "", Str("")},
		{"whitespace is empty string", "   ", Str("")},
		{"quoted string", `"a,b"`, Str("a,b")},
		{"quoted null stays string", `"null"`, Str("null")},
		{"doubled quotes collapse", `"say ""hi"""`, Str(`say "hi"`)},
		{"lone quote pair", `""`, Str("")},
		{"not a number: NaN", "NaN", Str("NaN")},
		{"not a number: Inf", "Inf", Str("Inf")},
		{"not a number: hex", "0x10", Str("0x10")},
		{"version string", "1.2.3", Str("1.2.3")},
		{"undefined is a string", "undefined", Str("undefined")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseScalar(tt.text)
			if !got.Equal(tt.want) {
				t.Errorf("parseScalar(%q) = %v %s, want %v", tt.text, got, got.Kind(), tt.want)
			}
		})
	}
}

// parseScalar(stringifyScalar(v)) must reproduce every representable
// scalar except the legacy undefined marker.
func TestScalarCodecIdempotent(t *testing.T) {
	scalars := []*Value{
		Null(),
		Bool(true),
		Bool(false),
		Number(0),
		Number(-1),
		Number(123456789),
		Number(2.5),
		Number(-0.001),
		Number(1e-7),
		Str("plain"),
		Str("two words"),
		Str("comma, inside"),
		Str(`nested "quotes"`),
		Str(`both, "at once"`),
		Str("line\nbreak"),
	}

	for _, v := range scalars {
		text := stringifyScalar(v)
		back := parseScalar(text)
		if !back.Equal(v) {
			t.Errorf("round trip failed for %s %v: text %q came back as %s %v",
				v.Kind(), v, text, back.Kind(), back)
		}
	}
}
