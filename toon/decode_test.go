package toon

import (
	"errors"
	"strings"
	"testing"
)

func mustDecode(t *testing.T, text string) *Value {
	t.Helper()
	v, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return v
}

func TestDecodeUsersTable(t *testing.T) {
	v := mustDecode(t, "users[2]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user")

	want := Object(F("users", Array(
		Object(F("id", Number(1)), F("name", Str("Alice")), F("role", Str("admin"))),
		Object(F("id", Number(2)), F("name", Str("Bob")), F("role", Str("user"))),
	)))
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}

	// id must come back as a number, not a string.
	id, err := v.Get("users").arrVal[0].Get("id").AsNumber()
	if err != nil || id != 1 {
		t.Errorf("id = %v (%v), want number 1", id, err)
	}
}

func TestDecodeMixedArray(t *testing.T) {
	v := mustDecode(t, "mixed[4]:\n  1\n  string\n  true\n  null")

	want := Object(F("mixed", Array(Number(1), Str("string"), Bool(true), Null())))
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestDecodeNestedObjects(t *testing.T) {
	text := strings.Join([]string{
		"name: svc",
		"limits:",
		"  cpu: 2",
		"  mem: 512Mi",
		"meta:",
		"  labels:",
		"    env: prod",
		"ready: true",
	}, "\n")

	v := mustDecode(t, text)
	want := Object(
		F("name", Str("svc")),
		F("limits", Object(F("cpu", Number(2)), F("mem", Str("512Mi")))),
		F("meta", Object(F("labels", Object(F("env", Str("prod")))))),
		F("ready", Bool(true)),
	)
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	v := mustDecode(t, "items[0]{}:")
	items, err := v.Get("items").AsArray()
	if err != nil || len(items) != 0 {
		t.Errorf("items = %v (%v), want empty array", items, err)
	}
}

func TestDecodeTopLevelForms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *Value
	}{
		{"empty input", "", Object()},
		{"blank input", "\n  \n", Object()},
		{"bare number", "42", Number(42)},
		{"bare string", "hello world", Str("hello world")},
		{"bare null", "null", Null()},
		{"root array unwraps", "root[2]:\n  1\n  2", Array(Number(1), Number(2))},
		{"root table unwraps", "root[1]{id}:\n  7", Array(Object(F("id", Number(7))))},
		{"root empty array", "root[0]{}:", Array()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustDecode(t, tt.text)
			if !v.Equal(tt.want) {
				t.Errorf("got %v (%s), want %v", v, v.Kind(), tt.want)
			}
		})
	}
}

func TestDecodeQuotedCells(t *testing.T) {
	v := mustDecode(t, "people[2]{id,name}:\n  1,\"Smith, John\"\n  2,\"Ann \"\"AJ\"\" Jones\"")

	people, _ := v.Get("people").AsArray()
	if got, _ := people[0].Get("name").AsStr(); got != "Smith, John" {
		t.Errorf("row 1 name = %q", got)
	}
	if got, _ := people[1].Get("name").AsStr(); got != `Ann "AJ" Jones` {
		t.Errorf("row 2 name = %q", got)
	}
}

// A quoted scalar may span physical lines; the raw newline stays part of
// the string and the field after it is still seen.
func TestDecodeNewlineInQuotedValue(t *testing.T) {
	v := mustDecode(t, "msg: \"a\nb\"\nnext: 1")

	want := Object(F("msg", Str("a\nb")), F("next", Number(1)))
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestDecodeNewlineInTableCell(t *testing.T) {
	v := mustDecode(t, "notes[1]{text,n}:\n  \"first\nsecond\",7")

	notes, _ := v.Get("notes").AsArray()
	if got, _ := notes[0].Get("text").AsStr(); got != "first\nsecond" {
		t.Errorf("text = %q", got)
	}
	if got, _ := notes[0].Get("n").AsNumber(); got != 7 {
		t.Errorf("n = %v", got)
	}
}

func TestDecodeBlankLinesIgnored(t *testing.T) {
	text := "a: 1\n\n\nusers[2]{id}:\n\n  1\n  2\n\nz: 9"
	v := mustDecode(t, text)

	want := Object(
		F("a", Number(1)),
		F("users", Array(Object(F("id", Number(1))), Object(F("id", Number(2))))),
		F("z", Number(9)),
	)
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

// Non-header junk lines are tolerated so unknown annotations pass through.
func TestDecodeLenientSkip(t *testing.T) {
	text := "# generated by tooling\na: 1\n--- weird separator ---\nb: 2"
	v := mustDecode(t, text)

	want := Object(F("a", Number(1)), F("b", Number(2)))
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestDecodeMalformedHeaders(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{"non-numeric count", "items[x]:", 1},
		{"unclosed columns", "items[2]{a,b:", 1},
		{"missing colon", "items[2]{a}", 1},
		{"bracket garbage", "items[2:", 1},
		{"later line reported", "a: 1\nitems[?]:", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			if err == nil {
				t.Fatal("expected MalformedInput error")
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if de.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", de.Line, tt.wantLine)
			}
			if de.Text == "" {
				t.Error("DecodeError must carry the offending text")
			}
		})
	}
}

func TestDecodeTruncatedTable(t *testing.T) {
	_, err := Decode("users[3]{id}:\n  1\n  2")
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for truncated table, got %v", err)
	}
}

func TestDecodeRowArityMismatch(t *testing.T) {
	_, err := Decode("users[1]{id,name}:\n  1")
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for short row, got %v", err)
	}
	var de *DecodeError
	if errors.As(err, &de) && de.Line != 2 {
		t.Errorf("Line = %d, want 2", de.Line)
	}
}

func TestDecodeNestedArrays(t *testing.T) {
	v := mustDecode(t, "grid[2]:\n  [0][2]:\n    1\n    2\n  [1][1]:\n    3")

	want := Object(F("grid", Array(
		Array(Number(1), Number(2)),
		Array(Number(3)),
	)))
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

// Objects inside a generic array: a named header at element position
// starts an object element, not a nested array.
func TestDecodeGenericArrayObjectElements(t *testing.T) {
	v := mustDecode(t, "pairs[2]:\n  a: 1\n  b:\n    c: 4")

	pairs, err := v.Get("pairs").AsArray()
	if err != nil {
		t.Fatalf("pairs: %v", err)
	}
	// Adjacent object elements merge under this grammar; the declared
	// count is an upper bound.
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1 merged element", len(pairs))
	}
	want := Object(F("a", Number(1)), F("b", Object(F("c", Number(4)))))
	if !pairs[0].Equal(want) {
		t.Errorf("element = %v, want %v", pairs[0], want)
	}
}

func TestDecodeMixedScalarAfterObjectElement(t *testing.T) {
	v := mustDecode(t, "things[2]:\n  a: 1\n  true")

	things, _ := v.Get("things").AsArray()
	if len(things) != 2 {
		t.Fatalf("len(things) = %d, want 2", len(things))
	}
	if !things[0].Equal(Object(F("a", Number(1)))) {
		t.Errorf("element 0 = %v", things[0])
	}
	if !things[1].Equal(Bool(true)) {
		t.Errorf("element 1 = %v", things[1])
	}
}

func TestDecodeKeyValueWithColonInValue(t *testing.T) {
	v := mustDecode(t, "url: https://example.com: the site")
	if got, _ := v.Get("url").AsStr(); got != "https://example.com: the site" {
		t.Errorf("url = %q", got)
	}
}

func TestDecodeSiblingAfterTable(t *testing.T) {
	v := mustDecode(t, "users[1]{id}:\n  1\ncount: 1")
	want := Object(
		F("users", Array(Object(F("id", Number(1))))),
		F("count", Number(1)),
	)
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestDecodeEmptyNestedObject(t *testing.T) {
	v := mustDecode(t, "meta:\nname: x")
	want := Object(F("meta", Object()), F("name", Str("x")))
	if !v.Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
}
