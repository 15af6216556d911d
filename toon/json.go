package toon

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON text and the Value tree. Decoding walks the token
// stream rather than unmarshalling into maps so that object key order,
// which determines TOON line order, survives the trip.

// FromJSON parses JSON bytes into a Value, preserving object key order.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("toon: parse JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("toon: parse JSON: trailing data after value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input")
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q", t.String())
		}
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Number(n), nil
	case string:
		return Str(t), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func readJSONObject(dec *json.Decoder) (*Value, error) {
	obj := Object()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := readJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", key, err)
		}
		// Duplicate keys take the last value, as JSON consumers
		// conventionally resolve them; Set keeps keys unique.
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume }
		return nil, err
	}
	return obj, nil
}

func readJSONArray(dec *json.Decoder) (*Value, error) {
	var elems []*Value
	for dec.More() {
		val, err := readJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", len(elems), err)
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil { // consume ]
		return nil, err
	}
	return Array(elems...), nil
}

// ToJSON serializes a Value as compact JSON, preserving object key order.
func ToJSON(v *Value) ([]byte, error) {
	return ToJSONIndent(v, "")
}

// ToJSONIndent serializes a Value as JSON with the given indent string;
// an empty indent yields compact output.
func ToJSONIndent(v *Value, indent string) ([]byte, error) {
	w := &jsonWriter{indent: indent}
	if err := w.writeValue(v, 0); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf    bytes.Buffer
	indent string
}

func (w *jsonWriter) pretty() bool { return w.indent != "" }

func (w *jsonWriter) newlineIndent(depth int) {
	w.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.buf.WriteString(w.indent)
	}
}

func (w *jsonWriter) writeString(s string) error {
	escaped, err := json.Marshal(s)
	if err != nil {
		return err
	}
	w.buf.Write(escaped)
	return nil
}

func (w *jsonWriter) writeValue(v *Value, depth int) error {
	switch v.Kind() {
	case KindNull:
		w.buf.WriteString("null")
	case KindUndefined:
		// No JSON equivalent; the bridge degrades it to null.
		w.buf.WriteString("null")
	case KindBool:
		if v.boolVal {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.numVal) || math.IsInf(v.numVal, 0) {
			return fmt.Errorf("%w: NaN/Infinity has no JSON form", ErrInvalidValue)
		}
		w.buf.WriteString(formatNumber(v.numVal))
	case KindString:
		return w.writeString(v.strVal)
	case KindObject:
		return w.writeObject(v, depth)
	case KindArray:
		return w.writeArray(v, depth)
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidValue, v.Kind())
	}
	return nil
}

func (w *jsonWriter) writeObject(v *Value, depth int) error {
	if len(v.objVal) == 0 {
		w.buf.WriteString("{}")
		return nil
	}
	w.buf.WriteByte('{')
	for i, f := range v.objVal {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if w.pretty() {
			w.newlineIndent(depth + 1)
		}
		if err := w.writeString(f.Key); err != nil {
			return err
		}
		w.buf.WriteByte(':')
		if w.pretty() {
			w.buf.WriteByte(' ')
		}
		if err := w.writeValue(f.Value, depth+1); err != nil {
			return err
		}
	}
	if w.pretty() {
		w.newlineIndent(depth)
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) writeArray(v *Value, depth int) error {
	if len(v.arrVal) == 0 {
		w.buf.WriteString("[]")
		return nil
	}
	w.buf.WriteByte('[')
	for i, elem := range v.arrVal {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if w.pretty() {
			w.newlineIndent(depth + 1)
		}
		if err := w.writeValue(elem, depth+1); err != nil {
			return err
		}
	}
	if w.pretty() {
		w.newlineIndent(depth)
	}
	w.buf.WriteByte(']')
	return nil
}

// ============================================================
// Round-Trip Helpers
// ============================================================

// JSONToTOON parses JSON bytes and encodes the value as TOON text.
func JSONToTOON(data []byte, opts EncodeOptions) (string, error) {
	v, err := FromJSON(data)
	if err != nil {
		return "", err
	}
	return Encode(v, opts)
}

// JSONToTOONWithStats is JSONToTOON plus conversion statistics.
func JSONToTOONWithStats(data []byte, opts EncodeOptions) (string, ConversionStats, error) {
	v, err := FromJSON(data)
	if err != nil {
		return "", ConversionStats{}, err
	}
	return EncodeWithStats(v, opts)
}

// TOONToJSON decodes TOON text and serializes the value as JSON with the
// given indent (empty for compact).
func TOONToJSON(text string, indent string) ([]byte, error) {
	v, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return ToJSONIndent(v, indent)
}
