// Package snbt parses and formats stringified NBT, the textual surface
// syntax for NBT trees ("{foo:[B;1b,2b],bar:1.5f}").
package snbt

import (
	"io"
	"strings"
)

// Value is a generic SNBT value:
//   - *nbt.Compound for compounds
//   - []any for lists
//   - []byte, []int32, []int64 for typed arrays
//   - string for strings
//   - int8 / int16 / int32 / int64 / float32 / float64 for numbers
//
// true and false parse as int8(1) and int8(0).
type Value = any

// Decode parses SNBT from an io.Reader.
func Decode(r io.Reader) (Value, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(input))
}

// Parse parses a single SNBT value. Trailing non-whitespace after the
// value is a syntax error.
func Parse(s string) (Value, error) {
	p := &parser{s: s}
	v, err := p.readTag()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if p.pos < len(p.s) {
		return nil, p.errf("unexpected %q after value", p.s[p.pos])
	}
	return v, nil
}

// String formats a value as compact SNBT.
func String(v Value) (string, error) {
	var b strings.Builder
	if err := Encode(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// StringIndent formats a value with the given indentation unit; an
// empty indent selects the compact form.
func StringIndent(v Value, indent string) (string, error) {
	var b strings.Builder
	if err := EncodeIndent(&b, v, indent); err != nil {
		return "", err
	}
	return b.String(), nil
}
