package nbt

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders the compound as a JSON object in insertion
// order. Byte arrays become arrays of signed numbers, not base64.
func (c *Compound) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(jsonValue(c.m[k]))
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSON renders a tree as JSON text. indent is the per-level unit; ""
// selects the compact form.
func JSON(v any, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(jsonValue(v))
	}
	return json.MarshalIndent(jsonValue(v), "", indent)
}

// jsonValue rewrites values encoding/json would mangle: []byte (it
// base64s those) and lists that may contain them.
func jsonValue(v any) any {
	switch x := v.(type) {
	case []byte:
		out := make([]int8, len(x))
		for i, b := range x {
			out[i] = int8(b)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonValue(e)
		}
		return out
	}
	return v
}
