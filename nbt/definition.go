package nbt

import (
	"fmt"
	"strings"
)

// Definition sketches a TypeScript-style interface describing the
// shape of a tree. It is a documentation aid, not part of the
// bit-exact codec surface.
func Definition(v any, name string) string {
	var b strings.Builder
	if c, ok := v.(*Compound); ok {
		fmt.Fprintf(&b, "interface %s ", name)
		defCompound(&b, c, 0)
		b.WriteString("\n")
		return b.String()
	}
	fmt.Fprintf(&b, "type %s = %s;\n", name, defType(v, 0))
	return b.String()
}

func defCompound(b *strings.Builder, c *Compound, depth int) {
	if c.Len() == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	pad := strings.Repeat("  ", depth+1)
	c.Range(func(key string, v any) bool {
		if _, ok := TypeOf(v); !ok {
			return true
		}
		fmt.Fprintf(b, "%s%s: %s;\n", pad, defKey(key), defType(v, depth+1))
		return true
	})
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("}")
}

func defKey(k string) string {
	if k == "" {
		return `""`
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		ok := c == '_' || c == '$' ||
			c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			i > 0 && c >= '0' && c <= '9'
		if !ok {
			return fmt.Sprintf("%q", k)
		}
	}
	return k
}

func defType(v any, depth int) string {
	switch x := v.(type) {
	case int8, bool:
		return "ByteTag"
	case int16:
		return "ShortTag"
	case int32:
		return "IntTag"
	case int64, int:
		return "LongTag"
	case float32:
		return "FloatTag"
	case float64:
		return "DoubleTag"
	case []byte, []int8:
		return "ByteArrayTag"
	case string:
		return "StringTag"
	case []int32:
		return "IntArrayTag"
	case []int64:
		return "LongArrayTag"
	case []any:
		elem := "unknown"
		for _, e := range x {
			if _, ok := TypeOf(e); ok {
				elem = defType(e, depth)
				break
			}
		}
		return elem + "[]"
	case *Compound:
		var b strings.Builder
		defCompound(&b, x, depth)
		return b.String()
	}
	return "unknown"
}
