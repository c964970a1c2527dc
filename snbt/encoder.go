package snbt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmoiron/nbted/nbt"
)

// Encode writes a value as compact SNBT.
func Encode(w io.Writer, v Value) error {
	e := &encoder{w: w}
	return e.value(v)
}

// EncodeIndent writes a value as SNBT with the given indentation unit.
// Compounds and complex list elements (lists, compounds, arrays) break
// onto their own lines; simple list elements stay on one line.
func EncodeIndent(w io.Writer, v Value, indent string) error {
	e := &encoder{w: w, indent: indent}
	return e.value(v)
}

type encoder struct {
	w      io.Writer
	indent string
	level  int
}

func (e *encoder) ws(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) newline() error {
	if err := e.ws("\n"); err != nil {
		return err
	}
	return e.ws(strings.Repeat(e.indent, e.level))
}

func (e *encoder) value(v Value) error {
	switch x := v.(type) {
	case nil:
		return fmt.Errorf("snbt: cannot encode nil value")
	case *nbt.Compound:
		return e.compound(x)
	case []any:
		return e.list(x)
	case []byte:
		return e.array("B", len(x), func(i int) string {
			return strconv.FormatInt(int64(int8(x[i])), 10) + "b"
		})
	case []int8:
		return e.array("B", len(x), func(i int) string {
			return strconv.FormatInt(int64(x[i]), 10) + "b"
		})
	case []int32:
		return e.array("I", len(x), func(i int) string {
			return strconv.FormatInt(int64(x[i]), 10)
		})
	case []int64:
		return e.array("L", len(x), func(i int) string {
			return strconv.FormatInt(x[i], 10) + "l"
		})
	case string:
		return e.ws(quoteString(x))
	case bool:
		if x {
			return e.ws("true")
		}
		return e.ws("false")
	case int8:
		return e.ws(strconv.FormatInt(int64(x), 10) + "b")
	case int16:
		return e.ws(strconv.FormatInt(int64(x), 10) + "s")
	case int32:
		return e.ws(strconv.FormatInt(int64(x), 10))
	case int64:
		return e.ws(strconv.FormatInt(x, 10) + "l")
	case int:
		return e.ws(strconv.FormatInt(int64(x), 10) + "l")
	case float32:
		return e.ws(strconv.FormatFloat(float64(x), 'g', -1, 32) + "f")
	case float64:
		return e.ws(formatDouble(x))
	}
	return fmt.Errorf("snbt: unsupported type %T", v)
}

func (e *encoder) compound(c *nbt.Compound) error {
	if c.Len() == 0 {
		return e.ws("{}")
	}
	if err := e.ws("{"); err != nil {
		return err
	}
	e.level++
	i := 0
	var err error
	c.Range(func(key string, v any) bool {
		if i > 0 {
			if err = e.ws(","); err != nil {
				return false
			}
		}
		if e.indent != "" {
			if err = e.newline(); err != nil {
				return false
			}
		}
		if err = e.ws(quoteKey(key)); err != nil {
			return false
		}
		sep := ":"
		if e.indent != "" {
			sep = ": "
		}
		if err = e.ws(sep); err != nil {
			return false
		}
		err = e.value(v)
		i++
		return err == nil
	})
	if err != nil {
		return err
	}
	e.level--
	if e.indent != "" {
		if err := e.newline(); err != nil {
			return err
		}
	}
	return e.ws("}")
}

// isComplex reports whether a list element forces one-element-per-line
// formatting.
func isComplex(v any) bool {
	switch v.(type) {
	case *nbt.Compound, []any, []byte, []int8, []int32, []int64:
		return true
	}
	return false
}

func (e *encoder) list(l []any) error {
	if len(l) == 0 {
		return e.ws("[]")
	}
	multiline := false
	if e.indent != "" {
		for _, v := range l {
			if isComplex(v) {
				multiline = true
				break
			}
		}
	}
	if err := e.ws("["); err != nil {
		return err
	}
	e.level++
	for i, v := range l {
		if i > 0 {
			sep := ","
			if e.indent != "" && !multiline {
				sep = ", "
			}
			if err := e.ws(sep); err != nil {
				return err
			}
		}
		if multiline {
			if err := e.newline(); err != nil {
				return err
			}
		}
		if err := e.value(v); err != nil {
			return err
		}
	}
	e.level--
	if multiline {
		if err := e.newline(); err != nil {
			return err
		}
	}
	return e.ws("]")
}

func (e *encoder) array(prefix string, n int, elem func(int) string) error {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(prefix)
	b.WriteString(";")
	sep := ","
	if e.indent != "" {
		sep = ", "
		if n > 0 {
			b.WriteString(" ")
		}
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(elem(i))
	}
	b.WriteString("]")
	return e.ws(b.String())
}

// quoteKey renders a compound key: bare when it matches the unquoted
// token alphabet, quoted otherwise.
func quoteKey(k string) string {
	if k != "" && unquotedPattern.MatchString(k) {
		return k
	}
	return quoteString(k)
}

// quoteString picks whichever quote needs fewer escapes, preferring
// double quotes on a tie. Only the backslash and the chosen quote are
// escaped.
func quoteString(s string) string {
	singles := strings.Count(s, "'")
	doubles := strings.Count(s, `"`)
	quote := byte('"')
	if singles < doubles {
		quote = '\''
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == quote {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(quote)
	return b.String()
}

// formatDouble renders a float64 so that it reads back as a double: a
// decimal point or exponent is kept in the output.
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' {
			return s
		}
	}
	return s + ".0"
}
