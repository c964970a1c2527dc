// Package mcformat renders Minecraft color and format codes ('§a',
// '&l', ...) as HTML spans with mc-* classes for styling.
package mcformat

import (
	"html/template"
	"strings"
)

type style struct {
	color     byte // '0'-'9', 'a'-'f', or 0 for none
	bold      bool
	italic    bool
	underline bool
	strike    bool
	obf       bool
}

func (st style) classes() string {
	cs := []string{"mc-text"}
	if st.color != 0 {
		cs = append(cs, "mc-c"+string(st.color))
	}
	if st.bold {
		cs = append(cs, "mc-bold")
	}
	if st.italic {
		cs = append(cs, "mc-italic")
	}
	if st.underline {
		cs = append(cs, "mc-underline")
	}
	if st.strike {
		cs = append(cs, "mc-strike")
	}
	if st.obf {
		cs = append(cs, "mc-obf")
	}
	return strings.Join(cs, " ")
}

func lowerHex(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r), true
	case r >= 'a' && r <= 'f':
		return byte(r), true
	case r >= 'A' && r <= 'F':
		return byte(r - 'A' + 'a'), true
	}
	return 0, false
}

// Strip removes '§' and '&' codes from a string, leaving the plain
// text. Case is preserved.
func Strip(s string) string {
	if !strings.ContainsAny(s, "&§") {
		return s
	}
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		if (rs[i] == '§' || rs[i] == '&') && i+1 < len(rs) {
			i++
			continue
		}
		out = append(out, rs[i])
	}
	return string(out)
}

// Format converts a string with '§' or '&' codes to HTML. Color codes
// are 0-9 and a-f; formats are k (obfuscated), l (bold), m (strike),
// n (underline), o (italic), and r (reset).
func Format(s string) template.HTML {
	var b strings.Builder
	var st style
	open := false

	closeSpan := func() {
		if open {
			b.WriteString("</span>")
			open = false
		}
	}
	openSpan := func() {
		b.WriteString(`<span class="` + st.classes() + `">`)
		open = true
	}

	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if (r == '§' || r == '&') && i+1 < len(rs) {
			code := rs[i+1]
			i++
			closeSpan()
			switch code {
			case 'k', 'K':
				st.obf = true
			case 'l', 'L':
				st.bold = true
			case 'm', 'M':
				st.strike = true
			case 'n', 'N':
				st.underline = true
			case 'o', 'O':
				st.italic = true
			case 'r', 'R':
				st = style{}
				continue
			default:
				if c, ok := lowerHex(code); ok {
					st.color = c
				}
			}
			openSpan()
			continue
		}
		if !open {
			openSpan()
		}
		template.HTMLEscape(&b, []byte(string(r)))
	}
	closeSpan()
	return template.HTML(b.String())
}
