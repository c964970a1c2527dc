package snbt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/nbted/nbt"
)

func treeDiff(a, b any) string {
	return cmp.Diff(a, b, cmp.AllowUnexported(nbt.Compound{}))
}

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"0", int32(0)},
		{"123", int32(123)},
		{"-7", int32(-7)},
		{"+5", int32(5)},
		{"12b", int8(12)},
		{"-12B", int8(-12)},
		{"300s", int16(300)},
		{"40000000000l", int64(40000000000)},
		{"9L", int64(9)},
		{"1.5", 1.5},
		{"-0.25d", -0.25},
		{".5", 0.5},
		{"2.", 2.0},
		{"1e3", 1000.0},
		{"1.5f", float32(1.5)},
		{"3F", float32(3)},
		{"true", int8(1)},
		{"false", int8(0)},
		{"hello", "hello"},
		{"file.name-v2+x", "file.name-v2+x"},
		// leading zeros miss the integer pattern and fall to double
		{"012", 12.0},
		// capitalized booleans are strings
		{"True", "True"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := mustParse(t, tt.in)
			if got != tt.want {
				t.Fatalf("parse %q = %#v (%T), want %#v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello world"`, "hello world"},
		{`'single'`, "single"},
		{`"with 'single' inside"`, "with 'single' inside"},
		{`'with "double" inside'`, `with "double" inside`},
		{`"esc \" quote"`, `esc " quote`},
		{`"back\\slash"`, `back\slash`},
		{`'esc \' quote'`, "esc ' quote"},
		{`""`, ""},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.in)
		if got != tt.want {
			t.Fatalf("parse %s = %#v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCompound(t *testing.T) {
	v := mustParse(t, `{name:"Steve", Health:20.0, XpLevel:30, "quoted key":1b}`)
	c, ok := v.(*nbt.Compound)
	if !ok {
		t.Fatalf("expected compound, got %T", v)
	}
	if got := c.Keys(); len(got) != 4 || got[0] != "name" || got[3] != "quoted key" {
		t.Fatalf("unexpected keys: %v", got)
	}
	if c.GetString("name") != "Steve" {
		t.Fatalf("name = %q", c.GetString("name"))
	}
	if c.GetFloat("Health") != 20.0 {
		t.Fatalf("Health = %v", c.GetFloat("Health"))
	}
}

func TestParseTypedArrays(t *testing.T) {
	v := mustParse(t, "{a:[B;1b,-1b,127b]}")
	c := v.(*nbt.Compound)
	a, _ := c.Get("a")
	ba, ok := a.([]byte)
	if !ok {
		t.Fatalf("expected []byte, got %T", a)
	}
	if !bytes.Equal(ba, []byte{1, 0xff, 127}) {
		t.Fatalf("unexpected bytes: % x", ba)
	}

	v = mustParse(t, "[I;1,-2,3]")
	ia, ok := v.([]int32)
	if !ok || len(ia) != 3 || ia[1] != -2 {
		t.Fatalf("unexpected int array: %#v", v)
	}

	v = mustParse(t, "[L;1l,2l]")
	la, ok := v.([]int64)
	if !ok || len(la) != 2 || la[1] != 2 {
		t.Fatalf("unexpected long array: %#v", v)
	}

	// empty arrays
	if v := mustParse(t, "[B;]"); len(v.([]byte)) != 0 {
		t.Fatalf("expected empty byte array, got %#v", v)
	}
}

func TestParseList(t *testing.T) {
	v := mustParse(t, `[1, 2, 3]`)
	l, ok := v.([]any)
	if !ok || len(l) != 3 || l[2] != int32(3) {
		t.Fatalf("unexpected list: %#v", v)
	}
	if v := mustParse(t, "[ ]"); len(v.([]any)) != 0 {
		t.Fatalf("expected empty list, got %#v", v)
	}
	// nested
	v = mustParse(t, `[[1b],[2b]]`)
	l = v.([]any)
	if inner, ok := l[0].([]any); !ok || inner[0] != int8(1) {
		t.Fatalf("unexpected nested list: %#v", v)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"{",
		"{a}",
		"{a:}",
		"{a:1,}",
		"[1,]",
		"[1 2]",
		`"unterminated`,
		`"bad \n escape"`,
		"{} trailing",
		"1 2",
		"[B;1]",   // unsuffixed int in byte array
		"[I;1b]",  // byte in int array
		"[L;1]",   // int in long array
		"{'a':1}}",
	}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}

	var se *SyntaxError
	_, err := Parse("{a:1,}")
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Offset == 0 {
		t.Fatalf("expected nonzero offset, got %d", se.Offset)
	}
}

func TestStringifyCompact(t *testing.T) {
	c := nbt.NewCompound()
	c.Set("b", int8(1))
	c.Set("s", int16(2))
	c.Set("i", int32(3))
	c.Set("l", int64(4))
	c.Set("f", float32(1.5))
	c.Set("d", 2.0)
	c.Set("str", "hi")
	c.Set("arr", []byte{1, 0xff})

	got, err := String(c)
	if err != nil {
		t.Fatalf("stringify: %v", err)
	}
	want := `{b:1b,s:2s,i:3,l:4l,f:1.5f,d:2.0,str:"hi",arr:[B;1b,-1b]}`
	if got != want {
		t.Fatalf("stringify = %s, want %s", got, want)
	}
}

func TestStringifyQuoteChoice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`has "doubles"`, `'has "doubles"'`},
		{`has 'singles'`, `"has 'singles'"`},
		{`both ' and "`, `"both ' and \""`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		got, err := String(tt.in)
		if err != nil {
			t.Fatalf("stringify %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("stringify %q = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStringifyIndent(t *testing.T) {
	c := nbt.NewCompound()
	c.Set("nums", []any{int32(1), int32(2)})
	inner := nbt.NewCompound()
	inner.Set("x", int8(1))
	c.Set("nested", inner)

	got, err := StringIndent(c, "  ")
	if err != nil {
		t.Fatalf("stringify: %v", err)
	}
	want := strings.Join([]string{
		"{",
		"  nums: [1, 2],",
		"  nested: {",
		"    x: 1b",
		"  }",
		"}",
	}, "\n")
	if got != want {
		t.Fatalf("stringify =\n%s\nwant:\n%s", got, want)
	}
}

func TestStringifyIndentComplexList(t *testing.T) {
	a := nbt.NewCompound()
	a.Set("x", int8(1))
	b := nbt.NewCompound()
	b.Set("x", int8(2))
	l := []any{a, b}

	got, err := StringIndent(l, "  ")
	if err != nil {
		t.Fatalf("stringify: %v", err)
	}
	want := strings.Join([]string{
		"[",
		"  {",
		"    x: 1b",
		"  },",
		"  {",
		"    x: 2b",
		"  }",
		"]",
	}, "\n")
	if got != want {
		t.Fatalf("stringify =\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	c := nbt.NewCompound()
	c.Set("name", "St'e\"ve")
	c.Set("level", int32(7))
	c.Set("health", float32(19.5))
	c.Set("pos", []any{1.5, 2.5, 3.5})
	c.Set("inv", []byte{0, 1, 2})
	c.Set("ids", []int32{10, 20})
	c.Set("ticks", []int64{1 << 40})
	inner := nbt.NewCompound()
	inner.Set("weird key!", "value")
	c.Set("meta", inner)

	for _, indent := range []string{"", "  ", "\t"} {
		out, err := StringIndent(c, indent)
		if err != nil {
			t.Fatalf("stringify: %v", err)
		}
		back, err := Parse(out)
		if err != nil {
			t.Fatalf("reparse %q: %v", out, err)
		}
		if diff := treeDiff(c, back); diff != "" {
			t.Fatalf("round trip mismatch with indent %q (-want +got):\n%s", indent, diff)
		}
	}
}

func TestScenarioTypedArrayRoundTrip(t *testing.T) {
	v := mustParse(t, "{a:[B;1b,-1b,127b]}")
	out, err := StringIndent(v, "  ")
	if err != nil {
		t.Fatalf("stringify: %v", err)
	}
	back, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if diff := treeDiff(v, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeReader(t *testing.T) {
	v, err := Decode(strings.NewReader("{x:1b}"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.(*nbt.Compound).GetByte("x") != 1 {
		t.Fatalf("unexpected value: %#v", v)
	}
}
