package mutf8

import (
	"bytes"
	"errors"
	"testing"
)

func TestASCIIPassthrough(t *testing.T) {
	s, err := Decode([]byte("hello"))
	if err != nil || s != "hello" {
		t.Fatalf("decode = %q, %v", s, err)
	}
	if got := Encode("hello"); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("encode = % x", got)
	}
}

func TestTwoByteNul(t *testing.T) {
	s, err := Decode([]byte{0xc0, 0x80})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s != "\x00" {
		t.Fatalf("decode = %q", s)
	}
	if got := Encode("\x00"); !bytes.Equal(got, []byte{0xc0, 0x80}) {
		t.Fatalf("encode = % x", got)
	}
	// embedded in a longer string
	if got := Encode("a\x00b"); !bytes.Equal(got, []byte{'a', 0xc0, 0x80, 'b'}) {
		t.Fatalf("encode = % x", got)
	}
}

func TestBMP(t *testing.T) {
	// two- and three-byte sequences are unchanged
	for _, s := range []string{"héllo", "日本語", "§a§lBold"} {
		enc := Encode(s)
		if !bytes.Equal(enc, []byte(s)) {
			t.Fatalf("%q: encode = % x, want % x", s, enc, []byte(s))
		}
		dec, err := Decode(enc)
		if err != nil || dec != s {
			t.Fatalf("%q: decode = %q, %v", s, dec, err)
		}
	}
}

func TestSupplementaryPair(t *testing.T) {
	// U+1F600 is the surrogate pair D83D DE00
	want := []byte{0xed, 0xa0, 0xbd, 0xed, 0xb8, 0x80}
	if got := Encode("\U0001F600"); !bytes.Equal(got, want) {
		t.Fatalf("encode = % x, want % x", got, want)
	}
	s, err := Decode(want)
	if err != nil || s != "\U0001F600" {
		t.Fatalf("decode = %q, %v", s, err)
	}
}

func TestUnpairedSurrogatePassthrough(t *testing.T) {
	// a high surrogate with no partner stays verbatim both ways
	in := []byte{0xed, 0xa0, 0xbd, 'x'}
	s, err := Decode(in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := Encode(s); !bytes.Equal(got, in) {
		t.Fatalf("round trip = % x, want % x", got, in)
	}
}

func TestDecodeInvalid(t *testing.T) {
	cases := [][]byte{
		{0xf0, 0x9f, 0x98, 0x80}, // four-byte UTF-8 is not modified UTF-8
		{0x80},                   // stray continuation
		{0xc3},                   // truncated two-byte
		{0xe3, 0x81},             // truncated three-byte
		{0xc3, 0x28},             // bad continuation
	}
	for _, in := range cases {
		if _, err := Decode(in); !errors.Is(err, ErrInvalid) {
			t.Fatalf("% x: expected ErrInvalid, got %v", in, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{
		"", "a", "\x00", "mixed \x00 and é and \U0001F4A9 end",
		"日本語テキスト", "plain ascii only",
	} {
		dec, err := Decode(Encode(s))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if dec != s {
			t.Fatalf("round trip %q -> %q", s, dec)
		}
	}
}
