// Package mutf8 implements Java's Modified UTF-8, the string encoding
// used by NBT and the JVM class file format. It differs from standard
// UTF-8 in two ways: U+0000 is encoded as the two-byte overlong form
// C0 80, and supplementary-plane characters are encoded as a CESU-8
// surrogate pair (six bytes) rather than a four-byte sequence.
//
// The codec is exposed as a golang.org/x/text encoding.Encoding, with
// whole-buffer Decode and Encode helpers on top. Unpaired surrogates
// pass through both directions unchanged so that decode∘encode is
// byte-exact for any well-formed input.
package mutf8

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrInvalid is returned when a byte sequence is not well-formed
// Modified UTF-8 (a four-byte UTF-8 sequence, a stray continuation
// byte, or a truncated sequence at the end of input).
var ErrInvalid = errors.New("mutf8: invalid sequence")

// MUTF8 is the Modified UTF-8 encoding.
var MUTF8 encoding.Encoding = mutf8Encoding{}

type mutf8Encoding struct{}

func (mutf8Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: decoder{}}
}

func (mutf8Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: encoder{}}
}

// Decode converts Modified UTF-8 bytes to a Go string.
func Decode(b []byte) (string, error) {
	return MUTF8.NewDecoder().String(string(b))
}

// Encode converts a Go string to Modified UTF-8 bytes.
func Encode(s string) []byte {
	out, _ := MUTF8.NewEncoder().Bytes([]byte(s))
	return out
}

func isHighSurrogate(r rune) bool { return r >= 0xd800 && r <= 0xdbff }
func isLowSurrogate(r rune) bool  { return r >= 0xdc00 && r <= 0xdfff }

// decoder transforms Modified UTF-8 to UTF-8.
type decoder struct{ transform.NopResetter }

func (decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		switch {
		case c < 0x80:
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++

		case c&0xe0 == 0xc0:
			if nSrc+2 > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, ErrInvalid
			}
			c2 := src[nSrc+1]
			if c2&0xc0 != 0x80 {
				return nDst, nSrc, ErrInvalid
			}
			if c == 0xc0 && c2 == 0x80 {
				// the two-byte NUL
				if nDst >= len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = 0
				nDst++
				nSrc += 2
				break
			}
			if nDst+2 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			dst[nDst+1] = c2
			nDst += 2
			nSrc += 2

		case c&0xf0 == 0xe0:
			if nSrc+3 > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, ErrInvalid
			}
			c2, c3 := src[nSrc+1], src[nSrc+2]
			if c2&0xc0 != 0x80 || c3&0xc0 != 0x80 {
				return nDst, nSrc, ErrInvalid
			}
			r := rune(c&0x0f)<<12 | rune(c2&0x3f)<<6 | rune(c3&0x3f)
			if isHighSurrogate(r) {
				// a following low surrogate makes a CESU-8 pair
				if nSrc+6 > len(src) {
					if !atEOF {
						return nDst, nSrc, transform.ErrShortSrc
					}
				} else if src[nSrc+3]&0xf0 == 0xe0 && src[nSrc+4]&0xc0 == 0x80 && src[nSrc+5]&0xc0 == 0x80 {
					lo := rune(src[nSrc+3]&0x0f)<<12 | rune(src[nSrc+4]&0x3f)<<6 | rune(src[nSrc+5]&0x3f)
					if isLowSurrogate(lo) {
						sup := utf16.DecodeRune(r, lo)
						if nDst+utf8.RuneLen(sup) > len(dst) {
							return nDst, nSrc, transform.ErrShortDst
						}
						nDst += utf8.EncodeRune(dst[nDst:], sup)
						nSrc += 6
						break
					}
				}
			}
			// BMP character, or an unpaired surrogate kept verbatim
			if nDst+3 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			dst[nDst+1] = c2
			dst[nDst+2] = c3
			nDst += 3
			nSrc += 3

		default:
			return nDst, nSrc, ErrInvalid
		}
	}
	return nDst, nSrc, nil
}

// encoder transforms UTF-8 to Modified UTF-8.
type encoder struct{ transform.NopResetter }

func (encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		switch {
		case c == 0:
			if nDst+2 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = 0xc0
			dst[nDst+1] = 0x80
			nDst += 2
			nSrc++

		case c < 0x80:
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++

		case c >= 0xf0:
			// supplementary plane: re-encode as a surrogate pair
			if !utf8.FullRune(src[nSrc:]) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, ErrInvalid
			}
			r, size := utf8.DecodeRune(src[nSrc:])
			if r == utf8.RuneError {
				return nDst, nSrc, ErrInvalid
			}
			if nDst+6 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			hi, lo := utf16.EncodeRune(r)
			for _, s := range [2]rune{hi, lo} {
				dst[nDst] = 0xe0 | byte(s>>12)
				dst[nDst+1] = 0x80 | byte(s>>6)&0x3f
				dst[nDst+2] = 0x80 | byte(s)&0x3f
				nDst += 3
			}
			nSrc += size

		default:
			// two- and three-byte sequences are identical in both
			// encodings; copy without re-validating
			size := 2
			if c&0xf0 == 0xe0 {
				size = 3
			} else if c&0xe0 != 0xc0 {
				return nDst, nSrc, ErrInvalid
			}
			if nSrc+size > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				return nDst, nSrc, ErrInvalid
			}
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			copy(dst[nDst:], src[nSrc:nSrc+size])
			nDst += size
			nSrc += size
		}
	}
	return nDst, nSrc, nil
}
