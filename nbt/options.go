package nbt

// Endian selects the wire dialect for fixed-width scalars and, for
// EndianVarint, the varint encoding of ints, longs, and lengths.
type Endian string

const (
	// EndianAuto lets the reader probe big, then little, then
	// little-varint.
	EndianAuto   Endian = ""
	EndianBig    Endian = "big"
	EndianLittle Endian = "little"
	EndianVarint Endian = "little-varint"
)

// Compression names the framing applied around the encoded tree.
type Compression string

const (
	// CompressionAuto sniffs magic bytes, then falls back to trying
	// none and raw deflate.
	CompressionAuto    Compression = ""
	CompressionNone    Compression = "none"
	CompressionGzip    Compression = "gzip"
	CompressionZlib    Compression = "zlib"
	CompressionDeflate Compression = "deflate"
)

// File is a decoded tree together with its envelope: the root name and
// the dialect the bytes were (or will be) encoded under.
type File struct {
	// Root is the root tag, a *Compound or, in streams that carry a
	// list root, a []any.
	Root any

	// Named reports whether the root carries a name on the wire; Name
	// is that name (may be "" for a named root with an empty name).
	Named bool
	Name  string

	Endian      Endian
	Compression Compression

	// HasBedrockLevel reports whether the stream carries the 8-byte
	// Bedrock level.dat header; BedrockLevel is its version word.
	HasBedrockLevel bool
	BedrockLevel    int32
}

// Compound returns the root as a *Compound, or nil for a list root.
func (f *File) Compound() *Compound {
	c, _ := f.Root.(*Compound)
	return c
}

// ReadOptions pin dialect axes for Read. Zero-valued axes are probed.
type ReadOptions struct {
	// RootName is nil to probe named-then-anonymous, a bool to require
	// a named (true) or anonymous (false) root, or a string to require
	// a named root.
	RootName any

	Endian      Endian
	Compression Compression

	// BedrockLevel is nil to auto-detect the Bedrock header (little
	// endian only), a bool to force its presence or absence, or an int /
	// int32 to force its presence. The version word is taken from the
	// stream; a pinned number is not compared against it.
	BedrockLevel any

	// Lenient disables strict mode: trailing bytes after the root are
	// ignored instead of raising ErrTrailingBytes.
	Lenient bool
}

// WriteOptions pin dialect axes for Write. Unset axes inherit from the
// input's envelope when writing a *File, and otherwise default to a
// named empty root, big endian, no compression.
type WriteOptions struct {
	// RootName is nil to inherit, a string to name the root, or a bool
	// to force a named ("" unless inherited) or anonymous root.
	RootName any

	Endian      Endian
	Compression Compression

	// BedrockLevel is nil to inherit, false to omit the header, or
	// true / an int32 version to emit it.
	BedrockLevel any
}

func validEndian(e Endian) bool {
	switch e {
	case EndianAuto, EndianBig, EndianLittle, EndianVarint:
		return true
	}
	return false
}

func validCompression(c Compression) bool {
	switch c {
	case CompressionAuto, CompressionNone, CompressionGzip, CompressionZlib, CompressionDeflate:
		return true
	}
	return false
}

func validRootName(v any) bool {
	switch v.(type) {
	case nil, bool, string:
		return true
	}
	return false
}

func validBedrockLevel(v any) bool {
	switch v.(type) {
	case nil, bool, int, int32:
		return true
	}
	return false
}
