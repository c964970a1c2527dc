package nbt

import "encoding/binary"

// Read decodes a binary NBT stream. Any dialect axis left unset in
// opts is probed: compression by magic bytes with a none/raw-deflate
// fallback, then endianness (big, little, little-varint), then root
// name (named, anonymous), then the Bedrock level header. A nil opts
// probes everything in strict mode. The returned envelope reports the
// dialect that succeeded, so a subsequent Write of the same File
// reproduces the input bytes; for compressed input that holds for the
// decompressed payload, while the compressed framing is regenerated
// and can differ from the original.
func Read(data []byte, opts *ReadOptions) (*File, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	if !validEndian(opts.Endian) {
		return nil, errAt(ErrInvalidOption, -1, "endian %q", opts.Endian)
	}
	if !validCompression(opts.Compression) {
		return nil, errAt(ErrInvalidOption, -1, "compression %q", opts.Compression)
	}
	if !validRootName(opts.RootName) {
		return nil, errAt(ErrInvalidOption, -1, "rootName %T", opts.RootName)
	}
	if !validBedrockLevel(opts.BedrockLevel) {
		return nil, errAt(ErrInvalidOption, -1, "bedrockLevel %T", opts.BedrockLevel)
	}

	var first error
	for _, comp := range compressionCandidates(data, opts.Compression) {
		payload, err := decompress(data, comp)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		f, err := readDialects(payload, opts)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		f.Compression = comp
		return f, nil
	}
	return nil, first
}

// compressionCandidates resolves the compression axis. Magic bytes are
// decisive; an unrecognized prefix falls back to trying an unframed
// decode, then raw deflate.
func compressionCandidates(data []byte, c Compression) []Compression {
	if c != CompressionAuto {
		return []Compression{c}
	}
	if len(data) >= 2 {
		if data[0] == 0x1f && data[1] == 0x8b {
			return []Compression{CompressionGzip}
		}
		if data[0] == 0x78 {
			return []Compression{CompressionZlib}
		}
	}
	return []Compression{CompressionNone, CompressionDeflate}
}

// readDialects runs the endian × root-name lattice over a decompressed
// payload, returning the first success or the first failure.
func readDialects(payload []byte, opts *ReadOptions) (*File, error) {
	endians := []Endian{EndianBig, EndianLittle, EndianVarint}
	if opts.Endian != EndianAuto {
		endians = []Endian{opts.Endian}
	}
	var nameds []bool
	switch rn := opts.RootName.(type) {
	case nil:
		nameds = []bool{true, false}
	case bool:
		nameds = []bool{rn}
	case string:
		nameds = []bool{true}
	}

	var first error
	for _, e := range endians {
		for _, named := range nameds {
			f, err := readRoot(payload, e, named, opts.Lenient, hasBedrockHeader(payload, e, opts.BedrockLevel))
			if err != nil {
				if first == nil {
					first = err
				}
				continue
			}
			return f, nil
		}
	}
	return nil, first
}

// hasBedrockHeader resolves the Bedrock level header axis. Pinned
// options win; otherwise the header is detected (little endian only)
// by the length word at offset 4 matching the remaining payload size.
func hasBedrockHeader(payload []byte, e Endian, opt any) bool {
	switch v := opt.(type) {
	case bool:
		return v
	case int, int32:
		return true
	}
	return e == EndianLittle && len(payload) >= 8 &&
		binary.LittleEndian.Uint32(payload[4:8]) == uint32(len(payload)-8)
}
