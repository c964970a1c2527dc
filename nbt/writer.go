package nbt

import (
	"encoding/binary"
	"math"

	"github.com/jmoiron/nbted/mutf8"
)

// writer encodes a tag tree into a growing buffer. Growth is geometric
// from 1 KiB; bytes returns the tight used prefix.
type writer struct {
	buf    []byte
	off    int
	endian Endian
}

func newWriter(endian Endian) *writer {
	return &writer{buf: make([]byte, 1024), endian: endian}
}

func (w *writer) order() binary.ByteOrder {
	if w.endian == EndianBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (w *writer) grow(n int) {
	if w.off+n <= len(w.buf) {
		return
	}
	size := len(w.buf) * 2
	for size < w.off+n {
		size *= 2
	}
	next := make([]byte, size)
	copy(next, w.buf[:w.off])
	w.buf = next
}

func (w *writer) bytes() []byte { return w.buf[:w.off] }

func (w *writer) writeU8(b byte) {
	w.grow(1)
	w.buf[w.off] = b
	w.off++
}

func (w *writer) writeU16(v uint16) {
	w.grow(2)
	w.order().PutUint16(w.buf[w.off:], v)
	w.off += 2
}

func (w *writer) writeI32(v int32) {
	w.grow(4)
	w.order().PutUint32(w.buf[w.off:], uint32(v))
	w.off += 4
}

func (w *writer) writeI64(v int64) {
	w.grow(8)
	w.order().PutUint64(w.buf[w.off:], uint64(v))
	w.off += 8
}

func (w *writer) writeUvarint(u uint64) {
	for u >= 0x80 {
		w.writeU8(byte(u) | 0x80)
		u >>= 7
	}
	w.writeU8(byte(u))
}

// writeInt writes a TAG_Int value: fixed 32-bit, or a zig-zag varint
// in the varint dialect.
func (w *writer) writeInt(v int32) {
	if w.endian == EndianVarint {
		w.writeUvarint(uint64(uint32((v << 1) ^ (v >> 31))))
		return
	}
	w.writeI32(v)
}

// writeLong writes a TAG_Long value.
func (w *writer) writeLong(v int64) {
	if w.endian == EndianVarint {
		w.writeUvarint(uint64((v << 1) ^ (v >> 63)))
		return
	}
	w.writeI64(v)
}

func (w *writer) writeF32(v float32) {
	w.grow(4)
	w.order().PutUint32(w.buf[w.off:], math.Float32bits(v))
	w.off += 4
}

func (w *writer) writeF64(v float64) {
	w.grow(8)
	w.order().PutUint64(w.buf[w.off:], math.Float64bits(v))
	w.off += 8
}

// writeString writes a length-prefixed Modified UTF-8 string.
func (w *writer) writeString(s string) {
	b := mutf8.Encode(s)
	if w.endian == EndianVarint {
		w.writeUvarint(uint64(len(b)))
	} else {
		w.writeU16(uint16(len(b)))
	}
	w.grow(len(b))
	copy(w.buf[w.off:], b)
	w.off += len(b)
}

// writePayload encodes one payload of a value whose TypeOf is valid.
func (w *writer) writePayload(v any) error {
	switch x := v.(type) {
	case int8:
		w.writeU8(byte(x))
	case bool:
		if x {
			w.writeU8(1)
		} else {
			w.writeU8(0)
		}
	case int16:
		w.writeU16(uint16(x))
	case int32:
		w.writeInt(x)
	case int64:
		w.writeLong(x)
	case int:
		w.writeLong(int64(x))
	case float32:
		w.writeF32(x)
	case float64:
		w.writeF64(x)
	case string:
		w.writeString(x)
	case []byte:
		w.writeInt(int32(len(x)))
		w.grow(len(x))
		copy(w.buf[w.off:], x)
		w.off += len(x)
	case []int8:
		w.writeInt(int32(len(x)))
		w.grow(len(x))
		for _, b := range x {
			w.buf[w.off] = byte(b)
			w.off++
		}
	case []int32:
		w.writeInt(int32(len(x)))
		for _, v := range x {
			w.writeInt(v)
		}
	case []int64:
		w.writeInt(int32(len(x)))
		for _, v := range x {
			w.writeLong(v)
		}
	case []any:
		return w.writeList(x)
	case *Compound:
		return w.writeCompound(x)
	default:
		return errAt(ErrInvalidEnvelope, -1, "unrepresentable %T", v)
	}
	return nil
}

// writeList writes a list header and payloads. Entries with no NBT
// representation are dropped before the element type is fixed; a
// surviving element of a different type is an error.
func (w *writer) writeList(l []any) error {
	elems := make([]any, 0, len(l))
	elem := TagEnd
	for _, v := range l {
		id, ok := TypeOf(v)
		if !ok {
			continue
		}
		if elem == TagEnd {
			elem = id
		} else if id != elem {
			return errAt(ErrHeterogeneousList, -1, "%v element in list of %v", id, elem)
		}
		elems = append(elems, v)
	}
	w.writeU8(byte(elem))
	w.writeInt(int32(len(elems)))
	for _, v := range elems {
		if err := w.writePayload(v); err != nil {
			return err
		}
	}
	return nil
}

// writeCompound writes (id, key, payload) triples in insertion order,
// skipping unrepresentable values, then a TAG_End terminator.
func (w *writer) writeCompound(c *Compound) error {
	var err error
	c.Range(func(key string, v any) bool {
		id, ok := TypeOf(v)
		if !ok {
			return true
		}
		w.writeU8(byte(id))
		w.writeString(key)
		err = w.writePayload(v)
		return err == nil
	})
	if err != nil {
		return err
	}
	w.writeU8(byte(TagEnd))
	return nil
}

// Write encodes a tree (a *Compound, a list root, or a *File carrying
// its envelope) to binary NBT. Options unset in opts inherit from the
// File envelope; a bare tree defaults to a named empty root, big
// endian, no compression.
func Write(v any, opts *WriteOptions) ([]byte, error) {
	if opts == nil {
		opts = &WriteOptions{}
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

	root := v
	var env *File
	if f, ok := v.(*File); ok {
		env = f
		root = f.Root
	}

	endian := opts.Endian
	if endian == EndianAuto {
		endian = EndianBig
		if env != nil && env.Endian != EndianAuto {
			endian = env.Endian
		}
	}
	comp := opts.Compression
	if comp == CompressionAuto {
		comp = CompressionNone
		if env != nil && env.Compression != CompressionAuto {
			comp = env.Compression
		}
	}

	named, name := true, ""
	if env != nil {
		named, name = env.Named, env.Name
	}
	switch rn := opts.RootName.(type) {
	case string:
		named, name = true, rn
	case bool:
		named = rn
		if !rn {
			name = ""
		}
	}

	bedrock := false
	var version int32
	if env != nil && env.HasBedrockLevel {
		bedrock, version = true, env.BedrockLevel
	}
	switch bl := opts.BedrockLevel.(type) {
	case bool:
		bedrock = bl
	case int:
		bedrock, version = true, int32(bl)
	case int32:
		bedrock, version = true, bl
	}

	id, ok := TypeOf(root)
	if !ok || (id != TagCompound && id != TagList) {
		return nil, errAt(ErrInvalidEnvelope, -1, "root %T", root)
	}

	w := newWriter(endian)
	w.writeU8(byte(id))
	if named {
		w.writeString(name)
	}
	if err := w.writePayload(root); err != nil {
		return nil, err
	}
	body := w.bytes()

	if bedrock {
		framed := make([]byte, len(body)+8)
		binary.LittleEndian.PutUint32(framed[0:4], uint32(version))
		binary.LittleEndian.PutUint32(framed[4:8], uint32(len(body)))
		copy(framed[8:], body)
		body = framed
	}
	return compress(body, comp)
}
