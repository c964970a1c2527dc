// Package nbt reads and writes Minecraft's Named Binary Tag format in
// the three wire dialects (Java big-endian, Bedrock little-endian, and
// the Bedrock network varint dialect), with optional gzip/zlib/deflate
// framing and format auto-detection.
package nbt

// ID is an NBT tag type id as it appears on the wire.
type ID byte

const (
	TagEnd = ID(iota)
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var idNames = [...]string{
	"TAG_End", "TAG_Byte", "TAG_Short", "TAG_Int", "TAG_Long",
	"TAG_Float", "TAG_Double", "TAG_Byte_Array", "TAG_String",
	"TAG_List", "TAG_Compound", "TAG_Int_Array", "TAG_Long_Array",
}

func (id ID) String() string {
	if int(id) < len(idNames) {
		return idNames[id]
	}
	return "TAG_Invalid"
}

// TypeOf maps a Go value to its tag id. Values map as:
//
//	int8, bool          TAG_Byte (bool is accepted for writing only)
//	int16               TAG_Short
//	int32               TAG_Int
//	int64, int          TAG_Long
//	float32             TAG_Float
//	float64             TAG_Double
//	[]byte, []int8      TAG_Byte_Array
//	string              TAG_String
//	[]any               TAG_List
//	*Compound           TAG_Compound
//	[]int32             TAG_Int_Array
//	[]int64             TAG_Long_Array
//
// The second return is false for any other value; writers use that to
// skip compound entries that have no NBT representation.
func TypeOf(v any) (ID, bool) {
	switch v.(type) {
	case int8, bool:
		return TagByte, true
	case int16:
		return TagShort, true
	case int32:
		return TagInt, true
	case int64, int:
		return TagLong, true
	case float32:
		return TagFloat, true
	case float64:
		return TagDouble, true
	case []byte, []int8:
		return TagByteArray, true
	case string:
		return TagString, true
	case []any:
		return TagList, true
	case *Compound:
		return TagCompound, true
	case []int32:
		return TagIntArray, true
	case []int64:
		return TagLongArray, true
	}
	return TagEnd, false
}
