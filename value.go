package redismodule

import (
	"strconv"
)

// Kind discriminates the active variant of a Value. The set is closed; it
// mirrors the reply shapes of the wire protocol.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindSimpleString
	KindStaticSimpleString
	KindBulkString
	KindBulkStringHandle
	KindStringBuffer
	KindArray
	KindMap
	KindSet
	KindBool
	KindDouble
	KindBigNumber
	KindVerbatimString
	KindNoReply
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindSimpleString:
		return "simple string"
	case KindStaticSimpleString:
		return "static simple string"
	case KindBulkString:
		return "bulk string"
	case KindBulkStringHandle:
		return "bulk string handle"
	case KindStringBuffer:
		return "string buffer"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindBool:
		return "bool"
	case KindDouble:
		return "double"
	case KindBigNumber:
		return "big number"
	case KindVerbatimString:
		return "verbatim string"
	case KindNoReply:
		return "no reply"
	default:
		return "invalid"
	}
}

// Value is a tagged union over every reply shape. Exactly one variant is
// active, selected by Kind; the other fields are zero. A Value tree owns
// all its data and never aliases the native reply it was decoded from.
type Value struct {
	Kind Kind

	Int    int64
	Float  float64
	Bool   bool
	Str    string              // SimpleString, StaticSimpleString, BulkString, BigNumber
	Bytes  []byte              // StringBuffer, VerbatimString payload
	Handle *RedisString        // BulkStringHandle
	Array  []Value             // Array
	Map    map[string]Value    // Map, keyed by the byte projection of the key
	Set    map[string]struct{} // Set
	Format string              // VerbatimString 3-byte format tag
}

// NullValue returns the explicit null reply value.
func NullValue() Value { return Value{Kind: KindNull} }

// NoReplyValue marks that the caller already replied through another path.
func NoReplyValue() Value { return Value{Kind: KindNoReply} }

func IntegerValue(v int64) Value { return Value{Kind: KindInteger, Int: v} }

func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

func DoubleValue(v float64) Value { return Value{Kind: KindDouble, Float: v} }

func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

func SimpleStringValue(s string) Value { return Value{Kind: KindSimpleString, Str: s} }

// StaticSimpleStringValue wraps a fixed status message such as "OK".
func StaticSimpleStringValue(s string) Value {
	return Value{Kind: KindStaticSimpleString, Str: s}
}

func BulkStringValue(s string) Value { return Value{Kind: KindBulkString, Str: s} }

// BulkStringHandleValue wraps a server-owned string handle. The Value does
// not take over the handle's lifetime.
func BulkStringHandleValue(s *RedisString) Value {
	return Value{Kind: KindBulkStringHandle, Handle: s}
}

func StringBufferValue(b []byte) Value { return Value{Kind: KindStringBuffer, Bytes: b} }

func ArrayValue(elems ...Value) Value { return Value{Kind: KindArray, Array: elems} }

func MapValue(m map[string]Value) Value { return Value{Kind: KindMap, Map: m} }

func SetValue(members ...string) Value {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return Value{Kind: KindSet, Set: set}
}

func BigNumberValue(num string) Value { return Value{Kind: KindBigNumber, Str: num} }

// VerbatimStringValue pairs a 3-byte format tag ("txt", "mkd", ...) with a
// raw payload.
func VerbatimStringValue(format string, data []byte) Value {
	return Value{Kind: KindVerbatimString, Format: format, Bytes: data}
}

// keyBytes projects a decoded value to the byte-sequence form used for map
// keys and set members. Numbers are converted to their decimal text;
// compound kinds have no projection and fail with errMsg.
func keyBytes(v Value, errMsg *Error) (string, error) {
	switch v.Kind {
	case KindSimpleString, KindStaticSimpleString, KindBulkString:
		return v.Str, nil
	case KindBulkStringHandle:
		return string(v.Handle.Bytes()), nil
	case KindStringBuffer:
		return string(v.Bytes), nil
	case KindInteger:
		return strconv.FormatInt(v.Int, 10), nil
	case KindFloat, KindDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	default:
		return "", errMsg
	}
}

// Equal reports deep equality of two value trees. Bulk string handles
// compare by payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull, KindNoReply:
		return true
	case KindInteger:
		return v.Int == o.Int
	case KindFloat, KindDouble:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	case KindSimpleString, KindStaticSimpleString, KindBulkString, KindBigNumber:
		return v.Str == o.Str
	case KindBulkStringHandle:
		return string(v.Handle.Bytes()) == string(o.Handle.Bytes())
	case KindStringBuffer:
		return string(v.Bytes) == string(o.Bytes)
	case KindVerbatimString:
		return v.Format == o.Format && string(v.Bytes) == string(o.Bytes)
	case KindArray:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, val := range v.Map {
			other, ok := o.Map[k]
			if !ok || !val.Equal(other) {
				return false
			}
		}
		return true
	case KindSet:
		if len(v.Set) != len(o.Set) {
			return false
		}
		for m := range v.Set {
			if _, ok := o.Set[m]; !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
