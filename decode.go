package redismodule

import (
	"github.com/nebulaiq/redismodule-go/host"
)

// DecodeReply converts a tagged native reply into an owned Value tree,
// one conversion rule per tag. A nil handle (failed call) and an
// unrecognized tag both decode to the generic call failure; an explicit
// null-type reply decodes to KindNull.
//
// The decoder never frees anything: child replies are borrowed from their
// parent and released transitively with the root, which the invocation
// engine owns.
func DecodeReply(reply host.CallReply) (Value, error) {
	if reply == nil {
		return Value{}, errCallFailed
	}

	switch reply.Type() {
	case host.ReplyError:
		return Value{}, Errorf("%s", reply.Bytes())

	case host.ReplyInteger:
		return IntegerValue(reply.Integer()), nil

	case host.ReplyString:
		// Copy so the Value outlives the native reply.
		buf := reply.Bytes()
		owned := make([]byte, len(buf))
		copy(owned, buf)
		return StringBufferValue(owned), nil

	case host.ReplyNull:
		return NullValue(), nil

	case host.ReplyArray:
		length := reply.Len()
		elems := make([]Value, 0, length)
		for i := 0; i < length; i++ {
			elem, err := DecodeReply(reply.ArrayElement(i))
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, elem)
		}
		return Value{Kind: KindArray, Array: elems}, nil

	case host.ReplyMap:
		length := reply.Len()
		m := make(map[string]Value, length)
		for i := 0; i < length; i++ {
			rawKey, rawVal := reply.MapElement(i)
			key, err := DecodeReply(rawKey)
			if err != nil {
				return Value{}, err
			}
			val, err := DecodeReply(rawVal)
			if err != nil {
				return Value{}, err
			}
			// Numeric keys become their decimal text; compound keys have
			// no byte projection and fail the decode.
			k, err := keyBytes(key, errBadMapKey)
			if err != nil {
				return Value{}, err
			}
			m[k] = val
		}
		return MapValue(m), nil

	case host.ReplySet:
		length := reply.Len()
		set := make(map[string]struct{}, length)
		for i := 0; i < length; i++ {
			member, err := DecodeReply(reply.SetElement(i))
			if err != nil {
				return Value{}, err
			}
			m, err := keyBytes(member, errBadSetMember)
			if err != nil {
				return Value{}, err
			}
			set[m] = struct{}{}
		}
		return Value{Kind: KindSet, Set: set}, nil

	case host.ReplyBool:
		return BoolValue(reply.Bool()), nil

	case host.ReplyDouble:
		return DoubleValue(reply.Double()), nil

	case host.ReplyBigNumber:
		return BigNumberValue(reply.BigNumber()), nil

	case host.ReplyVerbatimString:
		format, data := reply.Verbatim()
		owned := make([]byte, len(data))
		copy(owned, data)
		return VerbatimStringValue(format, owned), nil

	default:
		return Value{}, errCallFailed
	}
}
