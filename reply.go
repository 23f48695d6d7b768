package redismodule

import (
	"strings"

	"github.com/nebulaiq/redismodule-go/host"
)

// legalSimpleString replaces carriage returns, line feeds and NUL bytes
// with single spaces. Simple strings and error messages are
// delimiter-terminated on the wire, so these bytes would break protocol
// framing. Bulk paths are length-prefixed and carry raw bytes unmodified.
func legalSimpleString(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', 0:
			return ' '
		}
		return r
	}, s)
}

// ReplyNull emits a null reply.
func (c *Context) ReplyNull() host.Status {
	return c.api.ReplyWithNull()
}

// ReplySimpleString emits a sanitized simple-string reply.
func (c *Context) ReplySimpleString(s string) host.Status {
	return c.api.ReplyWithSimpleString(legalSimpleString(s))
}

// ReplyBulkString emits a bulk string reply.
func (c *Context) ReplyBulkString(s string) host.Status {
	return c.api.ReplyWithStringBuffer([]byte(s))
}

// ReplyBulkSlice emits a bulk string reply from raw bytes.
func (c *Context) ReplyBulkSlice(b []byte) host.Status {
	return c.api.ReplyWithStringBuffer(b)
}

// ReplyLong emits an integer reply.
func (c *Context) ReplyLong(v int64) host.Status {
	return c.api.ReplyWithLongLong(v)
}

// ReplyDouble emits a double reply.
func (c *Context) ReplyDouble(v float64) host.Status {
	return c.api.ReplyWithDouble(v)
}

// ReplyArray emits an array length header; the elements follow through
// further reply calls.
func (c *Context) ReplyArray(length int) host.Status {
	return c.api.ReplyWithArray(length)
}

// ReplyError emits a sanitized error reply.
func (c *Context) ReplyError(message string) host.Status {
	return c.api.ReplyWithError(legalSimpleString(message))
}

// Reply serializes a result into protocol replies through the context,
// recursing into nested arrays, maps and sets. It is designed to take a
// fallible operation's return pair directly:
//
//	ctx.Reply(ctx.Call("get", "mykey"))
//
// A NoReply value emits nothing and reports success; the caller is
// responsible for having already replied through another path.
func (c *Context) Reply(v Value, err error) host.Status {
	if err != nil {
		return c.replyError(asError(err))
	}

	switch v.Kind {
	case KindInteger:
		return c.api.ReplyWithLongLong(v.Int)

	case KindFloat, KindDouble:
		return c.api.ReplyWithDouble(v.Float)

	case KindSimpleString, KindStaticSimpleString:
		return c.api.ReplyWithSimpleString(legalSimpleString(v.Str))

	case KindBulkString:
		return c.api.ReplyWithStringBuffer([]byte(v.Str))

	case KindBulkStringHandle:
		return c.api.ReplyWithString(v.Handle.Handle())

	case KindStringBuffer:
		return c.api.ReplyWithStringBuffer(v.Bytes)

	case KindArray:
		// The length header always succeeds on the server side, so child
		// statuses are not collected.
		c.api.ReplyWithArray(len(v.Array))
		for _, elem := range v.Array {
			c.Reply(elem, nil)
		}
		return host.StatusOK

	case KindMap:
		c.api.ReplyWithMap(len(v.Map))
		for key, val := range v.Map {
			c.api.ReplyWithStringBuffer([]byte(key))
			c.Reply(val, nil)
		}
		return host.StatusOK

	case KindSet:
		c.api.ReplyWithSet(len(v.Set))
		for member := range v.Set {
			c.api.ReplyWithStringBuffer([]byte(member))
		}
		return host.StatusOK

	case KindBool:
		return c.api.ReplyWithBool(v.Bool)

	case KindBigNumber:
		return c.api.ReplyWithBigNumber(v.Str)

	case KindVerbatimString:
		return c.api.ReplyWithVerbatimString(v.Format, v.Bytes)

	case KindNull:
		return c.api.ReplyWithNull()

	case KindNoReply:
		return host.StatusOK

	default:
		return c.ReplyError("unknown value kind")
	}
}

func (c *Context) replyError(e *Error) host.Status {
	switch e.Kind {
	case ErrWrongArity:
		if c.api.IsKeysPositionRequest() {
			// No client to reply to in introspection mode.
			return host.StatusErr
		}
		return c.api.WrongArity()
	case ErrWrongType:
		return c.ReplyError(wrongTypeMessage)
	default:
		return c.ReplyError(e.Message)
	}
}
