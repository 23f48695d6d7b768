package host

// ReplyType tags a CallReply. The set is closed: it is fixed by the wire
// protocol, not extensible by modules.
type ReplyType int

const (
	ReplyUnknown ReplyType = iota
	ReplyInteger
	ReplyString
	ReplyError
	ReplyArray
	ReplyNull
	ReplyMap
	ReplySet
	ReplyBool
	ReplyDouble
	ReplyBigNumber
	ReplyVerbatimString
)

func (t ReplyType) String() string {
	switch t {
	case ReplyInteger:
		return "integer"
	case ReplyString:
		return "string"
	case ReplyError:
		return "error"
	case ReplyArray:
		return "array"
	case ReplyNull:
		return "null"
	case ReplyMap:
		return "map"
	case ReplySet:
		return "set"
	case ReplyBool:
		return "bool"
	case ReplyDouble:
		return "double"
	case ReplyBigNumber:
		return "big number"
	case ReplyVerbatimString:
		return "verbatim string"
	default:
		return "unknown"
	}
}

// CallReply is the tagged, server-owned outcome of an invocation. Accessors
// other than the one matching Type return zero values.
//
// Element accessors return borrowed children: they stay owned by the parent
// reply and are released with it. Only the root reply may be freed, and
// exactly once.
type CallReply interface {
	Type() ReplyType

	Integer() int64
	Double() float64
	Bool() bool

	// Bytes returns the payload of string, error and verbatim replies.
	Bytes() []byte

	// BigNumber returns the decimal text of a big-number reply.
	BigNumber() string

	// Verbatim returns the 3-byte format tag and payload of a verbatim
	// string reply.
	Verbatim() (format string, data []byte)

	// Len returns the element count of array, map and set replies.
	Len() int

	ArrayElement(i int) CallReply
	MapElement(i int) (key, value CallReply)
	SetElement(i int) CallReply

	Free()
}
