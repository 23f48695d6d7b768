package hosttest

import (
	"github.com/nebulaiq/redismodule-go/host"
)

// Reply is a recorded reply tree node. Only roots handed out through Call
// or TakeReply may be freed; children are borrowed and freed transitively
// with their root, so freeing one is a contract violation and panics.
type Reply struct {
	typ    host.ReplyType
	i      int64
	f      float64
	b      bool
	data   []byte
	num    string
	format string
	arr    []*Reply
	keys   []*Reply
	vals   []*Reply

	srv     *Server
	trackID uint64
}

func newIntegerReply(v int64) *Reply  { return &Reply{typ: host.ReplyInteger, i: v} }
func newDoubleReply(v float64) *Reply { return &Reply{typ: host.ReplyDouble, f: v} }
func newBoolReply(v bool) *Reply      { return &Reply{typ: host.ReplyBool, b: v} }
func newNullReply() *Reply            { return &Reply{typ: host.ReplyNull} }

func newStringReply(b []byte) *Reply {
	return &Reply{typ: host.ReplyString, data: b}
}

func newErrorReply(msg string) *Reply {
	return &Reply{typ: host.ReplyError, data: []byte(msg)}
}

func newBigNumberReply(num string) *Reply {
	return &Reply{typ: host.ReplyBigNumber, num: num}
}

func newVerbatimReply(format string, data []byte) *Reply {
	return &Reply{typ: host.ReplyVerbatimString, format: format, data: data}
}

func newArrayReply(elems ...*Reply) *Reply {
	return &Reply{typ: host.ReplyArray, arr: elems}
}

func newMapReply(keys, vals []*Reply) *Reply {
	return &Reply{typ: host.ReplyMap, keys: keys, vals: vals}
}

func newSetReply(members ...*Reply) *Reply {
	return &Reply{typ: host.ReplySet, arr: members}
}

func (r *Reply) Type() host.ReplyType { return r.typ }

func (r *Reply) Integer() int64 { return r.i }

func (r *Reply) Double() float64 { return r.f }

func (r *Reply) Bool() bool { return r.b }

func (r *Reply) Bytes() []byte { return r.data }

func (r *Reply) BigNumber() string { return r.num }

func (r *Reply) Verbatim() (string, []byte) { return r.format, r.data }

func (r *Reply) Len() int {
	if r.typ == host.ReplyMap {
		return len(r.keys)
	}
	return len(r.arr)
}

func (r *Reply) ArrayElement(i int) host.CallReply {
	if r.typ != host.ReplyArray || i < 0 || i >= len(r.arr) {
		return nil
	}
	return r.arr[i]
}

func (r *Reply) MapElement(i int) (host.CallReply, host.CallReply) {
	if r.typ != host.ReplyMap || i < 0 || i >= len(r.keys) {
		return nil, nil
	}
	return r.keys[i], r.vals[i]
}

func (r *Reply) SetElement(i int) host.CallReply {
	if r.typ != host.ReplySet || i < 0 || i >= len(r.arr) {
		return nil
	}
	return r.arr[i]
}

func (r *Reply) Free() {
	if r.trackID == 0 {
		panic("hosttest: freed a borrowed child reply")
	}
	if err := r.srv.tracker.Release(r.trackID); err != nil {
		panic("hosttest: reply " + err.Error())
	}
}

// splitPairs converts a map container's flat child list (key, value, key,
// value, ...) into its pair form once recording completes.
func (r *Reply) splitPairs() {
	n := len(r.arr) / 2
	r.keys = make([]*Reply, 0, n)
	r.vals = make([]*Reply, 0, n)
	for i := 0; i+1 < len(r.arr); i += 2 {
		r.keys = append(r.keys, r.arr[i])
		r.vals = append(r.vals, r.arr[i+1])
	}
	r.arr = nil
}
