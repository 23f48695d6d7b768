package hosttest

import (
	"github.com/nebulaiq/redismodule-go/host"
)

// recorder assembles outbound reply emissions into Reply trees. Container
// primitives declare an element count up front; the recorder keeps a stack
// of open containers and attaches each following emission to the deepest
// one until it fills.
type recorder struct {
	stack []recFrame
	done  []*Reply
}

type recFrame struct {
	reply *Reply
	want  int
}

// emit attaches a completed reply to the open container on top of the
// stack, or to the finished list when no container is open. Filling a
// container completes it and cascades it into its own parent.
func (r *recorder) emit(rep *Reply) {
	for {
		if len(r.stack) == 0 {
			r.done = append(r.done, rep)
			return
		}
		top := &r.stack[len(r.stack)-1]
		top.reply.arr = append(top.reply.arr, rep)
		top.want--
		if top.want > 0 {
			return
		}
		completed := top.reply
		r.stack = r.stack[:len(r.stack)-1]
		if completed.typ == host.ReplyMap {
			completed.splitPairs()
		}
		rep = completed
	}
}

// open starts a container expecting the given number of child emissions
// (pairs count twice for maps). An empty container completes immediately.
func (r *recorder) open(rep *Reply, children int) {
	if children <= 0 {
		if rep.typ == host.ReplyMap {
			rep.splitPairs()
		}
		r.emit(rep)
		return
	}
	r.stack = append(r.stack, recFrame{reply: rep, want: children})
}

// take removes and returns the oldest finished reply, or nil.
func (r *recorder) take() *Reply {
	if len(r.done) == 0 {
		return nil
	}
	rep := r.done[0]
	r.done = r.done[1:]
	return rep
}

func (r *recorder) pending() int {
	return len(r.done)
}
