package testbed

import (
	"testing"

	redismodule "github.com/nebulaiq/redismodule-go"
	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/hosttest"
	"github.com/nebulaiq/redismodule-go/resource"
)

// eventCounter tallies lifecycle events per handle kind.
type eventCounter struct {
	acquired map[string]int
	released map[string]int
}

func newEventCounter() *eventCounter {
	return &eventCounter{
		acquired: make(map[string]int),
		released: make(map[string]int),
	}
}

func (c *eventCounter) OnHandleEvent(e resource.Event) {
	switch e.Type {
	case resource.EventAcquired:
		c.acquired[e.Kind]++
	case resource.EventReleased:
		c.released[e.Kind]++
	}
}

func TestNoHandleLeaks_AcrossSurface(t *testing.T) {
	s := hosttest.NewServer()
	s.RegisterUser("alice", host.ACLAccess)

	counter := newEventCounter()
	s.Tracker().Subscribe(counter)
	ctx := redismodule.NewContext(s)

	// Invocations with and without arguments, success and failure.
	if _, err := ctx.Call("set", "k", "v"); err != nil {
		t.Fatalf("SET failed: %v", err)
	}
	if _, err := ctx.Call("get", "k"); err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if _, err := ctx.Call("debug", "error", "ERR boom"); err == nil {
		t.Fatal("Expected error reply")
	}
	if _, err := ctx.Call("debug", "failcall"); err == nil {
		t.Fatal("Expected call failure")
	}

	// ACL resolution, both outcomes.
	key := ctx.CreateString("k")
	if err := ctx.ACLCheckKeyPermission("alice", key, redismodule.NewAclPermissions().AddAccess()); err != nil {
		t.Fatalf("ACL check failed: %v", err)
	}
	if err := ctx.ACLCheckKeyPermission("alice", key, redismodule.NewAclPermissions().AddDelete()); err == nil {
		t.Fatal("Expected ACL denial")
	}
	key.Free()

	// Key handles.
	name := ctx.CreateString("k")
	k := ctx.OpenKeyWritable(name)
	k.Write([]byte("v2"))
	k.Close()
	name.Free()

	// Metadata queries that allocate string handles internally.
	if _, err := ctx.CurrentUserName(); err != nil {
		t.Fatalf("CurrentUserName failed: %v", err)
	}
	if _, err := ctx.ServerVersion(); err != nil {
		t.Fatalf("ServerVersion failed: %v", err)
	}

	if live := s.Tracker().Live(); live != 0 {
		t.Fatalf("Leaked %d handles: %v", live, s.Tracker().LiveKinds())
	}
	if s.Tracker().Acquired() != s.Tracker().Released() {
		t.Fatalf("Acquire/release imbalance: %d vs %d",
			s.Tracker().Acquired(), s.Tracker().Released())
	}
	for kind, n := range counter.acquired {
		if counter.released[kind] != n {
			t.Fatalf("Kind %q leaked: %d acquired, %d released",
				kind, n, counter.released[kind])
		}
	}
	if counter.acquired["string"] == 0 || counter.acquired["user"] == 0 || counter.acquired["key"] == 0 {
		t.Fatalf("Expected string, user and key activity, got %v", counter.acquired)
	}
}

func TestReplyHandles_FreedAfterDecode(t *testing.T) {
	s := hosttest.NewServer()
	ctx := redismodule.NewContext(s)

	if _, err := ctx.Call("hset", "h", "f", "v"); err != nil {
		t.Fatalf("HSET failed: %v", err)
	}
	resp3 := redismodule.NewCallOptionsBuilder().Resp3().Build()
	v, err := ctx.CallExt("hgetall", resp3, []byte("h"))
	if err != nil {
		t.Fatalf("HGETALL failed: %v", err)
	}

	// The decoded tree is fully owned; the native reply is gone.
	if live := s.Tracker().Live(); live != 0 {
		t.Fatalf("Reply handle leaked: %v", s.Tracker().LiveKinds())
	}
	if v.Map["f"].Kind != redismodule.KindStringBuffer {
		t.Fatalf("Decoded tree damaged: %#v", v)
	}
}
