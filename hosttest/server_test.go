package hosttest

import (
	"strings"
	"testing"

	"github.com/nebulaiq/redismodule-go/host"
)

const baseToken = "v\x00"

func call(t *testing.T, s *Server, token, cmd string, args ...string) host.CallReply {
	t.Helper()
	handles := make([]host.String, len(args))
	for i, a := range args {
		handles[i] = s.CreateString([]byte(a))
	}
	defer func() {
		for _, h := range handles {
			h.Free()
		}
	}()
	return s.Call(cmd, token, handles)
}

func TestServer_SetGetDel(t *testing.T) {
	s := NewServer()

	r := call(t, s, baseToken, "set", "k", "v")
	if r.Type() != host.ReplyString || string(r.Bytes()) != "OK" {
		t.Fatalf("SET: expected OK, got %v %q", r.Type(), r.Bytes())
	}
	r.Free()

	r = call(t, s, baseToken, "get", "k")
	if r.Type() != host.ReplyString || string(r.Bytes()) != "v" {
		t.Fatalf("GET: expected v, got %v %q", r.Type(), r.Bytes())
	}
	r.Free()

	r = call(t, s, baseToken, "del", "k")
	if r.Type() != host.ReplyInteger || r.Integer() != 1 {
		t.Fatalf("DEL: expected 1, got %v %d", r.Type(), r.Integer())
	}
	r.Free()

	r = call(t, s, baseToken, "get", "k")
	if r.Type() != host.ReplyNull {
		t.Fatalf("GET after DEL: expected null, got %v", r.Type())
	}
	r.Free()

	if live := s.Tracker().Live(); live != 0 {
		t.Fatalf("Expected no live handles, got %d: %v", live, s.Tracker().LiveKinds())
	}
}

func TestServer_NoWritesFlag(t *testing.T) {
	s := NewServer()

	r := call(t, s, "vW\x00", "set", "k", "v")
	defer r.Free()
	if r.Type() != host.ReplyError {
		t.Fatalf("Expected error reply, got %v", r.Type())
	}
	if !strings.Contains(string(r.Bytes()), "write commands are not allowed") {
		t.Fatalf("Unexpected error text: %q", r.Bytes())
	}
}

func TestServer_OOMFlag(t *testing.T) {
	s := NewServer()
	s.SetContextFlags(host.CtxMaster | host.CtxOOM)

	r := call(t, s, "vM\x00", "set", "k", "v")
	defer r.Free()
	if r.Type() != host.ReplyError || !strings.Contains(string(r.Bytes()), "OOM") {
		t.Fatalf("Expected OOM error, got %v %q", r.Type(), r.Bytes())
	}
}

func TestServer_HgetallResp2VsResp3(t *testing.T) {
	s := NewServer()
	call(t, s, baseToken, "hset", "h", "f1", "v1", "f2", "v2").Free()

	r := call(t, s, baseToken, "hgetall", "h")
	if r.Type() != host.ReplyArray || r.Len() != 4 {
		t.Fatalf("RESP2 HGETALL: expected flat array of 4, got %v len %d", r.Type(), r.Len())
	}
	r.Free()

	r = call(t, s, "v3\x00", "hgetall", "h")
	if r.Type() != host.ReplyMap || r.Len() != 2 {
		t.Fatalf("RESP3 HGETALL: expected map of 2, got %v len %d", r.Type(), r.Len())
	}
	k, v := r.MapElement(0)
	if string(k.Bytes()) != "f1" || string(v.Bytes()) != "v1" {
		t.Fatalf("Unexpected first pair: %q %q", k.Bytes(), v.Bytes())
	}
	r.Free()
}

func TestServer_SmembersResp3(t *testing.T) {
	s := NewServer()
	call(t, s, baseToken, "sadd", "s", "a", "b").Free()

	r := call(t, s, "v3\x00", "smembers", "s")
	defer r.Free()
	if r.Type() != host.ReplySet || r.Len() != 2 {
		t.Fatalf("Expected set of 2, got %v len %d", r.Type(), r.Len())
	}
}

func TestServer_Incr(t *testing.T) {
	s := NewServer()

	r := call(t, s, baseToken, "incr", "n")
	if r.Integer() != 1 {
		t.Fatalf("Expected 1, got %d", r.Integer())
	}
	r.Free()

	call(t, s, baseToken, "set", "n", "notanumber").Free()
	r = call(t, s, baseToken, "incr", "n")
	defer r.Free()
	if r.Type() != host.ReplyError {
		t.Fatalf("Expected error for non-integer INCR, got %v", r.Type())
	}
}

func TestServer_FailedCall(t *testing.T) {
	s := NewServer()

	if r := call(t, s, baseToken, "debug", "failcall"); r != nil {
		t.Fatalf("Expected nil reply for DEBUG FAILCALL, got %v", r.Type())
	}

	// A token without the base flag fails the call outright.
	if r := call(t, s, "W\x00", "ping"); r != nil {
		t.Fatalf("Expected nil reply for malformed token, got %v", r.Type())
	}
}

func TestServer_InfoText(t *testing.T) {
	s := NewServer()
	s.SetVersion("6.0.11")

	r := call(t, s, baseToken, "info", "server")
	defer r.Free()
	text := string(r.Bytes())
	if !strings.Contains(text, "redis_version:6.0.11") {
		t.Fatalf("INFO missing version: %q", text)
	}
	if !strings.Contains(text, "# Server") {
		t.Fatalf("INFO missing section header: %q", text)
	}
}

func TestServer_DoubleFreePanics(t *testing.T) {
	s := NewServer()
	r := call(t, s, baseToken, "ping")
	r.Free()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on double free")
		}
	}()
	r.Free()
}

func TestServer_ChildFreePanics(t *testing.T) {
	s := NewServer()
	call(t, s, baseToken, "sadd", "s", "a").Free()
	r := call(t, s, baseToken, "smembers", "s")
	defer r.Free()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on child free")
		}
	}()
	r.SetElement(0).Free()
}

func TestRecorder_NestedContainers(t *testing.T) {
	s := NewServer()

	// [1, [2, 3], "x"]
	s.ReplyWithArray(3)
	s.ReplyWithLongLong(1)
	s.ReplyWithArray(2)
	s.ReplyWithLongLong(2)
	s.ReplyWithLongLong(3)
	s.ReplyWithStringBuffer([]byte("x"))

	if s.PendingReplies() != 1 {
		t.Fatalf("Expected 1 pending reply, got %d", s.PendingReplies())
	}
	r := s.TakeReply()
	defer r.Free()
	if r.Type() != host.ReplyArray || r.Len() != 3 {
		t.Fatalf("Expected array of 3, got %v len %d", r.Type(), r.Len())
	}
	inner := r.ArrayElement(1)
	if inner.Type() != host.ReplyArray || inner.Len() != 2 || inner.ArrayElement(1).Integer() != 3 {
		t.Fatal("Nested array not recorded correctly")
	}
}

func TestRecorder_EmptyContainer(t *testing.T) {
	s := NewServer()
	s.ReplyWithArray(0)
	r := s.TakeReply()
	defer r.Free()
	if r.Type() != host.ReplyArray || r.Len() != 0 {
		t.Fatalf("Expected empty array, got %v len %d", r.Type(), r.Len())
	}
}

func TestServer_Users(t *testing.T) {
	s := NewServer()
	s.RegisterUser("alice", host.ACLAccess)

	name := s.CreateString([]byte("alice"))
	defer name.Free()
	u := s.GetModuleUserFromUserName(name)
	if u == nil {
		t.Fatal("Expected user handle for alice")
	}
	key := s.CreateString([]byte("k"))
	defer key.Free()
	if s.ACLCheckKeyPermission(u, key, host.ACLAccess) != host.StatusOK {
		t.Fatal("Expected access permission to pass")
	}
	if s.ACLCheckKeyPermission(u, key, host.ACLDelete) != host.StatusErr {
		t.Fatal("Expected delete permission to fail")
	}
	u.Free()

	ghost := s.CreateString([]byte("ghost"))
	defer ghost.Free()
	if s.GetModuleUserFromUserName(ghost) != nil {
		t.Fatal("Expected nil for unknown user")
	}
}

func TestLimited_StripsCapabilities(t *testing.T) {
	s := NewServer()

	if _, ok := interface{}(s).(host.ServerVersionProvider); !ok {
		t.Fatal("Server should provide ServerVersionProvider")
	}

	api := Limited(s)
	if _, ok := api.(host.ServerVersionProvider); ok {
		t.Fatal("Limited API should not provide ServerVersionProvider")
	}
	if _, ok := api.(host.CommandNameProvider); ok {
		t.Fatal("Limited API should not provide CommandNameProvider")
	}
}

func TestServer_PackedVersion(t *testing.T) {
	s := NewServer()
	s.SetVersion("7.4.1")
	packed := s.ServerVersion()
	if packed != 7<<16|4<<8|1 {
		t.Fatalf("Unexpected packed version: %#x", packed)
	}
}
