package redismodule

import (
	"errors"
	"testing"

	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/hosttest"
)

func TestAclPermissions_Builder(t *testing.T) {
	p := NewAclPermissions().AddAccess().AddUpdate()
	if !p.Flags().Has(host.ACLAccess) || !p.Flags().Has(host.ACLUpdate) {
		t.Fatalf("Expected access and update flags, got %#x", p.Flags())
	}
	if p.Flags().Has(host.ACLDelete) {
		t.Fatalf("Delete flag must not be set, got %#x", p.Flags())
	}
	if FullAclPermissions().Flags() != host.ACLAll {
		t.Fatalf("Expected full permission mask, got %#x", FullAclPermissions().Flags())
	}
}

func TestACLCheckKeyPermission(t *testing.T) {
	s := hosttest.NewServer()
	s.RegisterUser("alice", host.ACLAccess|host.ACLUpdate)
	ctx := NewContext(s)

	key := ctx.CreateString("k")
	defer key.Free()

	if err := ctx.ACLCheckKeyPermission("alice", key, NewAclPermissions().AddAccess()); err != nil {
		t.Fatalf("Expected access check to pass: %v", err)
	}
	if err := ctx.ACLCheckKeyPermission("alice", key, NewAclPermissions().AddDelete()); !errors.Is(err, errNoKeyPermission) {
		t.Fatalf("Expected permission denial, got %v", err)
	}
	if err := ctx.ACLCheckKeyPermission("ghost", key, FullAclPermissions()); !errors.Is(err, errUserMissing) {
		t.Fatalf("Expected missing-user error, got %v", err)
	}

	// Pass, fail and missing-user paths all release their handles.
	key.Free()
	if live := s.Tracker().Live(); live != 0 {
		t.Fatalf("Leaked %d handles: %v", live, s.Tracker().LiveKinds())
	}
}

func TestAuthenticateUser(t *testing.T) {
	s := hosttest.NewServer()
	s.RegisterUser("alice", host.ACLAccess)
	ctx := NewContext(s)

	name, err := ctx.CurrentUserName()
	if err != nil || name != "default" {
		t.Fatalf("Expected default user, got %q %v", name, err)
	}

	if ctx.AuthenticateUser("alice") != host.StatusOK {
		t.Fatal("Expected authentication to succeed")
	}
	name, err = ctx.CurrentUserName()
	if err != nil || name != "alice" {
		t.Fatalf("Expected alice after authentication, got %q %v", name, err)
	}

	if ctx.AuthenticateUser("ghost") != host.StatusErr {
		t.Fatal("Expected authentication of unknown user to fail")
	}

	if live := s.Tracker().Live(); live != 0 {
		t.Fatalf("Leaked %d handles: %v", live, s.Tracker().LiveKinds())
	}
}
