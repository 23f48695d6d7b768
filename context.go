package redismodule

import (
	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/resource"
)

// Context is the high-level interface to the module API. It wraps the
// opaque native context handle and composes invocation, reply encoding,
// key access, ACL checks and server metadata queries.
//
// A Context belongs to a single executing invocation and is not safe for
// concurrent use.
type Context struct {
	api host.API
}

// NewContext wraps a native context handle.
func NewContext(api host.API) *Context {
	return &Context{api: api}
}

// DetachedContext returns a context with no native handle behind it.
// Logging falls back to the package logger; every other operation will
// fail. Useful for code paths that run outside an invocation.
func DetachedContext() *Context {
	return &Context{}
}

// API exposes the raw handle for primitives not covered by the facade.
func (c *Context) API() host.API {
	return c.api
}

// Call invokes a command with the default options token and text
// arguments.
func (c *Context) Call(cmd string, args ...string) (Value, error) {
	raw := make([][]byte, len(args))
	for i, a := range args {
		raw[i] = []byte(a)
	}
	return c.callInternal(cmd, defaultCallOptions.Token(), raw)
}

// CallExt invokes a command with an explicit options token and raw
// argument bytes.
func (c *Context) CallExt(cmd string, opts CallOptions, args ...[]byte) (Value, error) {
	return c.callInternal(cmd, opts.Token(), args)
}

// callInternal is the invocation engine. Argument handles are scoped
// strictly to the call; the root reply handle is freed exactly once after
// decoding, on every path.
func (c *Context) callInternal(cmd string, token string, args [][]byte) (Value, error) {
	handles := make([]host.String, len(args))
	for i, a := range args {
		s := c.api.CreateString(a)
		g := resource.NewGuard(s.Free)
		defer g.Release()
		handles[i] = s
	}

	reply := c.api.Call(cmd, token, handles)
	if reply != nil {
		g := resource.NewGuard(reply.Free)
		defer g.Release()
	}
	return DecodeReply(reply)
}

// CreateString allocates a server-owned string from text.
func (c *Context) CreateString(s string) *RedisString {
	return c.CreateStringFromBytes([]byte(s))
}

// CreateStringFromBytes allocates a server-owned string from raw bytes.
func (c *Context) CreateStringFromBytes(b []byte) *RedisString {
	return newRedisString(c.api.CreateString(b))
}

// SetModuleOptions configures module behavior flags on the context.
func (c *Context) SetModuleOptions(opts host.ModuleOptions) {
	c.api.SetModuleOptions(opts)
}

// AutoMemory enables automatic memory management for the context.
func (c *Context) AutoMemory() {
	c.api.AutoMemory()
}

// ReplicateVerbatim propagates the current command to replicas as-is.
func (c *Context) ReplicateVerbatim() {
	c.api.ReplicateVerbatim()
}

// IsKeysPositionRequest reports whether the command is being invoked for
// key-position introspection rather than execution.
func (c *Context) IsKeysPositionRequest() bool {
	return c.api.IsKeysPositionRequest()
}

// KeyAtPos declares that the argument at pos is a key during a
// key-position request.
func (c *Context) KeyAtPos(pos int) {
	c.api.KeyAtPos(pos)
}

// IsPrimary reports whether the server is a primary.
func (c *Context) IsPrimary() bool {
	return c.api.ContextFlags().Has(host.CtxMaster)
}

// IsOOM reports whether the server is over its memory limit.
func (c *Context) IsOOM() bool {
	return c.api.ContextFlags().Has(host.CtxOOM)
}

// AllowBlock reports whether the current invocation may block.
func (c *Context) AllowBlock() bool {
	return !c.api.ContextFlags().Has(host.CtxDenyBlocking)
}

// CurrentUserName returns the name of the authenticated client user.
func (c *Context) CurrentUserName() (string, error) {
	s := c.api.CurrentUserName()
	if s == nil {
		return "", Static("error getting current user")
	}
	g := resource.NewGuard(s.Free)
	defer g.Release()
	return string(s.Bytes()), nil
}

// AuthenticateUser switches the client to the named ACL user.
func (c *Context) AuthenticateUser(userName string) host.Status {
	return c.api.AuthenticateClientWithACLUser(userName)
}

// CurrentCommandName returns the name of the executing command via the
// optional capability, or a typed absence error.
func (c *Context) CurrentCommandName() (string, error) {
	p, ok := c.api.(host.CommandNameProvider)
	if !ok {
		return "", errNoCommandNameAPI
	}
	return p.CurrentCommandName(), nil
}

// ACLCheckKeyPermission checks whether the named user may perform the
// given operations on the key. The resolved user handle is released
// exactly once whether the check passes or fails.
func (c *Context) ACLCheckKeyPermission(userName string, keyName *RedisString, perms *AclPermissions) error {
	name := c.CreateString(userName)
	defer name.Free()

	user := c.api.GetModuleUserFromUserName(name.Handle())
	if user == nil {
		return errUserMissing
	}
	g := resource.NewGuard(user.Free)
	defer g.Release()

	if c.api.ACLCheckKeyPermission(user, keyName.Handle(), perms.Flags()) != host.StatusOK {
		return errNoKeyPermission
	}
	return nil
}
