package host

// Status is the two-valued result code used by the native reply and key
// primitives.
type Status int

const (
	StatusOK Status = iota
	StatusErr
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "err"
}

// LogLevel selects the severity passed to the server's log primitive.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogVerbose
	LogNotice
	LogWarning
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogVerbose:
		return "verbose"
	case LogNotice:
		return "notice"
	case LogWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// String is an owned, server-allocated string object. Bytes returns the
// raw payload; Free drops the caller's reference.
type String interface {
	Bytes() []byte
	Free()
}

// User is a resolved ACL user handle. It must be freed exactly once.
type User interface {
	Free()
}

// Key is an open key handle. Bytes returns the stored string value, or nil
// when the key does not exist. Write and Delete fail with StatusErr when
// the key was opened read-only.
type Key interface {
	Bytes() ([]byte, error)
	Length() int
	IsEmpty() bool
	Write(value []byte) Status
	Delete() Status
	Free()
}

// API is the opaque context handle: every required primitive the
// abstraction layer needs from the server. A single API value is bound to
// one executing command invocation and is not safe for concurrent use.
type API interface {
	// Call executes a named command with an encoded options token and
	// argument string handles. It returns nil when the call itself fails;
	// a legitimate null reply comes back as a CallReply with ReplyNull.
	Call(cmd string, options string, args []String) CallReply

	// CreateString allocates a server-owned string from raw bytes.
	CreateString(value []byte) String

	// OpenKey opens a key by name for the given access mode.
	OpenKey(name String, mode KeyMode) Key

	// Log writes a message to the server log.
	Log(level LogLevel, message string)

	// Reply emission, one primitive per value shape. Container primitives
	// declare the element count; the elements follow through further
	// emission calls.
	ReplyWithLongLong(v int64) Status
	ReplyWithDouble(v float64) Status
	ReplyWithSimpleString(s string) Status
	ReplyWithStringBuffer(b []byte) Status
	ReplyWithString(s String) Status
	ReplyWithArray(length int) Status
	ReplyWithMap(length int) Status
	ReplyWithSet(length int) Status
	ReplyWithBool(b bool) Status
	ReplyWithBigNumber(num string) Status
	ReplyWithVerbatimString(format string, b []byte) Status
	ReplyWithNull() Status
	ReplyWithError(message string) Status

	// WrongArity emits the dedicated wrong-arity error reply.
	WrongArity() Status

	// ContextFlags reports the state of the execution context.
	ContextFlags() ContextFlags

	// SetModuleOptions configures module behavior flags.
	SetModuleOptions(opts ModuleOptions)

	// IsKeysPositionRequest reports whether the command is being invoked
	// for key-position introspection rather than execution. No reply can
	// be produced in that mode; key positions are declared via KeyAtPos.
	IsKeysPositionRequest() bool
	KeyAtPos(pos int)

	// ReplicateVerbatim propagates the current command to replicas as-is.
	ReplicateVerbatim()

	// AutoMemory enables automatic memory management for the context.
	AutoMemory()

	// CurrentUserName returns the name of the authenticated client user.
	CurrentUserName() String

	// AuthenticateClientWithACLUser switches the client to the named user.
	AuthenticateClientWithACLUser(name string) Status

	// GetModuleUserFromUserName resolves an ACL user handle, or nil when
	// the user does not exist or is disabled.
	GetModuleUserFromUserName(name String) User

	// ACLCheckKeyPermission checks whether user may perform the operations
	// in perms against the named key.
	ACLCheckKeyPermission(user User, key String, perms ACLPermission) Status
}

// ServerVersionProvider is the optional direct version query. The packed
// encoding is the server's own: 0x00MMmmpp (major, minor, patch bytes).
type ServerVersionProvider interface {
	ServerVersion() int
}

// CommandNameProvider is the optional lookup of the currently executing
// command's name.
type CommandNameProvider interface {
	CurrentCommandName() string
}

// InfoWriter receives the fields a module contributes to the server's INFO
// output.
type InfoWriter interface {
	AddSection(name string) Status
	AddFieldString(name, value string) Status
	AddFieldInt64(name string, value int64) Status
}
