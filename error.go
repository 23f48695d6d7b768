package redismodule

import (
	"fmt"
)

// ErrKind categorizes an Error for reply encoding. WrongArity and
// WrongType get dedicated protocol treatment; everything else carries a
// message.
type ErrKind uint8

const (
	ErrGeneral ErrKind = iota
	ErrWrongArity
	ErrWrongType
)

// wrongTypeMessage is the protocol's fixed wrong-type error text.
const wrongTypeMessage = "WRONGTYPE Operation against a key holding the wrong kind of value"

// Error is the failure side of every fallible operation in this package.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrWrongArity:
		return "wrong arity"
	case ErrWrongType:
		return wrongTypeMessage
	default:
		return e.Message
	}
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two Errors by kind; general errors additionally compare
// messages so static sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if e.Kind == ErrGeneral {
		return e.Message == t.Message
	}
	return true
}

// WrongArity reports an argument count mismatch.
func WrongArity() *Error {
	return &Error{Kind: ErrWrongArity}
}

// WrongType reports a key/value type mismatch. The message text is fixed
// by the protocol.
func WrongType() *Error {
	return &Error{Kind: ErrWrongType, Message: wrongTypeMessage}
}

// Errorf builds a general error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{Kind: ErrGeneral, Message: fmt.Sprintf(format, args...)}
}

// Static builds a general error with a fixed message.
func Static(message string) *Error {
	return &Error{Kind: ErrGeneral, Message: message}
}

// Static failure sentinels for the decode and facade paths.
var (
	errCallFailed       = Static("error on method call")
	errBadMapKey        = Static("type is not supported as map key")
	errBadSetMember     = Static("type is not supported on set")
	errUserMissing      = Static("user does not exist or is disabled")
	errNoKeyPermission  = Static("user does not have permissions on key")
	errNoVersion        = Static("error getting redis_version")
	errInfoCallFailed   = Static(`error calling "info server"`)
	errNoCommandNameAPI = Static("current command name API is not available")
)

// asError normalizes any error into this package's taxonomy so foreign
// errors survive the reply-encoding path.
func asError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: ErrGeneral, Message: err.Error(), Cause: err}
}
