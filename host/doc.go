// Package host defines the inbound surface of the server's native module
// API: the opaque context handle and the primitives the abstraction layer
// calls through it.
//
// Everything here is an external collaborator. The real server provides an
// implementation backed by its module ABI; tests and tooling use the
// in-memory implementation in the hosttest package. The abstraction layer
// never depends on which one it is talking to.
//
// # Handles
//
// Three opaque handle types cross this boundary:
//
//	String     - a server-owned string object with its own refcount
//	CallReply  - the tagged outcome of a command invocation
//	User       - a resolved ACL user
//
// Each handle must be freed exactly once by whoever acquired it. CallReply
// children are owned by their parent and are released transitively when the
// root is freed; they must never be freed individually.
//
// # Optional capabilities
//
// Some primitives only exist on newer server versions. Those are split into
// separate interfaces (ServerVersionProvider, CommandNameProvider) and
// discovered by type assertion. Absence is an ordinary, typed condition,
// never silent misbehavior.
package host
