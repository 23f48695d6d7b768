// Package hosttest provides an in-memory implementation of the host API
// for tests and tooling.
//
// Server emulates the small slice of a Redis-compatible server the
// abstraction layer talks to: a keyspace with string, hash and set values,
// a built-in command set, call-option handling, ACL users, INFO text and
// the reply emission primitives. Emitted replies are recorded as reply
// trees that can be taken back out and decoded again, which is what the
// round-trip tests build on.
//
// Every handle the server hands out (strings, keys, users, reply roots) is
// registered with a resource.Tracker. Tests assert Tracker().Live() == 0
// to prove nothing leaked; freeing a handle twice or freeing a borrowed
// child reply panics immediately.
//
// Server implements the optional capabilities too. Wrap it with Limited to
// strip them and exercise fallback paths:
//
//	api := hosttest.Limited(srv) // no ServerVersionProvider, no CommandNameProvider
package hosttest
