// Package redismodule provides a safe abstraction layer over a
// Redis-compatible server's native module API.
//
// The server side of the API is an opaque context handle reached through
// the interfaces in the host package. This package owns the call path that
// turns a command name plus argument bytes into a native invocation,
// decodes the tagged reply object into a Value tree, and the inverse path
// that serializes a Value tree back into protocol replies.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	redismodule/         Root package: Context facade, Value model, call
//	                     options, reply decoding and encoding, ACL checks,
//	                     key access, server version queries
//	├── host/            The native API surface as Go interfaces, reply
//	                     tags, and bitflag sets
//	├── resource/        Release-exactly-once guards and instrumented
//	                     handle tracking
//	├── hosttest/        In-memory host implementation for tests and
//	                     tooling
//	└── cmd/rmconsole/   Interactive console against a hosttest server
//
// # Quick Start
//
// Invoke a command and forward its reply to the client:
//
//	ctx := redismodule.NewContext(api)
//	ctx.Reply(ctx.Call("get", "mykey"))
//
// Invoke with explicit options:
//
//	opts := redismodule.NewCallOptionsBuilder().
//	    NoWrites().
//	    Resp3().
//	    Build()
//	v, err := ctx.CallExt("hgetall", opts, []byte("myhash"))
//
// # Values
//
// Every reply shape maps to one Value variant: integers, doubles, simple
// and bulk strings, byte buffers, arrays, maps, sets, booleans, big
// numbers, verbatim strings and null. NoReply marks that the caller has
// already produced a reply through another path.
//
// # Resource Discipline
//
// Native handles (reply objects, argument strings, ACL users) are released
// on every exit path, exactly once, through resource.Guard. Reply children
// are owned by their root and are never freed individually.
//
// # Thread Safety
//
// A Context wraps one native context handle and executes synchronously on
// the goroutine that owns it. It is NOT safe for concurrent use; callers
// needing concurrency must use a thread-safe context provided by the host
// environment.
package redismodule
