// Package resource enforces the native-handle lifecycle discipline: every
// handle acquired from the server must be released on every exit path,
// exactly once, never twice, never leaked.
//
// # Guards
//
// A Guard binds a release function to a scope. Deferring Release makes the
// release unconditional, and Release is idempotent, so early returns and
// error paths need no special handling:
//
//	s := api.CreateString(arg)
//	g := resource.NewGuard(s.Free)
//	defer g.Release()
//
// Guards are not safe for concurrent use; a handle belongs to the single
// invocation that acquired it.
//
// # Trackers
//
// A Tracker is instrumented accounting for handle lifetimes. Host
// implementations register every handle they hand out and record its
// release; tests assert Live() == 0 to prove nothing leaked and rely on
// Release's error return to catch double frees. Observers receive a
// callback per lifecycle event.
package resource
