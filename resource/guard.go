package resource

// Guard runs a release function exactly once. The zero value is a released
// guard.
type Guard struct {
	release func()
}

// NewGuard creates a guard over a release function.
func NewGuard(release func()) *Guard {
	return &Guard{release: release}
}

// Release runs the release function if it has not run yet. Further calls
// are no-ops.
func (g *Guard) Release() {
	if g.release == nil {
		return
	}
	release := g.release
	g.release = nil
	release()
}

// Released reports whether the release function has already run.
func (g *Guard) Released() bool {
	return g.release == nil
}

// Disarm drops the release function without running it. Used when
// ownership of the underlying handle is handed off elsewhere.
func (g *Guard) Disarm() {
	g.release = nil
}
