package redismodule

import (
	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/resource"
)

// RedisString wraps a server-owned string handle with a release-once
// guard.
type RedisString struct {
	h host.String
	g *resource.Guard
}

func newRedisString(h host.String) *RedisString {
	return &RedisString{h: h, g: resource.NewGuard(h.Free)}
}

// Bytes returns the raw payload.
func (s *RedisString) Bytes() []byte {
	return s.h.Bytes()
}

// String returns the payload as text.
func (s *RedisString) String() string {
	return string(s.h.Bytes())
}

// Handle exposes the underlying native handle for host primitives.
func (s *RedisString) Handle() host.String {
	return s.h
}

// Free drops the handle. Safe to call more than once; only the first call
// releases.
func (s *RedisString) Free() {
	s.g.Release()
}
