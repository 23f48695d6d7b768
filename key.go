package redismodule

import (
	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/resource"
)

// RedisKey is a read-only open key.
type RedisKey struct {
	k host.Key
	g *resource.Guard
}

// OpenKey opens a key read-only by name.
func (c *Context) OpenKey(name *RedisString) *RedisKey {
	k := c.api.OpenKey(name.Handle(), host.KeyModeRead)
	return &RedisKey{k: k, g: resource.NewGuard(k.Free)}
}

// Bytes returns the key's string value, or nil when the key is empty.
func (k *RedisKey) Bytes() ([]byte, error) {
	return k.k.Bytes()
}

// Length returns the length of the stored value.
func (k *RedisKey) Length() int {
	return k.k.Length()
}

// IsEmpty reports whether the key holds no value.
func (k *RedisKey) IsEmpty() bool {
	return k.k.IsEmpty()
}

// Close releases the key handle. Safe to call more than once.
func (k *RedisKey) Close() {
	k.g.Release()
}

// RedisKeyWritable is an open key that also accepts writes.
type RedisKeyWritable struct {
	RedisKey
}

// OpenKeyWritable opens a key for reading and writing by name.
func (c *Context) OpenKeyWritable(name *RedisString) *RedisKeyWritable {
	k := c.api.OpenKey(name.Handle(), host.KeyModeRead|host.KeyModeWrite)
	return &RedisKeyWritable{RedisKey{k: k, g: resource.NewGuard(k.Free)}}
}

// Write replaces the key's string value.
func (k *RedisKeyWritable) Write(value []byte) host.Status {
	return k.k.Write(value)
}

// Delete removes the key.
func (k *RedisKeyWritable) Delete() host.Status {
	return k.k.Delete()
}
