package redismodule

import (
	"github.com/nebulaiq/redismodule-go/host"
)

// InfoContext registers module-contributed sections and fields for the
// server's INFO output.
type InfoContext struct {
	w host.InfoWriter
}

// NewInfoContext wraps an info writer handle.
func NewInfoContext(w host.InfoWriter) *InfoContext {
	return &InfoContext{w: w}
}

// AddSection opens a named section. An empty name uses the module's
// default section.
func (c *InfoContext) AddSection(name string) host.Status {
	return c.w.AddSection(name)
}

// AddFieldString adds a text field to the current section.
func (c *InfoContext) AddFieldString(name, value string) host.Status {
	return c.w.AddFieldString(name, value)
}

// AddFieldInt64 adds an integer field to the current section.
func (c *InfoContext) AddFieldInt64(name string, value int64) host.Status {
	return c.w.AddFieldInt64(name, value)
}
