package hosttest

import (
	"strconv"
	"strings"

	"github.com/nebulaiq/redismodule-go/host"
)

// InfoBuilder accumulates INFO text through the host.InfoWriter surface.
type InfoBuilder struct {
	b strings.Builder
}

// NewInfoBuilder returns an empty builder.
func NewInfoBuilder() *InfoBuilder {
	return &InfoBuilder{}
}

func (w *InfoBuilder) AddSection(name string) host.Status {
	if w.b.Len() > 0 {
		w.b.WriteString("\r\n")
	}
	w.b.WriteString("# ")
	if name == "" {
		name = "module"
	}
	w.b.WriteString(name)
	w.b.WriteString("\r\n")
	return host.StatusOK
}

func (w *InfoBuilder) AddFieldString(name, value string) host.Status {
	w.b.WriteString(name)
	w.b.WriteByte(':')
	w.b.WriteString(value)
	w.b.WriteString("\r\n")
	return host.StatusOK
}

func (w *InfoBuilder) AddFieldInt64(name string, value int64) host.Status {
	return w.AddFieldString(name, strconv.FormatInt(value, 10))
}

// String returns the accumulated INFO text.
func (w *InfoBuilder) String() string {
	return w.b.String()
}

// buildInfo renders the server's INFO output, optionally restricted to one
// section.
func (s *Server) buildInfo(section string) string {
	w := NewInfoBuilder()

	if section == "" || section == "server" {
		w.AddSection("Server")
		w.AddFieldString("redis_version", s.version)
		w.AddFieldString("redis_mode", "standalone")
		role := "master"
		if s.flags.Has(host.CtxReplica) {
			role = "slave"
		}
		w.AddFieldString("role", role)
	}

	if section == "" || section == "keyspace" {
		w.AddSection("Keyspace")
		w.AddFieldInt64("db0_keys", int64(s.keys.Size()))
		w.AddFieldInt64("db0_hashes", int64(s.hashes.Size()))
		w.AddFieldInt64("db0_sets", int64(s.sets.Size()))
	}

	return w.String()
}
