package redismodule

import (
	"strings"
	"testing"

	"github.com/nebulaiq/redismodule-go/hosttest"
)

func TestInfoContext(t *testing.T) {
	w := hosttest.NewInfoBuilder()
	info := NewInfoContext(w)

	info.AddSection("stats")
	info.AddFieldString("engine", "embedded")
	info.AddFieldInt64("ops", 42)
	info.AddSection("")
	info.AddFieldString("state", "ready")

	text := w.String()
	for _, want := range []string{
		"# stats\r\n",
		"engine:embedded\r\n",
		"ops:42\r\n",
		"# module\r\n",
		"state:ready\r\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("INFO text missing %q:\n%s", want, text)
		}
	}
}
