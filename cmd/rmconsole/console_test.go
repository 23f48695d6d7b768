package main

import (
	"strings"
	"testing"

	redismodule "github.com/nebulaiq/redismodule-go"
)

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		cmd     string
		args    []string
		wantErr bool
	}{
		{"plain", "set k v", "set", []string{"k", "v"}, false},
		{"extra spaces", "  get   k  ", "get", []string{"k"}, false},
		{"double quotes", `set k "a b"`, "set", []string{"k", "a b"}, false},
		{"single quotes", "set k 'a b'", "set", []string{"k", "a b"}, false},
		{"empty quoted arg", `set k ""`, "set", []string{"k", ""}, false},
		{"unterminated quote", `set k "a`, "", nil, true},
		{"empty line", "   ", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := splitCommandLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cmd != tt.cmd {
				t.Fatalf("Expected command %q, got %q", tt.cmd, cmd)
			}
			if len(args) != len(tt.args) {
				t.Fatalf("Expected args %v, got %v", tt.args, args)
			}
			for i := range args {
				if args[i] != tt.args[i] {
					t.Fatalf("Expected args %v, got %v", tt.args, args)
				}
			}
		})
	}
}

func TestRenderValue(t *testing.T) {
	if got := renderValue(redismodule.IntegerValue(5), 0); got != "(integer) 5" {
		t.Fatalf("Unexpected integer rendering: %q", got)
	}
	if got := renderValue(redismodule.NullValue(), 0); got != "(nil)" {
		t.Fatalf("Unexpected null rendering: %q", got)
	}

	m := redismodule.MapValue(map[string]redismodule.Value{
		"a": redismodule.IntegerValue(1),
		"b": redismodule.StringBufferValue([]byte("x")),
	})
	got := renderValue(m, 0)
	if !strings.Contains(got, `"a" =>`) || !strings.Contains(got, "(integer) 1") {
		t.Fatalf("Unexpected map rendering:\n%s", got)
	}
	// Keys come out sorted.
	if strings.Index(got, `"a"`) > strings.Index(got, `"b"`) {
		t.Fatalf("Map keys not sorted:\n%s", got)
	}
}
