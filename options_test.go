package redismodule

import (
	"testing"
)

func TestCallOptions_Default(t *testing.T) {
	opts := NewCallOptionsBuilder().Build()
	if opts.Token() != "v\x00" {
		t.Fatalf("Expected base token, got %q", opts.Token())
	}
}

func TestCallOptions_FlagOrder(t *testing.T) {
	tests := []struct {
		name  string
		build func() CallOptions
		want  string
	}{
		{
			name: "all flags",
			build: func() CallOptions {
				return NewCallOptionsBuilder().
					NoWrites().
					ScriptMode().
					VerifyACL().
					VerifyOOM().
					ErrorsAsReplies().
					Replicate().
					Resp3().
					Build()
			},
			want: "vWSCME!3\x00",
		},
		{
			name: "order preserved",
			build: func() CallOptions {
				return NewCallOptionsBuilder().Resp3().NoWrites().Build()
			},
			want: "v3W\x00",
		},
		{
			name: "duplicate setters append twice",
			build: func() CallOptions {
				return NewCallOptionsBuilder().NoWrites().NoWrites().Build()
			},
			want: "vWW\x00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.build().Token()
			if got != tt.want {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCallOptions_BuildTwice(t *testing.T) {
	b := NewCallOptionsBuilder().NoWrites()
	first := b.Build()
	second := b.Build()
	if first.Token() != "vW\x00" || second.Token() != "vW\x00" {
		t.Fatalf("Build must append the sentinel exactly once per token: %q %q",
			first.Token(), second.Token())
	}
}
