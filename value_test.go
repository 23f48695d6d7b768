package redismodule

import (
	"errors"
	"testing"
)

func TestKeyBytes_Projection(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"simple string", SimpleStringValue("abc"), "abc"},
		{"static simple string", StaticSimpleStringValue("OK"), "OK"},
		{"bulk string", BulkStringValue("xyz"), "xyz"},
		{"string buffer", StringBufferValue([]byte("raw")), "raw"},
		{"integer", IntegerValue(42), "42"},
		{"negative integer", IntegerValue(-7), "-7"},
		{"float", FloatValue(3.5), "3.5"},
		{"whole double", DoubleValue(3), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keyBytes(tt.in, errBadMapKey)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestKeyBytes_RejectsCompoundKinds(t *testing.T) {
	for _, v := range []Value{
		ArrayValue(IntegerValue(1)),
		MapValue(map[string]Value{"a": NullValue()}),
		SetValue("a"),
		NullValue(),
		BoolValue(true),
	} {
		if _, err := keyBytes(v, errBadMapKey); !errors.Is(err, errBadMapKey) {
			t.Fatalf("Expected errBadMapKey for %v, got %v", v.Kind, err)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	a := ArrayValue(
		IntegerValue(1),
		MapValue(map[string]Value{"k": DoubleValue(2.5)}),
		SetValue("x", "y"),
		StringBufferValue([]byte("buf")),
	)
	b := ArrayValue(
		IntegerValue(1),
		MapValue(map[string]Value{"k": DoubleValue(2.5)}),
		SetValue("y", "x"),
		StringBufferValue([]byte("buf")),
	)
	if !a.Equal(b) {
		t.Fatal("Expected deep equality")
	}

	c := ArrayValue(
		IntegerValue(1),
		MapValue(map[string]Value{"k": DoubleValue(2.5)}),
		SetValue("x", "z"),
		StringBufferValue([]byte("buf")),
	)
	if a.Equal(c) {
		t.Fatal("Expected inequality for differing set members")
	}

	if IntegerValue(1).Equal(DoubleValue(1)) {
		t.Fatal("Different kinds must not compare equal")
	}
	if !VerbatimStringValue("txt", []byte("hi")).Equal(VerbatimStringValue("txt", []byte("hi"))) {
		t.Fatal("Expected verbatim equality")
	}
	if VerbatimStringValue("txt", []byte("hi")).Equal(VerbatimStringValue("mkd", []byte("hi"))) {
		t.Fatal("Verbatim format tag must participate in equality")
	}
}

func TestError_Taxonomy(t *testing.T) {
	if !errors.Is(Static("a"), Static("a")) {
		t.Fatal("Static sentinels with equal messages should match")
	}
	if errors.Is(Static("a"), Static("b")) {
		t.Fatal("Static sentinels with different messages should not match")
	}
	if !errors.Is(WrongArity(), WrongArity()) {
		t.Fatal("WrongArity should match by kind")
	}
	if errors.Is(WrongArity(), WrongType()) {
		t.Fatal("WrongArity must not match WrongType")
	}
	if WrongType().Error() != wrongTypeMessage {
		t.Fatalf("Unexpected wrong-type text: %q", WrongType().Error())
	}

	cause := errors.New("boom")
	wrapped := asError(cause)
	if !errors.Is(wrapped, cause) {
		t.Fatal("asError should preserve the cause chain")
	}
}
