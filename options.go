package redismodule

// CallOptions is the encoded options token consumed by the native call
// primitive: a flag-character sequence terminated by a NUL sentinel.
// Immutable after construction; build one once and reuse it.
type CallOptions struct {
	token string
}

// Token returns the encoded flag sequence including the terminator.
func (o CallOptions) Token() string {
	return o.token
}

// defaultCallOptions carries only the base flag.
var defaultCallOptions = NewCallOptionsBuilder().Build()

// CallOptionsBuilder accumulates invocation flags. Encoding is append-only
// and seeded with the mandatory base flag; calling a setter twice appends
// its flag twice, which the consumer accepts.
type CallOptionsBuilder struct {
	options []byte
}

// NewCallOptionsBuilder returns a builder seeded with the base flag that
// enables extended invocation.
func NewCallOptionsBuilder() *CallOptionsBuilder {
	return &CallOptionsBuilder{options: []byte{'v'}}
}

func (b *CallOptionsBuilder) addFlag(flag byte) *CallOptionsBuilder {
	b.options = append(b.options, flag)
	return b
}

// NoWrites rejects commands marked as writing.
func (b *CallOptionsBuilder) NoWrites() *CallOptionsBuilder {
	return b.addFlag('W')
}

// ScriptMode applies the same restrictions scripts run under.
func (b *CallOptionsBuilder) ScriptMode() *CallOptionsBuilder {
	return b.addFlag('S')
}

// VerifyACL checks the current user's ACL before executing.
func (b *CallOptionsBuilder) VerifyACL() *CallOptionsBuilder {
	return b.addFlag('C')
}

// VerifyOOM rejects denied-on-OOM commands while over the memory limit.
func (b *CallOptionsBuilder) VerifyOOM() *CallOptionsBuilder {
	return b.addFlag('M')
}

// ErrorsAsReplies returns command errors as error replies instead of
// failing the call.
func (b *CallOptionsBuilder) ErrorsAsReplies() *CallOptionsBuilder {
	return b.addFlag('E')
}

// Replicate propagates the command to replicas and the AOF.
func (b *CallOptionsBuilder) Replicate() *CallOptionsBuilder {
	return b.addFlag('!')
}

// Resp3 requests protocol-3 typed replies (maps, sets, doubles, ...).
func (b *CallOptionsBuilder) Resp3() *CallOptionsBuilder {
	return b.addFlag('3')
}

// Build appends the sentinel terminator exactly once and returns the
// immutable token. The builder itself stays reusable.
func (b *CallOptionsBuilder) Build() CallOptions {
	return CallOptions{token: string(b.options) + "\x00"}
}
