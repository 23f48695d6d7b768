package host

// ContextFlags is the bit set reported by ContextFlags().
type ContextFlags uint32

const (
	// CtxMaster is set when the server is a primary.
	CtxMaster ContextFlags = 1 << iota
	// CtxReplica is set when the server is a replica.
	CtxReplica
	// CtxOOM is set when the server is over its memory limit.
	CtxOOM
	// CtxDenyBlocking is set when the current invocation must not block.
	CtxDenyBlocking
	// CtxLoading is set while the server is loading its dataset.
	CtxLoading
)

// Has reports whether all bits in mask are set.
func (f ContextFlags) Has(mask ContextFlags) bool {
	return f&mask == mask
}

// ModuleOptions is the bit set accepted by SetModuleOptions.
type ModuleOptions uint32

const (
	// ModuleOptionHandleIOErrors signals that the module checks key-level
	// I/O errors itself.
	ModuleOptionHandleIOErrors ModuleOptions = 1 << iota
	// ModuleOptionNoImplicitSignalModified disables the implicit
	// signal-modified on key writes.
	ModuleOptionNoImplicitSignalModified
	// ModuleOptionHandleReplAsyncLoad signals that the module tolerates
	// async replication loads.
	ModuleOptionHandleReplAsyncLoad
)

// KeyMode selects the access mode for OpenKey.
type KeyMode uint32

const (
	KeyModeRead KeyMode = 1 << iota
	KeyModeWrite
)

// ACLPermission is the bit set of key operations checked against an ACL
// user.
type ACLPermission uint32

const (
	ACLAccess ACLPermission = 1 << iota
	ACLInsert
	ACLDelete
	ACLUpdate
)

// ACLAll is the full permission set.
const ACLAll = ACLAccess | ACLInsert | ACLDelete | ACLUpdate

// Has reports whether all bits in mask are set.
func (p ACLPermission) Has(mask ACLPermission) bool {
	return p&mask == mask
}
