package redismodule

import (
	"github.com/nebulaiq/redismodule-go/host"
)

// AclPermissions is the bit set of key operations checked against an ACL
// user. The zero value carries no permissions.
type AclPermissions struct {
	flags host.ACLPermission
}

// NewAclPermissions returns an empty permission set.
func NewAclPermissions() *AclPermissions {
	return &AclPermissions{}
}

// FullAclPermissions returns a set with all four permissions.
func FullAclPermissions() *AclPermissions {
	return NewAclPermissions().AddFull()
}

// AddAccess permits reading the key's value or metadata.
func (p *AclPermissions) AddAccess() *AclPermissions {
	p.flags |= host.ACLAccess
	return p
}

// AddInsert permits adding data to the key.
func (p *AclPermissions) AddInsert() *AclPermissions {
	p.flags |= host.ACLInsert
	return p
}

// AddDelete permits deleting data from the key.
func (p *AclPermissions) AddDelete() *AclPermissions {
	p.flags |= host.ACLDelete
	return p
}

// AddUpdate permits overwriting existing data in the key.
func (p *AclPermissions) AddUpdate() *AclPermissions {
	p.flags |= host.ACLUpdate
	return p
}

// AddFull adds all four permissions.
func (p *AclPermissions) AddFull() *AclPermissions {
	return p.AddAccess().AddInsert().AddDelete().AddUpdate()
}

// Flags returns the encoded bit set.
func (p *AclPermissions) Flags() host.ACLPermission {
	return p.flags
}
