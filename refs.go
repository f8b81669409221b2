package aclkit

// RoleRef identifies a role by name, by ID, or by an already-loaded entity.
// It replaces the pattern of accepting "a name or a role" as a loosely typed
// parameter: every operation resolves the ref to a canonical *Role up front.
// Mutations fail with ErrRoleNotFound when the ref cannot be resolved;
// queries fold an unresolvable ref to false.
type RoleRef struct {
	name string
	id   string
	role *Role
}

// RoleByName references a role by its tenant-unique name.
func RoleByName(name string) RoleRef {
	return RoleRef{name: name}
}

// RoleByID references a role by its ID.
func RoleByID(id string) RoleRef {
	return RoleRef{id: id}
}

// RoleEntity references an already-loaded role.
func RoleEntity(role *Role) RoleRef {
	return RoleRef{role: role}
}

// Name returns the role name the ref carries, empty for a by-ID ref.
func (r RoleRef) Name() string {
	if r.role != nil {
		return r.role.Name
	}
	return r.name
}

// ID returns the role ID the ref carries, empty for a by-name ref.
func (r RoleRef) ID() string {
	if r.role != nil {
		return r.role.ID
	}
	return r.id
}

// Entity returns the loaded role, or nil for a by-name or by-ID ref.
func (r RoleRef) Entity() *Role {
	return r.role
}

// IsZero reports whether the ref references nothing.
func (r RoleRef) IsZero() bool {
	return r.role == nil && r.name == "" && r.id == ""
}

// PermissionRef identifies a permission by name, by ID, or by an
// already-loaded entity. Same resolution rules as RoleRef.
type PermissionRef struct {
	name string
	id   string
	perm *Permission
}

// PermissionByName references a permission by its canonical name
// ("action.resource").
func PermissionByName(name string) PermissionRef {
	return PermissionRef{name: name}
}

// PermissionByID references a permission by its ID.
func PermissionByID(id string) PermissionRef {
	return PermissionRef{id: id}
}

// PermissionFor references a permission by its (resource, action) pair.
func PermissionFor(resource, action string) PermissionRef {
	return PermissionRef{name: PermissionName(resource, action)}
}

// PermissionEntity references an already-loaded permission.
func PermissionEntity(perm *Permission) PermissionRef {
	return PermissionRef{perm: perm}
}

// Name returns the permission name the ref carries, empty for a by-ID ref.
func (p PermissionRef) Name() string {
	if p.perm != nil {
		return p.perm.Name
	}
	return p.name
}

// ID returns the permission ID the ref carries, empty for a by-name ref.
func (p PermissionRef) ID() string {
	if p.perm != nil {
		return p.perm.ID
	}
	return p.id
}

// Entity returns the loaded permission, or nil for a by-name or by-ID ref.
func (p PermissionRef) Entity() *Permission {
	return p.perm
}

// IsZero reports whether the ref references nothing.
func (p PermissionRef) IsZero() bool {
	return p.perm == nil && p.name == "" && p.id == ""
}

// PermissionRefs converts a list of canonical names into refs.
func PermissionRefs(names ...string) []PermissionRef {
	refs := make([]PermissionRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, PermissionByName(name))
	}
	return refs
}

// RoleRefs converts a list of role names into refs.
func RoleRefs(names ...string) []RoleRef {
	refs := make([]RoleRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, RoleByName(name))
	}
	return refs
}
