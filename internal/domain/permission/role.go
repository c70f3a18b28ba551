package permission

import "strings"

// RoleKey identifies a role. Roles are opaque; a key missing from the
// table simply grants nothing.
type RoleKey string

const (
	RoleAdmin           RoleKey = "admin"
	RoleSubAdmin        RoleKey = "sub-admin"
	RoleSamsungPartners RoleKey = "samsung-partners"
	RoleSamsungSentinel RoleKey = "samsung-sentinel"
	RoleServiceCenter   RoleKey = "service-center"
)

func NewRoleKey(s string) RoleKey {
	return RoleKey(strings.ToLower(strings.TrimSpace(s)))
}

func (r RoleKey) String() string {
	return string(r)
}

// UserKey is the stable identifier overrides are keyed by: the user's
// email, lower-cased.
type UserKey string

func NewUserKey(email string) UserKey {
	return UserKey(strings.ToLower(strings.TrimSpace(email)))
}

func (u UserKey) String() string {
	return string(u)
}

func (u UserKey) IsZero() bool {
	return u == ""
}
