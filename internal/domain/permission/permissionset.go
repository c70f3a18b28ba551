package permission

import (
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// PermissionSet is the resolved value of every capability. The zero value
// denies everything.
type PermissionSet struct {
	flags map[vo.Capability]bool
}

func newPermissionSet(flags map[vo.Capability]bool) PermissionSet {
	return PermissionSet{flags: flags}
}

// PermissionSetFromMap rebuilds a set from its client form. Unknown keys
// are dropped.
func PermissionSetFromMap(m map[string]bool) PermissionSet {
	flags := make(map[vo.Capability]bool, len(m))
	for k, v := range m {
		c := vo.Capability(k)
		if c.IsValid() && v {
			flags[c] = true
		}
	}
	return newPermissionSet(flags)
}

// Has reports whether c is granted. Unknown capabilities are never granted.
func (p PermissionSet) Has(c vo.Capability) bool {
	return c.IsValid() && p.flags[c]
}

// Granted lists the granted capabilities in declaration order.
func (p PermissionSet) Granted() []vo.Capability {
	out := make([]vo.Capability, 0, len(p.flags))
	for _, c := range vo.AllCapabilities() {
		if p.flags[c] {
			out = append(out, c)
		}
	}
	return out
}

// ToMap returns every known capability with its value.
func (p PermissionSet) ToMap() map[string]bool {
	all := vo.AllCapabilities()
	out := make(map[string]bool, len(all))
	for _, c := range all {
		out[c.String()] = p.flags[c]
	}
	return out
}

func (p PermissionSet) Equals(other PermissionSet) bool {
	for _, c := range vo.AllCapabilities() {
		if p.Has(c) != other.Has(c) {
			return false
		}
	}
	return true
}
