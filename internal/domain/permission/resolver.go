package permission

import (
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// Resolver computes effective permissions from a Table: every capability
// starts denied, role grants are applied, then the user's override wins.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = EmptyTable()
	}
	return &Resolver{table: table}
}

func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve never fails. An unknown role resolves to the override alone; an
// empty user key skips overrides.
func (r *Resolver) Resolve(role RoleKey, user UserKey) PermissionSet {
	flags := make(map[vo.Capability]bool)
	for c := range r.table.roles[role] {
		flags[c] = true
	}

	if !user.IsZero() {
		if o, ok := r.table.overrides[user]; ok {
			for c, granted := range o.entries {
				if granted {
					flags[c] = true
				} else {
					delete(flags, c)
				}
			}
		}
	}

	return newPermissionSet(flags)
}

func (r *Resolver) HasCapability(role RoleKey, c vo.Capability, user UserKey) bool {
	if !c.IsValid() {
		return false
	}
	if !user.IsZero() {
		if o, ok := r.table.overrides[user]; ok {
			if v, set := o.entries[c]; set {
				return v
			}
		}
	}
	return r.table.roles[role][c]
}
