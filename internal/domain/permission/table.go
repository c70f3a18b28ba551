package permission

import (
	"fmt"
	"sort"

	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// Table holds role grants and per-user overrides. It is immutable once
// built; changes produce a new Table.
type Table struct {
	roles     map[RoleKey]map[vo.Capability]bool
	overrides map[UserKey]Override
}

// NewTable validates and copies the given grants and overrides.
func NewTable(roles map[RoleKey][]vo.Capability, overrides map[UserKey]Override) (*Table, error) {
	t := &Table{
		roles:     make(map[RoleKey]map[vo.Capability]bool, len(roles)),
		overrides: make(map[UserKey]Override, len(overrides)),
	}

	for role, caps := range roles {
		if role == "" {
			return nil, fmt.Errorf("role key cannot be empty")
		}
		grants := make(map[vo.Capability]bool, len(caps))
		for _, c := range caps {
			if !c.IsValid() {
				return nil, fmt.Errorf("role %s: invalid capability: %s", role, c)
			}
			grants[c] = true
		}
		t.roles[role] = grants
	}

	for user, o := range overrides {
		if user.IsZero() {
			return nil, fmt.Errorf("override user key cannot be empty")
		}
		if !o.IsEmpty() {
			t.overrides[user] = Override{entries: o.Entries()}
		}
	}

	return t, nil
}

// EmptyTable grants nothing to anyone.
func EmptyTable() *Table {
	return &Table{
		roles:     map[RoleKey]map[vo.Capability]bool{},
		overrides: map[UserKey]Override{},
	}
}

// DefaultTable is the built-in role table used when no YAML table is
// configured.
func DefaultTable() *Table {
	t, err := NewTable(map[RoleKey][]vo.Capability{
		RoleAdmin: vo.AllCapabilities(),
		RoleSubAdmin: {
			vo.CapabilityViewClaims,
			vo.CapabilityRegisterClaim,
			vo.CapabilityApproveClaim,
			vo.CapabilityRejectClaim,
			vo.CapabilityCompleteRepair,
			vo.CapabilityAuthorizePayment,
			vo.CapabilityViewRepaymentSchedules,
			vo.CapabilityExportReports,
		},
		RoleSamsungPartners: {
			vo.CapabilityViewClaims,
			vo.CapabilityApproveClaim,
			vo.CapabilityRejectClaim,
			vo.CapabilityAuthorizePayment,
			vo.CapabilityViewRepaymentSchedules,
		},
		RoleSamsungSentinel: {
			vo.CapabilityViewClaims,
			vo.CapabilityExecutePayment,
			vo.CapabilityUpdateWalletBalance,
			vo.CapabilityViewRepaymentSchedules,
			vo.CapabilityExportReports,
		},
		RoleServiceCenter: {
			vo.CapabilityViewClaims,
			vo.CapabilityRegisterClaim,
			vo.CapabilityCompleteRepair,
		},
	}, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// RoleGrants lists the capabilities a role grants, in declaration order.
func (t *Table) RoleGrants(role RoleKey) []vo.Capability {
	grants := t.roles[role]
	out := make([]vo.Capability, 0, len(grants))
	for _, c := range vo.AllCapabilities() {
		if grants[c] {
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) HasRole(role RoleKey) bool {
	_, ok := t.roles[role]
	return ok
}

// Roles returns the role keys in sorted order.
func (t *Table) Roles() []RoleKey {
	out := make([]RoleKey, 0, len(t.roles))
	for r := range t.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *Table) Override(user UserKey) (Override, bool) {
	o, ok := t.overrides[user]
	return o, ok
}

// Users returns the users that have overrides, sorted.
func (t *Table) Users() []UserKey {
	out := make([]UserKey, 0, len(t.overrides))
	for u := range t.overrides {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WithOverride returns a copy of t with the override for user replaced.
// An empty override removes it.
func (t *Table) WithOverride(user UserKey, o Override) *Table {
	next := t.clone()
	if o.IsEmpty() {
		delete(next.overrides, user)
	} else {
		next.overrides[user] = Override{entries: o.Entries()}
	}
	return next
}

// WithoutOverride returns a copy of t without an override for user.
func (t *Table) WithoutOverride(user UserKey) *Table {
	next := t.clone()
	delete(next.overrides, user)
	return next
}

func (t *Table) clone() *Table {
	next := &Table{
		roles:     make(map[RoleKey]map[vo.Capability]bool, len(t.roles)),
		overrides: make(map[UserKey]Override, len(t.overrides)),
	}
	for r, grants := range t.roles {
		next.roles[r] = grants
	}
	for u, o := range t.overrides {
		next.overrides[u] = o
	}
	return next
}
