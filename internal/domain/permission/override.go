package permission

import (
	"fmt"

	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// Override is a partial permission set applied on top of a role's grants.
// A true entry grants the capability, a false entry revokes it.
type Override struct {
	entries map[vo.Capability]bool
}

func NewOverride(entries map[vo.Capability]bool) (Override, error) {
	copied := make(map[vo.Capability]bool, len(entries))
	for c, v := range entries {
		if !c.IsValid() {
			return Override{}, fmt.Errorf("invalid capability in override: %s", c)
		}
		copied[c] = v
	}
	return Override{entries: copied}, nil
}

// ParseOverride builds an override from its client form, e.g.
// {"canApproveClaim": true, "canExecutePayment": false}.
func ParseOverride(m map[string]bool) (Override, error) {
	entries := make(map[vo.Capability]bool, len(m))
	for k, v := range m {
		c, err := vo.NewCapability(k)
		if err != nil {
			return Override{}, err
		}
		entries[c] = v
	}
	return NewOverride(entries)
}

// Entries returns a copy of the override entries.
func (o Override) Entries() map[vo.Capability]bool {
	out := make(map[vo.Capability]bool, len(o.entries))
	for c, v := range o.entries {
		out[c] = v
	}
	return out
}

// Lookup returns the override value for c and whether one is set.
func (o Override) Lookup(c vo.Capability) (value bool, ok bool) {
	value, ok = o.entries[c]
	return value, ok
}

func (o Override) IsEmpty() bool {
	return len(o.entries) == 0
}

func (o Override) ToMap() map[string]bool {
	out := make(map[string]bool, len(o.entries))
	for c, v := range o.entries {
		out[c.String()] = v
	}
	return out
}
