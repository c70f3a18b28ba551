package claim

import (
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	permvo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// CapabilityChecker answers capability questions for a role and user.
// *permission.Resolver satisfies it.
type CapabilityChecker interface {
	HasCapability(role permission.RoleKey, c permvo.Capability, user permission.UserKey) bool
}

type DenyReason string

const (
	DenyNotPermitted DenyReason = "NOT_PERMITTED"
	DenyInvalidState DenyReason = "INVALID_STATE"
)

// Decision is the authorizer's answer for one transition.
type Decision struct {
	Transition     vo.Transition
	Allowed        bool
	Reason         DenyReason
	Capability     permvo.Capability
	RequiredInputs []InputField
	OptionalInputs []InputField
}

// Err converts a deny decision into the matching domain error.
func (d Decision) Err(c *Claim, role permission.RoleKey) error {
	switch d.Reason {
	case DenyNotPermitted:
		return &NotPermittedError{Role: role.String(), Transition: d.Transition, Capability: d.Capability}
	case DenyInvalidState:
		return c.invalidTransition(d.Transition)
	default:
		return nil
	}
}

// Authorizer combines role capabilities with transition preconditions.
// It has no side effects.
type Authorizer struct {
	checker CapabilityChecker
}

func NewAuthorizer(checker CapabilityChecker) *Authorizer {
	return &Authorizer{checker: checker}
}

// Authorize allows t when the role holds the transition's capability and
// the claim satisfies its precondition. A missing capability is reported
// before an invalid state.
func (a *Authorizer) Authorize(role permission.RoleKey, user permission.UserKey, c *Claim, t vo.Transition) Decision {
	spec := MustTransitionSpec(t)

	d := Decision{
		Transition:     t,
		Capability:     spec.Capability,
		RequiredInputs: append([]InputField(nil), spec.Required...),
		OptionalInputs: append([]InputField(nil), spec.Optional...),
	}

	switch {
	case !a.checker.HasCapability(role, spec.Capability, user):
		d.Reason = DenyNotPermitted
	case !spec.Allows(c):
		d.Reason = DenyInvalidState
	default:
		d.Allowed = true
	}
	return d
}

// AvailableActions returns a decision for every transition, in lifecycle order.
func (a *Authorizer) AvailableActions(role permission.RoleKey, user permission.UserKey, c *Claim) []Decision {
	transitions := vo.AllTransitions()
	out := make([]Decision, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, a.Authorize(role, user, c, t))
	}
	return out
}
