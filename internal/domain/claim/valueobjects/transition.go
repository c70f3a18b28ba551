package valueobjects

import (
	"fmt"
	"strings"
)

// Transition names a lifecycle action.
type Transition string

const (
	TransitionApprove          Transition = "Approve"
	TransitionReject           Transition = "Reject"
	TransitionComplete         Transition = "Complete"
	TransitionAuthorizePayment Transition = "AuthorizePayment"
	TransitionExecutePayment   Transition = "ExecutePayment"
)

var allTransitions = []Transition{
	TransitionApprove,
	TransitionReject,
	TransitionComplete,
	TransitionAuthorizePayment,
	TransitionExecutePayment,
}

// transitionAliases maps the normalized wire forms to transitions.
var transitionAliases = map[string]Transition{
	"approve":           TransitionApprove,
	"reject":            TransitionReject,
	"complete":          TransitionComplete,
	"authorizepayment":  TransitionAuthorizePayment,
	"authorize-payment": TransitionAuthorizePayment,
	"authorize_payment": TransitionAuthorizePayment,
	"authorize":         TransitionAuthorizePayment,
	"executepayment":    TransitionExecutePayment,
	"execute-payment":   TransitionExecutePayment,
	"execute_payment":   TransitionExecutePayment,
	"pay":               TransitionExecutePayment,
}

// AllTransitions returns every transition in lifecycle order.
func AllTransitions() []Transition {
	out := make([]Transition, len(allTransitions))
	copy(out, allTransitions)
	return out
}

func (t Transition) String() string {
	return string(t)
}

func (t Transition) IsValid() bool {
	for _, known := range allTransitions {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTransition accepts the canonical names and their kebab, snake and
// lower-case forms.
func ParseTransition(s string) (Transition, error) {
	if t, ok := transitionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown transition: %s", s)
}
