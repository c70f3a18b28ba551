package claim

import (
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	permvo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/biztime"
)

// MinTransactionReferenceLength is the shortest accepted payment reference.
const MinTransactionReferenceLength = 5

// InputField names a value the caller collects before a transition.
type InputField string

const (
	InputActorID              InputField = "actorId"
	InputNotes                InputField = "notes"
	InputReason               InputField = "reason"
	InputTransactionReference InputField = "transactionReference"
)

// TransitionInput carries the caller-supplied values for a transition.
// Role is recorded in the audit entry only. A zero At means now.
type TransitionInput struct {
	ActorID              string
	Role                 string
	Notes                string
	Reason               string
	TransactionReference string
	At                   time.Time
}

func (in TransitionInput) normalized() TransitionInput {
	in.ActorID = strings.TrimSpace(in.ActorID)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Reason = strings.TrimSpace(in.Reason)
	in.TransactionReference = strings.TrimSpace(in.TransactionReference)
	if in.At.IsZero() {
		in.At = biztime.NowUTC()
	}
	return in
}

// TransitionSpec is one row of the transition table.
type TransitionSpec struct {
	Transition vo.Transition
	Capability permvo.Capability
	From       vo.Stage
	To         vo.Stage
	Required   []InputField
	Optional   []InputField

	validate func(in TransitionInput) error
	apply    func(c *Claim, in TransitionInput)
}

// Allows reports whether c satisfies the transition's precondition.
func (s TransitionSpec) Allows(c *Claim) bool {
	return c.Stage() == s.From
}

var transitionTable = map[vo.Transition]TransitionSpec{
	vo.TransitionApprove: {
		Transition: vo.TransitionApprove,
		Capability: permvo.CapabilityApproveClaim,
		From:       vo.StagePending,
		To:         vo.StageApproved,
		Required:   []InputField{InputActorID},
		Optional:   []InputField{InputNotes},
		apply: func(c *Claim, in TransitionInput) {
			c.status = vo.StatusApproved
			c.approved = &Stamp{At: in.At, By: in.ActorID}
			c.setNotes(vo.TransitionApprove, in.Notes)
		},
	},
	vo.TransitionReject: {
		Transition: vo.TransitionReject,
		Capability: permvo.CapabilityRejectClaim,
		From:       vo.StagePending,
		To:         vo.StageRejected,
		Required:   []InputField{InputActorID, InputReason},
		Optional:   []InputField{InputNotes},
		validate: func(in TransitionInput) error {
			if in.Reason == "" {
				return newValidationError(string(InputReason), "is required to reject a claim")
			}
			return nil
		},
		apply: func(c *Claim, in TransitionInput) {
			c.status = vo.StatusRejected
			c.rejected = &Stamp{At: in.At, By: in.ActorID}
			c.rejectionReason = in.Reason
			c.setNotes(vo.TransitionReject, in.Notes)
		},
	},
	vo.TransitionComplete: {
		Transition: vo.TransitionComplete,
		Capability: permvo.CapabilityCompleteRepair,
		From:       vo.StageApproved,
		To:         vo.StageCompleted,
		Required:   []InputField{InputActorID},
		Optional:   []InputField{InputNotes},
		apply: func(c *Claim, in TransitionInput) {
			c.status = vo.StatusCompleted
			c.completed = &Stamp{At: in.At, By: in.ActorID}
			c.setNotes(vo.TransitionComplete, in.Notes)
		},
	},
	vo.TransitionAuthorizePayment: {
		Transition: vo.TransitionAuthorizePayment,
		Capability: permvo.CapabilityAuthorizePayment,
		From:       vo.StageCompleted,
		To:         vo.StageAuthorized,
		Required:   []InputField{InputActorID},
		Optional:   []InputField{InputNotes},
		apply: func(c *Claim, in TransitionInput) {
			c.authorizedForPayment = true
			c.authorized = &Stamp{At: in.At, By: in.ActorID}
			c.setNotes(vo.TransitionAuthorizePayment, in.Notes)
		},
	},
	vo.TransitionExecutePayment: {
		Transition: vo.TransitionExecutePayment,
		Capability: permvo.CapabilityExecutePayment,
		From:       vo.StageAuthorized,
		To:         vo.StagePaid,
		Required:   []InputField{InputActorID, InputTransactionReference},
		Optional:   []InputField{InputNotes},
		validate: func(in TransitionInput) error {
			if utf8.RuneCountInString(in.TransactionReference) < MinTransactionReferenceLength {
				return newValidationError(string(InputTransactionReference),
					"must be at least %d characters", MinTransactionReferenceLength)
			}
			return nil
		},
		apply: func(c *Claim, in TransitionInput) {
			c.paymentStatus = vo.PaymentStatusPaid
			c.paid = &Stamp{At: in.At, By: in.ActorID}
			c.paidAmount = c.repairCost
			c.transactionReference = in.TransactionReference
			c.setNotes(vo.TransitionExecutePayment, in.Notes)
		},
	},
}

// TransitionSpecFor looks up a transition's table row.
func TransitionSpecFor(t vo.Transition) (TransitionSpec, bool) {
	spec, ok := transitionTable[t]
	return spec, ok
}

// MustTransitionSpec panics with *UnknownTransitionError for a name that is
// not in the table. Callers holding untrusted names parse them with
// valueobjects.ParseTransition first.
func MustTransitionSpec(t vo.Transition) TransitionSpec {
	spec, ok := transitionTable[t]
	if !ok {
		panic(&UnknownTransitionError{Transition: t})
	}
	return spec
}

// CanApply reports whether the precondition of t holds, ignoring roles.
func (c *Claim) CanApply(t vo.Transition) bool {
	return MustTransitionSpec(t).Allows(c)
}

// Apply runs transition t and returns the resulting claim with its audit
// entry. The receiver is left untouched, including on error.
func (c *Claim) Apply(t vo.Transition, in TransitionInput) (*Claim, AuditEntry, error) {
	spec := MustTransitionSpec(t)

	if !spec.Allows(c) {
		return nil, AuditEntry{}, c.invalidTransition(t)
	}

	in = in.normalized()
	if in.ActorID == "" {
		return nil, AuditEntry{}, newValidationError(string(InputActorID), "is required")
	}
	if spec.validate != nil {
		if err := spec.validate(in); err != nil {
			return nil, AuditEntry{}, err
		}
	}

	next := c.clone()
	spec.apply(next, in)
	next.version++
	next.updatedAt = in.At

	return next, newAuditEntry(c, next, t, in), nil
}

func (c *Claim) invalidTransition(t vo.Transition) *InvalidTransitionError {
	return &InvalidTransitionError{
		ClaimID:    c.id,
		Transition: t,
		Status:     c.status,
		Authorized: c.authorizedForPayment,
		Payment:    c.paymentStatus,
	}
}

func (c *Claim) setNotes(t vo.Transition, notes string) {
	if notes == "" {
		return
	}
	if c.notes == nil {
		c.notes = map[vo.Transition]string{}
	}
	c.notes[t] = notes
}
