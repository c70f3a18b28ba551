package claim

import (
	"time"

	"github.com/google/uuid"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
)

// AuditEntry records one applied transition.
type AuditEntry struct {
	ID          string
	ClaimID     string
	ClaimNumber string
	Transition  vo.Transition
	FromStatus  vo.Stage
	ToStatus    vo.Stage
	ActorID     string
	Role        string
	Notes       string
	// Detail holds the rejection reason or the transaction reference.
	Detail string
	At     time.Time
}

func newAuditEntry(before, after *Claim, t vo.Transition, in TransitionInput) AuditEntry {
	detail := ""
	switch t {
	case vo.TransitionReject:
		detail = in.Reason
	case vo.TransitionExecutePayment:
		detail = in.TransactionReference
	}

	return AuditEntry{
		ID:          uuid.NewString(),
		ClaimID:     after.id,
		ClaimNumber: after.number,
		Transition:  t,
		FromStatus:  before.Stage(),
		ToStatus:    after.Stage(),
		ActorID:     in.ActorID,
		Role:        in.Role,
		Notes:       in.Notes,
		Detail:      detail,
		At:          in.At,
	}
}
