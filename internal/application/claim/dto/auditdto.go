package dto

import (
	"time"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
)

type AuditEntryDTO struct {
	ID          string    `json:"id"`
	ClaimID     string    `json:"claim_id"`
	ClaimNumber string    `json:"claim_number"`
	Transition  string    `json:"transition"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ActorID     string    `json:"actor_id"`
	Role        string    `json:"role,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	At          time.Time `json:"at"`
}

func ToAuditEntryDTO(e claim.AuditEntry) *AuditEntryDTO {
	return &AuditEntryDTO{
		ID:          e.ID,
		ClaimID:     e.ClaimID,
		ClaimNumber: e.ClaimNumber,
		Transition:  e.Transition.String(),
		FromStatus:  e.FromStatus.String(),
		ToStatus:    e.ToStatus.String(),
		ActorID:     e.ActorID,
		Role:        e.Role,
		Notes:       e.Notes,
		Detail:      e.Detail,
		At:          e.At,
	}
}

func ToAuditEntryDTOs(entries []claim.AuditEntry) []*AuditEntryDTO {
	out := make([]*AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToAuditEntryDTO(e))
	}
	return out
}
