package dto

import (
	"github.com/claimdesk/claimdesk/internal/domain/claim"
)

type DecisionDTO struct {
	Transition     string   `json:"transition"`
	Allowed        bool     `json:"allowed"`
	Reason         string   `json:"reason,omitempty"`
	Capability     string   `json:"capability"`
	RequiredInputs []string `json:"required_inputs"`
	OptionalInputs []string `json:"optional_inputs,omitempty"`
}

func ToDecisionDTO(d claim.Decision) *DecisionDTO {
	return &DecisionDTO{
		Transition:     d.Transition.String(),
		Allowed:        d.Allowed,
		Reason:         string(d.Reason),
		Capability:     d.Capability.String(),
		RequiredInputs: fieldNames(d.RequiredInputs),
		OptionalInputs: fieldNames(d.OptionalInputs),
	}
}

func fieldNames(fields []claim.InputField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}

type BulkItemDTO struct {
	ClaimID string    `json:"claim_id"`
	OK      bool      `json:"ok"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Claim   *ClaimDTO `json:"claim,omitempty"`
}

type BulkResultDTO struct {
	Transition string         `json:"transition"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Items      []*BulkItemDTO `json:"items"`
}

const internalItemMessage = "unexpected error"

// ToBulkResultDTO keeps the input order of items. Internal failures carry a
// generic message instead of the underlying error text.
func ToBulkResultDTO(t string, r claim.BulkResult) *BulkResultDTO {
	out := &BulkResultDTO{
		Transition: t,
		Successful: r.Successful,
		Failed:     r.Failed,
		Items:      make([]*BulkItemDTO, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		dto := &BulkItemDTO{ClaimID: item.ClaimID, OK: item.OK}
		if item.OK {
			dto.Claim = ToClaimDTO(item.Claim, nil)
		} else {
			dto.Error = string(item.Kind)
			switch {
			case item.Kind == claim.KindInternal:
				dto.Message = internalItemMessage
			case item.Err != nil:
				dto.Message = item.Err.Error()
			}
		}
		out.Items = append(out.Items, dto)
	}
	return out
}
