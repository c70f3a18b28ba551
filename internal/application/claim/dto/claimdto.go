package dto

import (
	"time"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/shared/services/markdown"
)

type StampDTO struct {
	At time.Time `json:"at"`
	By string    `json:"by"`
}

type NoteDTO struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

type ClaimDTO struct {
	ID                   string             `json:"id"`
	ClaimNumber          string             `json:"claim_number"`
	IMEI                 string             `json:"imei"`
	ProductID            string             `json:"product_id"`
	CustomerName         string             `json:"customer_name"`
	CustomerPhone        string             `json:"customer_phone,omitempty"`
	CustomerEmail        string             `json:"customer_email,omitempty"`
	ServiceCenterID      string             `json:"service_center_id,omitempty"`
	RepairCost           string             `json:"repair_cost"`
	PaidAmount           string             `json:"paid_amount"`
	Currency             string             `json:"currency"`
	Status               string             `json:"status"`
	Stage                string             `json:"stage"`
	PaymentStatus        string             `json:"payment_status"`
	AuthorizedForPayment bool               `json:"authorized_for_payment"`
	Approved             *StampDTO          `json:"approved,omitempty"`
	Rejected             *StampDTO          `json:"rejected,omitempty"`
	Completed            *StampDTO          `json:"completed,omitempty"`
	Authorized           *StampDTO          `json:"authorized,omitempty"`
	Paid                 *StampDTO          `json:"paid,omitempty"`
	RejectionReason      string             `json:"rejection_reason,omitempty"`
	TransactionReference string             `json:"transaction_reference,omitempty"`
	Notes                map[string]NoteDTO `json:"notes,omitempty"`
	Metadata             map[string]any     `json:"metadata,omitempty"`
	Version              int                `json:"version"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

func toStampDTO(s *claim.Stamp) *StampDTO {
	if s == nil {
		return nil
	}
	return &StampDTO{At: s.At, By: s.By}
}

// ToClaimDTO maps a claim for output. Notes are rendered to sanitized HTML
// when a renderer is given.
func ToClaimDTO(c *claim.Claim, renderer markdown.Renderer) *ClaimDTO {
	if c == nil {
		return nil
	}

	customer := c.Customer()
	out := &ClaimDTO{
		ID:                   c.ID(),
		ClaimNumber:          c.Number(),
		IMEI:                 c.IMEI().String(),
		ProductID:            c.ProductID(),
		CustomerName:         customer.Name,
		CustomerPhone:        customer.Phone,
		CustomerEmail:        customer.Email,
		ServiceCenterID:      c.ServiceCenterID(),
		RepairCost:           c.RepairCost().StringFixed(),
		PaidAmount:           c.PaidAmount().StringFixed(),
		Currency:             c.RepairCost().Currency(),
		Status:               c.Status().String(),
		Stage:                c.Stage().String(),
		PaymentStatus:        c.PaymentStatus().String(),
		AuthorizedForPayment: c.IsAuthorizedForPayment(),
		Approved:             toStampDTO(c.Approved()),
		Rejected:             toStampDTO(c.Rejected()),
		Completed:            toStampDTO(c.Completed()),
		Authorized:           toStampDTO(c.Authorized()),
		Paid:                 toStampDTO(c.Paid()),
		RejectionReason:      c.RejectionReason(),
		TransactionReference: c.TransactionReference(),
		Metadata:             c.Metadata(),
		Version:              c.Version(),
		CreatedAt:            c.CreatedAt(),
		UpdatedAt:            c.UpdatedAt(),
	}

	if notes := c.AllNotes(); len(notes) > 0 {
		out.Notes = make(map[string]NoteDTO, len(notes))
		for t, text := range notes {
			note := NoteDTO{Text: text}
			if renderer != nil {
				if html, err := renderer.ToHTML(text); err == nil {
					note.HTML = html
				}
			}
			out.Notes[t.String()] = note
		}
	}

	return out
}

func ToClaimDTOs(claims []*claim.Claim, renderer markdown.Renderer) []*ClaimDTO {
	out := make([]*ClaimDTO, 0, len(claims))
	for _, c := range claims {
		out = append(out, ToClaimDTO(c, renderer))
	}
	return out
}
