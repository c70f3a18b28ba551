package dto

// Import item error codes.
const (
	ImportErrorInvalid   = "INVALID_RECORD"
	ImportErrorDuplicate = "DUPLICATE"
	ImportErrorInternal  = "INTERNAL_ERROR"
)

type ImportItemDTO struct {
	Index   int       `json:"index"`
	ClaimID string    `json:"claim_id,omitempty"`
	OK      bool      `json:"ok"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Claim   *ClaimDTO `json:"claim,omitempty"`
}

// ImportResultDTO reports one item per submitted record, in submission order.
type ImportResultDTO struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Items    []*ImportItemDTO `json:"items"`
}

func (r *ImportResultDTO) Add(item *ImportItemDTO) {
	if item.OK {
		r.Imported++
	} else {
		r.Failed++
	}
	r.Items = append(r.Items, item)
}
