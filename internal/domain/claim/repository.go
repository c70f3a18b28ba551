package claim

import (
	"context"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
)

type Repository interface {
	Save(ctx context.Context, c *Claim) error
	// Update persists c if the stored version is c.Version()-1 and returns
	// ErrStaleClaim otherwise.
	Update(ctx context.Context, c *Claim) error
	GetByID(ctx context.Context, id string) (*Claim, error)
	GetByNumber(ctx context.Context, number string) (*Claim, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Claim, error)
	List(ctx context.Context, filter ListFilter) ([]*Claim, int64, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry AuditEntry) error
	ListByClaim(ctx context.Context, claimID string) ([]AuditEntry, error)
}

type ListFilter struct {
	Status               *vo.ClaimStatus
	PaymentStatus        *vo.PaymentStatus
	AuthorizedForPayment *bool
	ServiceCenterID      *string
	// Search matches claim number, IMEI or customer name.
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
