package claim

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/biztime"
)

// Stamp records when and by whom a lifecycle step happened.
type Stamp struct {
	At time.Time
	By string
}

type Customer struct {
	Name  string
	Phone string
	Email string
}

// Claim is a device repair claim. A Claim value is never mutated by a
// transition; Apply returns a new Claim.
type Claim struct {
	id                   string
	number               string
	imei                 vo.IMEI
	productID            string
	customer             Customer
	serviceCenterID      string
	repairCost           sharedvo.Money
	paidAmount           sharedvo.Money
	paymentStatus        vo.PaymentStatus
	status               vo.ClaimStatus
	authorizedForPayment bool
	approved             *Stamp
	rejected             *Stamp
	completed            *Stamp
	authorized           *Stamp
	paid                 *Stamp
	rejectionReason      string
	transactionReference string
	notes                map[vo.Transition]string
	metadata             map[string]any
	version              int
	createdAt            time.Time
	updatedAt            time.Time
}

type NewClaimParams struct {
	Number          string
	IMEI            string
	ProductID       string
	Customer        Customer
	ServiceCenterID string
	RepairCost      sharedvo.Money
	Metadata        map[string]any
}

// NewClaim registers a PENDING, UNPAID claim.
func NewClaim(p NewClaimParams) (*Claim, error) {
	if strings.TrimSpace(p.Number) == "" {
		return nil, newValidationError("claimNumber", "is required")
	}
	imei, err := vo.NewIMEI(p.IMEI)
	if err != nil {
		return nil, newValidationError("imei", "%s", err)
	}
	if strings.TrimSpace(p.ProductID) == "" {
		return nil, newValidationError("productId", "is required")
	}
	if strings.TrimSpace(p.Customer.Name) == "" {
		return nil, newValidationError("customerName", "is required")
	}
	if p.RepairCost.IsNegative() {
		return nil, newValidationError("repairCost", "must not be negative")
	}

	now := biztime.NowUTC()
	return &Claim{
		id:              uuid.NewString(),
		number:          strings.TrimSpace(p.Number),
		imei:            imei,
		productID:       strings.TrimSpace(p.ProductID),
		customer:        p.Customer,
		serviceCenterID: p.ServiceCenterID,
		repairCost:      p.RepairCost,
		paidAmount:      sharedvo.ZeroMoney(p.RepairCost.Currency()),
		paymentStatus:   vo.PaymentStatusUnpaid,
		status:          vo.StatusPending,
		notes:           map[vo.Transition]string{},
		metadata:        copyMetadata(p.Metadata),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type ReconstructParams struct {
	ID                   string
	Number               string
	IMEI                 vo.IMEI
	ProductID            string
	Customer             Customer
	ServiceCenterID      string
	RepairCost           sharedvo.Money
	PaidAmount           sharedvo.Money
	PaymentStatus        vo.PaymentStatus
	Status               vo.ClaimStatus
	AuthorizedForPayment bool
	Approved             *Stamp
	Rejected             *Stamp
	Completed            *Stamp
	Authorized           *Stamp
	Paid                 *Stamp
	RejectionReason      string
	TransactionReference string
	Notes                map[vo.Transition]string
	Metadata             map[string]any
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ReconstructClaim rebuilds a claim from storage and rejects combinations
// that violate the claim invariants.
func ReconstructClaim(p ReconstructParams) (*Claim, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("claim ID cannot be empty")
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = vo.PaymentStatusUnpaid
	}

	c := &Claim{
		id:                   p.ID,
		number:               p.Number,
		imei:                 p.IMEI,
		productID:            p.ProductID,
		customer:             p.Customer,
		serviceCenterID:      p.ServiceCenterID,
		repairCost:           p.RepairCost,
		paidAmount:           p.PaidAmount,
		paymentStatus:        p.PaymentStatus,
		status:               p.Status,
		authorizedForPayment: p.AuthorizedForPayment,
		approved:             copyStamp(p.Approved),
		rejected:             copyStamp(p.Rejected),
		completed:            copyStamp(p.Completed),
		authorized:           copyStamp(p.Authorized),
		paid:                 copyStamp(p.Paid),
		rejectionReason:      p.RejectionReason,
		transactionReference: p.TransactionReference,
		notes:                copyNotes(p.Notes),
		metadata:             copyMetadata(p.Metadata),
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("claim %s: %w", p.ID, err)
	}
	return c, nil
}

// Validate checks the cross-field invariants.
func (c *Claim) Validate() error {
	if !c.status.IsValid() {
		return fmt.Errorf("invalid claim status: %s", c.status)
	}
	if !c.paymentStatus.IsValid() {
		return fmt.Errorf("invalid payment status: %s", c.paymentStatus)
	}
	if c.repairCost.IsNegative() {
		return fmt.Errorf("repair cost must not be negative")
	}
	if c.approved != nil && c.rejected != nil {
		return fmt.Errorf("claim cannot be both approved and rejected")
	}
	if c.authorizedForPayment && !c.status.IsCompleted() {
		return fmt.Errorf("authorized for payment requires status %s, got %s", vo.StatusCompleted, c.status)
	}
	if c.paymentStatus.IsPaid() {
		if !c.authorizedForPayment {
			return fmt.Errorf("paid claim must be authorized for payment")
		}
		if strings.TrimSpace(c.transactionReference) == "" {
			return fmt.Errorf("paid claim must carry a transaction reference")
		}
	}
	return nil
}

func (c *Claim) ID() string {
	return c.id
}

func (c *Claim) Number() string {
	return c.number
}

func (c *Claim) IMEI() vo.IMEI {
	return c.imei
}

func (c *Claim) ProductID() string {
	return c.productID
}

func (c *Claim) Customer() Customer {
	return c.customer
}

func (c *Claim) ServiceCenterID() string {
	return c.serviceCenterID
}

func (c *Claim) RepairCost() sharedvo.Money {
	return c.repairCost
}

func (c *Claim) PaidAmount() sharedvo.Money {
	return c.paidAmount
}

func (c *Claim) PaymentStatus() vo.PaymentStatus {
	return c.paymentStatus
}

func (c *Claim) Status() vo.ClaimStatus {
	return c.status
}

func (c *Claim) IsAuthorizedForPayment() bool {
	return c.authorizedForPayment
}

// Stage is the derived lifecycle position, including AUTHORIZED and PAID.
func (c *Claim) Stage() vo.Stage {
	return vo.DeriveStage(c.status, c.authorizedForPayment, c.paymentStatus)
}

func (c *Claim) Approved() *Stamp {
	return copyStamp(c.approved)
}

func (c *Claim) Rejected() *Stamp {
	return copyStamp(c.rejected)
}

func (c *Claim) Completed() *Stamp {
	return copyStamp(c.completed)
}

func (c *Claim) Authorized() *Stamp {
	return copyStamp(c.authorized)
}

func (c *Claim) Paid() *Stamp {
	return copyStamp(c.paid)
}

func (c *Claim) RejectionReason() string {
	return c.rejectionReason
}

func (c *Claim) TransactionReference() string {
	return c.transactionReference
}

// Notes returns the notes recorded with transition t, if any.
func (c *Claim) Notes(t vo.Transition) string {
	return c.notes[t]
}

func (c *Claim) AllNotes() map[vo.Transition]string {
	return copyNotes(c.notes)
}

func (c *Claim) Metadata() map[string]any {
	return copyMetadata(c.metadata)
}

func (c *Claim) Version() int {
	return c.version
}

func (c *Claim) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Claim) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Claim) clone() *Claim {
	next := *c
	next.approved = copyStamp(c.approved)
	next.rejected = copyStamp(c.rejected)
	next.completed = copyStamp(c.completed)
	next.authorized = copyStamp(c.authorized)
	next.paid = copyStamp(c.paid)
	next.notes = copyNotes(c.notes)
	next.metadata = copyMetadata(c.metadata)
	return &next
}

func copyStamp(s *Stamp) *Stamp {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func copyNotes(n map[vo.Transition]string) map[vo.Transition]string {
	out := make(map[vo.Transition]string, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

func copyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
