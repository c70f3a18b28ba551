package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/models"
)

// ClaimMapper converts between the claim aggregate and its persistence models.
type ClaimMapper interface {
	ToModel(c *claim.Claim) *models.ClaimModel
	ToDomain(model *models.ClaimModel) (*claim.Claim, error)
	ToDomainList(models []*models.ClaimModel) ([]*claim.Claim, error)
	AuditToModel(e claim.AuditEntry) *models.ClaimAuditModel
	AuditToDomain(model *models.ClaimAuditModel) claim.AuditEntry
}

type ClaimMapperImpl struct{}

func NewClaimMapper() ClaimMapper {
	return &ClaimMapperImpl{}
}

func (m *ClaimMapperImpl) ToModel(c *claim.Claim) *models.ClaimModel {
	customer := c.Customer()
	model := &models.ClaimModel{
		ID:                   c.ID(),
		ClaimNumber:          c.Number(),
		IMEI:                 c.IMEI().String(),
		ProductID:            c.ProductID(),
		CustomerName:         customer.Name,
		CustomerPhone:        customer.Phone,
		CustomerEmail:        customer.Email,
		ServiceCenterID:      c.ServiceCenterID(),
		RepairCost:           c.RepairCost().Amount(),
		PaidAmount:           c.PaidAmount().Amount(),
		Currency:             c.RepairCost().Currency(),
		Status:               c.Status().String(),
		PaymentStatus:        c.PaymentStatus().String(),
		AuthorizedForPayment: c.IsAuthorizedForPayment(),
		RejectionReason:      c.RejectionReason(),
		TransactionReference: c.TransactionReference(),
		Version:              c.Version(),
		CreatedAt:            c.CreatedAt(),
		UpdatedAt:            c.UpdatedAt(),
	}

	model.ApprovedAt, model.ApprovedBy = stampColumns(c.Approved())
	model.RejectedAt, model.RejectedBy = stampColumns(c.Rejected())
	model.CompletedAt, model.CompletedBy = stampColumns(c.Completed())
	model.AuthorizedAt, model.AuthorizedBy = stampColumns(c.Authorized())
	model.PaidAt, model.PaidBy = stampColumns(c.Paid())

	if notes := c.AllNotes(); len(notes) > 0 {
		model.Notes = make(datatypes.JSONMap, len(notes))
		for t, text := range notes {
			model.Notes[t.String()] = text
		}
	}
	if meta := c.Metadata(); len(meta) > 0 {
		model.Metadata = datatypes.JSONMap(meta)
	}

	return model
}

func (m *ClaimMapperImpl) ToDomain(model *models.ClaimModel) (*claim.Claim, error) {
	if model == nil {
		return nil, nil
	}

	currency := model.Currency
	if currency == "" {
		currency = sharedvo.DefaultCurrency
	}

	notes := make(map[vo.Transition]string, len(model.Notes))
	for k, v := range model.Notes {
		t, err := vo.ParseTransition(k)
		if err != nil {
			return nil, fmt.Errorf("claim %s: %w", model.ID, err)
		}
		text, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("claim %s: note for %s is not text", model.ID, k)
		}
		notes[t] = text
	}

	return claim.ReconstructClaim(claim.ReconstructParams{
		ID:        model.ID,
		Number:    model.ClaimNumber,
		IMEI:      vo.IMEI(model.IMEI),
		ProductID: model.ProductID,
		Customer: claim.Customer{
			Name:  model.CustomerName,
			Phone: model.CustomerPhone,
			Email: model.CustomerEmail,
		},
		ServiceCenterID:      model.ServiceCenterID,
		RepairCost:           sharedvo.NewMoney(model.RepairCost, currency),
		PaidAmount:           sharedvo.NewMoney(model.PaidAmount, currency),
		PaymentStatus:        vo.PaymentStatus(model.PaymentStatus),
		Status:               vo.ClaimStatus(model.Status),
		AuthorizedForPayment: model.AuthorizedForPayment,
		Approved:             toStamp(model.ApprovedAt, model.ApprovedBy),
		Rejected:             toStamp(model.RejectedAt, model.RejectedBy),
		Completed:            toStamp(model.CompletedAt, model.CompletedBy),
		Authorized:           toStamp(model.AuthorizedAt, model.AuthorizedBy),
		Paid:                 toStamp(model.PaidAt, model.PaidBy),
		RejectionReason:      model.RejectionReason,
		TransactionReference: model.TransactionReference,
		Notes:                notes,
		Metadata:             map[string]any(model.Metadata),
		Version:              model.Version,
		CreatedAt:            model.CreatedAt.UTC(),
		UpdatedAt:            model.UpdatedAt.UTC(),
	})
}

func (m *ClaimMapperImpl) ToDomainList(list []*models.ClaimModel) ([]*claim.Claim, error) {
	out := make([]*claim.Claim, 0, len(list))
	for _, model := range list {
		c, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *ClaimMapperImpl) AuditToModel(e claim.AuditEntry) *models.ClaimAuditModel {
	return &models.ClaimAuditModel{
		ID:          e.ID,
		ClaimID:     e.ClaimID,
		ClaimNumber: e.ClaimNumber,
		Transition:  e.Transition.String(),
		FromStage:   e.FromStatus.String(),
		ToStage:     e.ToStatus.String(),
		ActorID:     e.ActorID,
		Role:        e.Role,
		Notes:       e.Notes,
		Detail:      e.Detail,
		At:          e.At,
	}
}

func (m *ClaimMapperImpl) AuditToDomain(model *models.ClaimAuditModel) claim.AuditEntry {
	return claim.AuditEntry{
		ID:          model.ID,
		ClaimID:     model.ClaimID,
		ClaimNumber: model.ClaimNumber,
		Transition:  vo.Transition(model.Transition),
		FromStatus:  vo.Stage(model.FromStage),
		ToStatus:    vo.Stage(model.ToStage),
		ActorID:     model.ActorID,
		Role:        model.Role,
		Notes:       model.Notes,
		Detail:      model.Detail,
		At:          model.At.UTC(),
	}
}

func stampColumns(s *claim.Stamp) (*time.Time, string) {
	if s == nil {
		return nil, ""
	}
	at := s.At
	return &at, s.By
}

func toStamp(at *time.Time, by string) *claim.Stamp {
	if at == nil {
		return nil
	}
	return &claim.Stamp{At: at.UTC(), By: by}
}
