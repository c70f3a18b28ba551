package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

type ListClaimsQuery struct {
	Status               string
	PaymentStatus        string
	AuthorizedForPayment *bool
	ServiceCenterID      string
	Search               string
	Page                 int
	PageSize             int
	SortBy               string
	SortOrder            string
}

type ListClaimsResult struct {
	Claims   []*dto.ClaimDTO
	Total    int64
	Page     int
	PageSize int
}

type ListClaimsUseCase struct {
	claimRepo claim.Repository
	logger    logger.Interface
}

func NewListClaimsUseCase(claimRepo claim.Repository, logger logger.Interface) *ListClaimsUseCase {
	return &ListClaimsUseCase{
		claimRepo: claimRepo,
		logger:    logger,
	}
}

func (uc *ListClaimsUseCase) Execute(ctx context.Context, query ListClaimsQuery) (*ListClaimsResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	claims, total, err := uc.claimRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list claims", "error", err)
		return nil, errors.NewInternalError("failed to list claims")
	}

	return &ListClaimsResult{
		Claims:   dto.ToClaimDTOs(claims, nil),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListClaimsUseCase) buildFilter(query ListClaimsQuery) (claim.ListFilter, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter := claim.ListFilter{
		AuthorizedForPayment: query.AuthorizedForPayment,
		Search:               query.Search,
		Page:                 p.Page,
		PageSize:             p.PageSize,
		SortBy:               query.SortBy,
		SortOrder:            query.SortOrder,
	}

	if query.Status != "" {
		s, err := vo.NewClaimStatus(query.Status)
		if err != nil {
			return filter, errors.NewValidationError("invalid status filter", query.Status)
		}
		filter.Status = &s
	}
	if query.PaymentStatus != "" {
		s, err := vo.NewPaymentStatus(query.PaymentStatus)
		if err != nil {
			return filter, errors.NewValidationError("invalid payment status filter", query.PaymentStatus)
		}
		filter.PaymentStatus = &s
	}
	if query.ServiceCenterID != "" {
		id := query.ServiceCenterID
		filter.ServiceCenterID = &id
	}
	return filter, nil
}
