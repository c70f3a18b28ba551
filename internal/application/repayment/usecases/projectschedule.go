package usecases

import (
	"context"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/claimdesk/claimdesk/internal/domain/repayment"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/biztime"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// ProjectScheduleCommand describes a projection. Exactly one of
// MonthlyAmount and Principal is set.
type ProjectScheduleCommand struct {
	StartDate        string
	TenureMonths     int
	MoratoriumMonths int
	MonthlyAmount    string
	Principal        string
	Currency         string
}

type ScheduleEntryDTO struct {
	Index     int    `json:"index"`
	DueDate   string `json:"due_date"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

type ProjectScheduleResult struct {
	StartDate        string              `json:"start_date"`
	TenureMonths     int                 `json:"tenure_months"`
	MoratoriumMonths int                 `json:"moratorium_months"`
	Currency         string              `json:"currency"`
	Entries          []*ScheduleEntryDTO `json:"entries"`
	Total            string              `json:"total"`
	TotalFormatted   string              `json:"total_formatted"`
}

type ProjectScheduleExecutor interface {
	Execute(ctx context.Context, cmd ProjectScheduleCommand) (*ProjectScheduleResult, error)
}

type ProjectScheduleUseCase struct {
	currency string
	printer  *message.Printer
	logger   logger.Interface
}

// NewProjectScheduleUseCase formats amounts for locale, a BCP 47 tag such
// as "en-NG". Unparseable tags fall back to English.
func NewProjectScheduleUseCase(currency, locale string, logger logger.Interface) *ProjectScheduleUseCase {
	if currency == "" {
		currency = sharedvo.DefaultCurrency
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &ProjectScheduleUseCase{
		currency: currency,
		printer:  message.NewPrinter(tag),
		logger:   logger,
	}
}

func (uc *ProjectScheduleUseCase) Execute(ctx context.Context, cmd ProjectScheduleCommand) (*ProjectScheduleResult, error) {
	uc.logger.Infow("executing project schedule use case",
		"start_date", cmd.StartDate,
		"tenure_months", cmd.TenureMonths,
		"moratorium_months", cmd.MoratoriumMonths,
	)

	start, err := biztime.ParseDate(cmd.StartDate)
	if err != nil {
		return nil, errors.NewValidationError("invalid start date", err.Error())
	}

	currency := cmd.Currency
	if currency == "" {
		currency = uc.currency
	}

	entries, err := uc.project(start, cmd, currency)
	if err != nil {
		uc.logger.Errorw("failed to project schedule", "error", err)
		return nil, err
	}

	total, err := repayment.Total(entries, currency)
	if err != nil {
		return nil, errors.NewInternalError("failed to total schedule")
	}

	out := &ProjectScheduleResult{
		StartDate:        biztime.FormatDate(start),
		TenureMonths:     cmd.TenureMonths,
		MoratoriumMonths: cmd.MoratoriumMonths,
		Currency:         total.Currency(),
		Entries:          make([]*ScheduleEntryDTO, 0, len(entries)),
		Total:            total.StringFixed(),
		TotalFormatted:   uc.Format(total),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, &ScheduleEntryDTO{
			Index:     e.Index,
			DueDate:   biztime.FormatDate(e.DueDate),
			Amount:    e.Amount.StringFixed(),
			Formatted: uc.Format(e.Amount),
		})
	}
	return out, nil
}

func (uc *ProjectScheduleUseCase) project(start time.Time, cmd ProjectScheduleCommand, currency string) ([]repayment.Entry, error) {
	switch {
	case cmd.MonthlyAmount != "" && cmd.Principal != "":
		return nil, errors.NewValidationError("set either monthly amount or principal, not both")
	case cmd.MonthlyAmount != "":
		monthly, err := sharedvo.ParseMoney(cmd.MonthlyAmount, currency)
		if err != nil {
			return nil, errors.NewValidationError("invalid monthly amount", err.Error())
		}
		entries, err := repayment.Project(start, cmd.TenureMonths, cmd.MoratoriumMonths, monthly)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		return entries, nil
	case cmd.Principal != "":
		principal, err := sharedvo.ParseMoney(cmd.Principal, currency)
		if err != nil {
			return nil, errors.NewValidationError("invalid principal", err.Error())
		}
		entries, err := repayment.ProjectFromPrincipal(start, cmd.TenureMonths, cmd.MoratoriumMonths, principal)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		return entries, nil
	default:
		return nil, errors.NewValidationError("monthly amount or principal is required")
	}
}

// Format renders m with locale grouping, e.g. "NGN 10,000.00".
func (uc *ProjectScheduleUseCase) Format(m sharedvo.Money) string {
	return uc.printer.Sprintf("%s %v", m.Currency(), number.Decimal(m.Amount().InexactFloat64(), number.Scale(2)))
}
