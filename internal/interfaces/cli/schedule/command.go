package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claimdesk/claimdesk/internal/application/repayment/usecases"
	"github.com/claimdesk/claimdesk/internal/infrastructure/config"
	"github.com/claimdesk/claimdesk/internal/shared/biztime"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

type options struct {
	env        string
	configPath string
	start      string
	tenure     int
	moratorium int
	amount     string
	principal  string
	currency   string
	locale     string
	asJSON     bool
}

func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Project a repayment schedule",
		Long: `Print the due dates and amounts of a repayment schedule. Pass --amount for a flat
monthly instalment or --principal to split a principal evenly across the tenure.`,
		Example: `  claimdesk schedule --start 2024-01-31 --tenure 3 --amount 10000
  claimdesk schedule --start 2024-01-15 --tenure 12 --moratorium 2 --principal 250000 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&opts.start, "start", "", "Start date, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&opts.tenure, "tenure", 0, "Number of monthly instalments")
	cmd.Flags().IntVar(&opts.moratorium, "moratorium", 0, "Months before the first instalment")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "Flat monthly amount")
	cmd.Flags().StringVar(&opts.principal, "principal", "", "Principal split across the tenure")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "ISO currency code (default: claims.currency)")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Amount formatting locale (default: biz.locale)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the projection as JSON")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("amount", "principal")
	cmd.MarkFlagsOneRequired("amount", "principal")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.env, opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := biztime.Init(cfg.Biz.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	currency := opts.currency
	if currency == "" {
		currency = cfg.Claims.Currency
	}
	locale := opts.locale
	if locale == "" {
		locale = cfg.Biz.Locale
	}

	uc := usecases.NewProjectScheduleUseCase(currency, locale, logger.NewNopLogger())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := uc.Execute(ctx, usecases.ProjectScheduleCommand{
		StartDate:        opts.start,
		TenureMonths:     opts.tenure,
		MoratoriumMonths: opts.moratorium,
		MonthlyAmount:    opts.amount,
		Principal:        opts.principal,
		Currency:         currency,
	})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printSchedule(cmd.OutOrStdout(), result)
}

func printSchedule(w io.Writer, r *usecases.ProjectScheduleResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDUE DATE\tAMOUNT\t")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", e.Index, e.DueDate, e.Formatted)
	}
	fmt.Fprintf(tw, "\tTOTAL\t%s\t\n", r.TotalFormatted)
	return tw.Flush()
}
