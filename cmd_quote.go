package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"loan-calculator/domain"
	"loan-calculator/format"
	"loan-calculator/service"
)

var (
	quoteAmount int
	quotePeriod int
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print the interest rate and repayment for an amount and period",
	Long: `quote prints the figures for a loan without remembering the selection.
Amounts outside the allowed range are clamped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !domain.IsAvailablePeriod(quotePeriod) {
			return fmt.Errorf("period must be one of %v", domain.AvailablePeriods)
		}

		now := time.Now()
		s := domain.NewLoanState(now)
		s = service.Reduce(s, domain.UpdateAmount{Amount: quoteAmount})
		s = service.Reduce(s, domain.UpdatePeriod{Period: quotePeriod, ReferenceDate: now})

		printState(cmd, s)
		return nil
	},
}

func printState(cmd *cobra.Command, s domain.LoanState) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Amount:          %s\n", format.FormatCurrency(s.Amount))
	fmt.Fprintf(out, "Period:          %d days\n", s.Period)
	fmt.Fprintf(out, "Interest rate:   %.1f%%\n", s.InterestRate())
	fmt.Fprintf(out, "Total repayment: %s\n", format.FormatCurrencyDouble(s.TotalRepayment()))
	fmt.Fprintf(out, "Return date:     %s\n", format.FormatDate(s.ReturnDate))
}

func init() {
	quoteCmd.Flags().IntVar(&quoteAmount, "amount", domain.AmountBase, "loan amount")
	quoteCmd.Flags().IntVar(&quotePeriod, "period", domain.PeriodBase, "loan period in days (7, 14, 21 or 28)")
}
