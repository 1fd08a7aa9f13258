package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"loan-calculator/domain"
)

var (
	submitAmount  int
	submitPeriod  int
	submitTimeout time.Duration
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a loan application",
	Long: `submit restores the remembered selection, applies --amount and --period
when given, sends the application and waits for the answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("period") && !domain.IsAvailablePeriod(submitPeriod) {
			return fmt.Errorf("period must be one of %v", domain.AvailablePeriods)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), submitTimeout)
		defer cancel()

		store, cleanup, err := newStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		if cmd.Flags().Changed("amount") {
			store.Dispatch(ctx, domain.UpdateAmount{Amount: submitAmount})
		}
		if cmd.Flags().Changed("period") {
			store.Dispatch(ctx, domain.UpdatePeriod{Period: submitPeriod})
		}

		states, unsubscribe := store.Subscribe()
		defer unsubscribe()

		printState(cmd, store.State())
		store.Dispatch(ctx, domain.Submit{Status: domain.Loading()})

		for {
			select {
			case s, ok := <-states:
				if !ok {
					return errors.New("store closed before the submission finished")
				}
				switch s.SubmitStatus.Kind {
				case domain.StatusSuccess:
					fmt.Fprintln(cmd.OutOrStdout(), "Application submitted.")
					return nil
				case domain.StatusError:
					return fmt.Errorf("submission failed: %s", s.SubmitStatus.Message)
				}
			case <-ctx.Done():
				return fmt.Errorf("submission did not finish: %w", ctx.Err())
			}
		}
	},
}

func init() {
	submitCmd.Flags().IntVar(&submitAmount, "amount", domain.AmountBase, "loan amount")
	submitCmd.Flags().IntVar(&submitPeriod, "period", domain.PeriodBase, "loan period in days (7, 14, 21 or 28)")
	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", 30*time.Second, "how long to wait for the answer")
}
