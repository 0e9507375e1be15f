package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

func (a *app) loanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Take, repay and inspect loans",
	}

	var (
		rate       int
		collateral string
	)
	take := &cobra.Command{
		Use:   "take PLAYER AMOUNT",
		Short: "Borrow from the bank",
		Args:  cobra.ExactArgs(2),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			params := gamestate.LoanParams{
				PlayerID:     p.ID,
				Amount:       amount,
				InterestRate: moneybags.InterestRate(rate),
			}
			if collateral != "" {
				prop, err := a.resolveProperty(collateral)
				if err != nil {
					return err
				}
				params.CollateralPropertyID = prop.ID
			}

			loan, err := a.store.CreateLoan(params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan %s: %s borrowed %s at %d%%\n",
				loan.ID, p.Name, a.money(loan.InitialAmount), loan.InterestRate)
			return nil
		}),
	}
	take.Flags().IntVar(&rate, "rate", int(moneybags.DefaultInterestRate), "interest per pass of GO (5, 10 or 15)")
	take.Flags().StringVar(&collateral, "collateral", "", "property id or name pledged against the loan")

	pay := &cobra.Command{
		Use:   "pay LOAN AMOUNT",
		Short: "Repay part or all of a loan",
		Args:  cobra.ExactArgs(2),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			loan, err := a.store.PayOffLoan(args[0], amount)
			if err != nil {
				return err
			}
			if loan.IsPaidOff {
				fmt.Fprintf(cmd.OutOrStdout(), "Loan %s paid off\n", loan.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan %s balance %s\n", loan.ID, a.money(loan.CurrentAmount))
			return nil
		}),
	}

	var newest bool
	history := &cobra.Command{
		Use:   "history LOAN",
		Short: "List a loan's events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events := a.store.LoanEvents(args[0])
			if len(events) == 0 {
				return fmt.Errorf("loan %q: %w", args[0], gamestate.ErrNotFound)
			}
			if newest {
				events = moneybags.NewestFirst(events)
			}

			t := newTable(cmd.OutOrStdout(), "When", "Type", "Amount", "Description")
			for _, e := range events {
				t.Append([]string{
					e.Timestamp.Local().Format("2006-01-02 15:04"),
					string(e.Type),
					a.money(e.Amount),
					e.Description,
				})
			}
			t.Render()
			return nil
		},
	}
	history.Flags().BoolVar(&newest, "newest", false, "newest event first")

	cmd.AddCommand(take, pay, history)
	return cmd
}

func (a *app) passGoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pass-go PLAYER",
		Short: "Record a pass of GO, charging interest on the player's active loans",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			events, err := a.store.PassGo(p.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintf(out, "%s passed GO with no loans\n", p.Name)
				return nil
			}
			for _, e := range events {
				loan, _ := a.store.Loan(e.LoanID)
				fmt.Fprintf(out, "Loan %s +%s interest, now %s\n", e.LoanID, a.money(e.Amount), a.money(loan.CurrentAmount))
			}
			return nil
		}),
	}
}
