package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/playperu/moneybags/internal/moneybags"
)

func (a *app) playerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
	}

	var avatar string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.store.AddPlayer(args[0], moneybags.Piece(avatar))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) playing the %s\n", p.Name, p.ID, p.Avatar)
			return nil
		}),
	}
	add.Flags().StringVar(&avatar, "avatar", "", "game piece (car, dog, hat, ship, thimble, boot, wheelbarrow, cat)")

	rm := &cobra.Command{
		Use:   "rm PLAYER",
		Short: "Remove a player with their loans and properties",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			if err := a.store.RemovePlayer(p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Name)
			return nil
		}),
	}

	notes := &cobra.Command{
		Use:   "notes PLAYER TEXT...",
		Short: "Replace a player's notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			return a.store.UpdatePlayerNotes(p.ID, strings.Join(args[1:], " "))
		}),
	}

	limit := &cobra.Command{
		Use:   "limit PLAYER AMOUNT",
		Short: "Set a player's debt limit (0 for none)",
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
			return a.store.UpdatePlayerDebtLimit(p.ID, amount)
		}),
	}

	piece := &cobra.Command{
		Use:   "avatar PLAYER PIECE",
		Short: "Change a player's game piece",
		Args:  cobra.ExactArgs(2),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			return a.store.UpdatePlayerAvatar(p.ID, moneybags.Piece(args[1]))
		}),
	}

	show := &cobra.Command{
		Use:   "show PLAYER",
		Short: "Show a player's loans, properties and standing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			st, _ := a.store.Standing(p.ID)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s (%s) debt %s\n", p.Name, p.Avatar, a.money(st.Debt))
			if p.DebtLimit > 0 {
				fmt.Fprintf(out, "Debt limit %s\n", a.money(p.DebtLimit))
			}
			if st.Bankrupt {
				fmt.Fprintln(out, "BANKRUPT")
			}
			if st.OverDebtLimit {
				fmt.Fprintln(out, "Over debt limit")
			}
			if p.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", p.Notes)
			}

			if len(st.Loans) > 0 {
				t := newTable(out, "Loan", "Balance", "Rate", "GO", "Status")
				for _, l := range st.Loans {
					status := "active"
					if l.IsPaidOff {
						status = "paid off"
					}
					t.Append([]string{l.ID, a.money(l.CurrentAmount), fmt.Sprintf("%d%%", l.InterestRate), fmt.Sprint(l.PassedGoCount), status})
				}
				t.Render()
			}
			if len(st.Properties) > 0 {
				t := newTable(out, "Property", "Value", "Mortgaged")
				for _, prop := range st.Properties {
					t.Append([]string{prop.Name, a.money(prop.Value), yesNo(prop.IsMortgaged)})
				}
				t.Render()
			}
			return nil
		},
	}

	cmd.AddCommand(add, rm, notes, limit, piece, show)
	return cmd
}

func (a *app) turnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Show or move the current turn",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print whose turn it is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.store.CurrentPlayer()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nobody's turn")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s's turn\n", p.Name)
			return nil
		},
	}

	next := &cobra.Command{
		Use:   "next",
		Short: "Pass the turn to the next player",
		Args:  cobra.NoArgs,
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, ok := a.store.NextTurn()
			if !ok {
				return errNoPlayers
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s's turn\n", p.Name)
			return nil
		}),
	}

	set := &cobra.Command{
		Use:   "set PLAYER",
		Short: "Give the turn to a player",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}
			if err := a.store.SetCurrentTurn(p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s's turn\n", p.Name)
			return nil
		}),
	}

	cmd.AddCommand(show, next, set)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
