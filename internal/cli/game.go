package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/playperu/moneybags/internal/sharelink"
)

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show every player's debt and the game totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := a.store.State()
			if len(st.Players) == 0 {
				fmt.Fprintln(out, "No players yet. Add one with `moneybags player add NAME`.")
				return nil
			}

			t := newTable(out, "", "Player", "Piece", "Debt", "Loans", "Properties", "Flags")
			for _, p := range st.Players {
				standing, _ := a.store.Standing(p.ID)

				active := 0
				for _, l := range standing.Loans {
					if l.Active() {
						active++
					}
				}
				var flags []string
				if standing.Bankrupt {
					flags = append(flags, "BANKRUPT")
				}
				if standing.OverDebtLimit {
					flags = append(flags, "OVER LIMIT")
				}
				turn := ""
				if p.IsCurrentTurn {
					turn = ">"
				}

				t.Append([]string{
					turn,
					p.Name,
					string(p.Avatar),
					a.money(standing.Debt),
					fmt.Sprint(active),
					fmt.Sprint(len(standing.Properties)),
					strings.Join(flags, ", "),
				})
			}
			t.Render()

			sum := a.store.Summary()
			fmt.Fprintf(out, "\nTotal debt %s, interest %s, %d active loans, GO passed %d times\n",
				a.money(sum.TotalDebt), a.money(sum.TotalInterest), sum.ActiveLoans, sum.TotalPassedGo)
			if sum.BankruptcyThreshold > 0 {
				fmt.Fprintf(out, "Bankrupt at %s of debt\n", a.money(sum.BankruptcyThreshold))
			}
			return nil
		},
	}
}

func (a *app) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Change house rules",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "threshold AMOUNT",
		Short: "Set the debt at which a player is bankrupt (0 disables)",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return a.store.SetBankruptcyThreshold(amount)
		}),
	})
	return cmd
}

func (a *app) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start a new game, discarding everything",
		Args:  cobra.NoArgs,
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			a.store.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Game reset")
			return nil
		}),
	}
}

func (a *app) exportCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the game as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.store.Export()
			if err != nil {
				return err
			}
			if path == "" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "file to write instead of stdout")
	return cmd
}

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE|LINK|-",
		Short: "Replace the game with an export file, a share link or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			input, err := readImport(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			data, _, err := sharelink.Parse(input)
			if err != nil {
				return err
			}
			if err := a.store.Import(data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported game with %d players\n", len(a.store.State().Players))
			return nil
		}),
	}
}

// readImport returns stdin for "-", the file's contents when arg names a
// file, and arg itself otherwise.
func readImport(stdin io.Reader, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", arg, err)
		}
		return string(data), nil
	}
	return arg, nil
}

func (a *app) shareCommand() *cobra.Command {
	var view bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that opens this game on another device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.store.Export()
			if err != nil {
				return err
			}
			mode := sharelink.ModeEdit
			if view {
				mode = sharelink.ModeView
			}
			link, err := sharelink.BuildURL(a.publicURL, data, mode)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().BoolVar(&view, "view", false, "link opens the game read-only")
	return cmd
}
