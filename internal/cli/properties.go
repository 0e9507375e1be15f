package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

func (a *app) propertyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage owned properties and mortgages",
	}

	var (
		value string
		color string
	)
	add := &cobra.Command{
		Use:   "add PLAYER TEMPLATE|NAME",
		Short: "Give a player a property from the catalog or a custom one",
		Long: "Give a player a property. A catalog id (see `moneybags catalog`) fills in\n" +
			"name, price and colour; anything else is a custom name and needs --value.",
		Args: cobra.ExactArgs(2),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			p, err := a.resolvePlayer(args[0])
			if err != nil {
				return err
			}

			params, ok := gamestate.TemplateParams(p.ID, args[1])
			if !ok {
				if value == "" {
					return fmt.Errorf("%q is not in the catalog; pass --value for a custom property", args[1])
				}
				params = gamestate.PropertyParams{PlayerID: p.ID, Name: args[1]}
			}
			if value != "" {
				if params.Value, err = parseAmount(value); err != nil {
					return err
				}
			}
			if color != "" {
				params.ColorHex = color
			}

			prop, err := a.store.AddProperty(params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now owns %s (%s) worth %s\n", p.Name, prop.Name, prop.ID, a.money(prop.Value))
			return nil
		}),
	}
	add.Flags().StringVar(&value, "value", "", "property value")
	add.Flags().StringVar(&color, "color", "", "display colour as #RRGGBB")

	rm := &cobra.Command{
		Use:   "rm PROPERTY",
		Short: "Remove a property",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			prop, err := a.resolveProperty(args[0])
			if err != nil {
				return err
			}
			if err := a.store.RemoveProperty(prop.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", prop.Name)
			return nil
		}),
	}

	mortgage := &cobra.Command{
		Use:   "mortgage PROPERTY",
		Short: "Mortgage a property, or lift the mortgage if it has one",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutating(func(cmd *cobra.Command, args []string) error {
			prop, err := a.resolveProperty(args[0])
			if err != nil {
				return err
			}
			prop, err = a.store.ToggleMortgage(prop.ID)
			if err != nil {
				return err
			}
			if prop.IsMortgaged {
				fmt.Fprintf(cmd.OutOrStdout(), "%s mortgaged\n", prop.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s unmortgaged\n", prop.Name)
			return nil
		}),
	}

	cost := &cobra.Command{
		Use:   "cost PROPERTY",
		Short: "Print what lifting the mortgage costs (value plus 10%)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prop, err := a.resolveProperty(args[0])
			if err != nil {
				return err
			}
			c, _ := a.store.UnmortgageCost(prop.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Unmortgaging %s costs %s\n", prop.Name, a.money(c))
			return nil
		},
	}

	cmd.AddCommand(add, rm, mortgage, cost)
	return cmd
}

func (a *app) catalogCommand() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the board's properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := moneybags.Catalog
			if group != "" {
				templates = moneybags.TemplatesByGroup(moneybags.ColorGroup(group))
				if templates == nil {
					return fmt.Errorf("unknown colour group %q", group)
				}
			}

			t := newTable(cmd.OutOrStdout(), "ID", "Name", "Group", "Price")
			for _, tpl := range templates {
				t.Append([]string{tpl.ID, tpl.Name, string(tpl.ColorGroup), a.money(tpl.Price)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "only list one colour group")
	return cmd
}
