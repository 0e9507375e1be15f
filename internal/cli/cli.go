// Package cli drives a saved game from the terminal. Every invocation
// restores the game from the blob store, applies one action and writes the
// result back before exiting.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/playperu/moneybags/internal/autosave"
	"github.com/playperu/moneybags/internal/blobstore"
	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

type Options struct {
	Blobs blobstore.Store
	// Key is the default blob key; --key overrides it.
	Key       string
	PublicURL string
}

type app struct {
	logger    *slog.Logger
	blobs     blobstore.Store
	key       string
	publicURL string

	store   *gamestate.Store
	printer *message.Printer
}

func NewRootCommand(logger *slog.Logger, opts Options) *cobra.Command {
	a := &app{
		logger:    logger,
		blobs:     opts.Blobs,
		key:       opts.Key,
		publicURL: opts.PublicURL,
		printer:   message.NewPrinter(language.English),
	}
	if a.key == "" {
		a.key = autosave.DefaultKey
	}

	root := &cobra.Command{
		Use:           "moneybags",
		Short:         "Track house-rule loans, interest and mortgages for a board game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.store = gamestate.New()
			return autosave.Restore(cmd.Context(), a.store, a.blobs, a.key, a.logger)
		},
	}
	root.PersistentFlags().StringVar(&a.key, "key", a.key, "blob key the game is saved under")
	root.PersistentFlags().StringVar(&a.publicURL, "public-url", a.publicURL, "page address used for share links")

	root.AddCommand(
		a.playerCommand(),
		a.turnCommand(),
		a.loanCommand(),
		a.passGoCommand(),
		a.propertyCommand(),
		a.catalogCommand(),
		a.statusCommand(),
		a.settingsCommand(),
		a.resetCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.shareCommand(),
	)
	return root
}

// mutating wraps an action that changes the game so the result is saved
// before the command returns.
func (a *app) mutating(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := run(cmd, args); err != nil {
			return err
		}
		data, err := a.store.Export()
		if err != nil {
			return fmt.Errorf("encoding game: %w", err)
		}
		if err := a.blobs.Put(cmd.Context(), a.key, data); err != nil {
			return fmt.Errorf("saving game: %w", err)
		}
		a.logger.Debug("game saved", "key", a.key, "bytes", len(data))
		return nil
	}
}

// resolvePlayer accepts a player id or exact name.
func (a *app) resolvePlayer(ref string) (moneybags.Player, error) {
	p, ok := a.store.FindPlayer(ref)
	if !ok {
		return moneybags.Player{}, fmt.Errorf("player %q: %w", ref, gamestate.ErrNotFound)
	}
	return p, nil
}

// resolveProperty accepts a property id or exact name.
func (a *app) resolveProperty(ref string) (moneybags.Property, error) {
	if p, ok := a.store.Property(ref); ok {
		return p, nil
	}
	for _, p := range a.store.State().Properties {
		if p.Name == ref {
			return p, nil
		}
	}
	return moneybags.Property{}, fmt.Errorf("property %q: %w", ref, gamestate.ErrNotFound)
}

func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", s)
	}
	return d.InexactFloat64(), nil
}

func (a *app) money(v float64) string {
	return a.printer.Sprintf("$%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetBorder(false)
	t.SetAutoWrapText(false)
	return t
}

var errNoPlayers = errors.New("no players in the game")
