// Package autosave mirrors the game aggregate into a blob store: it
// restores the saved game at startup and writes a fresh copy after every
// transition without blocking the store.
package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playperu/moneybags/internal/blobstore"
	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/moneybags"
)

// DefaultKey is the blob key the game is saved under.
const DefaultKey = "monopoly-loan-tracker"

const flushTimeout = 5 * time.Second

// Restore loads the blob under key into store. A missing or malformed blob
// leaves the store in its initial state; only storage failures are
// returned.
func Restore(ctx context.Context, store *gamestate.Store, blobs blobstore.Store, key string, logger *slog.Logger) error {
	data, err := blobs.Get(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) {
		logger.Info("no saved game, starting fresh", "key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading saved game: %w", err)
	}

	if err := store.Load(data); err != nil {
		logger.Warn("ignoring unreadable saved game", "key", key, "error", err)
		return nil
	}
	logger.Info("restored saved game", "key", key, "players", len(store.State().Players))
	return nil
}

// Saver persists snapshots handed to Notify from a single goroutine. Only
// the most recent unsaved snapshot is kept.
type Saver struct {
	blobs   blobstore.Store
	key     string
	logger  *slog.Logger
	pending chan []byte
}

func NewSaver(blobs blobstore.Store, key string, logger *slog.Logger) *Saver {
	return &Saver{
		blobs:   blobs,
		key:     key,
		logger:  logger,
		pending: make(chan []byte, 1),
	}
}

// Notify is a gamestate.Listener. It never blocks.
func (s *Saver) Notify(st moneybags.GameState) {
	data, err := json.Marshal(st)
	if err != nil {
		s.logger.Error("encoding game for autosave", "error", err)
		return
	}

	for {
		select {
		case s.pending <- data:
			return
		default:
		}
		// Replace the stale snapshot.
		select {
		case <-s.pending:
		default:
		}
	}
}

// Run writes pending snapshots until ctx is done, then flushes whatever is
// still queued.
func (s *Saver) Run(ctx context.Context) error {
	for {
		select {
		case data := <-s.pending:
			s.save(ctx, data)
		case <-ctx.Done():
			select {
			case data := <-s.pending:
				flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
				s.save(flushCtx, data)
				cancel()
			default:
			}
			return nil
		}
	}
}

func (s *Saver) save(ctx context.Context, data []byte) {
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		s.logger.Error("autosave failed", "key", s.key, "error", err)
		return
	}
	s.logger.Debug("game saved", "key", s.key, "bytes", len(data))
}
