package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/playperu/moneybags/internal/gamestate"
)

const wsWriteTimeout = 5 * time.Second

// handleStateStream pushes the game state over a WebSocket, once on connect
// and after every transition. Client messages are ignored.
func handleStateStream(logger *slog.Logger, store *gamestate.Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe()
		defer broker.Unsubscribe(ch)

		// CloseRead discards client frames and cancels ctx once the peer
		// goes away.
		ctx := conn.CloseRead(r.Context())

		initial, err := json.Marshal(store.State())
		if err != nil {
			conn.Close(websocket.StatusInternalError, "encoding state")
			return
		}
		if err := writeFrame(ctx, conn, initial); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket closed", "error", ctx.Err())
				return
			case data := <-ch:
				if err := writeFrame(ctx, conn, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
