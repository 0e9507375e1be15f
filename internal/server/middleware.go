package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/sharelink"
)

// shareLinkIngest imports the game carried by a share link (?state=...) on
// page loads, then redirects to the same URL without the token so a reload
// does not import it again. The mode parameter is kept for the page.
func shareLinkIngest(logger *slog.Logger, store *gamestate.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}
			q := r.URL.Query()
			token := q.Get(sharelink.StateParam)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			data, err := sharelink.Decode(token)
			if err == nil {
				err = store.Import(data)
			}
			if err != nil {
				logger.Warn("ignoring share link", "error", err)
			} else {
				logger.Info("imported game from share link",
					"mode", sharelink.ParseMode(q.Get(sharelink.ModeParam)))
			}

			q.Del(sharelink.StateParam)
			u := *r.URL
			u.RawQuery = q.Encode()
			http.Redirect(w, r, u.RequestURI(), http.StatusSeeOther)
		})
	}
}
