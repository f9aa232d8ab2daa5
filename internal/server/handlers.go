package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/voyagen/dramarail/internal/models"
	"github.com/voyagen/dramarail/internal/service"
	"github.com/voyagen/dramarail/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mountHome loads the named rails (all when none given) for the lifetime
// of r and waits for them. Rails that failed come back empty.
func (s *Server) mountHome(r *http.Request, rails ...string) service.HomeView {
	h := service.NewHome(s.feed, s.home, s.log, s.fetchLog)
	defer h.Close()
	h.Mount(r.Context(), rails...)
	h.Wait()
	return h.View()
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mountHome(r))
}

func (s *Server) handleRail(w http.ResponseWriter, r *http.Request) {
	switch name := chi.URLParam(r, "rail"); name {
	case models.RailFeatured:
		writeJSON(w, http.StatusOK, s.mountHome(r, name).Featured)
	case models.RailTrending:
		writeJSON(w, http.StatusOK, s.mountHome(r, name).Trending)
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("unknown rail %q", name))
	}
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	if s.purger == nil {
		writeErr(w, http.StatusNotFound, errors.New("rail cache disabled"))
		return
	}
	n, err := s.purger.Purge(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("purge: %w", err))
		return
	}
	s.log.Info("rail cache purged", zap.Int("keys", n))
	writeJSON(w, http.StatusOK, map[string]int{"purged": n})
}

func (s *Server) handleListFetches(w http.ResponseWriter, r *http.Request) {
	if s.fetchLog == nil {
		writeErr(w, http.StatusNotFound, store.ErrDisabled)
		return
	}
	q := r.URL.Query()
	filter := store.FetchFilter{Rail: q.Get("rail")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid limit: %s", v))
			return
		}
		filter.Limit = n
	}
	if v := q.Get("failed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid failed: %s", v))
			return
		}
		filter.FailedOnly = b
	}

	recs, err := s.fetchLog.ListFetches(r.Context(), filter)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if recs == nil {
		recs = []models.FetchRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleWatchLink(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")
	source := r.URL.Query().Get("source")
	if source == "" {
		source = models.SourceHomepage
	}
	http.Redirect(w, r, service.WatchURL(bookID, source), http.StatusFound)
}
