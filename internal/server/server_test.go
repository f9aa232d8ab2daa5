package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/voyagen/dramarail/internal/fetcher"
	"github.com/voyagen/dramarail/internal/models"
	"github.com/voyagen/dramarail/internal/service"
	"github.com/voyagen/dramarail/internal/store"
)

var homeOpts = service.HomeOptions{
	Lang:             "in",
	FeaturedRankID:   1,
	FeaturedLimit:    10,
	TrendingPage:     1,
	TrendingPageSize: 8,
}

// setupUpstream fakes the content API.
func setupUpstream(t *testing.T, featured, trending string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rank/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, featured)
	})
	mux.HandleFunc("/api/new/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, trending)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func rankList(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"bookId":"%d","bookName":"Drama %d","cover":"c%d.jpg","playCount":%d}`, i, i, i, (i+1)*1500)
	}
	return `{"success":true,"data":{"rankList":[` + strings.Join(items, ",") + `]}}`
}

func newTestServer(t *testing.T, upstream string, opts Options) *Server {
	t.Helper()
	client := fetcher.NewClient(upstream, "test", 5*time.Second)
	return New(client, homeOpts, zaptest.NewLogger(t), opts)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "http://unused", Options{})
	rec := get(t, s, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHome(t *testing.T) {
	up := setupUpstream(t, rankList(12), `{"success":true,"data":[{"bookId":"n1","bookName":"New","cover":"n.jpg","playCount":"2500000"}]}`)
	s := newTestServer(t, up.URL, Options{})

	rec := get(t, s, "/api/home")
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.HomeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Featured.Cards, 10)
	assert.Equal(t, "0", view.Featured.Cards[0].BookID)
	assert.Equal(t, "1.5K", view.Featured.Cards[0].PlayCountLabel)
	assert.Equal(t, "/watch?bookId=0&source=homepage", view.Featured.Cards[0].WatchURL)
	assert.Equal(t, 10, view.Featured.Cards[9].Rank)

	require.Len(t, view.Trending.Cards, 1)
	assert.Equal(t, "2.5M", view.Trending.Cards[0].PlayCountLabel)
	assert.Equal(t, models.PlayCount{Raw: "2500000", Quoted: true}, view.Trending.Cards[0].PlayCount)
}

func TestHomeDegradesToEmpty(t *testing.T) {
	up := setupUpstream(t, `not json`, `{"success":false,"data":[{"bookId":"x"}]}`)
	s := newTestServer(t, up.URL, Options{})

	rec := get(t, s, "/api/home")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"featured":{"name":"featured","cards":[]},"trending":{"name":"trending","cards":[]}}`, rec.Body.String())
}

func TestHomeUpstreamDown(t *testing.T) {
	up := httptest.NewServer(http.NotFoundHandler())
	base := up.URL
	up.Close()

	s := newTestServer(t, base, Options{})
	rec := get(t, s, "/api/home")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cards":[]`)
}

func TestRail(t *testing.T) {
	up := setupUpstream(t, rankList(3), `{"success":true,"data":{"list":[{"bookId":"l"}]}}`)
	s := newTestServer(t, up.URL, Options{})

	rec := get(t, s, "/api/rails/trending")
	require.Equal(t, http.StatusOK, rec.Code)
	var rail service.RailView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rail))
	assert.Equal(t, "trending", rail.Name)
	require.Len(t, rail.Cards, 1)
	assert.Equal(t, "l", rail.Cards[0].BookID)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/rails/bogus").Code)
}

func TestWatchLink(t *testing.T) {
	s := newTestServer(t, "http://unused", Options{})
	rec := get(t, s, "/watch-link/42")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/watch?bookId=42&source=homepage", rec.Header().Get("Location"))
}

type stubPurger struct{ n int }

func (p stubPurger) Purge(context.Context) (int, error) { return p.n, nil }

func TestPurge(t *testing.T) {
	disabled := newTestServer(t, "http://unused", Options{})
	rec := httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rails/purge", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	enabled := newTestServer(t, "http://unused", Options{Purger: stubPurger{n: 3}})
	rec = httptest.NewRecorder()
	enabled.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rails/purge", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"purged":3}`, rec.Body.String())
}

type stubFetchLog struct {
	filter store.FetchFilter
	recs   []models.FetchRecord
}

func (s *stubFetchLog) RecordFetch(context.Context, models.FetchRecord) error { return nil }

func (s *stubFetchLog) ListFetches(_ context.Context, f store.FetchFilter) ([]models.FetchRecord, error) {
	s.filter = f
	return s.recs, nil
}

func TestListFetches(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, newTestServer(t, "http://unused", Options{}), "/api/fetches").Code)

	log := &stubFetchLog{}
	s := newTestServer(t, "http://unused", Options{FetchLog: log})

	rec := get(t, s, "/api/fetches?rail=featured&failed=true&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, store.FetchFilter{Rail: "featured", FailedOnly: true, Limit: 5}, log.filter)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/fetches?limit=zero").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/fetches?failed=maybe").Code)
}

func TestDocs(t *testing.T) {
	s := newTestServer(t, "http://unused", Options{})
	rec := get(t, s, "/api/docs/openapi.yaml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}
