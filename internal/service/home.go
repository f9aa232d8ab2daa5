package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyagen/dramarail/internal/fetcher"
	"github.com/voyagen/dramarail/internal/models"
	"github.com/voyagen/dramarail/internal/store"
)

// HomeOptions selects the two homepage lists.
type HomeOptions struct {
	Lang             string
	FeaturedRankID   int
	FeaturedLimit    int // featured rail keeps at most this many items
	TrendingPage     int
	TrendingPageSize int
}

// Home is one homepage view: a featured and a trending rail filled by two
// independent fetch tasks. A failed fetch leaves its rail as it was.
//
// The view owns a cancellation context. Close cancels in-flight fetches and
// any result that resolves after Close is dropped instead of applied.
type Home struct {
	feed     fetcher.Lister
	opts     HomeOptions
	log      *zap.Logger
	fetchLog store.FetchLog // optional

	Featured *Rail
	Trending *Rail

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHome creates an unmounted view. fetchLog may be nil.
func NewHome(feed fetcher.Lister, opts HomeOptions, log *zap.Logger, fetchLog store.FetchLog) *Home {
	if log == nil {
		log = zap.NewNop()
	}
	return &Home{
		feed:     feed,
		opts:     opts,
		log:      log,
		fetchLog: fetchLog,
		Featured: NewRail(models.RailFeatured),
		Trending: NewRail(models.RailTrending),
	}
}

// Mount starts the fetches for the named rails (both when none are named)
// and returns immediately. The fetches are tied to parent and to the view;
// mounting an already mounted view cancels the previous fetches and refetches.
func (h *Home) Mount(parent context.Context, rails ...string) {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	h.cancel = cancel
	h.mu.Unlock()

	if wants(rails, models.RailFeatured) {
		req := fetcher.FeaturedRequest(h.opts.FeaturedRankID, h.opts.Lang)
		h.wg.Add(1)
		go h.load(ctx, h.Featured, req, h.opts.FeaturedLimit)
	}
	if wants(rails, models.RailTrending) {
		req := fetcher.TrendingRequest(h.opts.TrendingPage, h.opts.TrendingPageSize, h.opts.Lang)
		h.wg.Add(1)
		go h.load(ctx, h.Trending, req, 0)
	}
}

func wants(rails []string, name string) bool {
	return len(rails) == 0 || slices.Contains(rails, name)
}

// Wait blocks until every started fetch has finished.
func (h *Home) Wait() {
	h.wg.Wait()
}

// Close unmounts the view. Results arriving afterwards are discarded.
func (h *Home) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
}

// load fetches one list and applies it to rail. limit <= 0 means no truncation.
func (h *Home) load(ctx context.Context, rail *Rail, req fetcher.Request, limit int) {
	defer h.wg.Done()

	start := time.Now()
	res, err := h.feed.FetchList(ctx, req)
	elapsed := time.Since(start)

	items := res.Items
	if err == nil && limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	// h.mu orders this against Close: once Close returns nothing is applied.
	applied := false
	h.mu.Lock()
	switch {
	case err != nil:
		if ctx.Err() == nil {
			rail.Fail(err)
		}
	case ctx.Err() == nil:
		rail.Apply(items)
		applied = true
	}
	h.mu.Unlock()

	if res.Skipped > 0 {
		h.log.Warn("rail items skipped",
			zap.String("rail", rail.Name()),
			zap.String("path", req.Path),
			zap.Int("skipped", res.Skipped))
	}
	if err != nil {
		h.log.Warn("rail fetch failed",
			zap.String("rail", rail.Name()),
			zap.String("path", req.Path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	}

	if applied {
		h.log.Debug("rail applied",
			zap.String("rail", rail.Name()),
			zap.String("shape", res.Shape.String()),
			zap.Int("items", len(items)),
			zap.Duration("elapsed", elapsed))
	} else if err == nil {
		h.log.Debug("rail result dropped after unmount", zap.String("rail", rail.Name()))
	}

	h.record(rail.Name(), req, res.Shape, len(items), applied, elapsed, err)
}

func (h *Home) record(rail string, req fetcher.Request, shape fetcher.Shape, n int, applied bool, elapsed time.Duration, fetchErr error) {
	if h.fetchLog == nil {
		return
	}
	rec := models.FetchRecord{
		ID:         uuid.NewString(),
		Rail:       rail,
		Path:       req.Path,
		Query:      req.Query(),
		ItemCount:  n,
		Applied:    applied,
		DurationMs: elapsed.Milliseconds(),
		FetchedAt:  time.Now().UTC(),
	}
	if fetchErr != nil {
		rec.Error = fetchErr.Error()
		rec.ItemCount = 0
	} else {
		rec.Shape = shape.String()
	}
	// The view context may already be cancelled; the record should still land.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.fetchLog.RecordFetch(ctx, rec); err != nil {
		h.log.Warn("record fetch", zap.String("rail", rail), zap.Error(err))
	}
}
