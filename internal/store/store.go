package store

import (
	"context"
	"errors"

	"github.com/voyagen/dramarail/internal/models"
)

// ErrDisabled is returned by handlers when no fetch log is configured.
var ErrDisabled = errors.New("fetch log disabled")

// FetchLog persists list-fetch diagnostics.
type FetchLog interface {
	// RecordFetch stores one fetch outcome.
	RecordFetch(ctx context.Context, rec models.FetchRecord) error
	// ListFetches returns the most recent records, newest first.
	ListFetches(ctx context.Context, filter FetchFilter) ([]models.FetchRecord, error)
}

// FetchFilter narrows ListFetches.
type FetchFilter struct {
	Rail       string // empty = all rails
	FailedOnly bool
	Limit      int // default 50, max 500
}

// Normalize clamps Limit into range.
func (f FetchFilter) Normalize() FetchFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = 50
	case f.Limit > 500:
		f.Limit = 500
	}
	return f
}
