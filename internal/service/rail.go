package service

import (
	"sync"
	"time"

	"github.com/voyagen/dramarail/internal/models"
)

// Rail is one display slot. Each rail is written by exactly one fetch task.
type Rail struct {
	name string

	mu        sync.RWMutex
	items     []models.ContentItem
	updatedAt time.Time
	lastErr   error
}

// NewRail returns an empty rail.
func NewRail(name string) *Rail {
	return &Rail{name: name, items: []models.ContentItem{}}
}

// Name returns the rail name.
func (r *Rail) Name() string { return r.name }

// Apply replaces the rail contents.
func (r *Rail) Apply(items []models.ContentItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	r.updatedAt = time.Now()
	r.lastErr = nil
}

// Fail records a fetch failure. The current items stay as they are.
func (r *Rail) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
}

// Items returns a copy of the current contents.
func (r *Rail) Items() []models.ContentItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ContentItem, len(r.items))
	copy(out, r.items)
	return out
}

// Err returns the last fetch failure, or nil if the last fetch was applied.
func (r *Rail) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// UpdatedAt returns when the rail was last applied; zero if never.
func (r *Rail) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}
