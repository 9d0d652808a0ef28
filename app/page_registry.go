package app

import (
	"context"
	"log"
	"sync"
	"time"

	"titanic/domain/core"
	"titanic/internal/errors"
)

// PageRegistry keeps page sessions in memory and evicts the ones idle longer than the TTL
type PageRegistry struct {
	ttl   time.Duration
	now   func() time.Time
	pages map[core.PageID]*PageSession
	mu    sync.RWMutex
}

// NewPageRegistry creates an empty registry
func NewPageRegistry(ttl time.Duration) *PageRegistry {
	return &PageRegistry{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[core.PageID]*PageSession),
	}
}

// Create registers a new page session bound to origin
func (r *PageRegistry) Create(origin, chartTheme string) *PageSession {
	page := NewPageSession(origin, chartTheme)
	page.touch(r.now())

	r.mu.Lock()
	r.pages[page.ID] = page
	r.mu.Unlock()
	return page
}

// Get looks up a page session and marks it as seen
func (r *PageRegistry) Get(id string) (*PageSession, error) {
	pageID, err := core.ParsePageID(id)
	if err != nil {
		return nil, errors.InvalidInputf("invalid page id: %v", err)
	}

	r.mu.RLock()
	page, ok := r.pages[pageID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("page session " + pageID.String())
	}

	page.touch(r.now())
	return page, nil
}

// Len returns the number of live page sessions
func (r *PageRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

// CleanupExpired removes sessions idle longer than the TTL and returns how many were removed
func (r *PageRegistry) CleanupExpired() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, page := range r.pages {
		if page.idleSince(now) > r.ttl {
			page.ChartSlot().Release()
			delete(r.pages, id)
			removed++
		}
	}
	return removed
}

// Run evicts expired sessions every interval until ctx is done
func (r *PageRegistry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Printf("[Pages] Warning: sweep interval %v is not positive, expired sessions will not be cleaned up", interval)
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.CleanupExpired(); removed > 0 {
				log.Printf("[Pages] Cleaned up %d expired page sessions (%d live)", removed, r.Len())
			}
		}
	}
}
