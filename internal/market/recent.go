package market

import (
	"errors"
	"time"

	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/storage"
)

// recentLimit caps the recently-viewed history.
const recentLimit = 20

// RecentEntry records one store visit.
type RecentEntry struct {
	StoreID  catalog.StoreID `json:"storeId"`
	ViewedAt time.Time       `json:"viewedAt"`
}

// RecentlyViewed keeps the visit history, most recent first, at most one
// entry per store.
type RecentlyViewed struct {
	gw      storage.Gateway
	now     func() time.Time
	entries []RecentEntry
}

// NewRecentlyViewed builds the store around a gateway.
func NewRecentlyViewed(gw storage.Gateway, now func() time.Time) *RecentlyViewed {
	if now == nil {
		now = time.Now
	}
	return &RecentlyViewed{gw: gw, now: now}
}

// Load reads the persisted history. Corrupt data resets to empty.
func (r *RecentlyViewed) Load() error {
	r.entries = nil
	if _, err := r.gw.Get(keyRecent, &r.entries); err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			r.entries = nil
			return nil
		}
		return err
	}
	return nil
}

// Save writes the full history back.
func (r *RecentlyViewed) Save() error {
	return r.gw.Set(keyRecent, r.entries)
}

// Track moves the store to the front with a fresh timestamp, dropping any
// older entry for the same store and truncating to the newest entries.
// Persists before returning.
func (r *RecentlyViewed) Track(id catalog.StoreID) error {
	kept := make([]RecentEntry, 0, len(r.entries)+1)
	kept = append(kept, RecentEntry{StoreID: id, ViewedAt: r.now()})
	for _, e := range r.entries {
		if e.StoreID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) > recentLimit {
		kept = kept[:recentLimit]
	}
	r.entries = kept
	return r.Save()
}

// Entries returns a copy of the history, most recent first.
func (r *RecentlyViewed) Entries() []RecentEntry {
	out := make([]RecentEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
