package market

import (
	"errors"

	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/storage"
)

// Favorites is the set of stores the shopper marked. Order is irrelevant;
// the slice keeps toggle order only because that is how it serializes.
type Favorites struct {
	gw  storage.Gateway
	ids []catalog.StoreID
}

// NewFavorites builds the store around a gateway.
func NewFavorites(gw storage.Gateway) *Favorites {
	return &Favorites{gw: gw}
}

// Load reads the persisted set. Corrupt data resets to empty.
func (f *Favorites) Load() error {
	f.ids = nil
	if _, err := f.gw.Get(keyFavorites, &f.ids); err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			f.ids = nil
			return nil
		}
		return err
	}
	return nil
}

// Save writes the full set back.
func (f *Favorites) Save() error {
	return f.gw.Set(keyFavorites, f.ids)
}

// Has reports membership.
func (f *Favorites) Has(id catalog.StoreID) bool {
	for _, v := range f.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle flips membership and persists. It reports the new state.
func (f *Favorites) Toggle(id catalog.StoreID) (bool, error) {
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return false, f.Save()
		}
	}
	f.ids = append(f.ids, id)
	return true, f.Save()
}

// IDs returns a copy of the favorite store ids.
func (f *Favorites) IDs() []catalog.StoreID {
	out := make([]catalog.StoreID, len(f.ids))
	copy(out, f.ids)
	return out
}
