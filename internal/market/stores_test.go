package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/storage"
)

func TestFavoritesTogglePairIsIdempotent(t *testing.T) {
	gw := storage.NewMemoryGateway()
	fav := NewFavorites(gw)
	require.NoError(t, fav.Load())

	on, err := fav.Toggle(7)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, fav.Has(7))

	off, err := fav.Toggle(7)
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, fav.Has(7))
	assert.Empty(t, fav.IDs())
}

func TestFavoritesRoundTrip(t *testing.T) {
	gw := storage.NewMemoryGateway()
	fav := NewFavorites(gw)
	require.NoError(t, fav.Load())
	_, err := fav.Toggle(3)
	require.NoError(t, err)
	_, err = fav.Toggle(11)
	require.NoError(t, err)

	again := NewFavorites(gw)
	require.NoError(t, again.Load())
	assert.Equal(t, []catalog.StoreID{3, 11}, again.IDs())
}

func TestRecipesUpsertValidation(t *testing.T) {
	r := NewRecipes(storage.NewMemoryGateway(), nil)
	require.NoError(t, r.Load())

	_, err := r.Upsert(Recipe{Name: "  ", Ingredients: []Ingredient{{Name: "두부"}}})
	assert.ErrorIs(t, err, ErrRecipeName)

	_, err = r.Upsert(Recipe{Name: "김치찌개", Ingredients: []Ingredient{{Name: "  "}}})
	assert.ErrorIs(t, err, ErrRecipeIngredients)

	assert.Empty(t, r.All(), "rejected upserts must not mutate the collection")
}

func TestRecipesUpsertPreservesPosition(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		at = at.Add(time.Second)
		return at
	}
	r := NewRecipes(storage.NewMemoryGateway(), clock)
	require.NoError(t, r.Load())

	first, err := r.Upsert(Recipe{Name: "김치찌개", Ingredients: []Ingredient{{Name: "김치 1포기", Request: "찌개용으로 썰어주세요"}}})
	require.NoError(t, err)
	_, err = r.Upsert(Recipe{Name: "된장찌개", Ingredients: []Ingredient{{Name: "두부"}}})
	require.NoError(t, err)

	updated, err := r.Upsert(Recipe{ID: first.ID, Name: "돼지김치찌개", Ingredients: []Ingredient{{Name: "김치"}, {Name: "삼겹살"}}})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "돼지김치찌개", all[0].Name, "edit must keep position")
	assert.Len(t, all[0].Ingredients, 2)
}

func TestRecipesUpsertUnknownIDReported(t *testing.T) {
	r := NewRecipes(storage.NewMemoryGateway(), nil)
	require.NoError(t, r.Load())
	_, err := r.Upsert(Recipe{ID: "recipe-404", Name: "없는 레시피", Ingredients: []Ingredient{{Name: "대파"}}})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipesDeleteAndRoundTrip(t *testing.T) {
	gw := storage.NewMemoryGateway()
	r := NewRecipes(gw, nil)
	require.NoError(t, r.Load())
	rec, err := r.Upsert(Recipe{Name: "장보기", Ingredients: []Ingredient{{Name: "대파 1개"}, {Name: "두부"}}})
	require.NoError(t, err)

	again := NewRecipes(gw, nil)
	require.NoError(t, again.Load())
	got, ok := again.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec, got)
	assert.Equal(t, "대파 1개, 두부", got.SearchInput())

	require.NoError(t, again.Delete(rec.ID))
	assert.Empty(t, again.All())
	require.NoError(t, again.Delete("recipe-gone"), "deleting a missing id is a no-op")
}

func TestRecentTrackDedupesAndFronts(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
	r := NewRecentlyViewed(storage.NewMemoryGateway(), clock)
	require.NoError(t, r.Load())

	require.NoError(t, r.Track(1))
	require.NoError(t, r.Track(2))
	require.NoError(t, r.Track(1))

	entries := r.Entries()
	require.Len(t, entries, 2, "same store must hold a single entry")
	assert.Equal(t, catalog.StoreID(1), entries[0].StoreID, "revisit moves to front")
	assert.True(t, entries[0].ViewedAt.After(entries[1].ViewedAt), "revisit refreshes timestamp")
}

func TestRecentCappedAtTwenty(t *testing.T) {
	r := NewRecentlyViewed(storage.NewMemoryGateway(), nil)
	require.NoError(t, r.Load())
	for i := 1; i <= 30; i++ {
		require.NoError(t, r.Track(catalog.StoreID(i)))
	}
	entries := r.Entries()
	require.Len(t, entries, 20)
	assert.Equal(t, catalog.StoreID(30), entries[0].StoreID)
	assert.Equal(t, catalog.StoreID(11), entries[19].StoreID)
}

func TestRecentRoundTrip(t *testing.T) {
	gw := storage.NewMemoryGateway()
	r := NewRecentlyViewed(gw, nil)
	require.NoError(t, r.Load())
	require.NoError(t, r.Track(5))

	again := NewRecentlyViewed(gw, nil)
	require.NoError(t, again.Load())
	require.Len(t, again.Entries(), 1)
	assert.Equal(t, catalog.StoreID(5), again.Entries()[0].StoreID)
	assert.True(t, again.Entries()[0].ViewedAt.Equal(r.Entries()[0].ViewedAt))
}

func TestNotificationsMarkAllRead(t *testing.T) {
	gw := storage.NewMemoryGateway()
	n := NewNotifications(gw)
	require.NoError(t, n.Load())
	n.push("첫 번째")
	n.push("두 번째")
	require.NoError(t, n.Save())
	assert.True(t, n.HasUnread())
	assert.Equal(t, "두 번째", n.All()[0].Message, "newest first")

	require.NoError(t, n.MarkAllRead())
	assert.False(t, n.HasUnread())

	again := NewNotifications(gw)
	require.NoError(t, again.Load())
	assert.False(t, again.HasUnread(), "read flags must persist")
	require.Len(t, again.All(), 2)
}

func TestCorruptCollectionResetsToEmpty(t *testing.T) {
	gw := storage.NewMemoryGateway()
	gw.Put(keyRecipes, []byte("{definitely not json"))
	gw.Put(keyNotifications, []byte(`"schema mismatch"`))

	s := NewState(gw)
	require.NoError(t, s.Load())
	assert.Empty(t, s.Recipes.All())
	assert.Empty(t, s.Notifications.All())
}
