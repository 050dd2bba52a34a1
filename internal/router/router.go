// internal/router/router.go
//
// The screen router is a finite-state controller: exactly one screen is
// active at a time, and entering a screen prepares the read-only snapshot
// its renderer needs. The renderer draws; it is never asked for decisions.

package router

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/journal"
	"github.com/cheongnyamri/market/internal/market"
	"github.com/cheongnyamri/market/internal/storage"
)

// Screen identifies one of the closed set of app screens.
type Screen string

const (
	ScreenHome          Screen = "home"
	ScreenSearch        Screen = "search"
	ScreenCategoryList  Screen = "categoryList"
	ScreenStoreDetail   Screen = "storeDetail"
	ScreenFavorites     Screen = "favorites"
	ScreenRecentStores  Screen = "recentStores"
	ScreenSmartShopping Screen = "smartShopping"
	ScreenRecipeEditor  Screen = "recipeEditor"
	ScreenPickup        Screen = "pickup"
	ScreenMyOrders      Screen = "myOrders"
	ScreenMap           Screen = "map"
)

var allScreens = map[Screen]struct{}{
	ScreenHome: {}, ScreenSearch: {}, ScreenCategoryList: {},
	ScreenStoreDetail: {}, ScreenFavorites: {}, ScreenRecentStores: {},
	ScreenSmartShopping: {}, ScreenRecipeEditor: {}, ScreenPickup: {},
	ScreenMyOrders: {}, ScreenMap: {},
}

// Known reports whether s is part of the screen set.
func (s Screen) Known() bool {
	_, ok := allScreens[s]
	return ok
}

// SortMode orders the category list.
type SortMode string

const (
	SortDefault SortMode = "default"
	SortOrders  SortMode = "orders"
	SortRating  SortMode = "rating"
)

// StoreDetailParam carries the navigation context into the detail screen so
// its back button can return where the shopper came from.
type StoreDetailParam struct {
	StoreID  catalog.StoreID
	From     Screen
	Category string
}

var (
	// ErrUnknownScreen rejects navigation outside the closed screen set.
	ErrUnknownScreen = errors.New("router: unknown screen")
	// ErrStoreNotFound aborts a store-detail navigation for a dead id.
	ErrStoreNotFound = errors.New("router: store not found")
	// ErrNoDirections reports a store without an outbound URL.
	ErrNoDirections = errors.New("router: store has no directions link")
)

// Router selects the active screen and feeds snapshots to the renderer.
type Router struct {
	state    *market.State
	stores   []catalog.Store
	renderer Renderer
	mapURL   *MapURLStore
	jr       *journal.Journal
	now      func() time.Time

	current      Screen
	lastParam    any
	categorySort SortMode
}

// Option customizes Router construction.
type Option func(*Router)

// WithJournal attaches the session journal.
func WithJournal(jr *journal.Journal) Option {
	return func(r *Router) { r.jr = jr }
}

// WithClock overrides the clock used for relative date labels.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMapURLs configures the map default and the session override.
func WithMapURLs(defaultURL, override string) Option {
	return func(r *Router) {
		r.mapURL.defaultURL = defaultURL
		r.mapURL.override = override
	}
}

// New wires the router to the loaded state, the catalog, and a renderer.
func New(state *market.State, stores []catalog.Store, gw storage.Gateway, renderer Renderer, opts ...Option) *Router {
	r := &Router{
		state:        state,
		stores:       stores,
		renderer:     renderer,
		mapURL:       NewMapURLStore(gw, DefaultMapURL, ""),
		now:          time.Now,
		categorySort: SortDefault,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start enters the home screen. Call once after the state has loaded.
func (r *Router) Start() error {
	return r.Navigate(ScreenHome, nil)
}

// Current returns the active screen.
func (r *Router) Current() Screen {
	return r.current
}

// Navigate deactivates the previous screen, prepares the requested screen's
// snapshot, and hands it to the renderer. The previous screen stays active
// when preparation aborts.
func (r *Router) Navigate(screen Screen, param any) error {
	return r.activate(screen, param, true)
}

// activate prepares a screen. entering distinguishes a real navigation from
// a Refresh of the already-active screen; only the former counts as a store
// visit.
func (r *Router) activate(screen Screen, param any, entering bool) error {
	if !screen.Known() {
		r.jr.Warn("화면 전환 실패: 알 수 없는 화면 %q", screen)
		return fmt.Errorf("%w: %q", ErrUnknownScreen, screen)
	}

	switch screen {
	case ScreenHome:
		r.renderer.RenderHome(HomeSnapshot{Categories: catalog.Categories()})
	case ScreenSearch:
		r.renderer.RenderSearch(SearchSnapshot{Stores: market.SearchStores("", r.stores)})
	case ScreenCategoryList:
		key, ok := param.(string)
		if !ok || key == "" {
			// Entering the category list without a category is a no-op.
			return nil
		}
		snap, ok := r.categorySnapshot(key)
		if !ok {
			return nil
		}
		r.renderer.RenderCategoryList(snap)
	case ScreenStoreDetail:
		detail, ok := param.(StoreDetailParam)
		if !ok {
			return fmt.Errorf("%w: store detail needs a param", ErrStoreNotFound)
		}
		store, ok := catalog.Find(r.stores, detail.StoreID)
		if !ok {
			r.jr.Warn("가게 상세 진입 실패: id %d 없음", detail.StoreID)
			return fmt.Errorf("%w: id %d", ErrStoreNotFound, detail.StoreID)
		}
		// Entering the detail screen counts as a visit; a Refresh of the
		// screen already on display does not.
		if entering {
			if err := r.state.Recent.Track(store.ID); err != nil {
				return err
			}
		}
		r.renderer.RenderStoreDetail(StoreDetailSnapshot{
			Store:     store,
			From:      detail.From,
			Category:  detail.Category,
			Favorited: r.state.Favorites.Has(store.ID),
		})
	case ScreenFavorites:
		r.renderer.RenderFavorites(r.favoritesSnapshot())
	case ScreenRecentStores:
		r.renderer.RenderRecentStores(r.recentSnapshot())
	case ScreenSmartShopping:
		r.renderer.RenderSmartShopping(SmartShoppingSnapshot{Recipes: r.state.Recipes.All()})
	case ScreenRecipeEditor:
		id, _ := param.(string)
		snap := RecipeEditorSnapshot{IsNew: true}
		if id != "" {
			if rec, ok := r.state.Recipes.Get(id); ok {
				snap = RecipeEditorSnapshot{Recipe: rec, IsNew: false}
			}
		}
		r.renderer.RenderRecipeEditor(snap)
	case ScreenPickup:
		r.renderer.RenderPickup(PickupSnapshot{Orders: r.state.Orders.Newest()})
	case ScreenMyOrders:
		r.renderer.RenderMyOrders(MyOrdersSnapshot{Orders: r.state.Orders.Newest()})
	case ScreenMap:
		r.renderer.RenderMap(MapSnapshot{URL: r.mapURL.Resolve()})
	}

	r.current = screen
	r.lastParam = param
	return nil
}

// Refresh re-prepares the active screen after a mutation changed what it
// shows (favorite toggled, map URL saved).
func (r *Router) Refresh() error {
	if r.current == "" {
		return nil
	}
	return r.activate(r.current, r.lastParam, false)
}

// SetCategorySort switches the category list ordering and re-renders it when
// the list is the active screen.
func (r *Router) SetCategorySort(mode SortMode) error {
	switch mode {
	case SortDefault, SortOrders, SortRating:
		r.categorySort = mode
	default:
		r.categorySort = SortDefault
	}
	if r.current == ScreenCategoryList {
		return r.Refresh()
	}
	return nil
}

// CategorySort returns the active category ordering.
func (r *Router) CategorySort() SortMode {
	return r.categorySort
}

// Indicators returns the header badge values shown on every screen.
func (r *Router) Indicators() Indicators {
	return Indicators{
		CartCount: r.state.Cart.TotalItems(),
		HasUnread: r.state.Notifications.HasUnread(),
	}
}

// CartView prepares the cart overlay snapshot.
func (r *Router) CartView() CartViewSnapshot {
	var snap CartViewSnapshot
	for _, storeID := range r.state.Cart.StoreIDs() {
		bucket, ok := r.state.Cart.Store(storeID)
		if !ok {
			continue
		}
		snap.Stores = append(snap.Stores, CartStoreView{
			StoreID:   storeID,
			StoreName: bucket.StoreName,
			Lines:     bucket.OrderedLines(),
		})
	}
	snap.TotalPrice = r.state.Cart.TotalPrice()
	snap.Empty = r.state.Cart.Empty()
	return snap
}

// SearchStores runs the store keyword search for the search screen.
func (r *Router) SearchStores(query string) []catalog.Store {
	return market.SearchStores(query, r.stores)
}

// SmartSearch parses a comma-separated shopping list and prices it across
// the catalog.
func (r *Router) SmartSearch(input string) []market.TermResult {
	return market.SmartSearch(market.ParseSearchTerms(input), r.stores)
}

// Notifications returns the list for the notification overlay.
func (r *Router) Notifications() []market.Notification {
	return r.state.Notifications.All()
}

// OutboundURL resolves a store's directions link. An empty or placeholder
// URL is a reported error; a bare host gets the https scheme.
func OutboundURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return "", ErrNoDirections
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	return trimmed, nil
}

func (r *Router) categorySnapshot(key string) (CategoryListSnapshot, bool) {
	stores, ok := catalog.StoresInCategory(r.stores, key)
	if !ok {
		r.jr.Warn("카테고리 목록 실패: %q 없음", key)
		return CategoryListSnapshot{}, false
	}
	title := key
	if key == catalog.CategoryAll {
		title = "전체 가게"
	}
	sorted := make([]catalog.Store, len(stores))
	copy(sorted, stores)
	switch r.categorySort {
	case SortOrders:
		sortStableBy(sorted, func(a, b catalog.Store) bool { return a.OrderCount > b.OrderCount })
	case SortRating:
		sortStableBy(sorted, func(a, b catalog.Store) bool { return a.Rating > b.Rating })
	}
	return CategoryListSnapshot{
		Key:    key,
		Title:  title,
		Stores: sorted,
		Sort:   r.categorySort,
	}, true
}

func (r *Router) favoritesSnapshot() FavoritesSnapshot {
	var snap FavoritesSnapshot
	for _, store := range r.stores {
		if r.state.Favorites.Has(store.ID) {
			snap.Stores = append(snap.Stores, store)
		}
	}
	return snap
}

func (r *Router) recentSnapshot() RecentStoresSnapshot {
	now := r.now()
	var snap RecentStoresSnapshot
	for _, entry := range r.state.Recent.Entries() {
		store, ok := catalog.Find(r.stores, entry.StoreID)
		if !ok {
			continue
		}
		label := market.RelativeDateLabel(now, entry.ViewedAt)
		if n := len(snap.Groups); n > 0 && snap.Groups[n-1].Label == label {
			snap.Groups[n-1].Stores = append(snap.Groups[n-1].Stores, store)
			continue
		}
		snap.Groups = append(snap.Groups, RecentGroup{Label: label, Stores: []catalog.Store{store}})
	}
	return snap
}

func sortStableBy(stores []catalog.Store, less func(a, b catalog.Store) bool) {
	// Insertion sort keeps catalog order between equal elements.
	for i := 1; i < len(stores); i++ {
		for j := i; j > 0 && less(stores[j], stores[j-1]); j-- {
			stores[j], stores[j-1] = stores[j-1], stores[j]
		}
	}
}
