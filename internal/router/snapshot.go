package router

import (
	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/market"
)

// Renderer draws screens from the snapshots the router prepares. The TUI
// implements it; tests substitute a recorder.
type Renderer interface {
	RenderHome(HomeSnapshot)
	RenderSearch(SearchSnapshot)
	RenderCategoryList(CategoryListSnapshot)
	RenderStoreDetail(StoreDetailSnapshot)
	RenderFavorites(FavoritesSnapshot)
	RenderRecentStores(RecentStoresSnapshot)
	RenderSmartShopping(SmartShoppingSnapshot)
	RenderRecipeEditor(RecipeEditorSnapshot)
	RenderPickup(PickupSnapshot)
	RenderMyOrders(MyOrdersSnapshot)
	RenderMap(MapSnapshot)
}

// Indicators are the header badges shown on every screen.
type Indicators struct {
	CartCount int
	HasUnread bool
}

// HomeSnapshot feeds the landing screen's category shortcut grid.
type HomeSnapshot struct {
	Categories []catalog.Category
}

// SearchSnapshot carries the initial (unfiltered) store list.
type SearchSnapshot struct {
	Stores []catalog.Store
}

// CategoryListSnapshot is one category's store roster, pre-sorted.
type CategoryListSnapshot struct {
	Key    string
	Title  string
	Stores []catalog.Store
	Sort   SortMode
}

// StoreDetailSnapshot is a single store plus where the shopper came from.
type StoreDetailSnapshot struct {
	Store     catalog.Store
	From      Screen
	Category  string
	Favorited bool
}

// FavoritesSnapshot lists favorited stores in catalog order.
type FavoritesSnapshot struct {
	Stores []catalog.Store
}

// RecentGroup collects stores viewed under one relative date label.
type RecentGroup struct {
	Label  string
	Stores []catalog.Store
}

// RecentStoresSnapshot groups the visit history by day, newest first.
type RecentStoresSnapshot struct {
	Groups []RecentGroup
}

// SmartShoppingSnapshot lists the saved recipes beside the search box.
type SmartShoppingSnapshot struct {
	Recipes []market.Recipe
}

// RecipeEditorSnapshot is the recipe under edit; IsNew means a blank form.
type RecipeEditorSnapshot struct {
	Recipe market.Recipe
	IsNew  bool
}

// PickupSnapshot shows the just-placed order on the confirmation screen.
type PickupSnapshot struct {
	Orders []market.Order
}

// MyOrdersSnapshot is the full order history, newest first.
type MyOrdersSnapshot struct {
	Orders []market.Order
}

// MapSnapshot carries the resolved market map URL.
type MapSnapshot struct {
	URL string
}

// CartStoreView is one store's section of the cart overlay.
type CartStoreView struct {
	StoreID   catalog.StoreID
	StoreName string
	Lines     []market.CartLine
}

// CartViewSnapshot is the cart overlay: per-store sections plus the total.
type CartViewSnapshot struct {
	Stores     []CartStoreView
	TotalPrice int
	Empty      bool
}
