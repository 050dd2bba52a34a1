package router

import (
	"fmt"

	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/market"
)

// Intent names a user action the router can dispatch.
type Intent string

const (
	IntentNavigate       Intent = "navigate"
	IntentCartAdd        Intent = "cart.add"
	IntentCartQuantity   Intent = "cart.quantity"
	IntentCartRemove     Intent = "cart.remove"
	IntentCheckout       Intent = "checkout"
	IntentFavoriteToggle Intent = "favorite.toggle"
	IntentRecipeSave     Intent = "recipe.save"
	IntentRecipeDelete   Intent = "recipe.delete"
	IntentNoticesRead    Intent = "notifications.read"
	IntentMapSetURL      Intent = "map.setUrl"
	IntentCategorySort   Intent = "category.sort"
)

// Payload carries an intent's arguments; each handler reads the fields it
// needs and ignores the rest.
type Payload struct {
	Screen      Screen
	ScreenParam any

	StoreID   catalog.StoreID
	StoreName string
	Product   catalog.Product
	Request   string
	ItemID    string
	Delta     int

	Recipe   market.Recipe
	RecipeID string

	URL  string
	Sort SortMode
}

type intentHandler func(*Router, Payload) error

var handlers = map[Intent]intentHandler{
	IntentNavigate: func(r *Router, p Payload) error {
		return r.Navigate(p.Screen, p.ScreenParam)
	},
	IntentCartAdd: func(r *Router, p Payload) error {
		err := r.state.Cart.Add(p.StoreID, p.StoreName, p.Product.ID, p.Product.Name, p.Product.Price, p.Product.Image, p.Request)
		if err != nil {
			return err
		}
		r.jr.Action("장바구니 담기: %s (%s)", p.Product.Name, p.StoreName)
		return nil
	},
	IntentCartQuantity: func(r *Router, p Payload) error {
		r.state.Cart.ChangeQuantity(p.StoreID, p.ItemID, p.Delta)
		return nil
	},
	IntentCartRemove: func(r *Router, p Payload) error {
		r.state.Cart.Remove(p.StoreID, p.ItemID)
		return nil
	},
	IntentCheckout: func(r *Router, p Payload) error {
		order, err := r.state.Checkout()
		if err != nil {
			r.jr.Fail("주문 실패: %v", err)
			return err
		}
		r.jr.Action("주문 완료: %s (%s)", order.OrderID, market.FormatWon(order.TotalPrice))
		return r.Navigate(ScreenPickup, nil)
	},
	IntentFavoriteToggle: func(r *Router, p Payload) error {
		added, err := r.state.Favorites.Toggle(p.StoreID)
		if err != nil {
			return err
		}
		if added {
			r.jr.Action("단골 등록: 가게 %d", p.StoreID)
		} else {
			r.jr.Action("단골 해제: 가게 %d", p.StoreID)
		}
		// The detail heart and the favorites roster both show this.
		return r.Refresh()
	},
	IntentRecipeSave: func(r *Router, p Payload) error {
		saved, err := r.state.Recipes.Upsert(p.Recipe)
		if err != nil {
			return err
		}
		r.jr.Action("레시피 저장: %s", saved.Name)
		return r.Navigate(ScreenSmartShopping, nil)
	},
	IntentRecipeDelete: func(r *Router, p Payload) error {
		if err := r.state.Recipes.Delete(p.RecipeID); err != nil {
			return err
		}
		r.jr.Action("레시피 삭제: %s", p.RecipeID)
		return r.Refresh()
	},
	IntentNoticesRead: func(r *Router, p Payload) error {
		return r.state.Notifications.MarkAllRead()
	},
	IntentMapSetURL: func(r *Router, p Payload) error {
		normalized, err := r.mapURL.Set(p.URL)
		if err != nil {
			return err
		}
		r.jr.Action("지도 주소 저장: %s", normalized)
		return r.Refresh()
	},
	IntentCategorySort: func(r *Router, p Payload) error {
		return r.SetCategorySort(p.Sort)
	},
}

// Dispatch routes an intent to its handler.
func (r *Router) Dispatch(intent Intent, payload Payload) error {
	handler, ok := handlers[intent]
	if !ok {
		return fmt.Errorf("router: unknown intent %q", intent)
	}
	return handler(r, payload)
}
