// internal/market/state.go
//
// State is the application state object built once at startup: the live cart
// plus every persisted collection, with the persistence gateway injected so
// tests can swap in an in-memory fake.

package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/cheongnyamri/market/internal/storage"
)

// Storage keys. The cart itself is never persisted; it survives only inside
// completed order snapshots.
const (
	keyRecipes       = "cheongnyamri.recipes"
	keyRecent        = "cheongnyamri.recentStores"
	keyNotifications = "cheongnyamri.notifications"
	keyFavorites     = "cheongnyamri.favorites"
	keyOrders        = "cheongnyamri.orders"
)

// ErrEmptyCart rejects checkout on an empty cart.
var ErrEmptyCart = errors.New("market: cart is empty")

// State aggregates the entity stores.
type State struct {
	Cart          *Cart
	Favorites     *Favorites
	Recipes       *Recipes
	Recent        *RecentlyViewed
	Notifications *Notifications
	Orders        *Orders

	now func() time.Time
}

// StateOption customizes State construction.
type StateOption func(*State)

// WithClock overrides the clock used for order ids, timestamps, and history.
func WithClock(now func() time.Time) StateOption {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// NewState wires every store to the gateway.
func NewState(gw storage.Gateway, opts ...StateOption) *State {
	s := &State{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Cart = NewCart()
	s.Favorites = NewFavorites(gw)
	s.Recipes = NewRecipes(gw, s.now)
	s.Recent = NewRecentlyViewed(gw, s.now)
	s.Notifications = NewNotifications(gw)
	s.Orders = NewOrders(gw)
	return s
}

// Load reads every persisted collection. Corrupt values reset their own
// collection to empty; only real IO failures propagate.
func (s *State) Load() error {
	loaders := []func() error{
		s.Favorites.Load,
		s.Recipes.Load,
		s.Recent.Load,
		s.Notifications.Load,
		s.Orders.Load,
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return err
		}
	}
	return nil
}

// Checkout turns the cart into a pickup order: the cart is snapshotted into
// an immutable order, one unread notification per store is prepended, the
// order log and notification list are persisted, and the cart is cleared.
// Either every step completes or the state is rewound to before the call.
func (s *State) Checkout() (Order, error) {
	if s.Cart.Empty() {
		return Order{}, ErrEmptyCart
	}

	snapshot := s.Cart.Snapshot()
	storeOrder := s.Cart.StoreIDs()
	now := s.now()

	total := 0
	for _, bucket := range snapshot {
		for _, item := range bucket.Items {
			total += item.Price * item.Quantity
		}
	}

	order := Order{
		OrderID:    fmt.Sprintf("CNY-%d", now.UnixMilli()),
		Cart:       snapshot,
		PlacedAt:   FormatOrderDate(now),
		TotalPrice: total,
	}

	ordersBefore := s.Orders.All()
	s.Orders.append(order)

	pushed := 0
	for _, storeID := range storeOrder {
		bucket := snapshot[storeID]
		lines := bucket.Lines()
		if len(lines) == 0 {
			continue
		}
		subtotal := 0
		for _, item := range lines {
			subtotal += item.Price * item.Quantity
		}
		message := fmt.Sprintf("'%s'에서 %s", bucket.StoreName, lines[0].Name)
		if len(lines) > 1 {
			message += fmt.Sprintf(" 외 %d건", len(lines)-1)
		}
		message += fmt.Sprintf(" 구매가 완료되었습니다. (총 %s원)", FormatWon(subtotal))
		s.Notifications.push(message)
		pushed++
	}

	rollback := func() {
		s.Orders.dropLast()
		s.Notifications.dropFront(pushed)
	}

	if err := s.Orders.Save(); err != nil {
		rollback()
		return Order{}, fmt.Errorf("checkout: persist orders: %w", err)
	}
	if err := s.Notifications.Save(); err != nil {
		rollback()
		// The order log already hit disk; rewrite the previous log so
		// durable state matches the rolled-back memory state.
		_ = s.restoreOrders(ordersBefore)
		return Order{}, fmt.Errorf("checkout: persist notifications: %w", err)
	}

	s.Cart.Clear()
	return order, nil
}

func (s *State) restoreOrders(orders []Order) error {
	s.Orders.list = orders
	return s.Orders.Save()
}
