package market

import (
	"errors"

	"github.com/cheongnyamri/market/internal/storage"
)

// Order is one completed checkout. Immutable once created: the orders log is
// append-only and never reordered.
type Order struct {
	OrderID    string       `json:"orderId"`
	Cart       CartSnapshot `json:"cart"`
	PlacedAt   string       `json:"date"`
	TotalPrice int          `json:"totalPrice"`
}

// Orders is the append-only order log, oldest first.
type Orders struct {
	gw   storage.Gateway
	list []Order
}

// NewOrders builds the log around a gateway.
func NewOrders(gw storage.Gateway) *Orders {
	return &Orders{gw: gw}
}

// Load reads the persisted log. Corrupt data resets to empty.
func (o *Orders) Load() error {
	o.list = nil
	if _, err := o.gw.Get(keyOrders, &o.list); err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			o.list = nil
			return nil
		}
		return err
	}
	return nil
}

// Save writes the full log back.
func (o *Orders) Save() error {
	return o.gw.Set(keyOrders, o.list)
}

// append adds an order without persisting; checkout saves once all stores
// are updated.
func (o *Orders) append(order Order) {
	o.list = append(o.list, order)
}

// dropLast removes the newest order. Checkout rollback only.
func (o *Orders) dropLast() {
	if len(o.list) > 0 {
		o.list = o.list[:len(o.list)-1]
	}
}

// All returns a copy of the log, oldest first.
func (o *Orders) All() []Order {
	out := make([]Order, len(o.list))
	copy(out, o.list)
	return out
}

// Newest returns a copy of the log, newest first, the order screens render.
func (o *Orders) Newest() []Order {
	out := make([]Order, len(o.list))
	for i, order := range o.list {
		out[len(o.list)-1-i] = order
	}
	return out
}

// Len reports how many orders have been placed.
func (o *Orders) Len() int {
	return len(o.list)
}
