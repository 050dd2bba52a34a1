// internal/market/cart.go
//
// The cart groups entries per store. An entry is keyed by product AND the
// shopper's special-request text, so "썰어주세요" and a plain add of the same
// product stay separate lines while two identical requests coalesce.

package market

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/cheongnyamri/market/internal/catalog"
)

// CartItem is one cart line.
type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"img"`
	Request   string `json:"request"`
}

// StoreCart is the per-store bucket of cart lines.
type StoreCart struct {
	StoreName string              `json:"storeName"`
	Items     map[string]CartItem `json:"items"`

	// lineOrder remembers item ids in insertion order. It is not part of
	// the serialized shape; snapshots loaded from disk fall back to sorted
	// keys.
	lineOrder []string
}

// CartLine pairs an item with its dedup key, for quantity controls.
type CartLine struct {
	ItemID string
	Item   CartItem
}

// OrderedLines returns the bucket's lines in insertion order, or key order
// when the bucket was deserialized.
func (sc StoreCart) OrderedLines() []CartLine {
	ids := sc.lineOrder
	if len(ids) != len(sc.Items) {
		ids = make([]string, 0, len(sc.Items))
		for id := range sc.Items {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}
	out := make([]CartLine, 0, len(ids))
	for _, id := range ids {
		if item, ok := sc.Items[id]; ok {
			out = append(out, CartLine{ItemID: id, Item: item})
		}
	}
	return out
}

// Lines returns just the items of OrderedLines.
func (sc StoreCart) Lines() []CartItem {
	lines := sc.OrderedLines()
	out := make([]CartItem, len(lines))
	for i, line := range lines {
		out[i] = line.Item
	}
	return out
}

// CartSnapshot is a deep copy of the cart, keyed by store id. Orders embed
// this shape verbatim.
type CartSnapshot map[catalog.StoreID]StoreCart

// Cart holds the live multi-store cart. It is transient: only its snapshot
// inside a completed order ever reaches durable storage.
type Cart struct {
	buckets map[catalog.StoreID]*StoreCart
	order   []catalog.StoreID
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{buckets: map[catalog.StoreID]*StoreCart{}}
}

// CartItemID derives the dedup key for a product + request pair. The request
// text is folded through a stable non-cryptographic hash so independently
// typed identical requests land on the same entry.
func CartItemID(productID, request string) string {
	return fmt.Sprintf("%s-%d", productID, requestHash(request))
}

// requestHash is the classic shift-accumulate string hash over UTF-16 code
// units with int32 wraparound. Persisted order snapshots depend on these
// exact values, so the algorithm must not change.
func requestHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h<<5 - h + int32(u)
	}
	return h
}

// Add puts one unit of a product into the cart, creating the entry at
// quantity 1 or bumping an existing one. Price must be non-negative.
func (c *Cart) Add(storeID catalog.StoreID, storeName, productID, name string, price int, image, request string) error {
	if price < 0 {
		return fmt.Errorf("cart: negative price for %q", name)
	}
	if strings.TrimSpace(productID) == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("cart: product id and name are required")
	}

	bucket, ok := c.buckets[storeID]
	if !ok {
		bucket = &StoreCart{StoreName: storeName, Items: map[string]CartItem{}}
		c.buckets[storeID] = bucket
		c.order = append(c.order, storeID)
	}

	itemID := CartItemID(productID, request)
	if item, ok := bucket.Items[itemID]; ok {
		item.Quantity++
		bucket.Items[itemID] = item
		return nil
	}
	bucket.lineOrder = append(bucket.lineOrder, itemID)
	bucket.Items[itemID] = CartItem{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  1,
		Image:     image,
		Request:   request,
	}
	return nil
}

// ChangeQuantity adds delta to an entry's quantity. A result of zero or less
// deletes the entry, and an emptied store bucket is dropped with it. Returns
// false when the entry does not exist.
func (c *Cart) ChangeQuantity(storeID catalog.StoreID, itemID string, delta int) bool {
	bucket, ok := c.buckets[storeID]
	if !ok {
		return false
	}
	item, ok := bucket.Items[itemID]
	if !ok {
		return false
	}
	item.Quantity += delta
	if item.Quantity <= 0 {
		c.dropItem(storeID, bucket, itemID)
		return true
	}
	bucket.Items[itemID] = item
	return true
}

// Remove deletes an entry regardless of its quantity. Returns false when the
// entry does not exist.
func (c *Cart) Remove(storeID catalog.StoreID, itemID string) bool {
	bucket, ok := c.buckets[storeID]
	if !ok {
		return false
	}
	if _, ok := bucket.Items[itemID]; !ok {
		return false
	}
	c.dropItem(storeID, bucket, itemID)
	return true
}

func (c *Cart) dropItem(storeID catalog.StoreID, bucket *StoreCart, itemID string) {
	delete(bucket.Items, itemID)
	for i, id := range bucket.lineOrder {
		if id == itemID {
			bucket.lineOrder = append(bucket.lineOrder[:i], bucket.lineOrder[i+1:]...)
			break
		}
	}
	if len(bucket.Items) == 0 {
		delete(c.buckets, storeID)
		for i, id := range c.order {
			if id == storeID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// TotalItems sums quantities across every store, for the cart badge.
func (c *Cart) TotalItems() int {
	total := 0
	for _, bucket := range c.buckets {
		for _, item := range bucket.Items {
			total += item.Quantity
		}
	}
	return total
}

// TotalPrice sums price×quantity across every entry. Checkout uses the same
// sum over the snapshot, so the two always agree.
func (c *Cart) TotalPrice() int {
	total := 0
	for _, bucket := range c.buckets {
		for _, item := range bucket.Items {
			total += item.Price * item.Quantity
		}
	}
	return total
}

// Empty reports whether no store has entries.
func (c *Cart) Empty() bool {
	return len(c.buckets) == 0
}

// StoreIDs returns store ids in the order they first entered the cart.
func (c *Cart) StoreIDs() []catalog.StoreID {
	out := make([]catalog.StoreID, len(c.order))
	copy(out, c.order)
	return out
}

// Store returns a deep copy of one store's bucket.
func (c *Cart) Store(storeID catalog.StoreID) (StoreCart, bool) {
	bucket, ok := c.buckets[storeID]
	if !ok {
		return StoreCart{}, false
	}
	return copyBucket(*bucket), true
}

// Snapshot deep-copies the whole cart.
func (c *Cart) Snapshot() CartSnapshot {
	snap := make(CartSnapshot, len(c.buckets))
	for id, bucket := range c.buckets {
		snap[id] = copyBucket(*bucket)
	}
	return snap
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.buckets = map[catalog.StoreID]*StoreCart{}
	c.order = nil
}

// restore rewinds the cart to a previous snapshot. Checkout uses it when the
// persistence step fails so no partial state is observable.
func (c *Cart) restore(snap CartSnapshot, order []catalog.StoreID) {
	c.buckets = make(map[catalog.StoreID]*StoreCart, len(snap))
	for id, bucket := range snap {
		copied := copyBucket(bucket)
		c.buckets[id] = &copied
	}
	c.order = append([]catalog.StoreID(nil), order...)
}

func copyBucket(bucket StoreCart) StoreCart {
	items := make(map[string]CartItem, len(bucket.Items))
	for id, item := range bucket.Items {
		items[id] = item
	}
	return StoreCart{
		StoreName: bucket.StoreName,
		Items:     items,
		lineOrder: append([]string(nil), bucket.lineOrder...),
	}
}
