package market

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cheongnyamri/market/internal/storage"
)

// Notification is one purchase message. Unread entries drive the header dot.
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

// Notifications keeps purchase notifications, newest first.
type Notifications struct {
	gw   storage.Gateway
	list []Notification
}

// NewNotifications builds the store around a gateway.
func NewNotifications(gw storage.Gateway) *Notifications {
	return &Notifications{gw: gw}
}

// Load reads the persisted list. Corrupt data resets to empty.
func (n *Notifications) Load() error {
	n.list = nil
	if _, err := n.gw.Get(keyNotifications, &n.list); err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			n.list = nil
			return nil
		}
		return err
	}
	return nil
}

// Save writes the full list back.
func (n *Notifications) Save() error {
	return n.gw.Set(keyNotifications, n.list)
}

// push prepends an unread notification without persisting. Checkout batches
// several pushes into one save so the whole mutation stays atomic.
func (n *Notifications) push(message string) Notification {
	note := Notification{ID: uuid.NewString(), Message: message}
	n.list = append([]Notification{note}, n.list...)
	return note
}

// dropFront removes the newest count notifications. Checkout rollback only.
func (n *Notifications) dropFront(count int) {
	if count >= len(n.list) {
		n.list = nil
		return
	}
	n.list = n.list[count:]
}

// MarkAllRead flips every entry to read and persists.
func (n *Notifications) MarkAllRead() error {
	for i := range n.list {
		n.list[i].Read = true
	}
	return n.Save()
}

// HasUnread reports whether any entry is unread.
func (n *Notifications) HasUnread() bool {
	for _, note := range n.list {
		if !note.Read {
			return true
		}
	}
	return false
}

// All returns a copy of the list, newest first.
func (n *Notifications) All() []Notification {
	out := make([]Notification, len(n.list))
	copy(out, n.list)
	return out
}
