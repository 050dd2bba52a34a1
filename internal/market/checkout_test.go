package market

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheongnyamri/market/internal/storage"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 29, 14, 30, 0, 0, time.Local)
	return func() time.Time { return at }
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	s := NewState(storage.NewMemoryGateway(), WithClock(fixedClock()))
	_, err := s.Checkout()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.Equal(t, 0, s.Orders.Len())
}

func TestCheckoutSingleStoreTwoLines(t *testing.T) {
	s := NewState(storage.NewMemoryGateway(), WithClock(fixedClock()))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", ""))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-2", "고추장 1kg", 5000, "", ""))

	wantTotal := s.Cart.TotalPrice()
	order, err := s.Checkout()
	require.NoError(t, err)

	assert.Equal(t, wantTotal, order.TotalPrice)
	assert.True(t, s.Cart.Empty(), "cart must be empty immediately after checkout")
	assert.Equal(t, 1, s.Orders.Len())
	assert.True(t, strings.HasPrefix(order.OrderID, "CNY-"))
	assert.Equal(t, "2026년 8월 29일 (토)", order.PlacedAt)

	notes := s.Notifications.All()
	require.Len(t, notes, 1)
	assert.False(t, notes[0].Read)
	assert.Contains(t, notes[0].Message, "'형제축산'에서 삼겹살 외 1건")
	assert.Contains(t, notes[0].Message, "17,000원")
}

func TestCheckoutMultiStoreNotifications(t *testing.T) {
	s := NewState(storage.NewMemoryGateway(), WithClock(fixedClock()))
	require.NoError(t, s.Cart.Add(3, "할머니청과", "3-0", "대파", 3000, "", ""))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", ""))
	require.NoError(t, s.Cart.Add(2, "청량수산", "2-0", "고등어", 6000, "", ""))

	_, err := s.Checkout()
	require.NoError(t, err)

	notes := s.Notifications.All()
	require.Len(t, notes, 3, "one notification per store")
	for _, n := range notes {
		assert.False(t, n.Read)
	}
	// Prepended: the last store processed sits at the front.
	assert.Contains(t, notes[0].Message, "청량수산")
	assert.Contains(t, notes[2].Message, "할머니청과")
}

func TestCheckoutNotificationSubtotalPerStore(t *testing.T) {
	s := NewState(storage.NewMemoryGateway(), WithClock(fixedClock()))
	require.NoError(t, s.Cart.Add(3, "할머니청과", "3-0", "대파", 3000, "", ""))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", ""))

	_, err := s.Checkout()
	require.NoError(t, err)

	notes := s.Notifications.All()
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0].Message, "12,000원")
	assert.Contains(t, notes[1].Message, "3,000원")
}

func TestCheckoutOrderSnapshotImmutable(t *testing.T) {
	s := NewState(storage.NewMemoryGateway(), WithClock(fixedClock()))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", "구이용"))
	order, err := s.Checkout()
	require.NoError(t, err)

	// New cart activity after checkout must not leak into the stored order.
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", "구이용"))
	lines := order.Cart[1].Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "구이용", lines[0].Request)
}

func TestCheckoutPersistFailureRollsBackEverything(t *testing.T) {
	gw := storage.NewMemoryGateway()
	s := NewState(gw, WithClock(fixedClock()))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", ""))

	gw.FailSet = errors.New("disk full")
	_, err := s.Checkout()
	require.Error(t, err)

	assert.Equal(t, 0, s.Orders.Len(), "order log must be rewound")
	assert.Empty(t, s.Notifications.All(), "notifications must be rewound")
	assert.Equal(t, 1, s.Cart.TotalItems(), "cart must be untouched")

	// A later retry with working storage succeeds.
	gw.FailSet = nil
	order, err := s.Checkout()
	require.NoError(t, err)
	assert.Equal(t, 12000, order.TotalPrice)
}

func TestOrdersSurviveReload(t *testing.T) {
	gw := storage.NewMemoryGateway()
	s := NewState(gw, WithClock(fixedClock()))
	require.NoError(t, s.Cart.Add(1, "형제축산", "1-0", "삼겹살", 12000, "", ""))
	placed, err := s.Checkout()
	require.NoError(t, err)

	reloaded := NewState(gw, WithClock(fixedClock()))
	require.NoError(t, reloaded.Load())
	require.Equal(t, 1, reloaded.Orders.Len())
	got := reloaded.Orders.All()[0]
	assert.Equal(t, placed.OrderID, got.OrderID)
	assert.Equal(t, placed.TotalPrice, got.TotalPrice)
	assert.Equal(t, "삼겹살", got.Cart[1].Lines()[0].Name)
}
