package orders

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanexpress/storefront/internal/notifications"
	"github.com/urbanexpress/storefront/internal/state/statetest"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/types"
)

type stubNotifier struct {
	inputs []notifications.Input
}

func (s *stubNotifier) AddNotification(input notifications.Input) types.ID {
	s.inputs = append(s.inputs, input)
	return types.ID("n")
}

func newTestStore(t *testing.T) (*Store, *stubNotifier, *statetest.Env) {
	t.Helper()
	env := statetest.NewEnv(t)
	notifier := &stubNotifier{}
	store, err := NewStore(env.Deps, notifier)
	require.NoError(t, err)
	store.Load(context.Background())
	return store, notifier, env
}

func sampleInput() Input {
	return Input{
		BranchID: "1",
		Customer: Customer{Name: "Sara", Phone: "+966 50 000 0000", Address: "Olaya"},
		Items: []Item{
			{ID: "1", NameEn: "Red Apple", Quantity: 2, Price: decimal.RequireFromString("12.5")},
		},
		Total:         decimal.NewFromInt(25),
		Type:          enums.OrderTypeDelivery,
		PaymentMethod: enums.PaymentMethodCash,
	}
}

func TestNewStoreRequiresNotifier(t *testing.T) {
	env := statetest.NewEnv(t)
	_, err := NewStore(env.Deps, nil)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestDefaultOrders(t *testing.T) {
	store, _, _ := newTestStore(t)
	orders := store.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD-001", orders[0].OrderNumber)
	assert.Equal(t, enums.OrderStatusReady, orders[1].Status)
	assert.NotNil(t, orders[1].PickupStaff)
	assert.Len(t, store.OrdersByBranch("1"), 2)
	assert.Len(t, store.OrdersByBranch("2"), 1)
}

func TestAddOrderAppendsOneNotification(t *testing.T) {
	store, notifier, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		store.AddOrder(sampleInput())
		require.Len(t, notifier.inputs, i+1)
	}

	id := store.AddOrder(sampleInput())
	require.Len(t, notifier.inputs, 4)
	last := notifier.inputs[3]
	assert.Equal(t, enums.NotificationTypeNewOrder, last.Type)
	assert.Equal(t, "New Order Received", last.Title)
	assert.Equal(t, "طلب جديد", last.TitleAr)
	assert.Equal(t, "Order #ORD-000007 from Sara", last.Message)
	assert.Equal(t, "طلب رقم ORD-000007 من Sara", last.MessageAr)
	require.NotNil(t, last.OrderID)
	assert.Equal(t, id, *last.OrderID)
	assert.False(t, last.IsRead)

	order, ok := store.Order(id)
	require.True(t, ok)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, statetest.Epoch, order.CreatedAt)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
}

func TestAddOrderWithRealNotifications(t *testing.T) {
	env := statetest.NewEnv(t)
	notifs, err := notifications.NewStore(env.Deps)
	require.NoError(t, err)
	store, err := NewStore(env.Deps, notifs)
	require.NoError(t, err)
	store.Load(context.Background())
	notifs.Load(context.Background())

	id := store.AddOrder(sampleInput())
	items := notifs.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, id, *items[0].OrderID)
}

func TestOrderNumberContinuesAfterHighest(t *testing.T) {
	env := statetest.NewEnv(t)
	env.Put(t, StorageKey, `[{"id":1,"orderNumber":"ORD-041231","status":"pending"},{"id":2,"orderNumber":"legacy","status":"pending"}]`)
	store, err := NewStore(env.Deps, &stubNotifier{})
	require.NoError(t, err)
	store.Load(context.Background())

	id := store.AddOrder(sampleInput())
	order, _ := store.Order(id)
	assert.Equal(t, "ORD-041232", order.OrderNumber)

	empty := statetest.NewEnv(t)
	empty.Put(t, StorageKey, `[]`)
	fresh, err := NewStore(empty.Deps, &stubNotifier{})
	require.NoError(t, err)
	fresh.Load(context.Background())
	id = fresh.AddOrder(sampleInput())
	order, _ = fresh.Order(id)
	assert.Equal(t, "ORD-000001", order.OrderNumber)
}

func TestUpdateOrderAndStatus(t *testing.T) {
	store, _, env := newTestStore(t)
	env.Clock.Advance(5 * time.Minute)

	notes := "ring twice"
	require.True(t, store.UpdateOrder("3", Patch{Notes: &notes}))
	order, _ := store.Order("3")
	assert.Equal(t, notes, order.Notes)
	assert.Equal(t, statetest.Epoch.Add(5*time.Minute), order.UpdatedAt)

	require.True(t, store.UpdateOrderStatus("3", enums.OrderStatusPreparing))
	order, _ = store.Order("3")
	assert.Equal(t, enums.OrderStatusPreparing, order.Status)
	assert.False(t, store.UpdateOrderStatus("999", enums.OrderStatusReady))
}

func TestAssignStaffToOrder(t *testing.T) {
	store, _, env := newTestStore(t)
	env.Clock.Advance(time.Minute)

	courier := StaffAssignment{ID: "4", Name: "عبدالله سالم", Phone: "+966501111114", EstimatedTime: 25}
	require.True(t, store.AssignStaffToOrder("3", enums.StaffTypeDelivery, courier))
	order, _ := store.Order("3")
	require.NotNil(t, order.DeliveryBoy)
	assert.Equal(t, types.ID("4"), order.DeliveryBoy.ID)
	assert.Equal(t, statetest.Epoch.Add(time.Minute), order.DeliveryBoy.AssignedAt)
	assert.Nil(t, order.PickupStaff)

	require.True(t, store.AssignStaffToOrder("3", enums.StaffTypePickup, StaffAssignment{ID: "1"}))
	order, _ = store.Order("3")
	require.NotNil(t, order.PickupStaff)

	env.Clock.Advance(time.Minute)
	require.True(t, store.AssignStaffToOrder("2", enums.StaffType("kitchen"), StaffAssignment{ID: "9"}))
	order, _ = store.Order("2")
	assert.Equal(t, types.ID("1"), order.PickupStaff.ID)
	assert.Nil(t, order.DeliveryBoy)
	assert.Equal(t, statetest.Epoch.Add(2*time.Minute), order.UpdatedAt)

	assert.False(t, store.AssignStaffToOrder("nope", enums.StaffTypePickup, courier))
}

func TestSnapshotIsolation(t *testing.T) {
	store, _, _ := newTestStore(t)
	order, _ := store.Order("1")
	order.Items[0].Quantity = 99
	order.DeliveryBoy.Name = "changed"

	again, _ := store.Order("1")
	assert.Equal(t, 2, again.Items[0].Quantity)
	assert.Equal(t, "محمد علي", again.DeliveryBoy.Name)
}

func TestSaveAndReload(t *testing.T) {
	store, _, env := newTestStore(t)
	id := store.AddOrder(sampleInput())
	require.NoError(t, store.Save(context.Background()))
	assert.False(t, store.Dirty())

	reloaded, err := NewStore(env.Deps, &stubNotifier{})
	require.NoError(t, err)
	reloaded.Load(context.Background())
	order, ok := reloaded.Order(id)
	require.True(t, ok)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(25)))
	assert.Len(t, reloaded.Orders(), 4)
}

func TestShareOrderToWhatsApp(t *testing.T) {
	store, _, _ := newTestStore(t)
	order, _ := store.Order("2")

	link, err := ShareOrderToWhatsApp(order, "+966 50-123 4567")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://wa.me/966501234567?text="))
	assert.NotContains(t, link, "+")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Equal(t, ShareMessage(order), text)
	assert.Contains(t, text, "*New Order #ORD-002*")
	assert.Contains(t, text, "*Type:* Pickup")
	assert.Contains(t, text, "• Bread - 3 x 5 SAR")
	assert.Contains(t, text, "*Total:* 15 SAR")
	assert.Contains(t, text, "*Payment:* card")
	assert.Contains(t, text, "*Order Time:* 3/1/2026, 8:30:00 AM")

	_, err = ShareOrderToWhatsApp(order, "call me")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestShareMessageMissingAddress(t *testing.T) {
	msg := ShareMessage(Order{OrderNumber: "ORD-000001", Type: enums.OrderTypeDelivery})
	assert.Contains(t, msg, "*Address:* N/A")
	assert.Contains(t, msg, "*Type:* Delivery")
}

func TestSaveKeepsStatusChangeMadeWhileWriting(t *testing.T) {
	env := statetest.NewEnv(t)
	hook := &statetest.HookStorage{Storage: env.Memory}
	deps := env.Deps
	deps.Storage = hook
	store, err := NewStore(deps, &stubNotifier{})
	require.NoError(t, err)
	store.Load(context.Background())

	id := store.AddOrder(sampleInput())
	hook.OnSet = statetest.Once(func(string) {
		store.UpdateOrderStatus(id, enums.OrderStatusConfirmed)
	})
	require.NoError(t, store.Save(context.Background()))
	assert.True(t, store.Dirty(), "status change during save must stay pending")

	require.NoError(t, store.Save(context.Background()))
	assert.False(t, store.Dirty())

	reloaded, err := NewStore(env.Deps, &stubNotifier{})
	require.NoError(t, err)
	reloaded.Load(context.Background())
	got, ok := reloaded.Order(id)
	require.True(t, ok)
	assert.Equal(t, enums.OrderStatusConfirmed, got.Status)
}
