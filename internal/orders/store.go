package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/urbanexpress/storefront/internal/notifications"
	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/types"
)

const (
	StorageKey        = "admin_orders"
	orderNumberPrefix = "ORD-"
)

// Notifier receives the admin notification raised for each new order.
type Notifier interface {
	AddNotification(input notifications.Input) types.ID
}

type Store struct {
	deps     state.Deps
	notifier Notifier

	mu     sync.RWMutex
	orders []Order
	rev    state.Revision
}

func NewStore(deps state.Deps, notifier Notifier) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notifier is required")
	}
	return &Store{
		deps:     deps,
		notifier: notifier,
		orders:   DefaultOrders(deps.Clock()),
	}, nil
}

func (s *Store) Load(ctx context.Context) {
	orders, stored := state.LoadJSON(ctx, s.deps, StorageKey, func() []Order {
		return DefaultOrders(s.deps.Clock())
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = state.NonNil(orders)
	s.rev.Reset(stored)
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	if !s.rev.Dirty() {
		s.mu.RUnlock()
		return nil
	}
	version := s.rev.Current()
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	if err := state.SaveJSON(ctx, s.deps, StorageKey, snapshot); err != nil {
		return err
	}
	s.mu.Lock()
	s.rev.MarkSaved(version)
	s.mu.Unlock()
	return nil
}

func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev.Dirty()
}

// AddOrder appends a pending order and raises exactly one new_order
// notification for it.
func (s *Store) AddOrder(input Input) types.ID {
	s.mu.Lock()
	now := s.deps.Clock()
	order := Order{
		ID:            s.deps.NewID(),
		OrderNumber:   s.nextOrderNumberLocked(),
		BranchID:      input.BranchID.Normalized(),
		Customer:      input.Customer,
		Items:         append([]Item{}, input.Items...),
		Total:         input.Total,
		Status:        enums.OrderStatusPending,
		Type:          input.Type,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.orders = append(s.orders, order)
	s.rev.Touch()
	s.mu.Unlock()

	orderID := order.ID
	s.notifier.AddNotification(notifications.Input{
		Type:      enums.NotificationTypeNewOrder,
		Title:     "New Order Received",
		TitleAr:   "طلب جديد",
		Message:   fmt.Sprintf("Order #%s from %s", order.OrderNumber, order.Customer.Name),
		MessageAr: fmt.Sprintf("طلب رقم %s من %s", order.OrderNumber, order.Customer.Name),
		OrderID:   &orderID,
	})
	return order.ID
}

// nextOrderNumberLocked continues after the highest numeric suffix in use.
func (s *Store) nextOrderNumberLocked() string {
	var highest int64
	for _, o := range s.orders {
		suffix, ok := strings.CutPrefix(o.OrderNumber, orderNumberPrefix)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%06d", orderNumberPrefix, highest+1)
}

func (s *Store) UpdateOrder(id types.ID, patch Patch) bool {
	return s.mutate(id, func(o *Order) {
		patch.apply(o)
	})
}

func (s *Store) UpdateOrderStatus(id types.ID, status enums.OrderStatus) bool {
	return s.mutate(id, func(o *Order) {
		o.Status = status
	})
}

// AssignStaffToOrder fills the pickup or delivery slot. Any other staff
// type only bumps UpdatedAt.
func (s *Store) AssignStaffToOrder(id types.ID, staffType enums.StaffType, staff StaffAssignment) bool {
	return s.mutate(id, func(o *Order) {
		if staff.AssignedAt.IsZero() {
			staff.AssignedAt = s.deps.Clock()
		}
		staff.ID = staff.ID.Normalized()
		switch staffType {
		case enums.StaffTypePickup:
			o.PickupStaff = &staff
		case enums.StaffTypeDelivery:
			o.DeliveryBoy = &staff
		}
	})
}

func (s *Store) mutate(id types.ID, fn func(o *Order)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID.Equal(id) {
			fn(&s.orders[i])
			s.orders[i].UpdatedAt = s.deps.Clock()
			s.rev.Touch()
			return true
		}
	}
	return false
}

func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Order(id types.ID) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID.Equal(id) {
			return cloneOrder(o), true
		}
	}
	return Order{}, false
}

func (s *Store) OrdersByBranch(branchID types.ID) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Order{}
	for _, o := range s.orders {
		if o.BranchID.Equal(branchID) {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

func (s *Store) snapshotLocked() []Order {
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}
