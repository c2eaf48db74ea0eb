package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/urbanexpress/storefront/internal/branches"
	"github.com/urbanexpress/storefront/internal/cancellation"
	"github.com/urbanexpress/storefront/internal/cart"
	"github.com/urbanexpress/storefront/internal/catalog"
	"github.com/urbanexpress/storefront/internal/deliveryfee"
	"github.com/urbanexpress/storefront/internal/notifications"
	"github.com/urbanexpress/storefront/internal/orders"
	"github.com/urbanexpress/storefront/internal/scrolling"
	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/internal/stock"
	"github.com/urbanexpress/storefront/internal/user"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/types"
)

// persistent is a store that crosses the storage boundary.
type persistent interface {
	Load(ctx context.Context)
	Save(ctx context.Context) error
	Dirty() bool
}

// Storefront owns one state object per module. Consumers receive it by
// reference; nothing is global.
type Storefront struct {
	deps state.Deps

	Catalog       *catalog.Store
	Branches      *branches.Store
	Orders        *orders.Store
	Stock         *stock.Store
	Notifications *notifications.Store
	Cart          *cart.Cart
	User          *user.Store
	DeliveryFees  *deliveryfee.Store
	Scrolling     *scrolling.Store
	Cancellation  *cancellation.Store
}

func New(deps state.Deps) (*Storefront, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	sf := &Storefront{deps: deps, Cart: cart.New()}

	if sf.Catalog, err = catalog.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.Branches, err = branches.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.Notifications, err = notifications.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.Orders, err = orders.NewStore(deps, sf.Notifications); err != nil {
		return nil, err
	}
	if sf.Stock, err = stock.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.User, err = user.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.DeliveryFees, err = deliveryfee.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.Scrolling, err = scrolling.NewStore(deps); err != nil {
		return nil, err
	}
	if sf.Cancellation, err = cancellation.NewStore(deps); err != nil {
		return nil, err
	}
	return sf, nil
}

func (sf *Storefront) stores() []persistent {
	return []persistent{
		sf.Catalog,
		sf.Branches,
		sf.Orders,
		sf.Stock,
		sf.Notifications,
		sf.User,
		sf.DeliveryFees,
		sf.Scrolling,
		sf.Cancellation,
	}
}

// Load reads every store from storage. Unreadable documents fall back to
// defaults, so Load never fails.
func (sf *Storefront) Load(ctx context.Context) {
	for _, s := range sf.stores() {
		s.Load(ctx)
	}
	sf.deps.Logger.Debug(ctx, "storefront state loaded")
}

// Save writes every store with unsaved changes and reports all failures.
func (sf *Storefront) Save(ctx context.Context) error {
	var errs error
	saved := 0
	for _, s := range sf.stores() {
		if !s.Dirty() {
			continue
		}
		if err := s.Save(ctx); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		saved++
	}
	sf.deps.Logger.Debug(sf.deps.Logger.WithField(ctx, "stores_saved", saved), "storefront state saved")
	return errs
}

// Now is the storefront clock in UTC.
func (sf *Storefront) Now() time.Time {
	return sf.deps.Clock()
}

// Dirty reports whether any store has unsaved changes.
func (sf *Storefront) Dirty() bool {
	for _, s := range sf.stores() {
		if s.Dirty() {
			return true
		}
	}
	return false
}

// CancelOrder cancels an order while the configured grace period is open.
func (sf *Storefront) CancelOrder(id types.ID) error {
	order, ok := sf.Orders.Order(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.Status == enums.OrderStatusCancelled {
		return nil
	}
	if order.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order is already %s", order.Status))
	}
	settings := sf.Cancellation.Settings()
	if !settings.IsEnabled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order cancellation is disabled")
	}
	if !settings.CanCancel(order.CreatedAt, sf.deps.Clock()) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, settings.WarningMessage.En).
			WithDetails(map[string]any{"allowedTimeSeconds": settings.AllowedTimeSeconds})
	}
	sf.Orders.UpdateOrderStatus(id, enums.OrderStatusCancelled)
	return nil
}

// Checkout is the priced summary of the current cart.
type Checkout struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
	FeeLabel    string          `json:"feeLabel"`
}

// CartCheckout prices the cart with the current delivery-fee tiers.
// Pickup orders carry no delivery fee.
func (sf *Storefront) CartCheckout(orderType enums.OrderType, lang enums.Language) Checkout {
	subtotal := sf.Cart.Total()
	if orderType == enums.OrderTypePickup {
		return Checkout{Subtotal: subtotal, DeliveryFee: decimal.Zero, Total: subtotal}
	}
	tiers := sf.DeliveryFees.Tiers()
	fee := deliveryfee.CalculateDeliveryFee(subtotal, tiers)
	return Checkout{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
		FeeLabel:    deliveryfee.DeliveryFeeDescription(subtotal, tiers, lang),
	}
}

// PlaceOrder turns the cart into an order for the current user and clears
// the cart.
func (sf *Storefront) PlaceOrder(input PlaceOrderInput) (types.ID, error) {
	items := sf.Cart.Items()
	if len(items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if _, ok := sf.Branches.Branch(input.BranchID); !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
	}

	current := sf.User.Current()
	customer := input.Customer
	if customer.Name == "" {
		customer.Name = current.DisplayName()
	}
	if customer.Phone == "" {
		customer.Phone = current.Phone
	}

	lines := make([]orders.Item, 0, len(items))
	for _, item := range items {
		lines = append(lines, orders.Item{
			ID:       item.ID,
			NameAr:   item.NameAr,
			NameEn:   item.NameEn,
			Quantity: item.Quantity,
			Price:    item.UnitPrice(),
		})
	}
	checkout := sf.CartCheckout(input.Type, enums.LanguageEnglish)
	id := sf.Orders.AddOrder(orders.Input{
		BranchID:      input.BranchID,
		Customer:      customer,
		Items:         lines,
		Total:         checkout.Total,
		Type:          input.Type,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	})
	sf.Cart.Clear()
	return id, nil
}

type PlaceOrderInput struct {
	BranchID      types.ID            `json:"branchId"`
	Customer      orders.Customer     `json:"customer"`
	Type          enums.OrderType     `json:"type"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Notes         string              `json:"notes"`
}

// ShareOrder builds the wa.me link for an order.
func (sf *Storefront) ShareOrder(id types.ID, phone string) (string, error) {
	order, ok := sf.Orders.Order(id)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return orders.ShareOrderToWhatsApp(order, phone)
}
