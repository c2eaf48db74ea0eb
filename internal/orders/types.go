package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/pkg/enums"
	"github.com/urbanexpress/storefront/pkg/types"
)

type Customer struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

type Item struct {
	ID       types.ID        `json:"id"`
	NameAr   string          `json:"nameAr"`
	NameEn   string          `json:"nameEn"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
}

// DisplayName prefers the English name.
func (i Item) DisplayName() string {
	if i.NameEn != "" {
		return i.NameEn
	}
	return i.NameAr
}

// StaffAssignment records who handles an order and the promised minutes.
type StaffAssignment struct {
	ID            types.ID  `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	AssignedAt    time.Time `json:"assignedAt"`
	EstimatedTime int       `json:"estimatedTime"`
}

type Order struct {
	ID            types.ID            `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	BranchID      types.ID            `json:"branchId"`
	Customer      Customer            `json:"customer"`
	Items         []Item              `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	Type          enums.OrderType     `json:"type"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	DeliveryBoy   *StaffAssignment    `json:"deliveryBoy,omitempty"`
	PickupStaff   *StaffAssignment    `json:"pickupStaff,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type Input struct {
	BranchID      types.ID            `json:"branchId" validate:"required"`
	Customer      Customer            `json:"customer"`
	Items         []Item              `json:"items" validate:"min=1,dive"`
	Total         decimal.Decimal     `json:"total"`
	Type          enums.OrderType     `json:"type" validate:"required,oneof=delivery pickup"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card"`
	Notes         string              `json:"notes"`
}

type Patch struct {
	BranchID      *types.ID            `json:"branchId,omitempty"`
	Customer      *Customer            `json:"customer,omitempty"`
	Items         []Item               `json:"items,omitempty"`
	Total         *decimal.Decimal     `json:"total,omitempty"`
	Status        *enums.OrderStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed preparing ready out_for_delivery delivered cancelled"`
	Type          *enums.OrderType     `json:"type,omitempty" validate:"omitempty,oneof=delivery pickup"`
	PaymentMethod *enums.PaymentMethod `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash card"`
	Notes         *string              `json:"notes,omitempty"`
}

func (p Patch) apply(o *Order) {
	if p.BranchID != nil {
		o.BranchID = p.BranchID.Normalized()
	}
	if p.Customer != nil {
		o.Customer = *p.Customer
	}
	if p.Items != nil {
		o.Items = append([]Item{}, p.Items...)
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Type != nil {
		o.Type = *p.Type
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
}

func cloneOrder(o Order) Order {
	o.Items = append([]Item{}, o.Items...)
	if o.DeliveryBoy != nil {
		boy := *o.DeliveryBoy
		o.DeliveryBoy = &boy
	}
	if o.PickupStaff != nil {
		staff := *o.PickupStaff
		o.PickupStaff = &staff
	}
	return o
}
