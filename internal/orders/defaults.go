package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/pkg/enums"
)

// DefaultOrders returns the three sample orders relative to now.
func DefaultOrders(now time.Time) []Order {
	price := decimal.RequireFromString
	return []Order{
		{
			ID:          "1",
			OrderNumber: "ORD-001",
			BranchID:    "1",
			Customer: Customer{
				Name:      "أحمد محمد",
				Phone:     "+966501234567",
				Address:   "شارع الملك فهد، الرياض",
				Latitude:  "24.7136",
				Longitude: "46.6753",
			},
			Items: []Item{
				{ID: "1", NameAr: "تفاح أحمر", NameEn: "Red Apple", Quantity: 2, Price: price("12.5")},
				{ID: "2", NameAr: "موز", NameEn: "Banana", Quantity: 1, Price: price("8")},
			},
			Total:         price("33"),
			Status:        enums.OrderStatusConfirmed,
			Type:          enums.OrderTypeDelivery,
			PaymentMethod: enums.PaymentMethodCash,
			DeliveryBoy: &StaffAssignment{
				ID:            "3",
				Name:          "محمد علي",
				Phone:         "+966501111113",
				AssignedAt:    now,
				EstimatedTime: 30,
			},
			Notes:     "يرجى التوصيل للباب الرئيسي",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "2",
			OrderNumber: "ORD-002",
			BranchID:    "1",
			Customer: Customer{
				Name:    "فاطمة علي",
				Phone:   "+966507654321",
				Address: "حي النرجس، الرياض",
			},
			Items: []Item{
				{ID: "3", NameAr: "خبز", NameEn: "Bread", Quantity: 3, Price: price("5")},
			},
			Total:         price("15"),
			Status:        enums.OrderStatusReady,
			Type:          enums.OrderTypePickup,
			PaymentMethod: enums.PaymentMethodCard,
			PickupStaff: &StaffAssignment{
				ID:            "1",
				Name:          "أحمد محمد",
				Phone:         "+966501111111",
				AssignedAt:    now.Add(-30 * time.Minute),
				EstimatedTime: 15,
			},
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
		{
			ID:          "3",
			OrderNumber: "ORD-003",
			BranchID:    "2",
			Customer: Customer{
				Name:      "عبدالرحمن سالم",
				Phone:     "+966503456789",
				Address:   "شارع التحلية، جدة",
				Latitude:  "21.4858",
				Longitude: "39.1925",
			},
			Items: []Item{
				{ID: "1", NameAr: "تفاح أحمر", NameEn: "Red Apple", Quantity: 1, Price: price("12.5")},
				{ID: "4", NameAr: "حليب", NameEn: "Milk", Quantity: 2, Price: price("6")},
			},
			Total:         price("24.5"),
			Status:        enums.OrderStatusPending,
			Type:          enums.OrderTypeDelivery,
			PaymentMethod: enums.PaymentMethodCash,
			CreatedAt:     now.Add(-10 * time.Minute),
			UpdatedAt:     now.Add(-10 * time.Minute),
		},
	}
}
