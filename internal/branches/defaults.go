package branches

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBranches returns the two seed branches stamped with now.
func DefaultBranches(now time.Time) []Branch {
	return []Branch{
		{
			ID:        "1",
			NameAr:    "فرع الرياض الرئيسي",
			NameEn:    "Riyadh Main Branch",
			AddressAr: "الرياض، حي العليا، شارع الملك فهد",
			AddressEn: "Riyadh, Olaya District, King Fahd Road",
			Phone:     "+966 11 123 4567",
			Latitude:  "24.7136",
			Longitude: "46.6753",
			PickupService: ServiceWindow{
				IsActive:  true,
				StartTime: "08:00",
				EndTime:   "22:00",
				DisplayAr: "8:00 ص - 10:00 م",
				DisplayEn: "8:00 AM - 10:00 PM",
			},
			DeliveryService: DeliveryService{
				ServiceWindow: ServiceWindow{
					IsActive:  true,
					StartTime: "08:00",
					EndTime:   "23:00",
					DisplayAr: "8:00 ص - 11:00 م",
					DisplayEn: "8:00 AM - 11:00 PM",
				},
				DeliveryRadius: decimal.NewFromInt(15),
				DeliveryFee:    decimal.NewFromInt(15),
				MinimumOrder:   decimal.NewFromInt(50),
			},
			Staff: Staff{
				PickupStaff: []StaffMember{
					{ID: "1", Name: "أحمد محمد", Phone: "+966501111111", IsActive: true},
					{ID: "2", Name: "سارة أحمد", Phone: "+966501111112", IsActive: true},
				},
				DeliveryBoys: []StaffMember{
					{ID: "3", Name: "محمد علي", Phone: "+966501111113", IsActive: true},
					{ID: "4", Name: "عبدالله سالم", Phone: "+966501111114", IsActive: true},
					{ID: "5", Name: "فهد الشهري", Phone: "+966501111115", IsActive: true},
				},
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "2",
			NameAr:    "فرع جدة",
			NameEn:    "Jeddah Branch",
			AddressAr: "جدة، حي الروضة، شارع الأمير سلطان",
			AddressEn: "Jeddah, Al Rawda District, Prince Sultan Street",
			Phone:     "+966 12 234 5678",
			Latitude:  "21.4858",
			Longitude: "39.1925",
			PickupService: ServiceWindow{
				IsActive:  true,
				StartTime: "09:00",
				EndTime:   "21:00",
				DisplayAr: "9:00 ص - 9:00 م",
				DisplayEn: "9:00 AM - 9:00 PM",
			},
			DeliveryService: DeliveryService{
				ServiceWindow: ServiceWindow{
					IsActive:  true,
					StartTime: "09:00",
					EndTime:   "22:00",
					DisplayAr: "9:00 ص - 10:00 م",
					DisplayEn: "9:00 AM - 10:00 PM",
				},
				DeliveryRadius: decimal.NewFromInt(12),
				DeliveryFee:    decimal.NewFromInt(18),
				MinimumOrder:   decimal.NewFromInt(60),
			},
			Staff: Staff{
				PickupStaff: []StaffMember{
					{ID: "6", Name: "نورا عبدالله", Phone: "+966502222221", IsActive: true},
				},
				DeliveryBoys: []StaffMember{
					{ID: "7", Name: "خالد أحمد", Phone: "+966502222222", IsActive: true},
					{ID: "8", Name: "يوسف محمد", Phone: "+966502222223", IsActive: true},
				},
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
