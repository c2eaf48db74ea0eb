package branches

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/pkg/types"
)

// StaffMember is an employee attached to a branch.
type StaffMember struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	IsActive bool     `json:"isActive"`
}

type Staff struct {
	PickupStaff  []StaffMember `json:"pickupStaff"`
	DeliveryBoys []StaffMember `json:"deliveryBoys"`
}

// ServiceWindow describes when a branch service is offered. Times are
// HH:MM in branch-local time.
type ServiceWindow struct {
	IsActive           bool   `json:"isActive"`
	IsAvailable24Hours bool   `json:"isAvailable24Hours"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	DisplayAr          string `json:"displayAr"`
	DisplayEn          string `json:"displayEn"`
}

type DeliveryService struct {
	ServiceWindow
	DeliveryRadius decimal.Decimal `json:"deliveryRadius"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	MinimumOrder   decimal.Decimal `json:"minimumOrder"`
}

type Branch struct {
	ID              types.ID        `json:"id"`
	NameAr          string          `json:"nameAr"`
	NameEn          string          `json:"nameEn"`
	AddressAr       string          `json:"addressAr"`
	AddressEn       string          `json:"addressEn"`
	Phone           string          `json:"phone"`
	Latitude        string          `json:"latitude"`
	Longitude       string          `json:"longitude"`
	PickupService   ServiceWindow   `json:"pickupService"`
	DeliveryService DeliveryService `json:"deliveryService"`
	Staff           Staff           `json:"staff"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FindStaff looks a member up in both staff lists.
func (b Branch) FindStaff(id types.ID) (StaffMember, bool) {
	for _, list := range [][]StaffMember{b.Staff.PickupStaff, b.Staff.DeliveryBoys} {
		for _, m := range list {
			if m.ID.Equal(id) {
				return m, true
			}
		}
	}
	return StaffMember{}, false
}

type BranchInput struct {
	NameAr          string          `json:"nameAr" validate:"required"`
	NameEn          string          `json:"nameEn" validate:"required"`
	AddressAr       string          `json:"addressAr"`
	AddressEn       string          `json:"addressEn"`
	Phone           string          `json:"phone"`
	Latitude        string          `json:"latitude"`
	Longitude       string          `json:"longitude"`
	PickupService   ServiceWindow   `json:"pickupService"`
	DeliveryService DeliveryService `json:"deliveryService"`
	Staff           Staff           `json:"staff"`
}

// BranchPatch replaces whole nested sections when they are present.
type BranchPatch struct {
	NameAr          *string          `json:"nameAr,omitempty"`
	NameEn          *string          `json:"nameEn,omitempty"`
	AddressAr       *string          `json:"addressAr,omitempty"`
	AddressEn       *string          `json:"addressEn,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	Latitude        *string          `json:"latitude,omitempty"`
	Longitude       *string          `json:"longitude,omitempty"`
	PickupService   *ServiceWindow   `json:"pickupService,omitempty"`
	DeliveryService *DeliveryService `json:"deliveryService,omitempty"`
	Staff           *Staff           `json:"staff,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

func (p BranchPatch) apply(b *Branch) {
	if p.NameAr != nil {
		b.NameAr = *p.NameAr
	}
	if p.NameEn != nil {
		b.NameEn = *p.NameEn
	}
	if p.AddressAr != nil {
		b.AddressAr = *p.AddressAr
	}
	if p.AddressEn != nil {
		b.AddressEn = *p.AddressEn
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Latitude != nil {
		b.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		b.Longitude = *p.Longitude
	}
	if p.PickupService != nil {
		b.PickupService = *p.PickupService
	}
	if p.DeliveryService != nil {
		b.DeliveryService = *p.DeliveryService
	}
	if p.Staff != nil {
		b.Staff = cloneStaff(*p.Staff)
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
}

func cloneStaff(s Staff) Staff {
	return Staff{
		PickupStaff:  append([]StaffMember{}, s.PickupStaff...),
		DeliveryBoys: append([]StaffMember{}, s.DeliveryBoys...),
	}
}

func cloneBranch(b Branch) Branch {
	b.Staff = cloneStaff(b.Staff)
	return b
}
