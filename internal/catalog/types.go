package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/pkg/types"
)

type Category struct {
	ID       types.ID `json:"id"`
	NameAr   string   `json:"nameAr"`
	NameEn   string   `json:"nameEn"`
	IsActive bool     `json:"isActive"`
}

type CategoryInput struct {
	NameAr   string `json:"nameAr" validate:"required"`
	NameEn   string `json:"nameEn" validate:"required"`
	IsActive bool   `json:"isActive"`
}

type CategoryPatch struct {
	NameAr   *string `json:"nameAr,omitempty"`
	NameEn   *string `json:"nameEn,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (p CategoryPatch) apply(c *Category) {
	if p.NameAr != nil {
		c.NameAr = *p.NameAr
	}
	if p.NameEn != nil {
		c.NameEn = *p.NameEn
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// Unit is a sale unit such as kilogram or pack.
type Unit struct {
	ID       types.ID `json:"id"`
	NameAr   string   `json:"nameAr"`
	NameEn   string   `json:"nameEn"`
	ShortAr  string   `json:"shortAr"`
	ShortEn  string   `json:"shortEn"`
	IsActive bool     `json:"isActive"`
}

type UnitInput struct {
	NameAr   string `json:"nameAr" validate:"required"`
	NameEn   string `json:"nameEn" validate:"required"`
	ShortAr  string `json:"shortAr"`
	ShortEn  string `json:"shortEn"`
	IsActive bool   `json:"isActive"`
}

type UnitPatch struct {
	NameAr   *string `json:"nameAr,omitempty"`
	NameEn   *string `json:"nameEn,omitempty"`
	ShortAr  *string `json:"shortAr,omitempty"`
	ShortEn  *string `json:"shortEn,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (p UnitPatch) apply(u *Unit) {
	if p.NameAr != nil {
		u.NameAr = *p.NameAr
	}
	if p.NameEn != nil {
		u.NameEn = *p.NameEn
	}
	if p.ShortAr != nil {
		u.ShortAr = *p.ShortAr
	}
	if p.ShortEn != nil {
		u.ShortEn = *p.ShortEn
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}

// Product is a sellable catalog entry. BasePrice, when set, is the price
// the cart charges.
type Product struct {
	ID            types.ID         `json:"id"`
	NameAr        string           `json:"nameAr"`
	NameEn        string           `json:"nameEn"`
	DescriptionAr string           `json:"descriptionAr,omitempty"`
	DescriptionEn string           `json:"descriptionEn,omitempty"`
	CategoryID    types.ID         `json:"categoryId"`
	UnitID        types.ID         `json:"unitId"`
	Price         decimal.Decimal  `json:"price"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// EffectivePrice is BasePrice when set and non-zero, else Price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.BasePrice != nil && !p.BasePrice.IsZero() {
		return *p.BasePrice
	}
	return p.Price
}

type ProductInput struct {
	NameAr        string           `json:"nameAr" validate:"required"`
	NameEn        string           `json:"nameEn" validate:"required"`
	DescriptionAr string           `json:"descriptionAr"`
	DescriptionEn string           `json:"descriptionEn"`
	CategoryID    types.ID         `json:"categoryId" validate:"required"`
	UnitID        types.ID         `json:"unitId" validate:"required"`
	Price         decimal.Decimal  `json:"price"`
	BasePrice     *decimal.Decimal `json:"basePrice"`
	ImageURL      string           `json:"imageUrl"`
}

type ProductPatch struct {
	NameAr        *string          `json:"nameAr,omitempty"`
	NameEn        *string          `json:"nameEn,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	DescriptionEn *string          `json:"descriptionEn,omitempty"`
	CategoryID    *types.ID        `json:"categoryId,omitempty"`
	UnitID        *types.ID        `json:"unitId,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

func (p ProductPatch) apply(prod *Product) {
	if p.NameAr != nil {
		prod.NameAr = *p.NameAr
	}
	if p.NameEn != nil {
		prod.NameEn = *p.NameEn
	}
	if p.DescriptionAr != nil {
		prod.DescriptionAr = *p.DescriptionAr
	}
	if p.DescriptionEn != nil {
		prod.DescriptionEn = *p.DescriptionEn
	}
	if p.CategoryID != nil {
		prod.CategoryID = p.CategoryID.Normalized()
	}
	if p.UnitID != nil {
		prod.UnitID = p.UnitID.Normalized()
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.BasePrice != nil {
		base := *p.BasePrice
		prod.BasePrice = &base
	}
	if p.ImageURL != nil {
		prod.ImageURL = *p.ImageURL
	}
	if p.IsActive != nil {
		prod.IsActive = *p.IsActive
	}
}
