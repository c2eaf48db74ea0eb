package catalog

func DefaultCategories() []Category {
	return []Category{
		{ID: "1", NameAr: "خضروات وفواكه", NameEn: "Fruits & Vegetables", IsActive: true},
		{ID: "2", NameAr: "منتجات الألبان", NameEn: "Dairy Products", IsActive: true},
		{ID: "3", NameAr: "اللحوم والدواجن", NameEn: "Meat & Poultry", IsActive: true},
		{ID: "4", NameAr: "المخبوزات", NameEn: "Bakery", IsActive: true},
		{ID: "5", NameAr: "التوابل والبهارات", NameEn: "Spices & Seasonings", IsActive: true},
	}
}

func DefaultUnits() []Unit {
	return []Unit{
		{ID: "1", NameAr: "كيلوجرام", NameEn: "Kilogram", ShortAr: "كجم", ShortEn: "kg", IsActive: true},
		{ID: "2", NameAr: "جرام", NameEn: "Gram", ShortAr: "جم", ShortEn: "g", IsActive: true},
		{ID: "3", NameAr: "قطعة", NameEn: "Piece", ShortAr: "قطعة", ShortEn: "pc", IsActive: true},
		{ID: "4", NameAr: "عبوة", NameEn: "Pack", ShortAr: "عبوة", ShortEn: "pack", IsActive: true},
		{ID: "5", NameAr: "لتر", NameEn: "Liter", ShortAr: "لتر", ShortEn: "L", IsActive: true},
		{ID: "6", NameAr: "مليلتر", NameEn: "Milliliter", ShortAr: "مل", ShortEn: "ml", IsActive: true},
	}
}

// DefaultProducts is empty; products are entered by the admin.
func DefaultProducts() []Product {
	return []Product{}
}
