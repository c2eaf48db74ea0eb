package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/internal/catalog"
	"github.com/urbanexpress/storefront/pkg/types"
)

// Item is a cart line. BasePrice, when non-zero, is what the line costs.
type Item struct {
	ID        types.ID        `json:"id"`
	NameAr    string          `json:"nameAr"`
	NameEn    string          `json:"nameEn"`
	Price     decimal.Decimal `json:"price"`
	BasePrice decimal.Decimal `json:"basePrice"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	UnitID    types.ID        `json:"unitId"`
	Quantity  int             `json:"quantity"`
}

// UnitPrice is BasePrice when set, otherwise Price.
func (i Item) UnitPrice() decimal.Decimal {
	if !i.BasePrice.IsZero() {
		return i.BasePrice
	}
	return i.Price
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// FromProduct copies the display and price fields of a catalog product.
func FromProduct(p catalog.Product) Item {
	item := Item{
		ID:       p.ID.Normalized(),
		NameAr:   p.NameAr,
		NameEn:   p.NameEn,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		UnitID:   p.UnitID,
	}
	if p.BasePrice != nil {
		item.BasePrice = *p.BasePrice
	}
	return item
}

// Cart is the session-only shopping cart. It is never persisted.
type Cart struct {
	mu    sync.RWMutex
	items []Item
}

func New() *Cart {
	return &Cart{items: []Item{}}
}

func (c *Cart) indexLocked(id types.ID) int {
	for i := range c.items {
		if c.items[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing line or appends a new one.
func (c *Cart) AddItem(product Item, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(product.ID); i >= 0 {
		c.items[i].Quantity += quantity
		return
	}
	product.ID = product.ID.Normalized()
	product.Quantity = quantity
	c.items = append(c.items, product)
}

func (c *Cart) RemoveItem(id types.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id types.ID) {
	kept := c.items[:0:0]
	for _, item := range c.items {
		if !item.ID.Equal(id) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// UpdateQuantity sets the quantity of an existing line; q <= 0 removes it
// and unknown ids are ignored.
func (c *Cart) UpdateQuantity(id types.ID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(id)
		return
	}
	if i := c.indexLocked(id); i >= 0 {
		c.items[i].Quantity = quantity
	}
}

// SetItemQuantity sets or appends the line for product; q <= 0 removes it.
func (c *Cart) SetItemQuantity(product Item, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(product.ID)
		return
	}
	if i := c.indexLocked(product.ID); i >= 0 {
		c.items[i].Quantity = quantity
		return
	}
	product.ID = product.ID.Normalized()
	product.Quantity = quantity
	c.items = append(c.items, product)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []Item{}
}

func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]Item, 0, len(c.items)), c.items...)
}

// Count is the total number of units across lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}
