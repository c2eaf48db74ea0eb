package catalog

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/types"
)

const (
	CategoriesKey = "admin_categories"
	UnitsKey      = "admin_units"
	ProductsKey   = "admin_products"
)

// Store holds the categories, units and products lists. Each list
// persists under its own key.
type Store struct {
	deps state.Deps

	mu         sync.RWMutex
	categories []Category
	units      []Unit
	products   []Product
	revs       map[string]*state.Revision
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{
		deps:       deps,
		categories: DefaultCategories(),
		units:      DefaultUnits(),
		products:   DefaultProducts(),
		revs: map[string]*state.Revision{
			CategoriesKey: {},
			UnitsKey:      {},
			ProductsKey:   {},
		},
	}, nil
}

// Load replaces the in-memory lists with the stored ones. Lists that fall
// back to defaults are marked dirty so the next Save writes them.
func (s *Store) Load(ctx context.Context) {
	categories, catStored := state.LoadJSON(ctx, s.deps, CategoriesKey, DefaultCategories)
	units, unitStored := state.LoadJSON(ctx, s.deps, UnitsKey, DefaultUnits)
	products, prodStored := state.LoadJSON(ctx, s.deps, ProductsKey, DefaultProducts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = state.NonNil(categories)
	s.units = state.NonNil(units)
	s.products = state.NonNil(products)
	s.revs[CategoriesKey].Reset(catStored)
	s.revs[UnitsKey].Reset(unitStored)
	s.revs[ProductsKey].Reset(prodStored)
}

// Save writes every list changed since the last Load or Save.
func (s *Store) Save(ctx context.Context) error {
	type snapshot struct {
		value   any
		version uint64
	}

	s.mu.RLock()
	pending := map[string]snapshot{}
	if s.revs[CategoriesKey].Dirty() {
		pending[CategoriesKey] = snapshot{append(make([]Category, 0, len(s.categories)), s.categories...), s.revs[CategoriesKey].Current()}
	}
	if s.revs[UnitsKey].Dirty() {
		pending[UnitsKey] = snapshot{append(make([]Unit, 0, len(s.units)), s.units...), s.revs[UnitsKey].Current()}
	}
	if s.revs[ProductsKey].Dirty() {
		pending[ProductsKey] = snapshot{append(make([]Product, 0, len(s.products)), s.products...), s.revs[ProductsKey].Current()}
	}
	s.mu.RUnlock()

	var errs error
	for key, snap := range pending {
		if err := state.SaveJSON(ctx, s.deps, key, snap.value); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.mu.Lock()
		s.revs[key].MarkSaved(snap.version)
		s.mu.Unlock()
	}
	return errs
}

// Dirty reports whether any list has unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rev := range s.revs {
		if rev.Dirty() {
			return true
		}
	}
	return false
}

func (s *Store) AddCategory(input CategoryInput) types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.deps.NewID()
	s.categories = append(s.categories, Category{
		ID:       id,
		NameAr:   input.NameAr,
		NameEn:   input.NameEn,
		IsActive: input.IsActive,
	})
	s.revs[CategoriesKey].Touch()
	return id
}

// UpdateCategory merges patch into the category with id.
func (s *Store) UpdateCategory(id types.ID, patch CategoryPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID.Equal(id) {
			patch.apply(&s.categories[i])
			s.revs[CategoriesKey].Touch()
			return true
		}
	}
	return false
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.categories...)
}

func (s *Store) ActiveCategories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) AddUnit(input UnitInput) types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.deps.NewID()
	s.units = append(s.units, Unit{
		ID:       id,
		NameAr:   input.NameAr,
		NameEn:   input.NameEn,
		ShortAr:  input.ShortAr,
		ShortEn:  input.ShortEn,
		IsActive: input.IsActive,
	})
	s.revs[UnitsKey].Touch()
	return id
}

func (s *Store) UpdateUnit(id types.ID, patch UnitPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.units {
		if s.units[i].ID.Equal(id) {
			patch.apply(&s.units[i])
			s.revs[UnitsKey].Touch()
			return true
		}
	}
	return false
}

func (s *Store) Units() []Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Unit(nil), s.units...)
}

// AddProduct appends an active product stamped with the current time.
func (s *Store) AddProduct(input ProductInput) types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.deps.NewID()
	product := Product{
		ID:            id,
		NameAr:        input.NameAr,
		NameEn:        input.NameEn,
		DescriptionAr: input.DescriptionAr,
		DescriptionEn: input.DescriptionEn,
		CategoryID:    input.CategoryID.Normalized(),
		UnitID:        input.UnitID.Normalized(),
		Price:         input.Price,
		ImageURL:      input.ImageURL,
		IsActive:      true,
		CreatedAt:     s.deps.Clock(),
	}
	if input.BasePrice != nil {
		base := *input.BasePrice
		product.BasePrice = &base
	}
	s.products = append(s.products, product)
	s.revs[ProductsKey].Touch()
	return id
}

func (s *Store) UpdateProduct(id types.ID, patch ProductPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID.Equal(id) {
			patch.apply(&s.products[i])
			s.revs[ProductsKey].Touch()
			return true
		}
	}
	return false
}

func (s *Store) DeactivateProduct(id types.ID) bool {
	inactive := false
	return s.UpdateProduct(id, ProductPatch{IsActive: &inactive})
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.products...)
}

func (s *Store) Product(id types.ID) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID.Equal(id) {
			return p, true
		}
	}
	return Product{}, false
}
