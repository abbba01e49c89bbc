package repositories

import (
	"sort"
	"strings"
	"sync"

	"loja/internal/models"
)

// MemoryProductRepository keeps products in a map. Used by tests and by the
// server when no database is configured.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[string]models.Product)}
}

func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Product) bool { return true }), nil
}

func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, models.NewProductNotFound(id)
	}
	return &product, nil
}

func (r *MemoryProductRepository) GetByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Category == category }), nil
}

func (r *MemoryProductRepository) SearchByName(name string) ([]models.Product, error) {
	needle := strings.ToLower(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

func (r *MemoryProductRepository) GetAvailable() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.IsAvailable() }), nil
}

func (r *MemoryProductRepository) GetCategories() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, product := range r.products {
		seen[product.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *MemoryProductRepository) ExistsByName(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if strings.EqualFold(product.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(product)
}

func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return models.NewProductNotFound(id)
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) updateLocked(product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return models.NewProductNotFound(product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) collect(match func(models.Product) bool) []models.Product {
	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		if match(product) {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products
}
