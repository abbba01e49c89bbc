package repositories

import (
	"sort"
	"sync"

	"loja/internal/models"
)

// MemoryOrderRepository keeps orders in a map. It holds a reference to the
// product repository so SaveWithProducts can commit both aggregates under
// its own lock, mirroring the transactional GORM implementation.
type MemoryOrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]models.Order
	products *MemoryProductRepository
}

func NewMemoryOrderRepository(products *MemoryProductRepository) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Order) bool { return true }), nil
}

func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, models.NewOrderNotFound(id)
	}
	copy := cloneOrder(order)
	return &copy, nil
}

func (r *MemoryOrderRepository) GetByCustomerID(customerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o models.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *MemoryOrderRepository) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o models.Order) bool { return o.Status == status }), nil
}

func (r *MemoryOrderRepository) GetByCustomerIDAndStatus(customerID string, status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o models.Order) bool {
		return o.CustomerID == customerID && o.Status == status
	}), nil
}

func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *MemoryOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return models.NewOrderNotFound(order.ID)
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *MemoryOrderRepository) SaveWithProducts(order *models.Order, products []*models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return models.NewOrderNotFound(order.ID)
	}

	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	for _, product := range products {
		if _, ok := r.products.products[product.ID]; !ok {
			return models.NewProductNotFound(product.ID)
		}
	}
	for _, product := range products {
		r.products.products[product.ID] = *product
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *MemoryOrderRepository) collect(match func(models.Order) bool) []models.Order {
	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if match(order) {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders
}

func cloneOrder(order models.Order) models.Order {
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}
