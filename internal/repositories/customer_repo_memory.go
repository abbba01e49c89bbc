package repositories

import (
	"sort"
	"sync"

	"loja/internal/models"
)

// MemoryCustomerRepository keeps customers in a map.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]models.Customer
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{customers: make(map[string]models.Customer)}
}

func (r *MemoryCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customers := make([]models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, cloneCustomer(customer))
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.Before(customers[j].CreatedAt)
	})
	return customers, nil
}

func (r *MemoryCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, models.NewCustomerNotFound(id)
	}
	copy := cloneCustomer(customer)
	return &copy, nil
}

func (r *MemoryCustomerRepository) GetByEmail(email models.Email) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, customer := range r.customers {
		if customer.Email == email {
			copy := cloneCustomer(customer)
			return &copy, nil
		}
	}
	return nil, models.NewCustomerNotFound(email.String())
}

func (r *MemoryCustomerRepository) ExistsByEmail(email models.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, customer := range r.customers {
		if customer.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = cloneCustomer(*customer)
	return nil
}

func (r *MemoryCustomerRepository) Update(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return models.NewCustomerNotFound(customer.ID)
	}
	r.customers[customer.ID] = cloneCustomer(*customer)
	return nil
}

func cloneCustomer(customer models.Customer) models.Customer {
	if customer.Address != nil {
		address := *customer.Address
		customer.Address = &address
	}
	return customer
}
