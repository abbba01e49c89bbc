package repositories

import (
	"loja/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// SaveWithProducts is the atomic-commit primitive for the two-aggregate
// operations (add item, remove item, cancel): the order and every touched
// product are persisted in a single transaction, so a crash can never leave
// stock decremented without the matching order item, or vice versa.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByCustomerID(customerID string) ([]models.Order, error)
	GetByStatus(status models.OrderStatus) ([]models.Order, error)
	GetByCustomerIDAndStatus(customerID string, status models.OrderStatus) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	SaveWithProducts(order *models.Order, products []*models.Product) error
}
