package repositories

import (
	"loja/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	GetByID(id string) (*models.Customer, error)
	GetByEmail(email models.Email) (*models.Customer, error)
	ExistsByEmail(email models.Email) (bool, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
}
