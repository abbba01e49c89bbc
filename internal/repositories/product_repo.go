package repositories

import (
	"loja/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	SearchByName(name string) ([]models.Product, error)
	GetAvailable() ([]models.Product, error)
	GetCategories() ([]string, error)
	ExistsByName(name string) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
