package services

import (
	"loja/internal/models"
	"loja/internal/repositories"
)

// ProductService handles catalog and stock management.
type ProductService struct {
	productRepo repositories.ProductRepository
	mq          EventPublisher
}

// NewProductService creates a new ProductService. mq may be nil to disable
// event publishing.
func NewProductService(productRepo repositories.ProductRepository, mq EventPublisher) *ProductService {
	return &ProductService{productRepo: productRepo, mq: mq}
}

// CreateProduct adds a new product to the catalog. Names are unique.
func (s *ProductService) CreateProduct(name, description string, price models.Money,
	stockQuantity int, category string) (*models.Product, error) {
	exists, err := s.productRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("product with name '%s' already exists", name)
	}

	product, err := models.NewProduct(name, description, price, stockQuantity, category)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventProductCreated, map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price.String(),
		"stock":      product.StockQuantity,
	})
	return product, nil
}

// UpdateProduct overwrites the product's catalog data.
func (s *ProductService) UpdateProduct(id, name, description string, price models.Money,
	stockQuantity int, category string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateInfo(name, description, price, stockQuantity, category); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// AddStock increments the product's stock.
func (s *ProductService) AddStock(id string, quantity int) (*models.Product, error) {
	return s.adjustStock(id, quantity, (*models.Product).AddStock)
}

// RemoveStock decrements the product's stock, never below zero.
func (s *ProductService) RemoveStock(id string, quantity int) (*models.Product, error) {
	return s.adjustStock(id, quantity, (*models.Product).RemoveStock)
}

func (s *ProductService) adjustStock(id string, quantity int, adjust func(*models.Product, int) error) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := adjust(product, quantity); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventProductStock, map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"stock":      product.StockQuantity,
	})
	return product, nil
}

// ActivateProduct puts the product back on sale.
func (s *ProductService) ActivateProduct(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Activate()
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct takes the product off sale without touching its stock.
func (s *ProductService) DeactivateProduct(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Deactivate()
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product from the catalog.
func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

// GetAllProducts retrieves the whole catalog.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetProductByID retrieves a single product.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductsByCategory retrieves every product in the category.
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.productRepo.GetByCategory(category)
}

// SearchProductsByName retrieves products whose name contains the term.
func (s *ProductService) SearchProductsByName(name string) ([]models.Product, error) {
	return s.productRepo.SearchByName(name)
}

// GetAvailableProducts retrieves active products with stock.
func (s *ProductService) GetAvailableProducts() ([]models.Product, error) {
	return s.productRepo.GetAvailable()
}

// GetCategories retrieves the distinct catalog categories.
func (s *ProductService) GetCategories() ([]string, error) {
	return s.productRepo.GetCategories()
}
