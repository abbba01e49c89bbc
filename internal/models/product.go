package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. It owns its stock count and availability rules:
// the stock quantity is never negative and a product is only available while
// it is active and has stock.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         Money     `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      string    `json:"category"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewProduct creates an active product with a fresh ID and timestamps.
func NewProduct(name, description string, price Money, stockQuantity int, category string) (*Product, error) {
	now := time.Now()
	product := &Product{
		ID:        uuid.New().String(),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := product.UpdateInfo(name, description, price, stockQuantity, category); err != nil {
		return nil, err
	}
	return product, nil
}

// ReconstructProduct rebuilds a product from stored state without
// re-validating, e.g. when loading from the database.
func ReconstructProduct(id, name, description string, price Money, stockQuantity int,
	category string, active bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		ID:            id,
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		Category:      category,
		Active:        active,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// UpdateInfo re-validates and overwrites the product's catalog data
// atomically: either every field passes validation or nothing changes.
func (p *Product) UpdateInfo(name, description string, price Money, stockQuantity int, category string) error {
	if err := validateProductData(name, description, price, stockQuantity, category); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Price = price
	p.StockQuantity = stockQuantity
	p.Category = strings.TrimSpace(category)
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice replaces the price, rejecting negative values.
func (p *Product) UpdatePrice(newPrice Money) error {
	if newPrice.IsNegative() {
		return NewValidationError("product price must not be negative")
	}
	p.Price = newPrice
	p.UpdatedAt = time.Now()
	return nil
}

// AddStock increments the stock quantity.
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity to add must be positive")
	}
	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveStock decrements the stock quantity, never letting it go negative.
func (p *Product) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity to remove must be positive")
	}
	if p.StockQuantity < quantity {
		return NewIllegalStateError("insufficient stock for product '%s'. Available: %d, Requested: %d",
			p.Name, p.StockQuantity, quantity)
	}
	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// Activate puts the product back on sale.
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// Deactivate takes the product off sale without touching its stock.
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// IsAvailable reports whether the product can be added to orders.
func (p *Product) IsAvailable() bool {
	return p.Active && p.StockQuantity > 0
}

// HasStock reports whether at least the requested quantity is in stock.
func (p *Product) HasStock(requested int) bool {
	return p.StockQuantity >= requested
}

// TotalPriceFor returns the price for the given quantity of this product.
func (p *Product) TotalPriceFor(quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, NewValidationError("quantity must be positive")
	}
	return p.Price.MultiplyInt(quantity), nil
}

func validateProductData(name, description string, price Money, stockQuantity int, category string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("product name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return NewValidationError("product description cannot be empty")
	}
	if price.Currency == "" {
		return NewValidationError("product price is required")
	}
	if price.IsNegative() {
		return NewValidationError("product price must not be negative")
	}
	if stockQuantity < 0 {
		return NewValidationError("stock quantity cannot be negative")
	}
	if strings.TrimSpace(category) == "" {
		return NewValidationError("product category cannot be empty")
	}
	return nil
}
