package models

import (
	"strings"

	"github.com/google/uuid"
)

// OrderItem is an immutable snapshot of a product at the moment it was added
// to an order: id, name and unit price are frozen, so later catalog changes
// never retroactively alter existing orders. TotalPrice is computed once at
// construction and never recomputed.
type OrderItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   Money  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	TotalPrice  Money  `json:"total_price"`
}

// NewOrderItem creates an order item, freezing TotalPrice = UnitPrice × Quantity.
func NewOrderItem(productID, productName string, unitPrice Money, quantity int) (OrderItem, error) {
	if strings.TrimSpace(productID) == "" {
		return OrderItem{}, NewValidationError("product ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return OrderItem{}, NewValidationError("product name cannot be empty")
	}
	if unitPrice.Currency == "" {
		return OrderItem{}, NewValidationError("unit price is required")
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, NewValidationError("unit price must not be negative")
	}
	if quantity <= 0 {
		return OrderItem{}, NewValidationError("quantity must be positive")
	}

	return OrderItem{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: strings.TrimSpace(productName),
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		TotalPrice:  unitPrice.MultiplyInt(quantity),
	}, nil
}

// NewOrderItemFromProduct snapshots the product's current identity, name and
// price. The product must be available and carry enough stock.
func NewOrderItemFromProduct(product *Product, quantity int) (OrderItem, error) {
	if product == nil {
		return OrderItem{}, NewValidationError("product cannot be nil")
	}
	if !product.IsAvailable() {
		return OrderItem{}, NewIllegalStateError("product is not available: %s", product.Name)
	}
	if !product.HasStock(quantity) {
		return OrderItem{}, NewIllegalStateError("insufficient stock for product: %s", product.Name)
	}
	return NewOrderItem(product.ID, product.Name, product.Price, quantity)
}

// ReconstructOrderItem rebuilds an item from stored state, keeping the frozen
// TotalPrice exactly as persisted.
func ReconstructOrderItem(id, productID, productName string, unitPrice Money, quantity int, totalPrice Money) OrderItem {
	return OrderItem{
		ID:          id,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
	}
}

// IsForProduct reports whether this item snapshots the given product.
func (i OrderItem) IsForProduct(productID string) bool {
	return i.ProductID == productID
}
