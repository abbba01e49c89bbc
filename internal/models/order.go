package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order is the aggregate root for a customer order. It exclusively owns its
// items (at most one per product, kept in insertion order), its delivery
// address, its running total and its status, and it enforces the status
// state machine: the item collection is only mutable while the order is
// PENDING, and the total always equals the sum of the items' totals.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress Address     `json:"delivery_address"`
	Status          OrderStatus `json:"status"`
	TotalAmount     Money       `json:"total_amount"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewOrder creates an empty PENDING order for the given customer.
func NewOrder(customerID string, deliveryAddress Address) (*Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, NewValidationError("customer ID cannot be empty")
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Items:           []OrderItem{},
		DeliveryAddress: deliveryAddress,
		Status:          OrderStatusPending,
		TotalAmount:     ZeroBRL(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ReconstructOrder rebuilds an order from stored state without re-validating.
func ReconstructOrder(id, customerID string, items []OrderItem, deliveryAddress Address,
	status OrderStatus, totalAmount Money, createdAt, updatedAt time.Time) *Order {
	if items == nil {
		items = []OrderItem{}
	}
	return &Order{
		ID:              id,
		CustomerID:      customerID,
		Items:           items,
		DeliveryAddress: deliveryAddress,
		Status:          status,
		TotalAmount:     totalAmount,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// AddItem appends an item to the order and recomputes the total. The order
// must still be PENDING and must not already contain the item's product.
func (o *Order) AddItem(item OrderItem) error {
	if err := o.assertCanBeModified(); err != nil {
		return err
	}
	if item.ID == "" {
		return NewValidationError("order item cannot be empty")
	}
	if o.ContainsProduct(item.ProductID) {
		return NewIllegalStateError("product already exists in order. Remove it and add it again with the new quantity")
	}

	o.Items = append(o.Items, item)
	if err := o.recalculateTotal(); err != nil {
		// Roll the append back so a currency mismatch cannot leave the
		// total out of sync with the item list.
		o.Items = o.Items[:len(o.Items)-1]
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// RemoveItem deletes the item with the given ID and recomputes the total.
func (o *Order) RemoveItem(itemID string) error {
	if err := o.assertCanBeModified(); err != nil {
		return err
	}

	for i, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			if err := o.recalculateTotal(); err != nil {
				return err
			}
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return NewValidationError("item not found in order: %s", itemID)
}

// ClearItems removes every item from the order.
func (o *Order) ClearItems() error {
	if err := o.assertCanBeModified(); err != nil {
		return err
	}
	o.Items = []OrderItem{}
	if err := o.recalculateTotal(); err != nil {
		return err
	}
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateDeliveryAddress replaces the delivery address while the order is
// still PENDING.
func (o *Order) UpdateDeliveryAddress(newAddress Address) error {
	if err := o.assertCanBeModified(); err != nil {
		return err
	}
	o.DeliveryAddress = newAddress
	o.UpdatedAt = time.Now()
	return nil
}

// Confirm moves the order from PENDING to CONFIRMED. Empty orders cannot be
// confirmed.
func (o *Order) Confirm() error {
	if err := o.assertTransition(OrderStatusConfirmed); err != nil {
		return err
	}
	if o.IsEmpty() {
		return NewIllegalStateError("order must have at least one item")
	}
	o.setStatus(OrderStatusConfirmed)
	return nil
}

// StartPreparing moves the order from CONFIRMED to PREPARING.
func (o *Order) StartPreparing() error {
	if err := o.assertTransition(OrderStatusPreparing); err != nil {
		return err
	}
	o.setStatus(OrderStatusPreparing)
	return nil
}

// Ship moves the order from PREPARING to SHIPPED.
func (o *Order) Ship() error {
	if err := o.assertTransition(OrderStatusShipped); err != nil {
		return err
	}
	o.setStatus(OrderStatusShipped)
	return nil
}

// Deliver moves the order from SHIPPED to DELIVERED.
func (o *Order) Deliver() error {
	if err := o.assertTransition(OrderStatusDelivered); err != nil {
		return err
	}
	o.setStatus(OrderStatusDelivered)
	return nil
}

// Cancel moves the order to CANCELLED. Only PENDING, CONFIRMED and PREPARING
// orders can be cancelled; shipped goods cannot be recalled.
func (o *Order) Cancel() error {
	if !o.Status.CanBeCancelled() {
		return NewIllegalStateError("order cannot be cancelled in status: %s", o.Status)
	}
	o.setStatus(OrderStatusCancelled)
	return nil
}

// IsEmpty reports whether the order has no items.
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// TotalItems returns the number of distinct items in the order.
func (o *Order) TotalItems() int {
	return len(o.Items)
}

// TotalQuantity returns the summed quantity across all items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// ContainsProduct reports whether any item snapshots the given product.
func (o *Order) ContainsProduct(productID string) bool {
	for _, item := range o.Items {
		if item.IsForProduct(productID) {
			return true
		}
	}
	return false
}

// FindItem returns the item with the given ID, if present.
func (o *Order) FindItem(itemID string) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return OrderItem{}, false
}

// CanBeModified reports whether the item collection is still mutable.
func (o *Order) CanBeModified() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted reports whether the order reached a terminal status.
func (o *Order) IsCompleted() bool {
	return o.Status.IsFinal()
}

func (o *Order) recalculateTotal() error {
	total := ZeroBRL()
	for _, item := range o.Items {
		sum, err := total.Add(item.TotalPrice)
		if err != nil {
			return err
		}
		total = sum
	}
	o.TotalAmount = total
	return nil
}

func (o *Order) assertCanBeModified() error {
	if !o.CanBeModified() {
		return NewIllegalStateError("order cannot be modified in status: %s", o.Status)
	}
	return nil
}

func (o *Order) assertTransition(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return NewIllegalStateError("cannot transition from status '%s' to '%s'", o.Status, next)
	}
	return nil
}

func (o *Order) setStatus(next OrderStatus) {
	o.Status = next
	o.UpdatedAt = time.Now()
}
