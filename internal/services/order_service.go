package services

import (
	"sort"
	"sync"

	"loja/internal/models"
	"loja/internal/repositories"
)

// OrderService orchestrates the order lifecycle. It is the only place where
// an order and the products behind its items are mutated together; every
// such operation goes through OrderRepository.SaveWithProducts so stock and
// order state move in lockstep.
//
// Mutating operations serialize on a keyed mutex per aggregate id (the order
// id plus every touched product id), so two concurrent requests cannot
// interleave their load-mutate-save cycles and drive stock negative. Locks
// are always taken order first, then products in sorted id order.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	mq           EventPublisher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrderService creates a new OrderService. mq may be nil to disable
// event publishing.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository,
	customerRepo repositories.CustomerRepository, mq EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		mq:           mq,
		locks:        make(map[string]*sync.Mutex),
	}
}

// lockKey acquires the mutex for the given aggregate id, creating it on
// first use, and returns the unlock function.
func (s *OrderService) lockKey(key string) func() {
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// CreateOrder creates a new empty PENDING order for the customer.
func (s *OrderService) CreateOrder(customerID string, deliveryAddress models.Address) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if !customer.CanPlaceOrders() {
		return nil, models.NewValidationError("customer cannot place orders: %s", customer.FullName())
	}

	order, err := models.NewOrder(customerID, deliveryAddress)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventOrderCreated, orderEventPayload(order))
	return order, nil
}

// AddItem snapshots the product into a new order item, decrements the
// product's stock and commits both aggregates atomically.
func (s *OrderService) AddItem(orderID, productID string, quantity int) (*models.Order, error) {
	defer s.lockKey(orderID)()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanBeModified() {
		return nil, models.NewIllegalStateError("order cannot be modified in status: %s", order.Status)
	}
	if order.ContainsProduct(productID) {
		return nil, models.NewValidationError("product already exists in order. Remove it and add it again with the new quantity")
	}

	defer s.lockKey(productID)()

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, models.NewValidationError("product is not active: %s", product.Name)
	}
	if !product.IsAvailable() {
		return nil, models.NewValidationError("product is not available: %s", product.Name)
	}
	if !product.HasStock(quantity) {
		return nil, models.NewValidationError("insufficient stock for product '%s'. Available: %d, Requested: %d",
			product.Name, product.StockQuantity, quantity)
	}

	item, err := models.NewOrderItemFromProduct(product, quantity)
	if err != nil {
		return nil, err
	}
	if err := order.AddItem(item); err != nil {
		return nil, err
	}
	if err := product.RemoveStock(quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithProducts(order, []*models.Product{product}); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventOrderItemAdded, map[string]interface{}{
		"order_id":   order.ID,
		"item_id":    item.ID,
		"product_id": product.ID,
		"quantity":   quantity,
		"total":      order.TotalAmount.String(),
	})
	return order, nil
}

// RemoveItem takes the item out of the order, returns its quantity to the
// product's stock and commits both aggregates atomically.
func (s *OrderService) RemoveItem(orderID, itemID string) (*models.Order, error) {
	defer s.lockKey(orderID)()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	item, ok := order.FindItem(itemID)
	if !ok {
		return nil, models.NewOrderItemNotFound(itemID)
	}

	defer s.lockKey(item.ProductID)()

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := product.AddStock(item.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithProducts(order, []*models.Product{product}); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventOrderItemRemoved, map[string]interface{}{
		"order_id":   order.ID,
		"item_id":    itemID,
		"product_id": product.ID,
		"quantity":   item.Quantity,
		"total":      order.TotalAmount.String(),
	})
	return order, nil
}

// Confirm transitions the order from PENDING to CONFIRMED.
func (s *OrderService) Confirm(orderID string) (*models.Order, error) {
	defer s.lockKey(orderID)()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return nil, models.NewValidationError("order is already completed: %s", order.ID)
	}
	if order.IsEmpty() {
		return nil, models.NewValidationError("order must have at least one item")
	}
	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventOrderConfirmed, orderEventPayload(order))
	return order, nil
}

// Cancel returns every item's quantity to its product's stock and
// transitions the order to CANCELLED. Stock restoration and the status
// change are committed in one transaction.
func (s *OrderService) Cancel(orderID string) (*models.Order, error) {
	defer s.lockKey(orderID)()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanBeCancelled() {
		return nil, models.NewValidationError("order cannot be cancelled in status: %s", order.Status)
	}

	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	sort.Strings(productIDs)
	for _, id := range productIDs {
		defer s.lockKey(id)()
	}

	products := make([]*models.Product, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if err := product.AddStock(item.Quantity); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithProducts(order, products); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventOrderCancelled, orderEventPayload(order))
	return order, nil
}

// StartPreparing transitions the order from CONFIRMED to PREPARING.
func (s *OrderService) StartPreparing(orderID string) (*models.Order, error) {
	return s.transition(orderID, (*models.Order).StartPreparing)
}

// Ship transitions the order from PREPARING to SHIPPED.
func (s *OrderService) Ship(orderID string) (*models.Order, error) {
	return s.transition(orderID, (*models.Order).Ship)
}

// Deliver transitions the order from SHIPPED to DELIVERED.
func (s *OrderService) Deliver(orderID string) (*models.Order, error) {
	return s.transition(orderID, (*models.Order).Deliver)
}

func (s *OrderService) transition(orderID string, move func(*models.Order) error) (*models.Order, error) {
	defer s.lockKey(orderID)()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := move(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	publishEvent(s.mq, EventOrderStatusUpdated, orderEventPayload(order))
	return order, nil
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByCustomer retrieves every order placed by the customer.
func (s *OrderService) GetOrdersByCustomer(customerID string) ([]models.Order, error) {
	return s.orderRepo.GetByCustomerID(customerID)
}

// GetOrdersByStatus retrieves every order in the given status.
func (s *OrderService) GetOrdersByStatus(status string) ([]models.Order, error) {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByStatus(parsed)
}

// GetOrdersByCustomerAndStatus combines both filters.
func (s *OrderService) GetOrdersByCustomerAndStatus(customerID, status string) ([]models.Order, error) {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByCustomerIDAndStatus(customerID, parsed)
}

func orderEventPayload(order *models.Order) map[string]interface{} {
	return map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"status":      order.Status.String(),
		"total":       order.TotalAmount.String(),
		"items":       order.TotalItems(),
	}
}
