package services_test

import (
	"fmt"
	"sync"
	"testing"

	"loja/internal/models"
	"loja/internal/repositories"
	"loja/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixture wires the order service against in-memory repositories with one
// registered customer.
type fixture struct {
	orders    *services.OrderService
	products  *services.ProductService
	customers *services.CustomerService

	orderRepo    *repositories.MemoryOrderRepository
	productRepo  *repositories.MemoryProductRepository
	customerRepo *repositories.MemoryCustomerRepository

	customer *models.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	productRepo := repositories.NewMemoryProductRepository()
	orderRepo := repositories.NewMemoryOrderRepository(productRepo)
	customerRepo := repositories.NewMemoryCustomerRepository()

	customers := services.NewCustomerService(customerRepo)
	customer, err := customers.RegisterCustomer("Maria", "Silva", "maria@example.com", "", nil)
	require.NoError(t, err)

	return &fixture{
		orders:       services.NewOrderService(orderRepo, productRepo, customerRepo, nil),
		products:     services.NewProductService(productRepo, nil),
		customers:    customers,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		customer:     customer,
	}
}

func (f *fixture) newProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	money, err := models.NewMoneyFromFloat(price, "BRL")
	require.NoError(t, err)
	product, err := f.products.CreateProduct(name, "test product", money, stock, "Eletrônicos")
	require.NoError(t, err)
	return product
}

func (f *fixture) newOrder(t *testing.T) *models.Order {
	t.Helper()
	addr, err := models.NewAddress("Rua das Flores", "123", "", "Centro", "São Paulo", "SP", "01000-000", "")
	require.NoError(t, err)
	order, err := f.orders.CreateOrder(f.customer.ID, addr)
	require.NoError(t, err)
	return order
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)

	order := f.newOrder(t)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.IsEmpty())
	assert.True(t, order.TotalAmount.IsZero())
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	f := newFixture(t)
	addr, _ := models.NewAddress("Rua A", "1", "", "Centro", "São Paulo", "SP", "01000-000", "")

	_, err := f.orders.CreateOrder("missing", addr)
	assert.True(t, models.IsNotFound(err))
}

func TestCreateOrder_InactiveCustomer(t *testing.T) {
	f := newFixture(t)
	_, err := f.customers.DeactivateCustomer(f.customer.ID)
	require.NoError(t, err)

	addr, _ := models.NewAddress("Rua A", "1", "", "Centro", "São Paulo", "SP", "01000-000", "")
	_, err = f.orders.CreateOrder(f.customer.ID, addr)
	assert.True(t, models.IsValidation(err))
}

// Covers the full lifecycle scenario: add an item, confirm, try to modify,
// cancel, and watch total and stock stay in lockstep throughout.
func TestOrderLifecycle_Scenario(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Fone de Ouvido", 10.00, 5)
	order := f.newOrder(t)

	order, err := f.orders.AddItem(order.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "BRL 20.00", order.TotalAmount.String())

	stored, err := f.products.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.StockQuantity)

	order, err = f.orders.Confirm(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	_, err = f.orders.AddItem(order.ID, product.ID, 1)
	assert.True(t, models.IsIllegalState(err), "confirmed orders reject new items")

	order, err = f.orders.Cancel(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	stored, err = f.products.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity, "cancelling restores the stock")
}

func TestAddItem_Failures(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Teclado", 150.00, 3)
	order := f.newOrder(t)

	t.Run("order not found", func(t *testing.T) {
		_, err := f.orders.AddItem("missing", product.ID, 1)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("product not found", func(t *testing.T) {
		_, err := f.orders.AddItem(order.ID, "missing", 1)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		_, err := f.orders.AddItem(order.ID, product.ID, 10)
		assert.True(t, models.IsValidation(err))
	})

	t.Run("inactive product", func(t *testing.T) {
		_, err := f.products.DeactivateProduct(product.ID)
		require.NoError(t, err)
		_, err = f.orders.AddItem(order.ID, product.ID, 1)
		assert.True(t, models.IsValidation(err))
		_, err = f.products.ActivateProduct(product.ID)
		require.NoError(t, err)
	})

	t.Run("duplicate product", func(t *testing.T) {
		_, err := f.orders.AddItem(order.ID, product.ID, 1)
		require.NoError(t, err)
		_, err = f.orders.AddItem(order.ID, product.ID, 1)
		assert.True(t, models.IsValidation(err))
	})
}

func TestRemoveItem_RoundTripRestoresState(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Mouse", 80.00, 4)
	order := f.newOrder(t)

	order, err := f.orders.AddItem(order.ID, product.ID, 3)
	require.NoError(t, err)
	itemID := order.Items[0].ID

	order, err = f.orders.RemoveItem(order.ID, itemID)
	require.NoError(t, err)
	assert.True(t, order.IsEmpty())
	assert.True(t, order.TotalAmount.IsZero(), "total returns to its pre-add value")

	stored, err := f.products.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.StockQuantity, "stock returns to its pre-add value")
}

func TestRemoveItem_ItemNotFound(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t)

	_, err := f.orders.RemoveItem(order.ID, "missing-item")
	assert.True(t, models.IsNotFound(err))
}

func TestConfirm_Failures(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Monitor", 900.00, 2)

	empty := f.newOrder(t)
	_, err := f.orders.Confirm(empty.ID)
	assert.True(t, models.IsValidation(err), "empty orders cannot be confirmed")

	order := f.newOrder(t)
	_, err = f.orders.AddItem(order.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.orders.Cancel(order.ID)
	require.NoError(t, err)

	_, err = f.orders.Confirm(order.ID)
	assert.True(t, models.IsValidation(err), "completed orders cannot be confirmed")
}

func TestCancel_ShippedOrderIsRejected(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Webcam", 250.00, 2)
	order := f.newOrder(t)

	_, err := f.orders.AddItem(order.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.orders.Confirm(order.ID)
	require.NoError(t, err)
	_, err = f.orders.StartPreparing(order.ID)
	require.NoError(t, err)
	_, err = f.orders.Ship(order.ID)
	require.NoError(t, err)

	_, err = f.orders.Cancel(order.ID)
	assert.True(t, models.IsValidation(err), "shipped orders cannot be recalled")

	stored, err := f.products.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.StockQuantity, "failed cancel must not touch stock")
}

func TestCancel_RestoresEveryProduct(t *testing.T) {
	f := newFixture(t)
	first := f.newProduct(t, "Caneca", 25.00, 10)
	second := f.newProduct(t, "Camiseta", 60.00, 8)
	order := f.newOrder(t)

	_, err := f.orders.AddItem(order.ID, first.ID, 4)
	require.NoError(t, err)
	_, err = f.orders.AddItem(order.ID, second.ID, 2)
	require.NoError(t, err)

	_, err = f.orders.Cancel(order.ID)
	require.NoError(t, err)

	for _, expected := range []struct {
		id    string
		stock int
	}{{first.ID, 10}, {second.ID, 8}} {
		stored, err := f.products.GetProductByID(expected.id)
		require.NoError(t, err)
		assert.Equal(t, expected.stock, stored.StockQuantity)
	}
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Cabo HDMI", 40.00, 5)
	order := f.newOrder(t)

	_, err := f.orders.AddItem(order.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = f.orders.Ship(order.ID)
	require.Error(t, err, "cannot ship a pending order")
	assert.True(t, models.IsIllegalState(err))
	assert.Contains(t, err.Error(), "PENDING")
	assert.Contains(t, err.Error(), "SHIPPED")

	for _, step := range []func(string) (*models.Order, error){
		f.orders.Confirm, f.orders.StartPreparing, f.orders.Ship, f.orders.Deliver,
	} {
		_, err := step(order.ID)
		require.NoError(t, err)
	}

	loaded, err := f.orders.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, loaded.Status)
}

func TestGetOrdersByStatus_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.GetOrdersByStatus("UNKNOWN")
	assert.True(t, models.IsValidation(err))

	_, err = f.orders.GetOrdersByCustomerAndStatus(f.customer.ID, "UNKNOWN")
	assert.True(t, models.IsValidation(err))
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Livro", 50.00, 10)

	first := f.newOrder(t)
	_, err := f.orders.AddItem(first.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.orders.Confirm(first.ID)
	require.NoError(t, err)

	f.newOrder(t)

	all, err := f.orders.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCustomer, err := f.orders.GetOrdersByCustomer(f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	confirmed, err := f.orders.GetOrdersByStatus("CONFIRMED")
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.ID, confirmed[0].ID)

	pending, err := f.orders.GetOrdersByCustomerAndStatus(f.customer.ID, "PENDING")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

// Parallel mutations on one order: every goroutine adds a distinct product,
// and afterwards the total must equal the sum of the items and every stock
// count must have moved exactly once.
func TestAddItem_ConcurrentOnOneOrder(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t)

	const workers = 16
	products := make([]*models.Product, workers)
	for i := range products {
		products[i] = f.newProduct(t, fmt.Sprintf("Produto %02d", i), 10.00, 5)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.orders.AddItem(order.ID, products[i].ID, 1)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	loaded, err := f.orders.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, loaded.TotalItems())
	assert.Equal(t, fmt.Sprintf("BRL %d.00", workers*10), loaded.TotalAmount.String())

	for _, product := range products {
		stored, err := f.products.GetProductByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, stored.StockQuantity)
	}
}

// Parallel orders racing for the same scarce product: stock can never go
// negative, so exactly stock-many adds succeed.
func TestAddItem_ConcurrentOnOneProduct(t *testing.T) {
	f := newFixture(t)
	product := f.newProduct(t, "Edição Limitada", 99.90, 5)

	const workers = 12
	orders := make([]*models.Order, workers)
	for i := range orders {
		orders[i] = f.newOrder(t)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := f.orders.AddItem(orders[i].ID, product.ID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded, "exactly stock-many adds may succeed")

	stored, err := f.products.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockQuantity)
	assert.GreaterOrEqual(t, stored.StockQuantity, 0, "stock never goes negative")
}

// Mock-based tests exercise paths the in-memory fixture cannot reach, e.g.
// repository failures after the domain mutation succeeded.
func TestAddItem_SaveFailurePropagates(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	productRepo := new(mockProductRepo)
	customerRepo := new(mockCustomerRepo)
	service := services.NewOrderService(orderRepo, productRepo, customerRepo, nil)

	addr, _ := models.NewAddress("Rua A", "1", "", "Centro", "São Paulo", "SP", "01000-000", "")
	order, err := models.NewOrder("customer-1", addr)
	require.NoError(t, err)

	price, _ := models.NewMoneyFromFloat(10.00, "BRL")
	product, err := models.NewProduct("Produto", "desc", price, 5, "Categoria")
	require.NoError(t, err)

	orderRepo.On("GetByID", order.ID).Return(order, nil)
	productRepo.On("GetByID", product.ID).Return(product, nil)
	saveErr := fmt.Errorf("connection reset")
	orderRepo.On("SaveWithProducts", order, mock.Anything).Return(saveErr)

	_, err = service.AddItem(order.ID, product.ID, 2)
	assert.ErrorIs(t, err, saveErr)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestConfirm_UpdateFailurePropagates(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	service := services.NewOrderService(orderRepo, new(mockProductRepo), new(mockCustomerRepo), nil)

	addr, _ := models.NewAddress("Rua A", "1", "", "Centro", "São Paulo", "SP", "01000-000", "")
	order, err := models.NewOrder("customer-1", addr)
	require.NoError(t, err)

	price, _ := models.NewMoneyFromFloat(10.00, "BRL")
	item, err := models.NewOrderItem("product-1", "Produto", price, 1)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))

	updateErr := fmt.Errorf("disk full")
	orderRepo.On("GetByID", order.ID).Return(order, nil)
	orderRepo.On("Update", order).Return(updateErr)

	_, err = service.Confirm(order.ID)
	assert.ErrorIs(t, err, updateErr)
	orderRepo.AssertExpectations(t)
}
