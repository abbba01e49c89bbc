package repositories_test

import (
	"testing"

	"loja/internal/models"
	"loja/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

func newStoredProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	money, err := models.NewMoneyFromFloat(price, "BRL")
	require.NoError(t, err)
	product, err := models.NewProduct(name, "test product", money, stock, "Eletrônicos")
	require.NoError(t, err)
	return product
}

func newStoredOrder(t *testing.T, customerID string) *models.Order {
	t.Helper()
	addr, err := models.NewAddress("Rua das Flores", "123", "", "Centro", "São Paulo", "SP", "01000-000", "")
	require.NoError(t, err)
	order, err := models.NewOrder(customerID, addr)
	require.NoError(t, err)
	return order
}

func TestGormProductRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGormProductRepository(db)

	product := newStoredProduct(t, "Fone de Ouvido", 199.90, 10)
	require.NoError(t, repo.Create(product))

	loaded, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, loaded.Name)
	assert.Equal(t, "BRL 199.90", loaded.Price.String(), "price survives the round trip exactly")
	assert.Equal(t, 10, loaded.StockQuantity)
	assert.True(t, loaded.Active)
}

func TestGormProductRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGormProductRepository(db)

	_, err := repo.GetByID("missing")
	assert.True(t, models.IsNotFound(err))

	missing := newStoredProduct(t, "Fantasma", 1.00, 1)
	assert.True(t, models.IsNotFound(repo.Update(missing)))
	assert.True(t, models.IsNotFound(repo.Delete("missing")))
}

func TestGormProductRepository_Queries(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGormProductRepository(db)

	phone := newStoredProduct(t, "Smartphone", 1200.00, 5)
	require.NoError(t, repo.Create(phone))

	book := newStoredProduct(t, "Livro de Go", 89.90, 0)
	book.Category = "Livros"
	require.NoError(t, repo.Create(book))

	byCategory, err := repo.GetByCategory("Livros")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, book.ID, byCategory[0].ID)

	search, err := repo.SearchByName("smart")
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, phone.ID, search[0].ID)

	available, err := repo.GetAvailable()
	require.NoError(t, err)
	require.Len(t, available, 1, "out-of-stock product is not available")
	assert.Equal(t, phone.ID, available[0].ID)

	categories, err := repo.GetCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Eletrônicos", "Livros"}, categories)

	exists, err := repo.ExistsByName("SMARTPHONE")
	require.NoError(t, err)
	assert.True(t, exists, "name lookup is case-insensitive")
}

func TestGormOrderRepository_RoundTripPreservesItemOrder(t *testing.T) {
	db := openTestDB(t)
	productRepo := repositories.NewGormProductRepository(db)
	orderRepo := repositories.NewGormOrderRepository(db)

	order := newStoredOrder(t, "customer-1")
	require.NoError(t, orderRepo.Create(order))

	names := []string{"Zebra", "Abacaxi", "Mesa"}
	for _, name := range names {
		product := newStoredProduct(t, name, 10.00, 5)
		require.NoError(t, productRepo.Create(product))
		item, err := models.NewOrderItemFromProduct(product, 1)
		require.NoError(t, err)
		require.NoError(t, order.AddItem(item))
	}
	require.NoError(t, orderRepo.Update(order))

	loaded, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 3)
	for i, name := range names {
		assert.Equal(t, name, loaded.Items[i].ProductName, "items come back in insertion order")
	}
	assert.Equal(t, "BRL 30.00", loaded.TotalAmount.String())
	assert.Equal(t, models.OrderStatusPending, loaded.Status)
	assert.Equal(t, "São Paulo", loaded.DeliveryAddress.City)
	assert.Equal(t, "Brasil", loaded.DeliveryAddress.Country)
}

func TestGormOrderRepository_UpdateReplacesItems(t *testing.T) {
	db := openTestDB(t)
	productRepo := repositories.NewGormProductRepository(db)
	orderRepo := repositories.NewGormOrderRepository(db)

	product := newStoredProduct(t, "Caneca", 25.00, 10)
	require.NoError(t, productRepo.Create(product))

	order := newStoredOrder(t, "customer-1")
	item, err := models.NewOrderItemFromProduct(product, 2)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))
	require.NoError(t, orderRepo.Create(order))

	require.NoError(t, order.RemoveItem(item.ID))
	require.NoError(t, orderRepo.Update(order))

	loaded, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.True(t, loaded.TotalAmount.IsZero())

	var count int64
	require.NoError(t, db.Table("order_items").Count(&count).Error)
	assert.Zero(t, count, "removed item rows are deleted, not orphaned")
}

func TestGormOrderRepository_SaveWithProducts(t *testing.T) {
	db := openTestDB(t)
	productRepo := repositories.NewGormProductRepository(db)
	orderRepo := repositories.NewGormOrderRepository(db)

	product := newStoredProduct(t, "Teclado", 150.00, 5)
	require.NoError(t, productRepo.Create(product))

	order := newStoredOrder(t, "customer-1")
	require.NoError(t, orderRepo.Create(order))

	item, err := models.NewOrderItemFromProduct(product, 2)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))
	require.NoError(t, product.RemoveStock(2))

	require.NoError(t, orderRepo.SaveWithProducts(order, []*models.Product{product}))

	loadedOrder, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Len(t, loadedOrder.Items, 1)

	loadedProduct, err := productRepo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loadedProduct.StockQuantity)
}

func TestGormOrderRepository_SaveWithProducts_RollsBackOnMissingProduct(t *testing.T) {
	db := openTestDB(t)
	productRepo := repositories.NewGormProductRepository(db)
	orderRepo := repositories.NewGormOrderRepository(db)

	product := newStoredProduct(t, "Mouse", 80.00, 5)
	require.NoError(t, productRepo.Create(product))

	order := newStoredOrder(t, "customer-1")
	require.NoError(t, orderRepo.Create(order))

	item, err := models.NewOrderItemFromProduct(product, 1)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))

	ghost := newStoredProduct(t, "Fantasma", 1.00, 1)
	err = orderRepo.SaveWithProducts(order, []*models.Product{ghost})
	assert.True(t, models.IsNotFound(err))

	loaded, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items, "failed transaction leaves the order untouched")
}

func TestGormOrderRepository_QueriesByCustomerAndStatus(t *testing.T) {
	db := openTestDB(t)
	orderRepo := repositories.NewGormOrderRepository(db)
	productRepo := repositories.NewGormProductRepository(db)

	product := newStoredProduct(t, "Cabo USB", 20.00, 20)
	require.NoError(t, productRepo.Create(product))

	first := newStoredOrder(t, "alice")
	item, err := models.NewOrderItemFromProduct(product, 1)
	require.NoError(t, err)
	require.NoError(t, first.AddItem(item))
	require.NoError(t, first.Confirm())
	require.NoError(t, orderRepo.Create(first))

	second := newStoredOrder(t, "alice")
	require.NoError(t, orderRepo.Create(second))

	third := newStoredOrder(t, "bob")
	require.NoError(t, orderRepo.Create(third))

	byCustomer, err := orderRepo.GetByCustomerID("alice")
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	confirmed, err := orderRepo.GetByStatus(models.OrderStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.ID, confirmed[0].ID)

	both, err := orderRepo.GetByCustomerIDAndStatus("alice", models.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, second.ID, both[0].ID)
}

func TestGormCustomerRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGormCustomerRepository(db)

	email, err := models.NewEmail("maria@example.com")
	require.NoError(t, err)
	addr, err := models.NewAddress("Av. Paulista", "1000", "", "Bela Vista", "São Paulo", "SP", "01310-100", "")
	require.NoError(t, err)
	customer, err := models.NewCustomer("Maria", "Silva", email, "+55 11 98888-0000", &addr)
	require.NoError(t, err)

	require.NoError(t, repo.Create(customer))

	loaded, err := repo.GetByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", loaded.FullName())
	require.NotNil(t, loaded.Address)
	assert.Equal(t, "Av. Paulista", loaded.Address.Street)

	byEmail, err := repo.GetByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byEmail.ID)

	exists, err := repo.ExistsByEmail(email)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID("missing")
	assert.True(t, models.IsNotFound(err))
}

func TestGormCustomerRepository_NoAddress(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGormCustomerRepository(db)

	email, err := models.NewEmail("joao@example.com")
	require.NoError(t, err)
	customer, err := models.NewCustomer("João", "Santos", email, "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(customer))

	loaded, err := repo.GetByID(customer.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Address)
}

func TestMemoryProductRepository(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := newStoredProduct(t, "Monitor", 900.00, 3)
	require.NoError(t, repo.Create(product))

	loaded, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, loaded.Name)

	loaded.Name = "changed"
	reread, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor", reread.Name, "callers get copies, not shared state")

	exists, err := repo.ExistsByName("monitor")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(product.ID))
	_, err = repo.GetByID(product.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestMemoryOrderRepository_SaveWithProducts(t *testing.T) {
	productRepo := repositories.NewMemoryProductRepository()
	orderRepo := repositories.NewMemoryOrderRepository(productRepo)

	product := newStoredProduct(t, "Webcam", 250.00, 4)
	require.NoError(t, productRepo.Create(product))

	order := newStoredOrder(t, "customer-1")
	require.NoError(t, orderRepo.Create(order))

	item, err := models.NewOrderItemFromProduct(product, 3)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))
	require.NoError(t, product.RemoveStock(3))

	require.NoError(t, orderRepo.SaveWithProducts(order, []*models.Product{product}))

	loadedOrder, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Len(t, loadedOrder.Items, 1)

	loadedProduct, err := productRepo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loadedProduct.StockQuantity)
}

func TestMemoryCustomerRepository(t *testing.T) {
	repo := repositories.NewMemoryCustomerRepository()

	email, err := models.NewEmail("ana@example.com")
	require.NoError(t, err)
	customer, err := models.NewCustomer("Ana", "Souza", email, "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(customer))

	byEmail, err := repo.GetByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byEmail.ID)

	other, _ := models.NewEmail("nobody@example.com")
	_, err = repo.GetByEmail(other)
	assert.True(t, models.IsNotFound(err))
}

func TestMoneyColumnPrecision(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGormProductRepository(db)

	price, err := models.NewMoney(decimal.RequireFromString("0.10"), "BRL")
	require.NoError(t, err)
	product, err := models.NewProduct("Parafuso", "item barato", price, 1000, "Ferragens")
	require.NoError(t, err)
	require.NoError(t, repo.Create(product))

	loaded, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Price.Amount.Equal(decimal.RequireFromString("0.10")),
		"decimal column avoids float drift")
}
