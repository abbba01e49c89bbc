package services_test

import (
	"loja/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) GetByCustomerID(customerID string) ([]models.Order, error) {
	args := m.Called(customerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(status)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByCustomerIDAndStatus(customerID string, status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(customerID, status)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) Create(order *models.Order) error {
	return m.Called(order).Error(0)
}

func (m *mockOrderRepo) Update(order *models.Order) error {
	return m.Called(order).Error(0)
}

func (m *mockOrderRepo) SaveWithProducts(order *models.Order, products []*models.Product) error {
	return m.Called(order, products).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepo) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetByCategory(category string) ([]models.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepo) SearchByName(name string) ([]models.Product, error) {
	args := m.Called(name)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepo) GetAvailable() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepo) GetCategories() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductRepo) ExistsByName(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) Create(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *mockProductRepo) Update(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *mockProductRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) GetAll() ([]models.Customer, error) {
	args := m.Called()
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *mockCustomerRepo) GetByID(id string) (*models.Customer, error) {
	args := m.Called(id)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) GetByEmail(email models.Email) (*models.Customer, error) {
	args := m.Called(email)
	if customer, ok := args.Get(0).(*models.Customer); ok {
		return customer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) ExistsByEmail(email models.Email) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomerRepo) Create(customer *models.Customer) error {
	return m.Called(customer).Error(0)
}

func (m *mockCustomerRepo) Update(customer *models.Customer) error {
	return m.Called(customer).Error(0)
}
