package repositories

import (
	"fmt"
	"time"

	"loja/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The record structs are the persistence shape of the domain entities. Money
// is flattened into an amount column (decimal, two places) plus a currency
// column; order items live in their own table with a position column that
// preserves insertion order.

type productRecord struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	Name          string `gorm:"type:varchar(100);uniqueIndex"`
	Description   string `gorm:"type:text"`
	PriceAmount   string `gorm:"type:decimal(12,2)"`
	PriceCurrency string `gorm:"type:varchar(3)"`
	StockQuantity int
	Category      string `gorm:"type:varchar(100);index"`
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (productRecord) TableName() string { return "products" }

type orderRecord struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	CustomerID    string `gorm:"type:varchar(36);index"`
	Status        string `gorm:"type:varchar(20);index"`
	TotalAmount   string `gorm:"type:decimal(12,2)"`
	TotalCurrency string `gorm:"type:varchar(3)"`
	Street        string `gorm:"type:varchar(255)"`
	Number        string `gorm:"type:varchar(20)"`
	Complement    string `gorm:"type:varchar(255)"`
	Neighborhood  string `gorm:"type:varchar(100)"`
	City          string `gorm:"type:varchar(100)"`
	State         string `gorm:"type:varchar(50)"`
	ZipCode       string `gorm:"type:varchar(20)"`
	Country       string `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	OrderID       string `gorm:"type:varchar(36);index"`
	ProductID     string `gorm:"type:varchar(36)"`
	ProductName   string `gorm:"type:varchar(100)"`
	UnitAmount    string `gorm:"type:decimal(12,2)"`
	UnitCurrency  string `gorm:"type:varchar(3)"`
	Quantity      int
	TotalAmount   string `gorm:"type:decimal(12,2)"`
	TotalCurrency string `gorm:"type:varchar(3)"`
	Position      int
}

func (orderItemRecord) TableName() string { return "order_items" }

type customerRecord struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	FirstName    string `gorm:"type:varchar(100)"`
	LastName     string `gorm:"type:varchar(100)"`
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	Phone        string `gorm:"type:varchar(30)"`
	HasAddress   bool
	Street       string `gorm:"type:varchar(255)"`
	Number       string `gorm:"type:varchar(20)"`
	Complement   string `gorm:"type:varchar(255)"`
	Neighborhood string `gorm:"type:varchar(100)"`
	City         string `gorm:"type:varchar(100)"`
	State        string `gorm:"type:varchar(50)"`
	ZipCode      string `gorm:"type:varchar(20)"`
	Country      string `gorm:"type:varchar(100)"`
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (customerRecord) TableName() string { return "customers" }

// AutoMigrate creates or updates the database schema for all records.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRecord{}, &orderRecord{}, &orderItemRecord{}, &customerRecord{})
}

func moneyToColumns(m models.Money) (amount, currency string) {
	return m.Amount.StringFixed(2), m.Currency
}

func moneyFromColumns(amount, currency string) (models.Money, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Money{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	return models.NewMoney(value, currency)
}

func toProductRecord(product *models.Product) productRecord {
	amount, currency := moneyToColumns(product.Price)
	return productRecord{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   amount,
		PriceCurrency: currency,
		StockQuantity: product.StockQuantity,
		Category:      product.Category,
		Active:        product.Active,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func (r productRecord) toDomain() (*models.Product, error) {
	price, err := moneyFromColumns(r.PriceAmount, r.PriceCurrency)
	if err != nil {
		return nil, err
	}
	return models.ReconstructProduct(r.ID, r.Name, r.Description, price, r.StockQuantity,
		r.Category, r.Active, r.CreatedAt, r.UpdatedAt), nil
}

func toOrderRecord(order *models.Order) orderRecord {
	totalAmount, totalCurrency := moneyToColumns(order.TotalAmount)
	record := orderRecord{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Status:        order.Status.String(),
		TotalAmount:   totalAmount,
		TotalCurrency: totalCurrency,
		Street:        order.DeliveryAddress.Street,
		Number:        order.DeliveryAddress.Number,
		Complement:    order.DeliveryAddress.Complement,
		Neighborhood:  order.DeliveryAddress.Neighborhood,
		City:          order.DeliveryAddress.City,
		State:         order.DeliveryAddress.State,
		ZipCode:       order.DeliveryAddress.ZipCode,
		Country:       order.DeliveryAddress.Country,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	for i, item := range order.Items {
		record.Items = append(record.Items, toOrderItemRecord(order.ID, item, i))
	}
	return record
}

func toOrderItemRecord(orderID string, item models.OrderItem, position int) orderItemRecord {
	unitAmount, unitCurrency := moneyToColumns(item.UnitPrice)
	totalAmount, totalCurrency := moneyToColumns(item.TotalPrice)
	return orderItemRecord{
		ID:            item.ID,
		OrderID:       orderID,
		ProductID:     item.ProductID,
		ProductName:   item.ProductName,
		UnitAmount:    unitAmount,
		UnitCurrency:  unitCurrency,
		Quantity:      item.Quantity,
		TotalAmount:   totalAmount,
		TotalCurrency: totalCurrency,
		Position:      position,
	}
}

func (r orderRecord) toDomain() (*models.Order, error) {
	total, err := moneyFromColumns(r.TotalAmount, r.TotalCurrency)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(r.Items))
	for _, itemRecord := range r.Items {
		item, err := itemRecord.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	address := models.Address{
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Country:      r.Country,
	}

	return models.ReconstructOrder(r.ID, r.CustomerID, items, address,
		models.OrderStatus(r.Status), total, r.CreatedAt, r.UpdatedAt), nil
}

func (r orderItemRecord) toDomain() (models.OrderItem, error) {
	unitPrice, err := moneyFromColumns(r.UnitAmount, r.UnitCurrency)
	if err != nil {
		return models.OrderItem{}, err
	}
	totalPrice, err := moneyFromColumns(r.TotalAmount, r.TotalCurrency)
	if err != nil {
		return models.OrderItem{}, err
	}
	return models.ReconstructOrderItem(r.ID, r.ProductID, r.ProductName, unitPrice, r.Quantity, totalPrice), nil
}

func toCustomerRecord(customer *models.Customer) customerRecord {
	record := customerRecord{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Email:     customer.Email.String(),
		Phone:     customer.Phone,
		Active:    customer.Active,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
	if customer.Address != nil {
		record.HasAddress = true
		record.Street = customer.Address.Street
		record.Number = customer.Address.Number
		record.Complement = customer.Address.Complement
		record.Neighborhood = customer.Address.Neighborhood
		record.City = customer.Address.City
		record.State = customer.Address.State
		record.ZipCode = customer.Address.ZipCode
		record.Country = customer.Address.Country
	}
	return record
}

func (r customerRecord) toDomain() *models.Customer {
	var address *models.Address
	if r.HasAddress {
		address = &models.Address{
			Street:       r.Street,
			Number:       r.Number,
			Complement:   r.Complement,
			Neighborhood: r.Neighborhood,
			City:         r.City,
			State:        r.State,
			ZipCode:      r.ZipCode,
			Country:      r.Country,
		}
	}
	return models.ReconstructCustomer(r.ID, r.FirstName, r.LastName, models.Email(r.Email),
		r.Phone, address, r.Active, r.CreatedAt, r.UpdatedAt)
}
