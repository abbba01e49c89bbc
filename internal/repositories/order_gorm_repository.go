package repositories

import (
	"errors"

	"loja/internal/models"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) GetAll() ([]models.Order, error) {
	return r.findOrders(r.db)
}

func (r *GormOrderRepository) GetByID(id string) (*models.Order, error) {
	var record orderRecord
	err := r.db.Preload("Items", itemsInPosition).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewOrderNotFound(id)
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *GormOrderRepository) GetByCustomerID(customerID string) ([]models.Order, error) {
	return r.findOrders(r.db.Where("customer_id = ?", customerID))
}

func (r *GormOrderRepository) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	return r.findOrders(r.db.Where("status = ?", status.String()))
}

func (r *GormOrderRepository) GetByCustomerIDAndStatus(customerID string, status models.OrderStatus) ([]models.Order, error) {
	return r.findOrders(r.db.Where("customer_id = ? AND status = ?", customerID, status.String()))
}

func (r *GormOrderRepository) Create(order *models.Order) error {
	record := toOrderRecord(order)
	return r.db.Create(&record).Error
}

func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return saveOrder(tx, order)
	})
}

// SaveWithProducts commits the order together with every touched product in
// one transaction. Stock adjustments and order item changes either land
// together or not at all.
func (r *GormOrderRepository) SaveWithProducts(order *models.Order, products []*models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := saveOrder(tx, order); err != nil {
			return err
		}
		for _, product := range products {
			record := toProductRecord(product)
			result := tx.Model(&productRecord{}).Where("id = ?", record.ID).Select("*").Updates(record)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return models.NewProductNotFound(product.ID)
			}
		}
		return nil
	})
}

// saveOrder rewrites the order row and replaces its item rows wholesale.
// Item positions are reassigned from the slice order, so insertion order
// survives the round trip.
func saveOrder(tx *gorm.DB, order *models.Order) error {
	record := toOrderRecord(order)

	result := tx.Model(&orderRecord{}).Where("id = ?", record.ID).Select("*").Omit("Items").Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewOrderNotFound(order.ID)
	}

	if err := tx.Delete(&orderItemRecord{}, "order_id = ?", record.ID).Error; err != nil {
		return err
	}
	if len(record.Items) > 0 {
		if err := tx.Create(&record.Items).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) findOrders(query *gorm.DB) ([]models.Order, error) {
	var records []orderRecord
	if err := query.Preload("Items", itemsInPosition).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(records))
	for _, record := range records {
		order, err := record.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func itemsInPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
