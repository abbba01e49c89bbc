package repositories

import (
	"errors"

	"loja/internal/models"

	"gorm.io/gorm"
)

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) GetAll() ([]models.Customer, error) {
	var records []customerRecord
	if err := r.db.Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(records))
	for _, record := range records {
		customers = append(customers, *record.toDomain())
	}
	return customers, nil
}

func (r *GormCustomerRepository) GetByID(id string) (*models.Customer, error) {
	var record customerRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *GormCustomerRepository) GetByEmail(email models.Email) (*models.Customer, error) {
	var record customerRecord
	if err := r.db.First(&record, "email = ?", email.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewCustomerNotFound(email.String())
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *GormCustomerRepository) ExistsByEmail(email models.Email) (bool, error) {
	var count int64
	if err := r.db.Model(&customerRecord{}).Where("email = ?", email.String()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	record := toCustomerRecord(customer)
	return r.db.Create(&record).Error
}

func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	record := toCustomerRecord(customer)
	result := r.db.Model(&customerRecord{}).Where("id = ?", record.ID).Select("*").Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewCustomerNotFound(customer.ID)
	}
	return nil
}
