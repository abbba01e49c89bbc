package repositories

import (
	"errors"

	"loja/internal/models"

	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetAll() ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return productsFromRecords(records)
}

func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	var record productRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewProductNotFound(id)
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *GormProductRepository) GetByCategory(category string) ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Where("category = ?", category).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return productsFromRecords(records)
}

func (r *GormProductRepository) SearchByName(name string) ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return productsFromRecords(records)
}

func (r *GormProductRepository) GetAvailable() ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Where("active = ? AND stock_quantity > 0", true).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return productsFromRecords(records)
}

func (r *GormProductRepository) GetCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&productRecord{}).Distinct("category").Order("category").Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormProductRepository) ExistsByName(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&productRecord{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) Create(product *models.Product) error {
	record := toProductRecord(product)
	return r.db.Create(&record).Error
}

func (r *GormProductRepository) Update(product *models.Product) error {
	record := toProductRecord(product)
	result := r.db.Model(&productRecord{}).Where("id = ?", record.ID).Select("*").Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewProductNotFound(product.ID)
	}
	return nil
}

func (r *GormProductRepository) Delete(id string) error {
	result := r.db.Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewProductNotFound(id)
	}
	return nil
}

func productsFromRecords(records []productRecord) ([]models.Product, error) {
	products := make([]models.Product, 0, len(records))
	for _, record := range records {
		product, err := record.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}
