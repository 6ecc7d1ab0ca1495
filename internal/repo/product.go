package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mushroomery/shop/internal/models"
)

// CreateProductIfNotExists inserts the product unless the name is taken.
func (r *GormRepo) CreateProductIfNotExists(ctx context.Context, p *models.Product) error {
	tx := r.DB.WithContext(ctx).Where("name = ?", p.Name).FirstOrCreate(p)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrProductExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrProductExists
	}
	return nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
