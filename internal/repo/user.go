package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mushroomery/shop/internal/models"
)

// CreateUserIfNotExists inserts the user unless the username is taken.
// A concurrent registration can slip past the lookup; the resulting
// unique violation maps onto the same sentinel.
func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", u.Username).FirstOrCreate(u)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserExists
	}
	return nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	var users []models.UserSummary
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Select("id, username").Order("username ASC").Scan(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}
