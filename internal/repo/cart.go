package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mushroomery/shop/internal/models"
)

// CreateCartIfNotExists inserts a cart for the user. A user has at most
// one cart; the unique index on carts.user_id backs this up.
func (r *GormRepo) CreateCartIfNotExists(ctx context.Context, cart *models.Cart) error {
	tx := r.DB.WithContext(ctx).Where("user_id = ?", cart.UserID).FirstOrCreate(cart)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrCartExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrCartExists
	}
	return nil
}

func (r *GormRepo) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FetchCart joins the user's cart with its item rows. No cart or no
// items yields an empty slice, not an error.
func (r *GormRepo) FetchCart(ctx context.Context, userID uuid.UUID) ([]models.CartRow, error) {
	rows := []models.CartRow{}
	err := r.DB.WithContext(ctx).Table("carts").
		Select("carts.id AS cart_id, cart_items.product_id, cart_items.quantity").
		Joins("JOIN cart_items ON cart_items.cart_id = carts.id").
		Where("carts.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteCart removes the user's cart row; item rows go with it via the
// store's cascade. Deleting a cart that does not exist is a no-op.
func (r *GormRepo) DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		Delete(&models.Cart{}).Error
}

// UpsertCartItem increments the quantity of an existing (cart, product)
// row or inserts a fresh one. The unique index on the pair keeps the
// update-then-create race from producing a second row.
func (r *GormRepo) UpsertCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).
				First(item).Error
		}
		return tx.Create(item).Error
	})
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}
