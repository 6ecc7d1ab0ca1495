package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mushroomery/shop/internal/events"
	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/repo"
)

// CartService owns the cart-to-user binding. Every operation takes the
// caller's user id; a user can only ever see or mutate their own cart.
type CartService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

func (s *CartService) CreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.create")

	cart := &models.Cart{UserID: userID}
	if err := s.Repo.CreateCartIfNotExists(ctx, cart); err != nil {
		if errors.Is(err, repo.ErrCartExists) {
			return nil, fmt.Errorf("user already has a cart: %w", ErrConflict)
		}
		return nil, err
	}

	if err := s.Events.Publish(ctx, "cart_events", userID.String(), map[string]any{
		"type":    "cart_created",
		"cart_id": cart.ID,
		"user_id": userID,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	l.Info("cart created", "cart_id", cart.ID)
	return cart, nil
}

func (s *CartService) FetchCart(ctx context.Context, userID uuid.UUID) ([]models.CartRow, error) {
	return s.Repo.FetchCart(ctx, userID)
}

// DeleteCart is idempotent: deleting a missing or foreign cart id is a
// silent no-op.
func (s *CartService) DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error {
	return s.Repo.DeleteCart(ctx, userID, cartID)
}

// AddItem puts a product into the caller's cart, incrementing the
// quantity when the (cart, product) row already exists.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id is required: %w", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	cart, err := s.Repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.UpsertCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	cart, err := s.Repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.Repo.RemoveCartItem(ctx, cart.ID, productID)
}
