package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/repo"
)

type cartTestEnv struct {
	svc     *CartService
	rp      *repo.GormRepo
	user    models.User
	product models.Product
}

func newCartTestEnv(t *testing.T) *cartTestEnv {
	t.Helper()

	rp := &repo.GormRepo{DB: initTestDB(t)}

	user := models.User{Username: "cart_user", PasswordHash: "x", Role: "user"}
	require.NoError(t, rp.DB.Create(&user).Error)

	product := models.Product{
		Name:          "porcini",
		Description:   "dried porcini mushrooms",
		Price:         12.50,
		StockQuantity: 40,
	}
	require.NoError(t, rp.DB.Create(&product).Error)

	return &cartTestEnv{
		svc:     &CartService{Repo: rp},
		rp:      rp,
		user:    user,
		product: product,
	}
}

func TestCartService_CreateCart_OnePerUser(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, env.user.ID, cart.UserID)

	second, err := env.svc.CreateCart(ctx, env.user.ID)
	require.Error(t, err)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCartService_FetchCart_EmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	// No cart at all.
	rows, err := env.svc.FetchCart(ctx, env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// A cart with no items.
	_, err = env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)

	rows, err = env.svc.FetchCart(ctx, env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCartService_AddItem_UpsertsQuantity(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)

	item, err := env.svc.AddItem(ctx, env.user.ID, env.product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, item.CartID)
	assert.Equal(t, uint(2), item.Quantity)

	// Same product again folds into the existing row.
	item, err = env.svc.AddItem(ctx, env.user.ID, env.product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(5), item.Quantity)

	var count int64
	require.NoError(t, env.rp.DB.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, env.product.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rows, err := env.svc.FetchCart(ctx, env.user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cart.ID, rows[0].CartID)
	assert.Equal(t, env.product.ID, rows[0].ProductID)
	assert.Equal(t, uint(5), rows[0].Quantity)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)

	_, err = env.svc.AddItem(ctx, env.user.ID, uuid.Nil, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.AddItem(ctx, env.user.ID, env.product.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.AddItem(ctx, env.user.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_AddItem_NoCart(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)

	_, err := env.svc.AddItem(context.Background(), env.user.ID, env.product.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartItem_CartProductPairIsUnique(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)

	first := models.CartItem{CartID: cart.ID, ProductID: env.product.ID, Quantity: 1}
	require.NoError(t, env.rp.DB.Create(&first).Error)

	// A second raw insert of the same (cart, product) pair must hit the
	// unique index.
	second := models.CartItem{CartID: cart.ID, ProductID: env.product.ID, Quantity: 1}
	require.Error(t, env.rp.DB.Create(&second).Error)
}

func TestCartService_DeleteCart_Idempotent(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteCart(ctx, env.user.ID, cart.ID))

	var count int64
	require.NoError(t, env.rp.DB.Model(&models.Cart{}).
		Where("id = ?", cart.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Deleting again, or deleting a cart that never existed, is a no-op.
	require.NoError(t, env.svc.DeleteCart(ctx, env.user.ID, cart.ID))
	require.NoError(t, env.svc.DeleteCart(ctx, env.user.ID, uuid.New()))
}

func TestCartService_DeleteCart_OtherUsersCartUntouched(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	other := models.User{Username: "other_user", PasswordHash: "x", Role: "user"}
	require.NoError(t, env.rp.DB.Create(&other).Error)

	otherCart, err := env.svc.CreateCart(ctx, other.ID)
	require.NoError(t, err)

	// The first user naming someone else's cart id deletes nothing.
	require.NoError(t, env.svc.DeleteCart(ctx, env.user.ID, otherCart.ID))

	var count int64
	require.NoError(t, env.rp.DB.Model(&models.Cart{}).
		Where("id = ?", otherCart.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartService_DeleteCart_CascadesToItems(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)
	_, err = env.svc.AddItem(ctx, env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteCart(ctx, env.user.ID, cart.ID))

	// The store's cascade removes the item rows with the cart.
	var orphans int64
	require.NoError(t, env.rp.DB.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).Count(&orphans).Error)
	assert.Equal(t, int64(0), orphans)
}

func TestDeleteUser_CascadesToCartAndItems(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)
	_, err = env.svc.AddItem(ctx, env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, env.rp.DeleteUser(ctx, env.user.ID))

	var orphanCarts int64
	require.NoError(t, env.rp.DB.Model(&models.Cart{}).
		Where("user_id = ?", env.user.ID).Count(&orphanCarts).Error)
	assert.Equal(t, int64(0), orphanCarts)

	var orphanItems int64
	require.NoError(t, env.rp.DB.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).Count(&orphanItems).Error)
	assert.Equal(t, int64(0), orphanItems)
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	t.Parallel()

	env := newCartTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateCart(ctx, env.user.ID)
	require.NoError(t, err)
	_, err = env.svc.AddItem(ctx, env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, env.svc.RemoveItem(ctx, env.user.ID, env.product.ID))

	rows, err := env.svc.FetchCart(ctx, env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, env.svc.RemoveItem(ctx, env.user.ID, env.product.ID))
}
