package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Username     string    `gorm:"size:20;uniqueIndex;not null"  json:"username"`
	PasswordHash string    `gorm:"not null"                      json:"-"`
	Role         string    `gorm:"not null;default:user"         json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"modified_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary is the public projection of a user. The password hash
// never leaves the repo layer in any other shape.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"               json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null"      json:"name"`
	Description   string    `gorm:"size:255;not null"                  json:"description"`
	Price         float64   `gorm:"not null"                           json:"price"`
	StockQuantity int       `gorm:"not null;check:stock_quantity >= 0" json:"stock_quantity"`
	Image         string    `gorm:"size:255"                           json:"image,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Cart struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity > 0"                    json:"quantity"`
	Cart      Cart      `gorm:"constraint:OnDelete:CASCADE"                     json:"-"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE"                     json:"-"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartRow is one line of a fetched cart: the cart joined with its items.
type CartRow struct {
	CartID    uuid.UUID `json:"cart_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}
