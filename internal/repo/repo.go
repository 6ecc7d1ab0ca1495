package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrProductExists = errors.New("product already exists")
	ErrCartExists    = errors.New("cart already exists")
)

type GormRepo struct {
	DB *gorm.DB
}
