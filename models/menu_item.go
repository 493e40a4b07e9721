package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups menu items on the customer menu
type Category string

const (
	CategoryCoffee    Category = "Coffee"
	CategoryNonCoffee Category = "Non-Coffee"
	CategoryFood      Category = "Food"
	CategorySnack     Category = "Snack"
)

// Categories lists every category in menu display order
var Categories = []Category{CategoryCoffee, CategoryNonCoffee, CategoryFood, CategorySnack}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsDrink reports whether items of this category can fill the drink slot of a bundle
func (c Category) IsDrink() bool {
	return c == CategoryCoffee || c == CategoryNonCoffee
}

// MenuItem represents a product on the cafe menu
type MenuItem struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Price       int64          `gorm:"not null;check:price >= 0" json:"price"` // whole rupiah
	Category    Category       `gorm:"not null;index" json:"category"`
	IsAvailable bool           `gorm:"not null;index" json:"is_available"`
	ImageKey    *string        `json:"image_key,omitempty"`         // nullable, S3 key for the menu photo
	ImageURL    *string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the photo
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "products"
}

// BeforeCreate assigns an opaque identifier when the caller did not provide one
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
