package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package is a fixed-price bundle where the customer picks one permitted food
// and one permitted drink
type Package struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Price        int64          `gorm:"not null;check:price >= 0" json:"price"`
	FoodOptions  []string       `gorm:"serializer:json;type:text" json:"food_options"`  // MenuItem ids
	DrinkOptions []string       `gorm:"serializer:json;type:text" json:"drink_options"` // MenuItem ids
	IsAvailable  bool           `gorm:"not null;index" json:"is_available"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Package model
func (Package) TableName() string {
	return "packages"
}

// BeforeCreate assigns an opaque identifier when the caller did not provide one
func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// AllowsFood reports whether itemID is a permitted food choice
func (p Package) AllowsFood(itemID string) bool {
	return slices.Contains(p.FoodOptions, itemID)
}

// AllowsDrink reports whether itemID is a permitted drink choice
func (p Package) AllowsDrink(itemID string) bool {
	return slices.Contains(p.DrinkOptions, itemID)
}
