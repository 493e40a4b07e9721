package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/models"
)

// OrderRepository defines the data operations on the reservations collection
type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// GormOrderRepository implements OrderRepository with GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new GormOrderRepository
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// List returns every order with its items, in no particular order
func (r *GormOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// Create stores the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *GormOrderRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return affected(r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields))
}

func (r *GormOrderRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}))
}
