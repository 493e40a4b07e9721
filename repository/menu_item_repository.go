package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/models"
)

// MenuFilter narrows a menu listing
type MenuFilter struct {
	AvailableOnly bool
	Category      models.Category // empty means every category
}

// MenuItemRepository defines the data operations on the products collection
type MenuItemRepository interface {
	List(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	CreateBatch(ctx context.Context, items []models.MenuItem) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// GormMenuItemRepository implements MenuItemRepository with GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new GormMenuItemRepository
func NewMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

func (r *GormMenuItemRepository) List(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var items []models.MenuItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormMenuItemRepository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch bulk-inserts items, used by the seeding utility
func (r *GormMenuItemRepository) CreateBatch(ctx context.Context, items []models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, 100).Error
}

func (r *GormMenuItemRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return affected(r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(fields))
}

func (r *GormMenuItemRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{}))
}
