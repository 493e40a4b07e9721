package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/models"
)

// PackageRepository defines the data operations on the packages collection
type PackageRepository interface {
	List(ctx context.Context, availableOnly bool) ([]models.Package, error)
	FindByID(ctx context.Context, id string) (*models.Package, error)
	Create(ctx context.Context, pkg *models.Package) error
	Save(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id string) error
}

// GormPackageRepository implements PackageRepository with GORM
type GormPackageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new GormPackageRepository
func NewPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

func (r *GormPackageRepository) List(ctx context.Context, availableOnly bool) ([]models.Package, error) {
	query := r.db.WithContext(ctx).Model(&models.Package{})
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	var packages []models.Package
	if err := query.Order("name ASC").Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *GormPackageRepository) FindByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}

func (r *GormPackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

// Save writes every field of an existing package. Option lists are JSON
// columns, so packages are saved whole rather than patched field by field.
func (r *GormPackageRepository) Save(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *GormPackageRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Package{}))
}
