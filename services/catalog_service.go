package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
)

// CategoryAll selects every category on the customer menu
const CategoryAll = "All"

// CatalogService reads what customers can order
type CatalogService struct {
	items      repository.MenuItemRepository
	packages   repository.PackageRepository
	images     ImageService
	promoPrice int64
	log        *logger.Logger
}

// NewCatalogService creates a catalog reader. images may be nil when photo
// storage is not configured.
func NewCatalogService(items repository.MenuItemRepository, packages repository.PackageRepository, images ImageService, promoPrice int64, log *logger.Logger) *CatalogService {
	return &CatalogService{
		items:      items,
		packages:   packages,
		images:     images,
		promoPrice: promoPrice,
		log:        log,
	}
}

// ParseCategory resolves a menu filter value. Empty and "All" select every category.
func ParseCategory(value string) (models.Category, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, CategoryAll) {
		return "", nil
	}
	for _, c := range models.Categories {
		if strings.EqualFold(value, string(c)) {
			return c, nil
		}
	}
	return "", booking.NewValidationError("INVALID_CATEGORY", "category", fmt.Sprintf("Unknown category %q", value))
}

// ListAvailableMenuItems returns available items, optionally narrowed to one
// category. On failure it returns an empty list together with the error.
func (s *CatalogService) ListAvailableMenuItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return []models.MenuItem{}, err
	}

	items, err := s.items.List(ctx, repository.MenuFilter{AvailableOnly: true, Category: c})
	if err != nil {
		s.log.Warn("catalog_read_failed", logger.RequestID(ctx), "Failed to load menu items", err)
		return []models.MenuItem{}, fmt.Errorf("failed to load menu items: %w", err)
	}

	attachImageURLs(ctx, s.images, s.log, items)
	return items, nil
}

// ListAvailablePackages returns available packages, or an empty list with the error
func (s *CatalogService) ListAvailablePackages(ctx context.Context) ([]models.Package, error) {
	packages, err := s.packages.List(ctx, true)
	if err != nil {
		s.log.Warn("catalog_read_failed", logger.RequestID(ctx), "Failed to load packages", err)
		return []models.Package{}, fmt.Errorf("failed to load packages: %w", err)
	}
	return packages, nil
}

// LoadCatalog fetches available items and packages once and indexes them for pricing
func (s *CatalogService) LoadCatalog(ctx context.Context) (*booking.Catalog, error) {
	items, err := s.items.List(ctx, repository.MenuFilter{AvailableOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	packages, err := s.packages.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	return booking.NewCatalog(items, packages, s.promoPrice), nil
}

// attachImageURLs fills ImageURL for items with a stored photo. A failed
// presign leaves the URL empty.
func attachImageURLs(ctx context.Context, images ImageService, log *logger.Logger, items []models.MenuItem) {
	if images == nil {
		return
	}
	for i := range items {
		if items[i].ImageKey == nil || *items[i].ImageKey == "" {
			continue
		}
		url, err := images.GetImageURL(ctx, *items[i].ImageKey)
		if err != nil {
			log.Warn("image_url_failed", logger.RequestID(ctx), "Failed to presign menu photo", err,
				slog.String("item_id", items[i].ID))
			continue
		}
		items[i].ImageURL = &url
	}
}
