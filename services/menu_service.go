package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
)

// Package option kinds accepted by TogglePackageOption
const (
	OptionFood  = "food"
	OptionDrink = "drink"
)

// ErrImageStorageDisabled is returned by photo uploads when no bucket is configured
var ErrImageStorageDisabled = errors.New("image storage is not configured")

// MenuItemInput carries the editable fields of a menu item
type MenuItemInput struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	IsAvailable *bool  `json:"is_available"`
}

// PackageInput carries the editable fields of a package
type PackageInput struct {
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	FoodOptions  []string `json:"food_options"`
	DrinkOptions []string `json:"drink_options"`
	IsAvailable  *bool    `json:"is_available"`
}

// MenuService implements the staff menu and package panels. Every write
// returns the freshly re-read collection.
type MenuService struct {
	items    repository.MenuItemRepository
	packages repository.PackageRepository
	images   ImageService
	log      *logger.Logger
}

// NewMenuService creates a new MenuService instance. images may be nil.
func NewMenuService(items repository.MenuItemRepository, packages repository.PackageRepository, images ImageService, log *logger.Logger) *MenuService {
	return &MenuService{
		items:    items,
		packages: packages,
		images:   images,
		log:      log,
	}
}

func validateMenuItem(in MenuItemInput) (string, models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", "", booking.NewValidationError("NAME_REQUIRED", "name", "Name is required")
	}
	if in.Price < 0 {
		return "", "", booking.NewValidationError("INVALID_PRICE", "price", "Price cannot be negative")
	}
	category := models.Category(strings.TrimSpace(in.Category))
	if !category.IsValid() {
		return "", "", booking.NewValidationError("INVALID_CATEGORY", "category", fmt.Sprintf("Unknown category %q", in.Category))
	}
	return name, category, nil
}

// ListMenuItems returns every menu item, available or not
func (s *MenuService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.items.List(ctx, repository.MenuFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	attachImageURLs(ctx, s.images, s.log, items)
	return items, nil
}

// CreateMenuItem adds a menu item. New items are available unless stated otherwise.
func (s *MenuService) CreateMenuItem(ctx context.Context, in MenuItemInput) ([]models.MenuItem, error) {
	name, category, err := validateMenuItem(in)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        name,
		Price:       in.Price,
		Category:    category,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.log.Info("menu_item_created", logger.RequestID(ctx), "Menu item created", slog.String("item_id", item.ID))
	return s.ListMenuItems(ctx)
}

// UpdateMenuItem replaces the editable fields of a menu item
func (s *MenuService) UpdateMenuItem(ctx context.Context, id string, in MenuItemInput) ([]models.MenuItem, error) {
	name, category, err := validateMenuItem(in)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"name":     name,
		"price":    in.Price,
		"category": category,
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}
	if err := s.items.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.ListMenuItems(ctx)
}

// SetMenuItemAvailability flips the sold-out switch of a menu item
func (s *MenuService) SetMenuItemAvailability(ctx context.Context, id string, available bool) ([]models.MenuItem, error) {
	if err := s.items.Update(ctx, id, map[string]interface{}{"is_available": available}); err != nil {
		return nil, err
	}
	return s.ListMenuItems(ctx)
}

// DeleteMenuItem removes a menu item and its photo
func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) ([]models.MenuItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return nil, err
	}
	if item.ImageKey != nil {
		s.deleteImage(ctx, *item.ImageKey)
	}
	return s.ListMenuItems(ctx)
}

// AttachMenuItemImage uploads a photo for a menu item, replacing any previous one
func (s *MenuService) AttachMenuItemImage(ctx context.Context, id string, fileHeader *multipart.FileHeader) ([]models.MenuItem, error) {
	if s.images == nil {
		return nil, ErrImageStorageDisabled
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := s.images.UploadMenuImage(ctx, id, fileHeader)
	if err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, id, map[string]interface{}{"image_key": key}); err != nil {
		s.deleteImage(ctx, key)
		return nil, err
	}
	if item.ImageKey != nil && *item.ImageKey != key {
		s.deleteImage(ctx, *item.ImageKey)
	}
	return s.ListMenuItems(ctx)
}

func (s *MenuService) deleteImage(ctx context.Context, key string) {
	if s.images == nil || key == "" {
		return
	}
	if err := s.images.DeleteImage(ctx, key); err != nil {
		s.log.Warn("image_delete_failed", logger.RequestID(ctx), "Failed to delete menu photo", err,
			slog.String("image_key", key))
	}
}

// ListPackages returns every package, available or not
func (s *MenuService) ListPackages(ctx context.Context) ([]models.Package, error) {
	packages, err := s.packages.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	return packages, nil
}

func validatePackage(in PackageInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", booking.NewValidationError("NAME_REQUIRED", "name", "Name is required")
	}
	if in.Price < 0 {
		return "", booking.NewValidationError("INVALID_PRICE", "price", "Price cannot be negative")
	}
	return name, nil
}

// CreatePackage adds a package
func (s *MenuService) CreatePackage(ctx context.Context, in PackageInput) ([]models.Package, error) {
	name, err := validatePackage(in)
	if err != nil {
		return nil, err
	}

	pkg := &models.Package{
		Name:         name,
		Price:        in.Price,
		FoodOptions:  dedupe(in.FoodOptions),
		DrinkOptions: dedupe(in.DrinkOptions),
		IsAvailable:  in.IsAvailable == nil || *in.IsAvailable,
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.log.Info("package_created", logger.RequestID(ctx), "Package created", slog.String("package_id", pkg.ID))
	return s.ListPackages(ctx)
}

// UpdatePackage replaces the editable fields of a package. Nil option lists
// keep the stored ones.
func (s *MenuService) UpdatePackage(ctx context.Context, id string, in PackageInput) ([]models.Package, error) {
	name, err := validatePackage(in)
	if err != nil {
		return nil, err
	}

	return s.savePackage(ctx, id, func(pkg *models.Package) error {
		pkg.Name = name
		pkg.Price = in.Price
		if in.FoodOptions != nil {
			pkg.FoodOptions = dedupe(in.FoodOptions)
		}
		if in.DrinkOptions != nil {
			pkg.DrinkOptions = dedupe(in.DrinkOptions)
		}
		if in.IsAvailable != nil {
			pkg.IsAvailable = *in.IsAvailable
		}
		return nil
	})
}

// SetPackageAvailability flips the sold-out switch of a package
func (s *MenuService) SetPackageAvailability(ctx context.Context, id string, available bool) ([]models.Package, error) {
	return s.savePackage(ctx, id, func(pkg *models.Package) error {
		pkg.IsAvailable = available
		return nil
	})
}

// TogglePackageOption adds itemID to the package's food or drink options,
// or removes it when already present. Only additions need an existing item.
func (s *MenuService) TogglePackageOption(ctx context.Context, id, kind, itemID string) ([]models.Package, error) {
	if kind != OptionFood && kind != OptionDrink {
		return nil, booking.NewValidationError("INVALID_OPTION_KIND", "kind", "Option kind must be food or drink")
	}

	return s.savePackage(ctx, id, func(pkg *models.Package) error {
		options := &pkg.DrinkOptions
		if kind == OptionFood {
			options = &pkg.FoodOptions
		}
		if !slices.Contains(*options, itemID) {
			if _, err := s.items.FindByID(ctx, itemID); err != nil {
				return err
			}
		}
		*options = toggle(*options, itemID)
		return nil
	})
}

// DeletePackage removes a package
func (s *MenuService) DeletePackage(ctx context.Context, id string) ([]models.Package, error) {
	if err := s.packages.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.ListPackages(ctx)
}

func (s *MenuService) savePackage(ctx context.Context, id string, mutate func(*models.Package) error) ([]models.Package, error) {
	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(pkg); err != nil {
		return nil, err
	}
	if err := s.packages.Save(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to save package: %w", err)
	}
	return s.ListPackages(ctx)
}

func toggle(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(slices.Clone(ids), i, i+1)
	}
	return append(slices.Clone(ids), id)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
