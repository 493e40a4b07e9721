package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
)

type seedItem struct {
	Name      string          `yaml:"name"`
	Price     int64           `yaml:"price"`
	Category  models.Category `yaml:"category"`
	Available *bool           `yaml:"available"`
}

type seedPackage struct {
	Name   string   `yaml:"name"`
	Price  int64    `yaml:"price"`
	Food   []string `yaml:"food"`
	Drinks []string `yaml:"drinks"`
}

// seedFile is the YAML layout of a menu seed
type seedFile struct {
	Items    []seedItem    `yaml:"items"`
	Packages []seedPackage `yaml:"packages"`
}

func loadSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for _, item := range file.Items {
		if item.Name == "" || !item.Category.IsValid() || item.Price < 0 {
			return nil, fmt.Errorf("invalid seed item %+v", item)
		}
	}
	return &file, nil
}

// seedMenu bulk-inserts the items, then creates packages with their option
// names resolved to the new item ids
func seedMenu(ctx context.Context, items repository.MenuItemRepository, packages repository.PackageRepository, file *seedFile) error {
	rows := make([]models.MenuItem, 0, len(file.Items))
	for _, item := range file.Items {
		rows = append(rows, models.MenuItem{
			Name:        item.Name,
			Price:       item.Price,
			Category:    item.Category,
			IsAvailable: item.Available == nil || *item.Available,
		})
	}
	if err := items.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert menu items: %w", err)
	}

	ids := make(map[string]string, len(rows))
	for _, row := range rows {
		ids[row.Name] = row.ID
	}
	resolve := func(names []string) ([]string, error) {
		out := make([]string, 0, len(names))
		for _, name := range names {
			id, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("package option %q is not a seeded item", name)
			}
			out = append(out, id)
		}
		return out, nil
	}

	for _, p := range file.Packages {
		food, err := resolve(p.Food)
		if err != nil {
			return err
		}
		drinks, err := resolve(p.Drinks)
		if err != nil {
			return err
		}

		pkg := &models.Package{
			Name:         p.Name,
			Price:        p.Price,
			FoodOptions:  food,
			DrinkOptions: drinks,
			IsAvailable:  true,
		}
		if err := packages.Create(ctx, pkg); err != nil {
			return fmt.Errorf("failed to insert package %s: %w", p.Name, err)
		}
	}
	return nil
}
