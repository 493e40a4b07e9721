package booking

import "github.com/kendall-kelly/cafe-tropis-api/models"

// DefaultPromoBundlePrice is the fixed price of a build-your-own bundle
const DefaultPromoBundlePrice int64 = 25000

// Catalog is the in-memory menu a cart is priced against. It is built from a
// single fetch and never refreshes itself.
type Catalog struct {
	items            map[string]models.MenuItem
	packages         map[string]models.Package
	promoBundlePrice int64
}

// NewCatalog indexes items and packages by id
func NewCatalog(items []models.MenuItem, packages []models.Package, promoBundlePrice int64) *Catalog {
	c := &Catalog{
		items:            make(map[string]models.MenuItem, len(items)),
		packages:         make(map[string]models.Package, len(packages)),
		promoBundlePrice: promoBundlePrice,
	}
	for _, item := range items {
		c.items[item.ID] = item
	}
	for _, pkg := range packages {
		c.packages[pkg.ID] = pkg
	}
	return c
}

// Item looks up a menu item by id
func (c *Catalog) Item(id string) (models.MenuItem, bool) {
	if c == nil {
		return models.MenuItem{}, false
	}
	item, ok := c.items[id]
	return item, ok
}

// Package looks up a package by id
func (c *Catalog) Package(id string) (models.Package, bool) {
	if c == nil {
		return models.Package{}, false
	}
	pkg, ok := c.packages[id]
	return pkg, ok
}

// PromoBundlePrice is the price charged for an ad-hoc food and drink bundle
func (c *Catalog) PromoBundlePrice() int64 {
	if c == nil {
		return DefaultPromoBundlePrice
	}
	return c.promoBundlePrice
}
