package booking

import (
	"fmt"
	"strings"

	"github.com/kendall-kelly/cafe-tropis-api/models"
)

// CartLine is a menu item the customer picked, with its quantity
type CartLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// BundleSelection is one bundled food and drink pair. Price mirrors the
// catalog the cart was last priced against.
type BundleSelection struct {
	PackageID  string `json:"package_id,omitempty"` // empty for the ad-hoc promo bundle
	FoodID     string `json:"food_id"`
	DrinkID    string `json:"drink_id"`
	Name       string `json:"name"`
	Selections string `json:"selections"`
	Price      int64  `json:"price"`
	Note       string `json:"note,omitempty"`
}

// Cart holds the customer's in-progress selection. Lines have unique item
// ids and positive quantities. TotalPrice is recomputed after every mutation.
type Cart struct {
	Lines      []CartLine        `json:"lines"`
	Bundles    []BundleSelection `json:"bundles"`
	TotalPrice int64             `json:"total_price"`

	catalog *Catalog
}

// NewCart creates an empty cart priced against catalog
func NewCart(catalog *Catalog) *Cart {
	return &Cart{
		Lines:   []CartLine{},
		Bundles: []BundleSelection{},
		catalog: catalog,
	}
}

// Attach binds the cart to a freshly loaded catalog and reprices it
func (c *Cart) Attach(catalog *Catalog) {
	c.catalog = catalog
	if c.Lines == nil {
		c.Lines = []CartLine{}
	}
	if c.Bundles == nil {
		c.Bundles = []BundleSelection{}
	}
	c.recomputeTotal()
}

// Catalog returns the catalog the cart is currently priced against
func (c *Cart) Catalog() *Catalog {
	return c.catalog
}

// Quantity returns how many units of itemID are in the cart
func (c *Cart) Quantity(itemID string) int {
	if i := c.lineIndex(itemID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Increment adds one unit of itemID, inserting the line if absent
func (c *Cart) Increment(itemID string) error {
	if _, ok := c.catalog.Item(itemID); !ok {
		return validationError("UNKNOWN_ITEM", "item_id", "Menu item is not available")
	}

	if i := c.lineIndex(itemID); i >= 0 {
		c.Lines[i].Quantity++
	} else {
		c.Lines = append(c.Lines, CartLine{ItemID: itemID, Quantity: 1})
	}

	c.recomputeTotal()
	return nil
}

// Decrement removes one unit of itemID. The line and its note disappear once
// the quantity would reach zero. Absent items are ignored.
func (c *Cart) Decrement(itemID string) {
	i := c.lineIndex(itemID)
	if i < 0 {
		return
	}

	if c.Lines[i].Quantity <= 1 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	} else {
		c.Lines[i].Quantity--
	}

	c.recomputeTotal()
}

// SetNote replaces the note of an item already in the cart
func (c *Cart) SetNote(itemID, text string) error {
	i := c.lineIndex(itemID)
	if i < 0 {
		return validationError("ITEM_NOT_IN_CART", "item_id", "Add the item to the cart before writing a note")
	}
	c.Lines[i].Note = strings.TrimSpace(text)
	return nil
}

// AddBundle appends a bundle of one food and one drink. With an empty
// packageID the ad-hoc promo bundle is built at the catalog's promo price;
// otherwise the package's own price applies and both choices must be among
// its permitted options.
func (c *Cart) AddBundle(packageID, foodID, drinkID string) (BundleSelection, error) {
	if foodID == "" || drinkID == "" {
		return BundleSelection{}, validationError("INCOMPLETE_BUNDLE", "bundle", "Pick one food and one drink")
	}

	food, ok := c.catalog.Item(foodID)
	if !ok {
		return BundleSelection{}, validationError("UNKNOWN_ITEM", "food_id", "Food item is not available")
	}
	drink, ok := c.catalog.Item(drinkID)
	if !ok {
		return BundleSelection{}, validationError("UNKNOWN_ITEM", "drink_id", "Drink item is not available")
	}

	selections := fmt.Sprintf("%s + %s", food.Name, drink.Name)
	bundle := BundleSelection{
		PackageID:  packageID,
		FoodID:     foodID,
		DrinkID:    drinkID,
		Selections: selections,
	}

	if packageID == "" {
		if food.Category != models.CategoryFood {
			return BundleSelection{}, validationError("INVALID_BUNDLE_CHOICE", "food_id", "Promo bundle food must be a Food item")
		}
		if !drink.Category.IsDrink() {
			return BundleSelection{}, validationError("INVALID_BUNDLE_CHOICE", "drink_id", "Promo bundle drink must be a Coffee or Non-Coffee item")
		}
		bundle.Name = "Promo Bundle: " + selections
		bundle.Price = c.catalog.PromoBundlePrice()
	} else {
		pkg, ok := c.catalog.Package(packageID)
		if !ok {
			return BundleSelection{}, validationError("UNKNOWN_PACKAGE", "package_id", "Package is not available")
		}
		if !pkg.AllowsFood(foodID) {
			return BundleSelection{}, validationError("INVALID_BUNDLE_CHOICE", "food_id", "Food is not an option of this package")
		}
		if !pkg.AllowsDrink(drinkID) {
			return BundleSelection{}, validationError("INVALID_BUNDLE_CHOICE", "drink_id", "Drink is not an option of this package")
		}
		bundle.Name = pkg.Name + ": " + selections
		bundle.Price = pkg.Price
	}

	c.Bundles = append(c.Bundles, bundle)
	c.recomputeTotal()
	return bundle, nil
}

// RemoveBundle removes the bundle at index
func (c *Cart) RemoveBundle(index int) error {
	if index < 0 || index >= len(c.Bundles) {
		return validationError("BUNDLE_NOT_FOUND", "index", "Bundle index is out of range")
	}
	c.Bundles = append(c.Bundles[:index], c.Bundles[index+1:]...)
	c.recomputeTotal()
	return nil
}

// SetBundleNote replaces the note of the bundle at index
func (c *Cart) SetBundleNote(index int, text string) error {
	if index < 0 || index >= len(c.Bundles) {
		return validationError("BUNDLE_NOT_FOUND", "index", "Bundle index is out of range")
	}
	c.Bundles[index].Note = strings.TrimSpace(text)
	return nil
}

// ItemCount is the sum of line quantities plus the number of bundles
func (c *Cart) ItemCount() int {
	count := len(c.Bundles)
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// ComputeTotal sums quantity-weighted catalog prices and bundle prices.
// Lines and package bundles that left the catalog contribute nothing.
func (c *Cart) ComputeTotal() int64 {
	var total int64
	for _, line := range c.Lines {
		if item, ok := c.catalog.Item(line.ItemID); ok {
			total += item.Price * int64(line.Quantity)
		}
	}
	for _, bundle := range c.Bundles {
		total += c.BundlePrice(bundle)
	}
	return total
}

// BundlePrice is the current price of a bundle: the promo price for ad-hoc
// bundles, the package's stored price otherwise, 0 when the package is gone
func (c *Cart) BundlePrice(bundle BundleSelection) int64 {
	if bundle.PackageID == "" {
		return c.catalog.PromoBundlePrice()
	}
	pkg, ok := c.catalog.Package(bundle.PackageID)
	if !ok {
		return 0
	}
	return pkg.Price
}

// BundleAvailable reports whether the bundle's package and both of its
// picks are still on the menu
func (c *Cart) BundleAvailable(bundle BundleSelection) bool {
	if _, ok := c.catalog.Item(bundle.FoodID); !ok {
		return false
	}
	if _, ok := c.catalog.Item(bundle.DrinkID); !ok {
		return false
	}
	if bundle.PackageID == "" {
		return true
	}
	_, ok := c.catalog.Package(bundle.PackageID)
	return ok
}

// IsEmpty reports whether the cart holds nothing
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0 && len(c.Bundles) == 0
}

func (c *Cart) recomputeTotal() {
	for i := range c.Bundles {
		c.Bundles[i].Price = c.BundlePrice(c.Bundles[i])
	}
	c.TotalPrice = c.ComputeTotal()
}

func (c *Cart) lineIndex(itemID string) int {
	for i, line := range c.Lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}
