package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
)

// MockEventPublisher is a testify mock of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// MockCatalogLoader is a testify mock of CatalogLoader
type MockCatalogLoader struct {
	mock.Mock
}

func (m *MockCatalogLoader) LoadCatalog(ctx context.Context) (*booking.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Catalog), args.Error(1)
}

// MockOrderSubmitter is a testify mock of OrderSubmitter
type MockOrderSubmitter struct {
	mock.Mock
}

func (m *MockOrderSubmitter) Submit(ctx context.Context, schedule booking.Schedule, cart *booking.Cart, customer booking.Customer) (*models.Order, error) {
	args := m.Called(ctx, schedule, cart, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderSubmitter) BuildConfirmationLink(order *models.Order) string {
	args := m.Called(order)
	return args.String(0)
}

// failingMenuItemRepository fails every read, for catalog failure paths
type failingMenuItemRepository struct {
	repository.MenuItemRepository
	err error
}

func (f failingMenuItemRepository) List(ctx context.Context, filter repository.MenuFilter) ([]models.MenuItem, error) {
	return nil, f.err
}

// seededMenu holds the ids of the standard fixture rows
type seededMenu struct {
	KopiSusu   string
	EsTeh      string
	NasiGoreng string
	Kentang    string
	Sold       string
	PaketHemat string
}

// seedMenu inserts the standard fixture menu into db
func seedMenu(t *testing.T, db *gorm.DB) seededMenu {
	t.Helper()
	ctx := context.Background()
	items := repository.NewMenuItemRepository(db)
	packages := repository.NewPackageRepository(db)

	create := func(name string, price int64, category models.Category, available bool) string {
		item := models.MenuItem{Name: name, Price: price, Category: category, IsAvailable: available}
		require.NoError(t, items.Create(ctx, &item))
		return item.ID
	}

	menu := seededMenu{
		KopiSusu:   create("Kopi Susu", 18000, models.CategoryCoffee, true),
		EsTeh:      create("Es Teh", 8000, models.CategoryNonCoffee, true),
		NasiGoreng: create("Nasi Goreng", 30000, models.CategoryFood, true),
		Kentang:    create("Kentang Goreng", 15000, models.CategorySnack, true),
		Sold:       create("Croissant", 22000, models.CategorySnack, false),
	}

	pkg := models.Package{
		Name:         "Paket Hemat",
		Price:        25000,
		FoodOptions:  []string{menu.NasiGoreng},
		DrinkOptions: []string{menu.EsTeh, menu.KopiSusu},
		IsAvailable:  true,
	}
	require.NoError(t, packages.Create(ctx, &pkg))
	menu.PaketHemat = pkg.ID
	return menu
}

// jakarta is the cafe's fixed UTC+7 zone
var jakarta = time.FixedZone("WIB", 7*3600)

// testImage builds an uploaded file header holding a few fake image bytes
func testImage(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image content"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File["image"], 1)
	return form.File["image"][0]
}
