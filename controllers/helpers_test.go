package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
	"github.com/kendall-kelly/cafe-tropis-api/services"
	"github.com/kendall-kelly/cafe-tropis-api/tests/testutil"
)

var jakarta = time.FixedZone("WIB", 7*3600)

// testApp wires real services over an in-memory database
type testApp struct {
	db       *gorm.DB
	items    repository.MenuItemRepository
	packages repository.PackageRepository
	orders   repository.OrderRepository
	images   *services.MockImageService

	catalog  *services.CatalogService
	bookings *services.BookingService
	admin    *services.AdminOrderService
	menu     *services.MenuService

	kopiSusu   string
	esTeh      string
	nasiGoreng string
	croissant  string
	paketHemat string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	log := logger.Discard()
	app := &testApp{
		db:       db,
		items:    repository.NewMenuItemRepository(db),
		packages: repository.NewPackageRepository(db),
		orders:   repository.NewOrderRepository(db),
		images:   services.NewMockImageService(),
	}

	orderService := services.NewOrderService(app.orders, services.NoopPublisher{}, "Cafe Tropis", "6281200000000", log)
	app.catalog = services.NewCatalogService(app.items, app.packages, app.images, 25000, log)
	app.bookings = services.NewBookingService(services.NewMemorySessionStore(time.Hour), app.catalog, orderService, jakarta, log)
	app.admin = services.NewAdminOrderService(app.orders, services.NoopPublisher{}, log)
	app.menu = services.NewMenuService(app.items, app.packages, app.images, log)

	app.seed(t)
	return app
}

func (app *testApp) seed(t *testing.T) {
	ctx := context.Background()
	create := func(name string, price int64, category models.Category, available bool) string {
		item := models.MenuItem{Name: name, Price: price, Category: category, IsAvailable: available}
		require.NoError(t, app.items.Create(ctx, &item))
		return item.ID
	}

	app.kopiSusu = create("Kopi Susu", 18000, models.CategoryCoffee, true)
	app.esTeh = create("Es Teh", 8000, models.CategoryNonCoffee, true)
	app.nasiGoreng = create("Nasi Goreng", 30000, models.CategoryFood, true)
	app.croissant = create("Croissant", 22000, models.CategorySnack, false)

	pkg := models.Package{
		Name:         "Paket Hemat",
		Price:        25000,
		FoodOptions:  []string{app.nasiGoreng},
		DrinkOptions: []string{app.esTeh, app.kopiSusu},
		IsAvailable:  true,
	}
	require.NoError(t, app.packages.Create(ctx, &pkg))
	app.paketHemat = pkg.ID
}

// createOrder stores an order directly, bypassing the booking flow
func (app *testApp) createOrder(t *testing.T, name string, status models.OrderStatus, createdAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		Date:          "2024-03-11",
		Time:          "18:00",
		CustomerName:  name,
		CustomerPhone: "081234",
		Items:         []models.OrderItem{{Name: "Kopi Susu", Quantity: 1, UnitPrice: 18000, Subtotal: 18000}},
		TotalPrice:    18000,
		Status:        status,
		CreatedAt:     createdAt,
	}
	require.NoError(t, app.orders.Create(context.Background(), &order))
	return order
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func tomorrow() string {
	return time.Now().In(jakarta).AddDate(0, 0, 1).Format("2006-01-02")
}

// performRequest sends a JSON request and decodes the envelope
func performRequest(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}
