package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/services"
)

func TestCatalogController_GetMenu(t *testing.T) {
	app := newTestApp(t)
	ctl := NewCatalogController(app.catalog)
	router := setupTestRouter()
	router.GET("/menu", ctl.GetMenu)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedError  string
		expectedNames  []string
	}{
		{
			name:           "All available items",
			path:           "/menu",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Kopi Susu", "Nasi Goreng", "Es Teh"},
		},
		{
			name:           "Explicit All category",
			path:           "/menu?category=All",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Kopi Susu", "Nasi Goreng", "Es Teh"},
		},
		{
			name:           "Category filter is case-insensitive",
			path:           "/menu?category=coffee",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Kopi Susu"},
		},
		{
			name:           "Sold out items are hidden",
			path:           "/menu?category=Snack",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{},
		},
		{
			name:           "Unknown category",
			path:           "/menu?category=Dessert",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_CATEGORY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := performRequest(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
				return
			}

			data := response["data"].([]interface{})
			names := make([]string, 0, len(data))
			for _, item := range data {
				names = append(names, item.(map[string]interface{})["name"].(string))
			}
			assert.ElementsMatch(t, tt.expectedNames, names)
			assert.Nil(t, response["warning"])
		})
	}
}

func TestCatalogController_GetMenu_StoreFailure(t *testing.T) {
	app := newTestApp(t)

	// closing the pool makes every query fail
	sqlDB, err := app.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	catalog := services.NewCatalogService(app.items, app.packages, nil, 25000, logger.Discard())
	ctl := NewCatalogController(catalog)
	router := setupTestRouter()
	router.GET("/menu", ctl.GetMenu)
	router.GET("/packages", ctl.GetPackages)

	for _, path := range []string{"/menu", "/packages"} {
		w, response := performRequest(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.True(t, response["success"].(bool))
		assert.Empty(t, response["data"])
		assert.NotEmpty(t, response["warning"])
	}
}

func TestCatalogController_GetPackages(t *testing.T) {
	app := newTestApp(t)
	ctl := NewCatalogController(app.catalog)
	router := setupTestRouter()
	router.GET("/packages", ctl.GetPackages)

	w, response := performRequest(t, router, http.MethodGet, "/packages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := response["data"].([]interface{})
	require.Len(t, data, 1)
	pkg := data[0].(map[string]interface{})
	assert.Equal(t, "Paket Hemat", pkg["name"])
	assert.Equal(t, float64(25000), pkg["price"])
	assert.Len(t, pkg["drink_options"], 2)
}
