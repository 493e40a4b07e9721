package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/services"
)

// CatalogController serves the customer menu
type CatalogController struct {
	catalog *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// GetMenu handles GET /api/v1/menu?category= - lists available menu items.
// A store failure still answers 200 with an empty list and a warning.
func (ctl *CatalogController) GetMenu(c *gin.Context) {
	items, err := ctl.catalog.ListAvailableMenuItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		if booking.IsValidationError(err) {
			respondServiceError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    items,
			"warning": "Menu is temporarily unavailable",
		})
		return
	}

	respondSuccess(c, http.StatusOK, items)
}

// GetPackages handles GET /api/v1/packages - lists available packages
func (ctl *CatalogController) GetPackages(c *gin.Context) {
	packages, err := ctl.catalog.ListAvailablePackages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    packages,
			"warning": "Packages are temporarily unavailable",
		})
		return
	}

	respondSuccess(c, http.StatusOK, packages)
}
