package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/services"
)

// MenuController implements the staff menu and package panels
type MenuController struct {
	menu *services.MenuService
}

// NewMenuController creates a new MenuController
func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

// AvailabilityRequest switches an item or package between available and sold out
type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ToggleOptionRequest adds or removes one menu item from a package's options
type ToggleOptionRequest struct {
	Kind   string `json:"kind" binding:"required"`
	ItemID string `json:"item_id" binding:"required"`
}

func (ctl *MenuController) respond(c *gin.Context, status int, data interface{}, err error, message string) {
	if err != nil {
		respondServiceError(c, err, message)
		return
	}
	respondSuccess(c, status, data)
}

// ListMenuItems handles GET /api/v1/admin/menu-items - every item, sold out included
func (ctl *MenuController) ListMenuItems(c *gin.Context) {
	items, err := ctl.menu.ListMenuItems(c.Request.Context())
	ctl.respond(c, http.StatusOK, items, err, "Failed to retrieve menu items")
}

// CreateMenuItem handles POST /api/v1/admin/menu-items
func (ctl *MenuController) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items, err := ctl.menu.CreateMenuItem(c.Request.Context(), req)
	ctl.respond(c, http.StatusCreated, items, err, "Failed to create menu item")
}

// UpdateMenuItem handles PUT /api/v1/admin/menu-items/:id
func (ctl *MenuController) UpdateMenuItem(c *gin.Context) {
	var req services.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items, err := ctl.menu.UpdateMenuItem(c.Request.Context(), c.Param("id"), req)
	ctl.respond(c, http.StatusOK, items, err, "Failed to update menu item")
}

// SetMenuItemAvailability handles PUT /api/v1/admin/menu-items/:id/availability
func (ctl *MenuController) SetMenuItemAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items, err := ctl.menu.SetMenuItemAvailability(c.Request.Context(), c.Param("id"), *req.IsAvailable)
	ctl.respond(c, http.StatusOK, items, err, "Failed to update menu item")
}

// DeleteMenuItem handles DELETE /api/v1/admin/menu-items/:id
func (ctl *MenuController) DeleteMenuItem(c *gin.Context) {
	items, err := ctl.menu.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	ctl.respond(c, http.StatusOK, items, err, "Failed to delete menu item")
}

// UploadMenuItemImage handles POST /api/v1/admin/menu-items/:id/image (multipart field "image")
func (ctl *MenuController) UploadMenuItemImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "An image file is required in the \"image\" field")
		return
	}

	items, err := ctl.menu.AttachMenuItemImage(c.Request.Context(), c.Param("id"), fileHeader)
	ctl.respond(c, http.StatusOK, items, err, "Failed to upload image")
}

// ListPackages handles GET /api/v1/admin/packages
func (ctl *MenuController) ListPackages(c *gin.Context) {
	packages, err := ctl.menu.ListPackages(c.Request.Context())
	ctl.respond(c, http.StatusOK, packages, err, "Failed to retrieve packages")
}

// CreatePackage handles POST /api/v1/admin/packages
func (ctl *MenuController) CreatePackage(c *gin.Context) {
	var req services.PackageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	packages, err := ctl.menu.CreatePackage(c.Request.Context(), req)
	ctl.respond(c, http.StatusCreated, packages, err, "Failed to create package")
}

// UpdatePackage handles PUT /api/v1/admin/packages/:id
func (ctl *MenuController) UpdatePackage(c *gin.Context) {
	var req services.PackageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	packages, err := ctl.menu.UpdatePackage(c.Request.Context(), c.Param("id"), req)
	ctl.respond(c, http.StatusOK, packages, err, "Failed to update package")
}

// SetPackageAvailability handles PUT /api/v1/admin/packages/:id/availability
func (ctl *MenuController) SetPackageAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	packages, err := ctl.menu.SetPackageAvailability(c.Request.Context(), c.Param("id"), *req.IsAvailable)
	ctl.respond(c, http.StatusOK, packages, err, "Failed to update package")
}

// TogglePackageOption handles POST /api/v1/admin/packages/:id/options
func (ctl *MenuController) TogglePackageOption(c *gin.Context) {
	var req ToggleOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	packages, err := ctl.menu.TogglePackageOption(c.Request.Context(), c.Param("id"), req.Kind, req.ItemID)
	ctl.respond(c, http.StatusOK, packages, err, "Failed to update package options")
}

// DeletePackage handles DELETE /api/v1/admin/packages/:id
func (ctl *MenuController) DeletePackage(c *gin.Context) {
	packages, err := ctl.menu.DeletePackage(c.Request.Context(), c.Param("id"))
	ctl.respond(c, http.StatusOK, packages, err, "Failed to delete package")
}
