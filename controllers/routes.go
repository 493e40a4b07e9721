package controllers

import "github.com/gin-gonic/gin"

// Handlers groups every controller the API serves
type Handlers struct {
	Catalog *CatalogController
	Booking *BookingController
	Orders  *OrderController
	Menu    *MenuController
	Auth    *AuthController
}

// RegisterRoutes mounts the customer routes on v1 and the staff routes under
// /admin behind staffAuth. Login is the only staff route left open.
func (h *Handlers) RegisterRoutes(v1 *gin.RouterGroup, staffAuth ...gin.HandlerFunc) {
	v1.GET("/menu", h.Catalog.GetMenu)
	v1.GET("/packages", h.Catalog.GetPackages)
	v1.GET("/orders", h.Orders.ListPublicOrders)

	bookings := v1.Group("/bookings")
	{
		bookings.POST("", h.Booking.StartBooking)
		bookings.GET("/:id", h.Booking.GetBooking)
		bookings.PUT("/:id/schedule", h.Booking.ConfirmSchedule)
		bookings.POST("/:id/items/:itemId/increment", h.Booking.IncrementItem)
		bookings.POST("/:id/items/:itemId/decrement", h.Booking.DecrementItem)
		bookings.PUT("/:id/items/:itemId/note", h.Booking.SetItemNote)
		bookings.POST("/:id/bundles", h.Booking.AddBundle)
		bookings.DELETE("/:id/bundles/:index", h.Booking.RemoveBundle)
		bookings.PUT("/:id/bundles/:index/note", h.Booking.SetBundleNote)
		bookings.POST("/:id/checkout", h.Booking.Checkout)
		bookings.POST("/:id/back", h.Booking.Back)
		bookings.POST("/:id/submit", h.Booking.SubmitBooking)
	}

	v1.POST("/admin/login", h.Auth.Login)

	admin := v1.Group("/admin", staffAuth...)
	{
		admin.GET("/session", h.Auth.Session)

		admin.GET("/orders", h.Orders.ListOrders)
		admin.PUT("/orders/:id/status", h.Orders.UpdateOrderStatus)
		admin.PUT("/orders/:id/table", h.Orders.UpdateTableNumber)
		admin.DELETE("/orders/:id", h.Orders.DeleteOrder)

		admin.GET("/menu-items", h.Menu.ListMenuItems)
		admin.POST("/menu-items", h.Menu.CreateMenuItem)
		admin.PUT("/menu-items/:id", h.Menu.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", h.Menu.DeleteMenuItem)
		admin.PUT("/menu-items/:id/availability", h.Menu.SetMenuItemAvailability)
		admin.POST("/menu-items/:id/image", h.Menu.UploadMenuItemImage)

		admin.GET("/packages", h.Menu.ListPackages)
		admin.POST("/packages", h.Menu.CreatePackage)
		admin.PUT("/packages/:id", h.Menu.UpdatePackage)
		admin.DELETE("/packages/:id", h.Menu.DeletePackage)
		admin.PUT("/packages/:id/availability", h.Menu.SetPackageAvailability)
		admin.POST("/packages/:id/options", h.Menu.TogglePackageOption)
	}
}
