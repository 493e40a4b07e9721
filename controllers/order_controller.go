package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/services"
)

// OrderController serves the public order list and the staff order panel
type OrderController struct {
	orders *services.AdminOrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.AdminOrderService) *OrderController {
	return &OrderController{orders: orders}
}

// UpdateStatusRequest represents the request body for resolving an order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTableRequest represents the request body for assigning a table
type UpdateTableRequest struct {
	TableNumber string `json:"table_number"`
}

// PublicOrder is an order as shown on the public list, without contact details
type PublicOrder struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	Time         string             `json:"time"`
	CustomerName string             `json:"customer_name"`
	Items        []models.OrderItem `json:"items"`
	TotalPrice   int64              `json:"total_price"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

func toPublicOrders(orders []models.Order) []PublicOrder {
	public := make([]PublicOrder, 0, len(orders))
	for _, o := range orders {
		public = append(public, PublicOrder{
			ID:           o.ID,
			Date:         o.Date,
			Time:         o.Time,
			CustomerName: o.CustomerName,
			Items:        o.Items,
			TotalPrice:   o.TotalPrice,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}
	return public
}

// ListPublicOrders handles GET /api/v1/orders - read-only list, newest first
func (ctl *OrderController) ListPublicOrders(c *gin.Context) {
	orders, err := ctl.orders.ListOrders(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve orders")
		return
	}

	respondSuccess(c, http.StatusOK, toPublicOrders(orders))
}

// ListOrders handles GET /api/v1/admin/orders?q= - every order, newest first
func (ctl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctl.orders.ListOrders(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve orders")
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orders, err := ctl.orders.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update order status")
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// UpdateTableNumber handles PUT /api/v1/admin/orders/:id/table
func (ctl *OrderController) UpdateTableNumber(c *gin.Context) {
	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orders, err := ctl.orders.SetTableNumber(c.Request.Context(), c.Param("id"), req.TableNumber)
	if err != nil {
		respondServiceError(c, err, "Failed to update table number")
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	orders, err := ctl.orders.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete order")
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}
