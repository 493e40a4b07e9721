package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/services"
)

// BookingController exposes the customer booking flow
type BookingController struct {
	bookings *services.BookingService
}

// NewBookingController creates a new BookingController
func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// NoteRequest carries a free-text note for a cart line or bundle
type NoteRequest struct {
	Note string `json:"note"`
}

// AddBundleRequest picks a food and a drink for a package or the promo bundle
type AddBundleRequest struct {
	PackageID string `json:"package_id"`
	FoodID    string `json:"food_id"`
	DrinkID   string `json:"drink_id"`
}

// SubmitBookingRequest carries the customer's contact details
type SubmitBookingRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

func (ctl *BookingController) respond(c *gin.Context, session *booking.Session, err error) {
	if err != nil {
		respondServiceError(c, err, "Failed to update booking")
		return
	}
	respondSuccess(c, http.StatusOK, session)
}

func bundleIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Bundle index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

// StartBooking handles POST /api/v1/bookings
func (ctl *BookingController) StartBooking(c *gin.Context) {
	session, err := ctl.bookings.Start(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to start booking")
		return
	}
	respondSuccess(c, http.StatusCreated, session)
}

// GetBooking handles GET /api/v1/bookings/:id
func (ctl *BookingController) GetBooking(c *gin.Context) {
	session, err := ctl.bookings.Get(c.Request.Context(), c.Param("id"))
	ctl.respond(c, session, err)
}

// ConfirmSchedule handles PUT /api/v1/bookings/:id/schedule
func (ctl *BookingController) ConfirmSchedule(c *gin.Context) {
	var req services.ScheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := ctl.bookings.ConfirmSchedule(c.Request.Context(), c.Param("id"), req)
	ctl.respond(c, session, err)
}

// IncrementItem handles POST /api/v1/bookings/:id/items/:itemId/increment
func (ctl *BookingController) IncrementItem(c *gin.Context) {
	session, err := ctl.bookings.IncrementItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	ctl.respond(c, session, err)
}

// DecrementItem handles POST /api/v1/bookings/:id/items/:itemId/decrement
func (ctl *BookingController) DecrementItem(c *gin.Context) {
	session, err := ctl.bookings.DecrementItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	ctl.respond(c, session, err)
}

// SetItemNote handles PUT /api/v1/bookings/:id/items/:itemId/note
func (ctl *BookingController) SetItemNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := ctl.bookings.SetItemNote(c.Request.Context(), c.Param("id"), c.Param("itemId"), req.Note)
	ctl.respond(c, session, err)
}

// AddBundle handles POST /api/v1/bookings/:id/bundles
func (ctl *BookingController) AddBundle(c *gin.Context) {
	var req AddBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := ctl.bookings.AddBundle(c.Request.Context(), c.Param("id"), req.PackageID, req.FoodID, req.DrinkID)
	ctl.respond(c, session, err)
}

// RemoveBundle handles DELETE /api/v1/bookings/:id/bundles/:index
func (ctl *BookingController) RemoveBundle(c *gin.Context) {
	index, ok := bundleIndex(c)
	if !ok {
		return
	}

	session, err := ctl.bookings.RemoveBundle(c.Request.Context(), c.Param("id"), index)
	ctl.respond(c, session, err)
}

// SetBundleNote handles PUT /api/v1/bookings/:id/bundles/:index/note
func (ctl *BookingController) SetBundleNote(c *gin.Context) {
	index, ok := bundleIndex(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := ctl.bookings.SetBundleNote(c.Request.Context(), c.Param("id"), index, req.Note)
	ctl.respond(c, session, err)
}

// Checkout handles POST /api/v1/bookings/:id/checkout
func (ctl *BookingController) Checkout(c *gin.Context) {
	session, err := ctl.bookings.Checkout(c.Request.Context(), c.Param("id"))
	ctl.respond(c, session, err)
}

// Back handles POST /api/v1/bookings/:id/back
func (ctl *BookingController) Back(c *gin.Context) {
	session, err := ctl.bookings.Back(c.Request.Context(), c.Param("id"))
	ctl.respond(c, session, err)
}

// SubmitBooking handles POST /api/v1/bookings/:id/submit. When the order
// write fails the session is back at the details step and is returned
// alongside the error so the client can retry.
func (ctl *BookingController) SubmitBooking(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer := booking.Customer{Name: req.Name, Phone: req.Phone, Note: req.Note}
	session, err := ctl.bookings.Submit(c.Request.Context(), c.Param("id"), customer)
	if err != nil && session != nil && !booking.IsValidationError(err) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"data":    session,
			"error": gin.H{
				"code":    "SUBMISSION_FAILED",
				"message": "Failed to submit order, please try again",
			},
		})
		return
	}
	ctl.respond(c, session, err)
}
