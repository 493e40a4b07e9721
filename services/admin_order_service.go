package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
)

var (
	// ErrInvalidStatusTransition is returned when a status change is not pending → confirmed/rejected
	ErrInvalidStatusTransition = errors.New("order status can only change from pending")
	// ErrOrderPending is returned when deleting an order staff have not resolved yet
	ErrOrderPending = errors.New("pending orders must be confirmed or rejected before deletion")
)

// AdminOrderService implements the staff order panel
type AdminOrderService struct {
	orders repository.OrderRepository
	events EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// NewAdminOrderService creates a new AdminOrderService instance
func NewAdminOrderService(orders repository.OrderRepository, events EventPublisher, log *logger.Logger) *AdminOrderService {
	return &AdminOrderService{
		orders: orders,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// ListOrders returns every order newest first, keeping those matching query
func (s *AdminOrderService) ListOrders(ctx context.Context, query string) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	models.SortNewestFirst(orders)

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Matches(query) {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

// SetStatus resolves a pending order as confirmed or rejected and returns
// the refreshed order list
func (s *AdminOrderService) SetStatus(ctx context.Context, id, status string) ([]models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok || next == models.StatusPending {
		return nil, booking.NewValidationError("INVALID_STATUS", "status", "Status must be confirmed or rejected")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidStatusTransition, order.Status)
	}

	if err := s.orders.Update(ctx, id, map[string]interface{}{"status": next}); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = next

	s.log.Info("order_status_changed", logger.RequestID(ctx), "Order status changed",
		slog.String("order_id", id),
		slog.String("status", string(next)))

	if s.events != nil {
		if err := s.events.Publish(ctx, NewOrderEvent(EventOrderStatusChanged, order, s.now())); err != nil {
			s.log.Warn("order_event_failed", logger.RequestID(ctx), "Failed to publish order event", err,
				slog.String("order_id", id),
				slog.String("event_type", EventOrderStatusChanged))
		}
	}
	return s.ListOrders(ctx, "")
}

// SetTableNumber records the table assigned to an order. A blank value
// leaves the order untouched.
func (s *AdminOrderService) SetTableNumber(ctx context.Context, id, value string) ([]models.Order, error) {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if value = strings.TrimSpace(value); value != "" {
		if err := s.orders.Update(ctx, id, map[string]interface{}{"table_number": value}); err != nil {
			return nil, fmt.Errorf("failed to update table number: %w", err)
		}
	}
	return s.ListOrders(ctx, "")
}

// DeleteOrder removes a resolved order
func (s *AdminOrderService) DeleteOrder(ctx context.Context, id string) ([]models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusPending {
		return nil, ErrOrderPending
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.log.Info("order_deleted", logger.RequestID(ctx), "Order deleted", slog.String("order_id", id))
	return s.ListOrders(ctx, "")
}
