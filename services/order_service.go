package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
	"github.com/kendall-kelly/cafe-tropis-api/telemetry"
)

// OrderService turns a finished booking into a stored order
type OrderService struct {
	orders        repository.OrderRepository
	events        EventPublisher
	cafeName      string
	staffWhatsApp string
	log           *logger.Logger
	now           func() time.Time
}

// NewOrderService creates a new OrderService instance
func NewOrderService(orders repository.OrderRepository, events EventPublisher, cafeName, staffWhatsApp string, log *logger.Logger) *OrderService {
	return &OrderService{
		orders:        orders,
		events:        events,
		cafeName:      cafeName,
		staffWhatsApp: staffWhatsApp,
		log:           log,
		now:           time.Now,
	}
}

// Snapshot copies every cart line and bundle into order items, lines first.
// Prices come from the catalog the cart is attached to; anything that left
// it fails the snapshot.
func Snapshot(cart *booking.Cart) ([]models.OrderItem, int64, error) {
	items := make([]models.OrderItem, 0, len(cart.Lines)+len(cart.Bundles))
	var total int64

	for _, line := range cart.Lines {
		menuItem, ok := cart.Catalog().Item(line.ItemID)
		if !ok {
			return nil, 0, booking.NewValidationError("ITEM_UNAVAILABLE", "cart",
				"An item in the cart is no longer available, please review your order")
		}
		subtotal := menuItem.Price * int64(line.Quantity)
		items = append(items, models.OrderItem{
			Position:  len(items),
			Name:      menuItem.Name,
			Quantity:  line.Quantity,
			UnitPrice: menuItem.Price,
			Subtotal:  subtotal,
			Note:      line.Note,
		})
		total += subtotal
	}

	for _, bundle := range cart.Bundles {
		if !cart.BundleAvailable(bundle) {
			return nil, 0, booking.NewValidationError("ITEM_UNAVAILABLE", "cart",
				"A bundle in the cart is no longer available, please review your order")
		}
		price := cart.BundlePrice(bundle)
		items = append(items, models.OrderItem{
			Position:   len(items),
			Name:       bundle.Name,
			Quantity:   1,
			UnitPrice:  price,
			Subtotal:   price,
			Selections: bundle.Selections,
			Note:       bundle.Note,
		})
		total += price
	}

	return items, total, nil
}

// Submit stores a pending order built from the booking. The order and its
// items are written in a single create. Event delivery failures are logged
// and never fail the submission.
func (s *OrderService) Submit(ctx context.Context, schedule booking.Schedule, cart *booking.Cart, customer booking.Customer) (*models.Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "OrderService.Submit")
	defer span.End()

	if !booking.ScheduleIsComplete(schedule) {
		return nil, booking.NewValidationError("SCHEDULE_REQUIRED", "schedule", "Please fill in both the date and the time")
	}
	if !booking.CustomerIsComplete(customer) {
		return nil, booking.NewValidationError("CUSTOMER_REQUIRED", "customer", "Customer name and phone are required")
	}
	if cart == nil || !booking.CartMeetsMinimum(cart.ItemCount()) {
		return nil, booking.NewValidationError("CART_TOO_SMALL", "cart",
			fmt.Sprintf("Pick at least %d item(s) to continue", booking.MinimumCartItems))
	}

	items, total, err := Snapshot(cart)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Date:          schedule.Date,
		Time:          schedule.Time,
		CustomerName:  strings.TrimSpace(customer.Name),
		CustomerPhone: strings.TrimSpace(customer.Phone),
		Note:          strings.TrimSpace(customer.Note),
		Items:         items,
		TotalPrice:    total,
		Status:        models.StatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order write failed")
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int64("order.total_price", order.TotalPrice),
		attribute.Int("order.item_rows", len(order.Items)),
	)
	s.log.Info("order_submitted", logger.RequestID(ctx), "Order submitted",
		slog.String("order_id", order.ID),
		slog.Int64("total_price", order.TotalPrice))

	s.publish(ctx, EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, NewOrderEvent(eventType, order, s.now())); err != nil {
		s.log.Warn("order_event_failed", logger.RequestID(ctx), "Failed to publish order event", err,
			slog.String("order_id", order.ID),
			slog.String("event_type", eventType))
	}
}

// BuildConfirmationLink returns a wa.me link that opens a chat with the
// staff number, prefilled with the order summary
func (s *OrderService) BuildConfirmationLink(order *models.Order) string {
	return BuildConfirmationLink(s.cafeName, s.staffWhatsApp, order)
}

// BuildConfirmationLink formats the order summary and embeds it in a wa.me link.
// Spaces are encoded as %20.
func BuildConfirmationLink(cafeName, staffWhatsApp string, order *models.Order) string {
	text := strings.ReplaceAll(url.QueryEscape(ConfirmationMessage(cafeName, order)), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", staffWhatsApp, text)
}

// ConfirmationMessage renders the chat text sent to the staff
func ConfirmationMessage(cafeName string, order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s,\nSaya ingin reservasi:\n\n", cafeName)
	fmt.Fprintf(&b, "*Nama:* %s\n", order.CustomerName)
	fmt.Fprintf(&b, "*Jam:* %s, %s\n\n", order.Time, order.Date)
	b.WriteString("*Order:*\n")
	for _, item := range order.Items {
		if item.Selections != "" {
			fmt.Fprintf(&b, "- %s", item.Name)
		} else {
			fmt.Fprintf(&b, "- %s (%dx)", item.Name, item.Quantity)
		}
		if item.Note != "" {
			fmt.Fprintf(&b, " _(Catatan: %s)_", item.Note)
		}
		b.WriteString("\n")
	}
	if order.Note != "" {
		fmt.Fprintf(&b, "\n*Catatan:* %s\n", order.Note)
	}
	fmt.Fprintf(&b, "\n*Total: %s*", FormatRupiah(order.TotalPrice))
	return b.String()
}

var rupiahPrinter = message.NewPrinter(language.English)

// FormatRupiah renders an amount with thousands grouping, e.g. "Rp 61,000"
func FormatRupiah(amount int64) string {
	return rupiahPrinter.Sprintf("Rp %d", amount)
}
