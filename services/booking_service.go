package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
)

// CatalogLoader provides the catalog a booking is priced against
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (*booking.Catalog, error)
}

// OrderSubmitter stores finished bookings as orders
type OrderSubmitter interface {
	Submit(ctx context.Context, schedule booking.Schedule, cart *booking.Cart, customer booking.Customer) (*models.Order, error)
	BuildConfirmationLink(order *models.Order) string
}

// ScheduleInput is the customer's requested pickup slot
type ScheduleInput struct {
	Date              string `json:"date"`
	Time              string `json:"time"`
	MealBreakShortcut bool   `json:"meal_break_shortcut"`
}

// BookingService drives booking sessions through the booking flow. Each call
// loads the session, re-attaches a freshly loaded catalog, applies one step
// and saves the result.
type BookingService struct {
	sessions SessionStore
	catalog  CatalogLoader
	orders   OrderSubmitter
	location *time.Location
	log      *logger.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService instance. Schedules are
// interpreted in location.
func NewBookingService(sessions SessionStore, catalog CatalogLoader, orders OrderSubmitter, location *time.Location, log *logger.Logger) *BookingService {
	return &BookingService{
		sessions: sessions,
		catalog:  catalog,
		orders:   orders,
		location: location,
		log:      log,
		now:      time.Now,
	}
}

func (s *BookingService) clock() time.Time {
	return s.now().In(s.location)
}

// Start opens a new session at the schedule step with today's date preselected
func (s *BookingService) Start(ctx context.Context) (*booking.Session, error) {
	catalog, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	session := booking.NewSession(uuid.New().String(), s.clock(), catalog)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("booking_started", logger.RequestID(ctx), "Booking session started", slog.String("session_id", session.ID))
	return session, nil
}

// Get returns a session repriced against the current catalog
func (s *BookingService) Get(ctx context.Context, id string) (*booking.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	session.Attach(catalog)
	return session, nil
}

// update loads the session, lets step change it and saves it only when step succeeds
func (s *BookingService) update(ctx context.Context, id string, step func(*booking.Session) error) (*booking.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := step(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.clock()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// editCart applies a cart mutation. The cart can only change at the menu step.
func (s *BookingService) editCart(ctx context.Context, id string, mutate func(*booking.Cart) error) (*booking.Session, error) {
	return s.update(ctx, id, func(session *booking.Session) error {
		if err := session.RequireState(booking.StateMenu); err != nil {
			return err
		}
		return mutate(session.Cart)
	})
}

// ConfirmSchedule records the pickup slot and moves to the menu step. The
// meal-break shortcut fills in 17:45.
func (s *BookingService) ConfirmSchedule(ctx context.Context, id string, in ScheduleInput) (*booking.Session, error) {
	return s.update(ctx, id, func(session *booking.Session) error {
		schedule := booking.Schedule{Date: in.Date, Time: in.Time}
		if schedule.Date == "" {
			schedule.Date = session.Schedule.Date
		}
		if in.MealBreakShortcut {
			schedule.Time = booking.MealBreakTime
		}

		if err := session.Apply(booking.ScheduleConfirmed{Schedule: schedule, Now: s.clock()}); err != nil {
			return err
		}
		session.Schedule = schedule
		return nil
	})
}

// IncrementItem adds one unit of a menu item
func (s *BookingService) IncrementItem(ctx context.Context, id, itemID string) (*booking.Session, error) {
	return s.editCart(ctx, id, func(cart *booking.Cart) error {
		return cart.Increment(itemID)
	})
}

// DecrementItem removes one unit of a menu item
func (s *BookingService) DecrementItem(ctx context.Context, id, itemID string) (*booking.Session, error) {
	return s.editCart(ctx, id, func(cart *booking.Cart) error {
		cart.Decrement(itemID)
		return nil
	})
}

// SetItemNote attaches a note to an item in the cart
func (s *BookingService) SetItemNote(ctx context.Context, id, itemID, note string) (*booking.Session, error) {
	return s.editCart(ctx, id, func(cart *booking.Cart) error {
		return cart.SetNote(itemID, note)
	})
}

// AddBundle adds a food and drink bundle, from a package or the promo offer
func (s *BookingService) AddBundle(ctx context.Context, id, packageID, foodID, drinkID string) (*booking.Session, error) {
	return s.editCart(ctx, id, func(cart *booking.Cart) error {
		_, err := cart.AddBundle(packageID, foodID, drinkID)
		return err
	})
}

// RemoveBundle drops the bundle at index
func (s *BookingService) RemoveBundle(ctx context.Context, id string, index int) (*booking.Session, error) {
	return s.editCart(ctx, id, func(cart *booking.Cart) error {
		return cart.RemoveBundle(index)
	})
}

// SetBundleNote attaches a note to the bundle at index
func (s *BookingService) SetBundleNote(ctx context.Context, id string, index int, note string) (*booking.Session, error) {
	return s.editCart(ctx, id, func(cart *booking.Cart) error {
		return cart.SetBundleNote(index, note)
	})
}

// Checkout moves from the menu to the details step
func (s *BookingService) Checkout(ctx context.Context, id string) (*booking.Session, error) {
	return s.update(ctx, id, func(session *booking.Session) error {
		return session.Apply(booking.CheckoutRequested{ItemCount: session.Cart.ItemCount()})
	})
}

// Back returns to the previous step
func (s *BookingService) Back(ctx context.Context, id string) (*booking.Session, error) {
	return s.update(ctx, id, func(session *booking.Session) error {
		return session.Apply(booking.BackRequested{})
	})
}

// Submit stores the booking as an order and builds the confirmation link.
// A failed write returns the session to the details step with the error.
func (s *BookingService) Submit(ctx context.Context, id string, customer booking.Customer) (*booking.Session, error) {
	session, err := s.update(ctx, id, func(session *booking.Session) error {
		if err := session.Apply(booking.DetailsSubmitted{Customer: customer}); err != nil {
			return err
		}
		session.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, submitErr := s.orders.Submit(ctx, session.Schedule, session.Cart, session.Customer)
	if submitErr != nil {
		s.log.Error("booking_submit_failed", logger.RequestID(ctx), "Order submission failed", submitErr,
			slog.String("session_id", id))
		if err := session.Apply(booking.SubmissionFailed{}); err != nil {
			return nil, err
		}
	} else {
		if err := session.Apply(booking.SubmissionSucceeded{}); err != nil {
			return nil, err
		}
		session.OrderID = order.ID
		session.ConfirmationLink = s.orders.BuildConfirmationLink(order)
	}

	session.UpdatedAt = s.clock()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save booking session: %w", err)
	}
	if submitErr != nil {
		return session, submitErr
	}
	return session, nil
}
