package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/models"
)

type BookingServiceTestSuite struct {
	suite.Suite
	catalog  *MockCatalogLoader
	orders   *MockOrderSubmitter
	sessions *MemorySessionStore
	service  *BookingService
	now      time.Time
}

func bookingCatalog() *booking.Catalog {
	return booking.NewCatalog(
		[]models.MenuItem{
			{ID: "kopi-susu", Name: "Kopi Susu", Price: 18000, Category: models.CategoryCoffee, IsAvailable: true},
			{ID: "es-teh", Name: "Es Teh", Price: 8000, Category: models.CategoryNonCoffee, IsAvailable: true},
			{ID: "nasi-goreng", Name: "Nasi Goreng", Price: 30000, Category: models.CategoryFood, IsAvailable: true},
		},
		[]models.Package{
			{ID: "paket-hemat", Name: "Paket Hemat", Price: 25000, FoodOptions: []string{"nasi-goreng"}, DrinkOptions: []string{"es-teh", "kopi-susu"}, IsAvailable: true},
		},
		25000,
	)
}

func (s *BookingServiceTestSuite) SetupTest() {
	s.catalog = new(MockCatalogLoader)
	s.catalog.On("LoadCatalog", mock.Anything).Return(bookingCatalog(), nil)
	s.orders = new(MockOrderSubmitter)
	s.sessions = NewMemorySessionStore(time.Hour)
	s.now = time.Date(2024, 3, 10, 16, 0, 0, 0, jakarta)

	s.service = NewBookingService(s.sessions, s.catalog, s.orders, jakarta, logger.Discard())
	s.service.now = func() time.Time { return s.now }
}

// toMenu starts a session and confirms tomorrow 18:00
func (s *BookingServiceTestSuite) toMenu() *booking.Session {
	ctx := context.Background()
	session, err := s.service.Start(ctx)
	require.NoError(s.T(), err)

	session, err = s.service.ConfirmSchedule(ctx, session.ID, ScheduleInput{Date: "2024-03-11", Time: "18:00"})
	require.NoError(s.T(), err)
	require.Equal(s.T(), booking.StateMenu, session.State)
	return session
}

func (s *BookingServiceTestSuite) TestStart_PreselectsToday() {
	session, err := s.service.Start(context.Background())
	require.NoError(s.T(), err)

	assert.NotEmpty(s.T(), session.ID)
	assert.Equal(s.T(), booking.StateSchedule, session.State)
	assert.Equal(s.T(), "2024-03-10", session.Schedule.Date)

	stored, err := s.service.Get(context.Background(), session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), session.ID, stored.ID)
}

func (s *BookingServiceTestSuite) TestStart_CatalogFailure() {
	catalog := new(MockCatalogLoader)
	catalog.On("LoadCatalog", mock.Anything).Return(nil, errors.New("store offline"))
	svc := NewBookingService(s.sessions, catalog, s.orders, jakarta, logger.Discard())

	_, err := svc.Start(context.Background())
	assert.Error(s.T(), err)
}

func (s *BookingServiceTestSuite) TestConfirmSchedule_TimeGuard() {
	ctx := context.Background()
	session, err := s.service.Start(ctx)
	require.NoError(s.T(), err)

	_, err = s.service.ConfirmSchedule(ctx, session.ID, ScheduleInput{Time: "15:59"})
	var ve *booking.ValidationError
	require.ErrorAs(s.T(), err, &ve)
	assert.Equal(s.T(), "TIME_PASSED", ve.Code)

	stored, err := s.service.Get(ctx, session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StateSchedule, stored.State, "a refused schedule does not advance the flow")

	session, err = s.service.ConfirmSchedule(ctx, session.ID, ScheduleInput{Time: "16:00"})
	require.NoError(s.T(), err, "the current minute is still bookable")
	assert.Equal(s.T(), booking.StateMenu, session.State)
	assert.Equal(s.T(), "2024-03-10", session.Schedule.Date, "an omitted date keeps the preselected day")
}

func (s *BookingServiceTestSuite) TestConfirmSchedule_MealBreakShortcut() {
	ctx := context.Background()
	session, err := s.service.Start(ctx)
	require.NoError(s.T(), err)

	session, err = s.service.ConfirmSchedule(ctx, session.ID, ScheduleInput{Date: "2024-03-11", Time: "09:00", MealBreakShortcut: true})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.MealBreakTime, session.Schedule.Time)
}

func (s *BookingServiceTestSuite) TestCartEditing() {
	ctx := context.Background()
	session := s.toMenu()

	session, err := s.service.IncrementItem(ctx, session.ID, "kopi-susu")
	require.NoError(s.T(), err)
	session, err = s.service.IncrementItem(ctx, session.ID, "kopi-susu")
	require.NoError(s.T(), err)
	session, err = s.service.SetItemNote(ctx, session.ID, "kopi-susu", "less sugar")
	require.NoError(s.T(), err)
	session, err = s.service.AddBundle(ctx, session.ID, "paket-hemat", "nasi-goreng", "es-teh")
	require.NoError(s.T(), err)
	session, err = s.service.SetBundleNote(ctx, session.ID, 0, "pedas")
	require.NoError(s.T(), err)

	assert.Equal(s.T(), int64(61000), session.Cart.TotalPrice)
	assert.Equal(s.T(), 3, session.Cart.ItemCount())
	assert.Equal(s.T(), "less sugar", session.Cart.Lines[0].Note)
	assert.Equal(s.T(), "pedas", session.Cart.Bundles[0].Note)

	session, err = s.service.DecrementItem(ctx, session.ID, "kopi-susu")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(43000), session.Cart.TotalPrice)

	session, err = s.service.RemoveBundle(ctx, session.ID, 0)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(18000), session.Cart.TotalPrice)

	_, err = s.service.RemoveBundle(ctx, session.ID, 3)
	assert.True(s.T(), booking.IsValidationError(err))
}

func (s *BookingServiceTestSuite) TestCartEditing_OnlyAtMenuStep() {
	session, err := s.service.Start(context.Background())
	require.NoError(s.T(), err)

	_, err = s.service.IncrementItem(context.Background(), session.ID, "kopi-susu")
	assert.ErrorIs(s.T(), err, booking.ErrInvalidTransition)
}

func (s *BookingServiceTestSuite) TestCheckoutAndBack() {
	ctx := context.Background()
	session := s.toMenu()

	_, err := s.service.Checkout(ctx, session.ID)
	assert.True(s.T(), booking.IsValidationError(err), "an empty cart cannot check out")

	_, err = s.service.IncrementItem(ctx, session.ID, "es-teh")
	require.NoError(s.T(), err)

	session, err = s.service.Checkout(ctx, session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StateDetails, session.State)

	session, err = s.service.Back(ctx, session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StateMenu, session.State)
	assert.Equal(s.T(), 1, session.Cart.Quantity("es-teh"), "going back keeps the cart")

	session, err = s.service.Back(ctx, session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StateSchedule, session.State)

	_, err = s.service.Back(ctx, session.ID)
	assert.ErrorIs(s.T(), err, booking.ErrInvalidTransition)
}

func (s *BookingServiceTestSuite) toDetails() *booking.Session {
	ctx := context.Background()
	session := s.toMenu()
	_, err := s.service.IncrementItem(ctx, session.ID, "kopi-susu")
	require.NoError(s.T(), err)
	session, err = s.service.Checkout(ctx, session.ID)
	require.NoError(s.T(), err)
	return session
}

func (s *BookingServiceTestSuite) TestSubmit_Success() {
	session := s.toDetails()
	customer := booking.Customer{Name: "Budi", Phone: "081234"}
	order := &models.Order{ID: "order-1", Status: models.StatusPending, TotalPrice: 18000}

	s.orders.On("Submit", mock.Anything, booking.Schedule{Date: "2024-03-11", Time: "18:00"}, mock.AnythingOfType("*booking.Cart"), customer).
		Return(order, nil).Once()
	s.orders.On("BuildConfirmationLink", order).Return("https://wa.me/628?text=hi").Once()

	session, err := s.service.Submit(context.Background(), session.ID, customer)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StateSubmitted, session.State)
	assert.Equal(s.T(), "order-1", session.OrderID)
	assert.Equal(s.T(), "https://wa.me/628?text=hi", session.ConfirmationLink)

	// A submitted session is terminal, so it cannot create a second order
	_, err = s.service.Submit(context.Background(), session.ID, customer)
	assert.ErrorIs(s.T(), err, booking.ErrInvalidTransition)
	s.orders.AssertNumberOfCalls(s.T(), "Submit", 1)
}

// Sessions are loaded and saved without a lock, so a second request that read
// the session before the first one finished still sees it at the details step.
// Accepted limitation: both requests create an order.
func (s *BookingServiceTestSuite) TestSubmit_InterleavedRequestsCanSubmitTwice() {
	ctx := context.Background()
	session := s.toDetails()
	customer := booking.Customer{Name: "Budi", Phone: "081234"}

	s.orders.On("Submit", mock.Anything, mock.Anything, mock.Anything, customer).
		Return(&models.Order{ID: "order-1", Status: models.StatusPending}, nil).Once()
	s.orders.On("Submit", mock.Anything, mock.Anything, mock.Anything, customer).
		Return(&models.Order{ID: "order-2", Status: models.StatusPending}, nil).Once()
	s.orders.On("BuildConfirmationLink", mock.Anything).Return("https://wa.me/628?text=hi")

	stale, err := s.sessions.Get(ctx, session.ID)
	require.NoError(s.T(), err)

	first, err := s.service.Submit(ctx, session.ID, customer)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "order-1", first.OrderID)

	// the slower request wrote back what it read before the first one finished
	require.NoError(s.T(), s.sessions.Save(ctx, stale))

	second, err := s.service.Submit(ctx, session.ID, customer)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "order-2", second.OrderID)
	s.orders.AssertNumberOfCalls(s.T(), "Submit", 2)
}

func (s *BookingServiceTestSuite) TestSubmit_MissingDetails() {
	session := s.toDetails()

	_, err := s.service.Submit(context.Background(), session.ID, booking.Customer{Name: "Budi"})
	var ve *booking.ValidationError
	require.ErrorAs(s.T(), err, &ve)
	assert.Equal(s.T(), "PHONE_REQUIRED", ve.Code)
	s.orders.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestSubmit_WriteFailureReturnsToDetails() {
	session := s.toDetails()
	customer := booking.Customer{Name: "Budi", Phone: "081234"}
	s.orders.On("Submit", mock.Anything, mock.Anything, mock.Anything, customer).
		Return(nil, errors.New("write failed")).Once()

	session, err := s.service.Submit(context.Background(), session.ID, customer)
	assert.EqualError(s.T(), err, "write failed")
	require.NotNil(s.T(), session)
	assert.Equal(s.T(), booking.StateDetails, session.State)
	assert.Equal(s.T(), 1, session.Cart.Quantity("kopi-susu"), "the cart survives a failed write")
	assert.Empty(s.T(), session.OrderID)
}

func (s *BookingServiceTestSuite) TestUnknownSession() {
	_, err := s.service.Get(context.Background(), "missing")
	assert.ErrorIs(s.T(), err, ErrSessionNotFound)
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
