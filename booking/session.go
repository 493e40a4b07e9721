package booking

import (
	"fmt"
	"time"
)

// Session is one customer's pass through the booking flow
type Session struct {
	ID               string    `json:"id"`
	State            State     `json:"state"`
	Schedule         Schedule  `json:"schedule"`
	Cart             *Cart     `json:"cart"`
	Customer         Customer  `json:"customer"`
	OrderID          string    `json:"order_id,omitempty"`
	ConfirmationLink string    `json:"confirmation_link,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewSession starts a flow at the schedule step with today's date preselected
func NewSession(id string, now time.Time, catalog *Catalog) *Session {
	return &Session{
		ID:        id,
		State:     StateSchedule,
		Schedule:  Schedule{Date: now.Format(DateLayout)},
		Cart:      NewCart(catalog),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply runs event through Transition and records the new state
func (s *Session) Apply(event Event) error {
	next, err := Transition(s.State, event)
	if err != nil {
		return err
	}
	s.State = next
	return nil
}

// RequireState fails unless the session is in want
func (s *Session) RequireState(want State) error {
	if s.State != want {
		return fmt.Errorf("%w: session is in %s, expected %s", ErrInvalidTransition, s.State, want)
	}
	return nil
}

// Attach binds the session's cart to catalog, creating the cart if needed
func (s *Session) Attach(catalog *Catalog) {
	if s.Cart == nil {
		s.Cart = NewCart(catalog)
	}
	s.Cart.Attach(catalog)
}
