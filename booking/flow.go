package booking

import (
	"fmt"
	"strings"
	"time"
)

// MinimumCartItems is the fewest items (line quantities plus bundles) a cart
// needs before the customer can move on to the details step
const MinimumCartItems = 1

// State is a step of the customer booking flow
type State string

const (
	StateSchedule   State = "schedule"
	StateMenu       State = "menu"
	StateDetails    State = "details"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Customer holds the contact details collected before submission
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note,omitempty"`
}

// Event is an input to the booking state machine
type Event interface {
	eventName() string
}

// ScheduleConfirmed moves from schedule to menu once the schedule is complete
// and not in the past relative to Now
type ScheduleConfirmed struct {
	Schedule Schedule
	Now      time.Time
}

// CheckoutRequested moves from menu to details when the cart is large enough
type CheckoutRequested struct {
	ItemCount int
}

// BackRequested steps back one screen
type BackRequested struct{}

// DetailsSubmitted starts the submission once the customer details are valid
type DetailsSubmitted struct {
	Customer Customer
}

// SubmissionSucceeded is raised after the order was stored
type SubmissionSucceeded struct{}

// SubmissionFailed is raised when storing the order failed
type SubmissionFailed struct{}

func (ScheduleConfirmed) eventName() string   { return "confirm_schedule" }
func (CheckoutRequested) eventName() string   { return "checkout" }
func (BackRequested) eventName() string       { return "back" }
func (DetailsSubmitted) eventName() string    { return "submit_details" }
func (SubmissionSucceeded) eventName() string { return "submission_succeeded" }
func (SubmissionFailed) eventName() string    { return "submission_failed" }

// Transition computes the next state for event, or the reason it is refused.
// It has no side effects.
func Transition(from State, event Event) (State, error) {
	switch e := event.(type) {
	case ScheduleConfirmed:
		if from != StateSchedule {
			break
		}
		if !ScheduleIsComplete(e.Schedule) {
			return from, validationError("SCHEDULE_REQUIRED", "schedule", "Please fill in both the date and the time")
		}
		ok, err := ScheduleNotInPast(e.Schedule, e.Now)
		if err != nil {
			return from, err
		}
		if !ok {
			return from, validationError("TIME_PASSED", "schedule", "That time has already passed, please pick a future slot")
		}
		return StateMenu, nil

	case CheckoutRequested:
		if from != StateMenu {
			break
		}
		if !CartMeetsMinimum(e.ItemCount) {
			return from, validationError("CART_TOO_SMALL", "cart", fmt.Sprintf("Pick at least %d item(s) to continue", MinimumCartItems))
		}
		return StateDetails, nil

	case BackRequested:
		switch from {
		case StateMenu:
			return StateSchedule, nil
		case StateDetails:
			return StateMenu, nil
		}

	case DetailsSubmitted:
		if from != StateDetails {
			break
		}
		if err := validateCustomer(e.Customer); err != nil {
			return from, err
		}
		return StateSubmitting, nil

	case SubmissionSucceeded:
		if from == StateSubmitting {
			return StateSubmitted, nil
		}

	case SubmissionFailed:
		if from == StateSubmitting {
			return StateDetails, nil
		}
	}

	return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event.eventName(), from)
}

// CartMeetsMinimum reports whether itemCount reaches MinimumCartItems
func CartMeetsMinimum(itemCount int) bool {
	return itemCount >= MinimumCartItems
}

// CustomerIsComplete reports whether name and phone are present
func CustomerIsComplete(c Customer) bool {
	return validateCustomer(c) == nil
}

func validateCustomer(c Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return validationError("NAME_REQUIRED", "customer_name", "Customer name is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return validationError("PHONE_REQUIRED", "customer_phone", "Customer phone is required")
	}
	return nil
}
