package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func TestTransition_ScheduleGuard(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, jakarta)

	tests := []struct {
		name     string
		schedule Schedule
		want     State
		wantCode string
	}{
		{"one minute in the past is blocked", Schedule{Date: "2024-03-10", Time: "11:59"}, StateSchedule, "TIME_PASSED"},
		{"one minute in the future passes", Schedule{Date: "2024-03-10", Time: "12:01"}, StateMenu, ""},
		{"exactly now passes", Schedule{Date: "2024-03-10", Time: "12:00"}, StateMenu, ""},
		{"yesterday is blocked", Schedule{Date: "2024-03-09", Time: "18:00"}, StateSchedule, "TIME_PASSED"},
		{"seconds from a time picker are accepted", Schedule{Date: "2024-03-11", Time: "18:00:00"}, StateMenu, ""},
		{"missing time", Schedule{Date: "2024-03-11"}, StateSchedule, "SCHEDULE_REQUIRED"},
		{"missing date", Schedule{Time: "18:00"}, StateSchedule, "SCHEDULE_REQUIRED"},
		{"malformed date", Schedule{Date: "11/03/2024", Time: "18:00"}, StateSchedule, "INVALID_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(StateSchedule, ScheduleConfirmed{Schedule: tt.schedule, Now: now})

			assert.Equal(t, tt.want, got)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantCode, ve.Code)
		})
	}
}

func TestTransition_FutureScheduleAlwaysPasses(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, jakarta)

	// Every day of the following week, at several offsets
	for day := 0; day < 7; day++ {
		for _, offset := range []time.Duration{time.Minute, 3 * time.Hour, 11 * time.Hour} {
			at := now.Add(time.Duration(day)*24*time.Hour + offset)
			schedule := Schedule{Date: at.Format(DateLayout), Time: at.Format(TimeLayout)}

			got, err := Transition(StateSchedule, ScheduleConfirmed{Schedule: schedule, Now: now})

			assert.NoError(t, err, "schedule %+v", schedule)
			assert.Equal(t, StateMenu, got)
		}
	}
}

func TestTransition_Checkout(t *testing.T) {
	got, err := Transition(StateMenu, CheckoutRequested{ItemCount: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "CART_TOO_SMALL", ve.Code)
	assert.Equal(t, StateMenu, got)

	got, err = Transition(StateMenu, CheckoutRequested{ItemCount: MinimumCartItems})
	assert.NoError(t, err)
	assert.Equal(t, StateDetails, got)
}

func TestTransition_Back(t *testing.T) {
	got, err := Transition(StateMenu, BackRequested{})
	assert.NoError(t, err)
	assert.Equal(t, StateSchedule, got)

	got, err = Transition(StateDetails, BackRequested{})
	assert.NoError(t, err)
	assert.Equal(t, StateMenu, got)

	for _, from := range []State{StateSchedule, StateSubmitting, StateSubmitted} {
		_, err := Transition(from, BackRequested{})
		assert.True(t, errors.Is(err, ErrInvalidTransition), "back from %s", from)
	}
}

func TestTransition_Details(t *testing.T) {
	_, err := Transition(StateDetails, DetailsSubmitted{Customer: Customer{Phone: "081234"}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "NAME_REQUIRED", ve.Code)

	_, err = Transition(StateDetails, DetailsSubmitted{Customer: Customer{Name: "Budi", Phone: "  "}})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "PHONE_REQUIRED", ve.Code)

	got, err := Transition(StateDetails, DetailsSubmitted{Customer: Customer{Name: "Budi", Phone: "081234"}})
	assert.NoError(t, err)
	assert.Equal(t, StateSubmitting, got)
}

func TestTransition_Submission(t *testing.T) {
	got, err := Transition(StateSubmitting, SubmissionSucceeded{})
	assert.NoError(t, err)
	assert.Equal(t, StateSubmitted, got)

	got, err = Transition(StateSubmitting, SubmissionFailed{})
	assert.NoError(t, err)
	assert.Equal(t, StateDetails, got)
}

func TestTransition_SubmittedIsTerminal(t *testing.T) {
	events := []Event{
		ScheduleConfirmed{Schedule: Schedule{Date: "2099-01-01", Time: "10:00"}, Now: time.Now()},
		CheckoutRequested{ItemCount: 5},
		BackRequested{},
		DetailsSubmitted{Customer: Customer{Name: "Budi", Phone: "081234"}},
		SubmissionSucceeded{},
		SubmissionFailed{},
	}

	for _, event := range events {
		got, err := Transition(StateSubmitted, event)
		assert.True(t, errors.Is(err, ErrInvalidTransition), "%T", event)
		assert.Equal(t, StateSubmitted, got)
	}
}

func TestTransition_EventsOutOfOrder(t *testing.T) {
	_, err := Transition(StateSchedule, CheckoutRequested{ItemCount: 3})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = Transition(StateMenu, DetailsSubmitted{Customer: Customer{Name: "Budi", Phone: "081234"}})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = Transition(StateDetails, SubmissionSucceeded{})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestSession_Walkthrough(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, jakarta)
	session := NewSession("s-1", now, testCatalog())

	assert.Equal(t, StateSchedule, session.State)
	assert.Equal(t, "2024-03-10", session.Schedule.Date, "date should default to today")

	session.Schedule.Time = MealBreakTime
	require.NoError(t, session.Apply(ScheduleConfirmed{Schedule: session.Schedule, Now: now}))
	require.NoError(t, session.RequireState(StateMenu))

	require.NoError(t, session.Cart.Increment("kopi-susu"))
	require.NoError(t, session.Apply(CheckoutRequested{ItemCount: session.Cart.ItemCount()}))
	assert.Equal(t, StateDetails, session.State)

	err := session.RequireState(StateMenu)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.NoError(t, session.Apply(DetailsSubmitted{Customer: Customer{Name: "Budi", Phone: "081234"}}))
	require.NoError(t, session.Apply(SubmissionSucceeded{}))
	assert.Equal(t, StateSubmitted, session.State)
}
