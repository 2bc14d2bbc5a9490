package services

import (
	"errors"
	"testing"

	"eventhub/internal/models"
)

func TestCanCheckIn(t *testing.T) {
	if err := canCheckIn(string(models.CheckInPending)); err != nil {
		t.Errorf("pending ticket should check in, got %v", err)
	}
	if err := canCheckIn(string(models.CheckInCheckedIn)); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("checked-in ticket = %v, want ErrAlreadyCheckedIn", err)
	}
	if err := canCheckIn("garbage"); err == nil {
		t.Error("unknown state accepted for check-in")
	}
}

func TestCanCheckOut(t *testing.T) {
	if err := canCheckOut(string(models.CheckInCheckedIn)); err != nil {
		t.Errorf("checked-in ticket should check out, got %v", err)
	}
	if err := canCheckOut(string(models.CheckInPending)); !errors.Is(err, ErrNotCheckedIn) {
		t.Errorf("pending ticket = %v, want ErrNotCheckedIn", err)
	}
}

// The two transitions must invert each other's preconditions: a state
// accepted for check-in is rejected for check-out and vice versa.
func TestCheckInOutExclusive(t *testing.T) {
	for _, status := range []models.CheckInStatus{models.CheckInPending, models.CheckInCheckedIn} {
		in := canCheckIn(string(status)) == nil
		out := canCheckOut(string(status)) == nil
		if in == out {
			t.Errorf("state %q: check-in allowed=%v, check-out allowed=%v", status, in, out)
		}
	}
}
