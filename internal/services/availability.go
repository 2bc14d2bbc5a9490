package services

import (
	"errors"
	"fmt"
	"time"
)

// bufferMinutes is the mandatory gap on each side of an event so two
// bookings in the same room never run back to back.
const bufferMinutes = 60

const minutesPerDay = 24 * 60

// parseClock converts an "HH:MM" wall-clock string to minutes since
// midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func validateTimeRange(startTime, endTime string) (int, int, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, errors.New("end time must be after start time")
	}
	return start, end, nil
}

// bufferedWindow widens [start, end) by the booking buffer, clamped to
// the day.
func bufferedWindow(start, end int) (int, int) {
	start -= bufferMinutes
	if start < 0 {
		start = 0
	}
	end += bufferMinutes
	if end > minutesPerDay {
		end = minutesPerDay
	}
	return start, end
}

// windowsOverlap is inclusive at the edges: a booking ending at 12:00
// still blocks a buffered window reaching exactly 12:00.
func windowsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// conflictsWith reports whether a candidate slot, once buffered,
// collides with an existing booking's raw slot on the same room-day.
func conflictsWith(candStart, candEnd, existingStart, existingEnd int) bool {
	bufStart, bufEnd := bufferedWindow(candStart, candEnd)
	return windowsOverlap(bufStart, bufEnd, existingStart, existingEnd)
}
