package services

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:00", 600, false},
		{"13:01", 781, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"10", 0, true},
		{"", 0, true},
		{"ten o'clock", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidateTimeRange(t *testing.T) {
	if _, _, err := validateTimeRange("10:00", "12:00"); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if _, _, err := validateTimeRange("12:00", "12:00"); err == nil {
		t.Error("zero-length range accepted")
	}
	if _, _, err := validateTimeRange("12:00", "10:00"); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestBufferedWindowClamps(t *testing.T) {
	start, end := bufferedWindow(600, 720) // 10:00-12:00
	if start != 540 || end != 780 {
		t.Errorf("bufferedWindow(600, 720) = (%d, %d), want (540, 780)", start, end)
	}

	start, end = bufferedWindow(30, 1410) // 00:30-23:30
	if start != 0 {
		t.Errorf("early start not clamped to midnight, got %d", start)
	}
	if end != minutesPerDay {
		t.Errorf("late end not clamped to end of day, got %d", end)
	}
}

func mustClock(t *testing.T, s string) int {
	t.Helper()
	m, err := parseClock(s)
	if err != nil {
		t.Fatalf("parseClock(%q): %v", s, err)
	}
	return m
}

func TestConflictsWith(t *testing.T) {
	// Existing booking 10:00-12:00; the 1h buffer must reject anything
	// starting at or before 13:00 and anything ending at or after 09:00.
	exStart := mustClock(t, "10:00")
	exEnd := mustClock(t, "12:00")

	tests := []struct {
		name       string
		start, end string
		conflict   bool
	}{
		{"same slot", "10:00", "12:00", true},
		{"contained", "10:30", "11:00", true},
		{"within buffer after", "12:30", "13:30", true},
		{"starts exactly at buffer edge", "13:00", "14:00", true},
		{"one minute past buffer", "13:01", "14:00", false},
		{"within buffer before", "08:30", "09:30", true},
		{"ends exactly at buffer edge", "08:00", "09:00", true},
		{"one minute before buffer", "07:00", "08:59", false},
		{"far earlier", "06:00", "07:00", false},
		{"far later", "15:00", "16:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := mustClock(t, tt.start)
			end := mustClock(t, tt.end)
			if got := conflictsWith(start, end, exStart, exEnd); got != tt.conflict {
				t.Errorf("conflictsWith(%s-%s vs 10:00-12:00) = %v, want %v",
					tt.start, tt.end, got, tt.conflict)
			}
		})
	}
}

// Symmetry: if A conflicts with B, booking B first must also block A.
func TestConflictSymmetry(t *testing.T) {
	pairs := []struct {
		aStart, aEnd, bStart, bEnd string
	}{
		{"10:00", "12:00", "12:30", "13:30"},
		{"10:00", "12:00", "13:01", "14:00"},
		{"09:00", "10:00", "11:30", "12:00"},
	}
	for _, p := range pairs {
		aS, aE := mustClock(t, p.aStart), mustClock(t, p.aEnd)
		bS, bE := mustClock(t, p.bStart), mustClock(t, p.bEnd)
		if conflictsWith(aS, aE, bS, bE) != conflictsWith(bS, bE, aS, aE) {
			t.Errorf("conflict check not symmetric for %s-%s vs %s-%s",
				p.aStart, p.aEnd, p.bStart, p.bEnd)
		}
	}
}
