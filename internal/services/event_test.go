package services

import (
	"testing"
	"time"

	"eventhub/internal/models"
)

func TestRoomCapacity(t *testing.T) {
	for room := models.MinRoomNumber; room <= models.MaxRoomNumber; room++ {
		if got := roomCapacity(room); got != room*100 {
			t.Errorf("roomCapacity(%d) = %d, want %d", room, got, room*100)
		}
	}
}

func TestValidRoomNumber(t *testing.T) {
	for _, room := range []int{1, 5, 10} {
		if !validRoomNumber(room) {
			t.Errorf("room %d rejected", room)
		}
	}
	for _, room := range []int{0, -1, 11, 100} {
		if validRoomNumber(room) {
			t.Errorf("room %d accepted", room)
		}
	}
}

func TestEventEnded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		endTime string
		want    bool
	}{
		{"ended earlier today", "2025-06-01", "12:00", true},
		{"ends later today", "2025-06-01", "13:00", false},
		{"yesterday", "2025-05-31", "23:00", true},
		{"tomorrow", "2025-06-02", "09:00", false},
		{"unparseable date treated as not ended", "someday", "12:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventEnded(tt.date, tt.endTime, now); got != tt.want {
				t.Errorf("eventEnded(%s %s) = %v, want %v", tt.date, tt.endTime, got, tt.want)
			}
		})
	}
}

func TestCanEdit(t *testing.T) {
	event := &models.Event{OrganizerID: 7}

	if !canEdit(event, 7, string(models.RoleUser)) {
		t.Error("organizer denied")
	}
	if !canEdit(event, 99, string(models.RoleAdmin)) {
		t.Error("admin denied")
	}
	if canEdit(event, 99, string(models.RoleUser)) {
		t.Error("unrelated user allowed")
	}
}
