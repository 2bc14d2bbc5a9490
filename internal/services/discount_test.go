package services

import (
	"errors"
	"testing"
	"time"

	"eventhub/internal/models"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		dtype string
		value int64
		want  int64
	}{
		{"twenty percent off", 100000, "percentage", 20, 80000},
		{"full percentage", 100000, "percentage", 100, 0},
		{"fixed amount", 100000, "fixed", 25000, 75000},
		{"fixed exceeding price clamps to zero", 10000, "fixed", 25000, 0},
		{"zero price stays zero", 0, "percentage", 50, 0},
		{"unknown type leaves price untouched", 100000, "bogus", 50, 100000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := finalPrice(tt.price, tt.dtype, tt.value); got != tt.want {
				t.Errorf("finalPrice(%d, %s, %d) = %d, want %d",
					tt.price, tt.dtype, tt.value, got, tt.want)
			}
		})
	}
}

func TestCheckUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	limit5 := 5

	tests := []struct {
		name string
		dc   models.DiscountCode
		want error
	}{
		{"active unlimited", models.DiscountCode{IsActive: true}, nil},
		{"inactive", models.DiscountCode{IsActive: false}, ErrDiscountNotFound},
		{"expired", models.DiscountCode{IsActive: true, ExpirationDate: &past}, ErrDiscountExpired},
		{"not yet expired", models.DiscountCode{IsActive: true, ExpirationDate: &future}, nil},
		{"under limit", models.DiscountCode{IsActive: true, UsageLimit: &limit5, TimesUsed: 4}, nil},
		{"at limit", models.DiscountCode{IsActive: true, UsageLimit: &limit5, TimesUsed: 5}, ErrDiscountLimitReached},
		{"over limit", models.DiscountCode{IsActive: true, UsageLimit: &limit5, TimesUsed: 6}, ErrDiscountLimitReached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkUsable(&tt.dc, now)
			if !errors.Is(err, tt.want) {
				t.Errorf("checkUsable() = %v, want %v", err, tt.want)
			}
		})
	}
}

// A valid percentage code applied to the documented sale price.
func TestSaleTwentyScenario(t *testing.T) {
	dc := models.DiscountCode{
		Code:     "SALE20",
		Type:     string(models.DiscountPercentage),
		Value:    20,
		IsActive: true,
	}
	if err := checkUsable(&dc, time.Now()); err != nil {
		t.Fatalf("SALE20 unexpectedly rejected: %v", err)
	}
	if got := finalPrice(100000, dc.Type, dc.Value); got != 80000 {
		t.Errorf("SALE20 on 100000 = %d, want 80000", got)
	}

	limit := 1
	dc.UsageLimit = &limit
	dc.TimesUsed = 1
	if err := checkUsable(&dc, time.Now()); !errors.Is(err, ErrDiscountLimitReached) {
		t.Errorf("exhausted SALE20 = %v, want ErrDiscountLimitReached", err)
	}
}
