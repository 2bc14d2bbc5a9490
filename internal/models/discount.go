package models

import "time"

type DiscountCode struct {
	ID             int        `json:"id"`
	Code           string     `json:"code"`
	Value          int64      `json:"value"`
	Type           string     `json:"type"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UsageLimit     *int       `json:"usage_limit,omitempty"`
	TimesUsed      int        `json:"times_used"`
	IsActive       bool       `json:"is_active"`
	CreatedBy      int        `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type CreateDiscountRequest struct {
	Code           string     `json:"code"`
	Value          int64      `json:"value"`
	Type           string     `json:"type"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UsageLimit     *int       `json:"usage_limit,omitempty"`
}

type UpdateDiscountRequest struct {
	Value          *int64     `json:"value,omitempty"`
	Type           *string    `json:"type,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UsageLimit     *int       `json:"usage_limit,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

type ValidateDiscountRequest struct {
	Code  string `json:"code"`
	Price *int64 `json:"price,omitempty"`
}

type ValidateDiscountResponse struct {
	Code       string `json:"code"`
	Type       string `json:"type"`
	Value      int64  `json:"value"`
	FinalPrice *int64 `json:"final_price,omitempty"`
}
