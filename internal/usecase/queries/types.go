package queries

import (
	"time"

	"clinic-booking-api/internal/domain/voucher"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type VoucherView struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	DiscountType      string    `json:"discount_type"`
	DiscountValue     float64   `json:"discount_value"`
	MaxDiscountAmount *int64    `json:"max_discount_amount,omitempty"`
	MinPurchaseAmount *int64    `json:"min_purchase_amount,omitempty"`
	UsageLimit        *int32    `json:"usage_limit,omitempty"`
	UsageCount        int32     `json:"usage_count"`
	IsActive          bool      `json:"is_active"`
	ValidFrom         time.Time `json:"valid_from"`
	ValidUntil        time.Time `json:"valid_until"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type VoucherPage struct {
	Items      []*VoucherView `json:"items"`
	Total      int64          `json:"total"`
	Page       int32          `json:"page"`
	Limit      int32          `json:"limit"`
	TotalPages int64          `json:"total_pages"`
}

// ValidationResult is the outcome of evaluating a voucher code against a
// purchase amount. Computed fresh on every call; carries no identity.
type ValidationResult struct {
	Valid          bool           `json:"valid"`
	Reason         voucher.Reason `json:"reason,omitempty"`
	VoucherID      *uuid.UUID     `json:"voucher_id,omitempty"`
	Code           string         `json:"code,omitempty"`
	DiscountAmount int64          `json:"discount_amount"`
	FinalAmount    int64          `json:"final_amount"`
}

type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	Reference      string     `json:"reference"`
	BranchID       uuid.UUID  `json:"branch_id"`
	BranchName     string     `json:"branch_name"`
	ServiceID      uuid.UUID  `json:"service_id"`
	ServiceName    string     `json:"service_name"`
	CustomerName   string     `json:"customer_name"`
	CustomerEmail  string     `json:"customer_email"`
	CustomerPhone  *string    `json:"customer_phone,omitempty"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         time.Time  `json:"ends_at"`
	PriceAmount    int64      `json:"price_amount"`
	DiscountAmount int64      `json:"discount_amount"`
	FinalAmount    int64      `json:"final_amount"`
	VoucherID      *uuid.UUID `json:"voucher_id,omitempty"`
	VoucherCode    *string    `json:"voucher_code,omitempty"`
	Note           *string    `json:"note,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branch_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price"`
	DurationMin int32     `json:"duration_min"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BranchView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
