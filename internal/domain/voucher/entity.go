package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow = errors.New("validFrom must not be after validUntil")
	ErrInvalidUsage  = errors.New("usage count cannot be negative or exceed the usage limit")
)

// Voucher is a promotional code definition. The usage counter is mutated only
// through the store's atomic increment; the entity itself is a read snapshot.
type Voucher struct {
	id                uuid.UUID
	code              Code
	title             string
	description       *string
	discount          Discount
	minPurchaseAmount *int64
	validFrom         time.Time
	validUntil        time.Time
	isActive          bool
	usageLimit        *int32
	usageCount        int32
	createdAt         time.Time
	updatedAt         time.Time
}

func New(
	id uuid.UUID,
	code string,
	title string,
	description *string,
	discount Discount,
	minPurchaseAmount *int64,
	validFrom, validUntil time.Time,
	isActive bool,
	usageLimit *int32,
	usageCount int32,
	createdAt, updatedAt time.Time,
) (*Voucher, error) {
	voucherCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	if validFrom.After(validUntil) {
		return nil, ErrInvalidWindow
	}

	if usageCount < 0 || (usageLimit != nil && usageCount > *usageLimit) {
		return nil, ErrInvalidUsage
	}

	return &Voucher{
		id:                id,
		code:              voucherCode,
		title:             title,
		description:       description,
		discount:          discount,
		minPurchaseAmount: minPurchaseAmount,
		validFrom:         validFrom,
		validUntil:        validUntil,
		isActive:          isActive,
		usageLimit:        usageLimit,
		usageCount:        usageCount,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

// EligibilityAt evaluates the fixed eligibility chain. The order is part of
// the contract: a voucher that is both deactivated and expired reports
// INACTIVE, never EXPIRED.
func (v *Voucher) EligibilityAt(t time.Time) (Reason, bool) {
	if !v.isActive {
		return ReasonInactive, false
	}
	if t.Before(v.validFrom) {
		return ReasonNotYetValid, false
	}
	if t.After(v.validUntil) {
		return ReasonExpired, false
	}
	if v.usageLimit != nil && v.usageCount >= *v.usageLimit {
		return ReasonUsageLimitReached, false
	}
	return "", true
}

// MeetsMinimumPurchase reports whether the purchase amount clears the
// voucher's floor, if one is set.
func (v *Voucher) MeetsMinimumPurchase(purchaseAmount int64) bool {
	return v.minPurchaseAmount == nil || purchaseAmount >= *v.minPurchaseAmount
}

// DiscountFor computes the discount this voucher grants on a purchase amount.
func (v *Voucher) DiscountFor(purchaseAmount int64) int64 {
	return v.discount.AmountFor(purchaseAmount)
}

// StateAt derives the externally observable lifecycle state.
func (v *Voucher) StateAt(t time.Time) State {
	switch reason, ok := v.EligibilityAt(t); {
	case ok:
		return StateActive
	case reason == ReasonInactive:
		return StateDeactivated
	case reason == ReasonNotYetValid:
		return StateScheduled
	case reason == ReasonExpired:
		return StateExpired
	default:
		return StateExhausted
	}
}

func (v *Voucher) ID() uuid.UUID             { return v.id }
func (v *Voucher) Code() Code                { return v.code }
func (v *Voucher) Title() string             { return v.title }
func (v *Voucher) Description() *string      { return v.description }
func (v *Voucher) Discount() Discount        { return v.discount }
func (v *Voucher) MinPurchaseAmount() *int64 { return v.minPurchaseAmount }
func (v *Voucher) ValidFrom() time.Time      { return v.validFrom }
func (v *Voucher) ValidUntil() time.Time     { return v.validUntil }
func (v *Voucher) IsActive() bool            { return v.isActive }
func (v *Voucher) UsageLimit() *int32        { return v.usageLimit }
func (v *Voucher) UsageCount() int32         { return v.usageCount }
func (v *Voucher) CreatedAt() time.Time      { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time      { return v.updatedAt }
