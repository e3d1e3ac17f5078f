package voucher

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCode            = errors.New("invalid voucher code format")
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidMaxDiscount     = errors.New("maximum discount amount cannot be negative")
)

// MaxCodeLength bounds human-entered codes before any store lookup.
const MaxCodeLength = 50

// Code is a voucher code in its canonical (upper-case) form.
type Code string

// NewCode normalizes a human-entered code. Codes are compared
// case-insensitively, so the canonical form is upper-case.
func NewCode(code string) (Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > MaxCodeLength {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Discount is either a percentage off (optionally capped) or a fixed amount
// off. Amounts are integral currency units (VND).
type Discount struct {
	amountOff    *int64
	percentOff   *float64
	maxAmountOff *int64
}

func NewFixedDiscount(amountOff int64) (Discount, error) {
	if amountOff < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOff: &amountOff}, nil
}

func NewPercentageDiscount(percentOff float64, maxAmountOff *int64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	if maxAmountOff != nil && *maxAmountOff < 0 {
		return Discount{}, ErrInvalidMaxDiscount
	}
	return Discount{percentOff: &percentOff, maxAmountOff: maxAmountOff}, nil
}

// NewDiscount builds a discount from its stored representation.
func NewDiscount(discountType DiscountType, value float64, maxAmountOff *int64) (Discount, error) {
	parsed, err := ParseDiscountType(string(discountType))
	if err != nil {
		return Discount{}, err
	}
	switch parsed {
	case DiscountPercentage:
		return NewPercentageDiscount(value, maxAmountOff)
	case DiscountFixed:
		return NewFixedDiscount(int64(value))
	default:
		return Discount{}, ErrInvalidDiscountType
	}
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) Type() DiscountType {
	if d.IsPercentage() {
		return DiscountPercentage
	}
	return DiscountFixed
}

func (d Discount) AmountOff() int64 {
	if d.amountOff != nil {
		return *d.amountOff
	}
	return 0
}

func (d Discount) PercentOff() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return 0
}

func (d Discount) MaxAmountOff() *int64 {
	return d.maxAmountOff
}

// Value returns the stored magnitude regardless of kind.
func (d Discount) Value() float64 {
	if d.IsPercentage() {
		return d.PercentOff()
	}
	return float64(d.AmountOff())
}

// AmountFor computes the discount for a purchase amount. The result never
// exceeds the purchase amount, so the final price never goes negative.
func (d Discount) AmountFor(purchaseAmount int64) int64 {
	if purchaseAmount <= 0 {
		return 0
	}

	if d.IsPercentage() {
		amount := int64(float64(purchaseAmount) * d.PercentOff() / 100.0)
		if d.maxAmountOff != nil && amount > *d.maxAmountOff {
			amount = *d.maxAmountOff
		}
		if amount > purchaseAmount {
			amount = purchaseAmount
		}
		return amount
	}

	if d.AmountOff() > purchaseAmount {
		return purchaseAmount
	}
	return d.AmountOff()
}
