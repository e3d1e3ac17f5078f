package voucher

import "strings"

// DiscountType discriminates how a voucher's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED_AMOUNT"
)

// ParseDiscountType also accepts the legacy "FIXED" spelling still present
// in older stored rows; the canonical form is always emitted.
func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PERCENTAGE":
		return DiscountPercentage, nil
	case "FIXED", "FIXED_AMOUNT":
		return DiscountFixed, nil
	default:
		return "", ErrInvalidDiscountType
	}
}

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixed:
		return true
	default:
		return false
	}
}

// Reason is the stable code a failed validation carries. The order in which
// reasons are produced is fixed; callers and tests rely on first-match-wins.
type Reason string

const (
	ReasonInvalidFormat        Reason = "INVALID_FORMAT"
	ReasonInvalidAmount        Reason = "INVALID_AMOUNT"
	ReasonCodeNotFound         Reason = "CODE_NOT_FOUND"
	ReasonInactive             Reason = "INACTIVE"
	ReasonNotYetValid          Reason = "NOT_YET_VALID"
	ReasonExpired              Reason = "EXPIRED"
	ReasonUsageLimitReached    Reason = "USAGE_LIMIT_REACHED"
	ReasonBelowMinimumPurchase Reason = "BELOW_MINIMUM_PURCHASE"
)

func (r Reason) String() string {
	return string(r)
}

// State is the externally observable lifecycle position of a voucher,
// derived from its flags and counters at a point in time.
type State string

const (
	StateScheduled   State = "scheduled"
	StateActive      State = "active"
	StateExhausted   State = "exhausted"
	StateExpired     State = "expired"
	StateDeactivated State = "deactivated"
)
