package commands

import (
	"context"
	"time"

	"clinic-booking-api/internal/domain/voucher"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrVoucherNotFound     = errs.New("voucher not found")
	ErrDuplicateCode       = errs.New("voucher code already exists")
	ErrUsageLimitReached   = errs.New("voucher usage limit reached")
	ErrInvalidVoucherInput = errs.New("invalid voucher input")
)

type CreateVoucherParams struct {
	Code              string
	Title             string
	Description       *string
	DiscountType      string
	DiscountValue     float64
	MaxDiscountAmount *int64
	MinPurchaseAmount *int64
	ValidFrom         time.Time
	ValidUntil        time.Time
	IsActive          bool
	UsageLimit        *int32
}

// UpdateVoucherParams carries only the fields the caller wants to change.
// The code itself is immutable once issued.
type UpdateVoucherParams struct {
	Title             *string
	Description       *string
	DiscountType      *string
	DiscountValue     *float64
	MaxDiscountAmount *int64
	MinPurchaseAmount *int64
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	IsActive          *bool
	UsageLimit        *int32
}

type VoucherRepository interface {
	Create(ctx context.Context, id uuid.UUID, params CreateVoucherParams) error
	Update(ctx context.Context, id uuid.UUID, params UpdateVoucherParams) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementUsage consumes one use if and only if the counter is still
	// below the limit. The check and the increment happen in one statement.
	IncrementUsage(ctx context.Context, id uuid.UUID) (int32, error)
}

type VoucherCommands interface {
	Create(ctx context.Context, params CreateVoucherParams) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateVoucherParams) error
	Delete(ctx context.Context, id uuid.UUID) error
	Redeem(ctx context.Context, id uuid.UUID) (int32, error)
}

type voucherCommandsImpl struct {
	repo  VoucherRepository
	clock clock.Clock
}

func NewVoucherCommands(repo VoucherRepository, clk clock.Clock) VoucherCommands {
	return &voucherCommandsImpl{repo: repo, clock: clk}
}

func (c *voucherCommandsImpl) Create(ctx context.Context, params CreateVoucherParams) (uuid.UUID, error) {
	id := uuid.New()

	discount, err := voucher.NewDiscount(
		voucher.DiscountType(params.DiscountType),
		params.DiscountValue,
		params.MaxDiscountAmount,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidVoucherInput)
	}

	now := c.clock.Now()
	entity, err := voucher.New(
		id,
		params.Code,
		params.Title,
		params.Description,
		discount,
		params.MinPurchaseAmount,
		params.ValidFrom,
		params.ValidUntil,
		params.IsActive,
		params.UsageLimit,
		0,
		now,
		now,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidVoucherInput)
	}

	// Persist canonical forms, not the raw input.
	params.Code = entity.Code().String()
	params.DiscountType = string(discount.Type())
	if err := c.repo.Create(ctx, id, params); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrDuplicateCode
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (c *voucherCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdateVoucherParams) error {
	if params.DiscountType != nil || params.DiscountValue != nil {
		if params.DiscountType == nil || params.DiscountValue == nil {
			return ErrInvalidVoucherInput
		}
		if _, err := voucher.NewDiscount(
			voucher.DiscountType(*params.DiscountType),
			*params.DiscountValue,
			params.MaxDiscountAmount,
		); err != nil {
			return errs.Mark(err, ErrInvalidVoucherInput)
		}
		parsed, _ := voucher.ParseDiscountType(*params.DiscountType)
		canonical := string(parsed)
		params.DiscountType = &canonical
	}
	if params.ValidFrom != nil && params.ValidUntil != nil && params.ValidFrom.After(*params.ValidUntil) {
		return errs.Mark(voucher.ErrInvalidWindow, ErrInvalidVoucherInput)
	}

	if err := c.repo.Update(ctx, id, params); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}
	return nil
}

func (c *voucherCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}
	return nil
}

// Redeem consumes one use. It relies on the repository's conditional
// increment, so two concurrent redemptions of the last remaining use
// cannot both succeed.
func (c *voucherCommandsImpl) Redeem(ctx context.Context, id uuid.UUID) (int32, error) {
	count, err := c.repo.IncrementUsage(ctx, id)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return 0, ErrVoucherNotFound
		case infra.IsKind(err, infra.KindConstraintViolated):
			return 0, ErrUsageLimitReached
		}
		return 0, err
	}
	return count, nil
}
