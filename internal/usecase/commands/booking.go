package commands

import (
	"context"
	"log/slog"
	"time"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/domain/voucher"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrServiceUnavailable  = errs.New("service is not bookable")
	ErrBookingNotFound     = errs.New("booking not found")
	ErrInvalidBookingInput = errs.New("invalid booking input")
)

// VoucherRejectedError reports why a checkout voucher did not apply. The
// booking is not created (or is rolled back) when this is returned.
type VoucherRejectedError struct {
	Reason voucher.Reason
}

func (e *VoucherRejectedError) Error() string {
	return "voucher rejected: " + string(e.Reason)
}

type CreateBookingParams struct {
	BranchID      uuid.UUID
	ServiceID     uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartsAt      time.Time
	EndsAt        time.Time
	VoucherCode   *string
	Note          string
}

type CreateBookingResult struct {
	BookingID      uuid.UUID
	Reference      string
	PriceAmount    int64
	DiscountAmount int64
	FinalAmount    int64
	VoucherCode    *string
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
}

type BookingCommands interface {
	Create(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	repo            BookingRepository
	catalogQueries  queries.CatalogQueries
	voucherQueries  queries.VoucherQueries
	voucherCommands VoucherCommands
	clock           clock.Clock
}

func NewBookingCommands(
	repo BookingRepository,
	catalogQueries queries.CatalogQueries,
	voucherQueries queries.VoucherQueries,
	voucherCommands VoucherCommands,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		repo:            repo,
		catalogQueries:  catalogQueries,
		voucherQueries:  voucherQueries,
		voucherCommands: voucherCommands,
		clock:           clk,
	}
}

// Create books a service, optionally applying a voucher. The voucher is
// validated before the booking is written and its use is consumed only after
// the booking exists; losing the race on the last remaining use cancels the
// booking again.
func (c *bookingCommandsImpl) Create(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	svc, err := c.catalogQueries.GetService(ctx, params.ServiceID)
	if err != nil {
		if errs.Is(err, queries.ErrServiceNotFound) {
			return nil, ErrServiceUnavailable
		}
		return nil, err
	}
	if !svc.IsActive || svc.BranchID != params.BranchID {
		return nil, ErrServiceUnavailable
	}

	now := c.clock.Now()
	customer, err := booking.NewCustomer(params.CustomerName, params.CustomerEmail, params.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	slot, err := booking.NewTimeSlot(params.StartsAt, params.EndsAt, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	reference, err := booking.NewReference(now)
	if err != nil {
		return nil, err
	}

	var (
		discountAmount int64
		voucherID      *uuid.UUID
		appliedCode    *string
	)
	if params.VoucherCode != nil && *params.VoucherCode != "" {
		result, err := c.voucherQueries.Validate(ctx, *params.VoucherCode, svc.Price)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &VoucherRejectedError{Reason: result.Reason}
		}
		discountAmount = result.DiscountAmount
		voucherID = result.VoucherID
		appliedCode = &result.Code
	}

	entity, err := booking.New(
		reference,
		params.BranchID,
		params.ServiceID,
		customer,
		slot,
		svc.Price,
		discountAmount,
		voucherID,
		booking.NewNote(params.Note),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	if err := c.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	if voucherID != nil {
		if _, err := c.voucherCommands.Redeem(ctx, *voucherID); err != nil {
			c.compensate(ctx, entity.ID())
			if errs.IsAny(err, ErrUsageLimitReached, ErrVoucherNotFound) {
				return nil, &VoucherRejectedError{Reason: voucher.ReasonUsageLimitReached}
			}
			return nil, err
		}
	}

	return &CreateBookingResult{
		BookingID:      entity.ID(),
		Reference:      entity.Reference().String(),
		PriceAmount:    entity.PriceAmount(),
		DiscountAmount: entity.DiscountAmount(),
		FinalAmount:    entity.FinalAmount(),
		VoucherCode:    appliedCode,
	}, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.UpdateStatus(ctx, id, booking.StatusCancelled); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// compensate cancels a booking whose voucher redemption lost the race.
// Cancellation failure is logged, not returned: the caller already has a
// more specific error to report.
func (c *bookingCommandsImpl) compensate(ctx context.Context, id uuid.UUID) {
	if err := c.repo.UpdateStatus(ctx, id, booking.StatusCancelled); err != nil {
		slog.ErrorContext(ctx, "failed to cancel booking after voucher redemption loss",
			"booking_id", id.String(),
			"error", err.Error(),
		)
	}
}
