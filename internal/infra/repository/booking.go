package repository

import (
	"context"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/pgconv"
	"clinic-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type bookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) commands.BookingRepository {
	return &bookingRepository{db: dbtx}
}

const createBookingQuery = `
INSERT INTO bookings (
    id, reference, branch_id, service_id,
    customer_name, customer_email, customer_phone,
    starts_at, ends_at,
    price_amount, discount_amount, voucher_id, note, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (r *bookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	var phone pgtype.Text
	if p := b.Customer().Phone(); p != "" {
		phone = pgconv.StringToPgtype(p)
	}
	var note pgtype.Text
	if n := b.Note(); !n.IsEmpty() {
		note = pgconv.StringToPgtype(n.String())
	}

	_, err := r.db.Exec(ctx, createBookingQuery,
		pgconv.UUIDToPgtype(b.ID()),
		b.Reference().String(),
		pgconv.UUIDToPgtype(b.BranchID()),
		pgconv.UUIDToPgtype(b.ServiceID()),
		b.Customer().Name(),
		b.Customer().Email(),
		phone,
		pgconv.TimeToPgtype(b.Slot().Start()),
		pgconv.TimeToPgtype(b.Slot().End()),
		b.PriceAmount(),
		b.DiscountAmount(),
		pgconv.UUIDPtrToPgtype(b.VoucherID()),
		note,
		b.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
		status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
