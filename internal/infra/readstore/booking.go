package readstore

import (
	"context"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/pgconv"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type bookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) queries.BookingReadStore {
	return &bookingReadStore{db: dbtx}
}

const bookingSelect = `
SELECT
    b.id, b.reference, b.branch_id, br.name, b.service_id, sv.name,
    b.customer_name, b.customer_email, b.customer_phone,
    b.starts_at, b.ends_at,
    b.price_amount, b.discount_amount,
    b.voucher_id, v.code,
    b.note, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN branches br ON br.id = b.branch_id
JOIN services sv ON sv.id = b.service_id
LEFT JOIN vouchers v ON v.id = b.voucher_id
`

func (s *bookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingSelect+`WHERE b.id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return view, nil
}

func (s *bookingReadStore) FindByReference(ctx context.Context, reference string) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingSelect+`WHERE b.reference = $1`, reference)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by reference", err)
	}
	return view, nil
}

func (s *bookingReadStore) ListByEmail(ctx context.Context, email string) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, bookingSelect+`WHERE b.customer_email = $1 ORDER BY b.starts_at DESC`, email)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by email", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		id        pgtype.UUID
		branchID  pgtype.UUID
		serviceID pgtype.UUID
		phone     pgtype.Text
		startsAt  pgtype.Timestamptz
		endsAt    pgtype.Timestamptz
		voucherID pgtype.UUID
		code      pgtype.Text
		note      pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		view      queries.BookingView
	)

	err := row.Scan(
		&id, &view.Reference, &branchID, &view.BranchName, &serviceID, &view.ServiceName,
		&view.CustomerName, &view.CustomerEmail, &phone,
		&startsAt, &endsAt,
		&view.PriceAmount, &view.DiscountAmount,
		&voucherID, &code,
		&note, &view.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.ID = uuid.UUID(id.Bytes)
	view.BranchID = uuid.UUID(branchID.Bytes)
	view.ServiceID = uuid.UUID(serviceID.Bytes)
	view.CustomerPhone = pgconv.StringPtrFromPgtype(phone)
	view.StartsAt = pgconv.TimeFromPgtype(startsAt)
	view.EndsAt = pgconv.TimeFromPgtype(endsAt)
	view.VoucherID = pgconv.UUIDPtrFromPgtype(voucherID)
	view.VoucherCode = pgconv.StringPtrFromPgtype(code)
	view.Note = pgconv.StringPtrFromPgtype(note)
	view.FinalAmount = view.PriceAmount - view.DiscountAmount
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
