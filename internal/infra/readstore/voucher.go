package readstore

import (
	"context"
	"time"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/pgconv"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type voucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) queries.VoucherReadStore {
	return &voucherReadStore{db: dbtx}
}

const voucherColumns = `
    id, code, title, description,
    discount_type, discount_value, max_discount_amount, min_purchase_amount,
    valid_from, valid_until, is_active, usage_limit, usage_count,
    created_at, updated_at
`

func (s *voucherReadStore) FindByCode(ctx context.Context, code string) (*queries.VoucherView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE code = $1`, code)
	view, err := scanVoucherView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return view, nil
}

const listActiveVouchersQuery = `
SELECT ` + voucherColumns + `
FROM vouchers
WHERE is_active
  AND valid_from <= $1
  AND valid_until >= $1
ORDER BY created_at DESC, code
`

func (s *voucherReadStore) ListActive(ctx context.Context, now time.Time) ([]*queries.VoucherView, error) {
	rows, err := s.db.Query(ctx, listActiveVouchersQuery, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active vouchers", err)
	}
	defer rows.Close()
	return collectVoucherViews(rows)
}

func (s *voucherReadStore) ListPage(ctx context.Context, limit, offset int32) ([]*queries.VoucherView, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM vouchers`).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count vouchers", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+voucherColumns+` FROM vouchers ORDER BY created_at DESC, code LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list vouchers", err)
	}
	defer rows.Close()

	views, err := collectVoucherViews(rows)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func collectVoucherViews(rows pgx.Rows) ([]*queries.VoucherView, error) {
	views := make([]*queries.VoucherView, 0)
	for rows.Next() {
		view, err := scanVoucherView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate voucher rows", err)
	}
	return views, nil
}

func scanVoucherView(row pgx.Row) (*queries.VoucherView, error) {
	var (
		id                pgtype.UUID
		description       pgtype.Text
		discountValue     pgtype.Numeric
		maxDiscountAmount pgtype.Int8
		minPurchaseAmount pgtype.Int8
		validFrom         pgtype.Timestamptz
		validUntil        pgtype.Timestamptz
		usageLimit        pgtype.Int4
		createdAt         pgtype.Timestamptz
		updatedAt         pgtype.Timestamptz
		view              queries.VoucherView
	)

	err := row.Scan(
		&id, &view.Code, &view.Title, &description,
		&view.DiscountType, &discountValue, &maxDiscountAmount, &minPurchaseAmount,
		&validFrom, &validUntil, &view.IsActive, &usageLimit, &view.UsageCount,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	value, err := pgconv.Float64FromNumeric(discountValue)
	if err != nil {
		return nil, err
	}

	view.ID = uuid.UUID(id.Bytes)
	view.Description = pgconv.StringPtrFromPgtype(description)
	view.DiscountValue = value
	view.MaxDiscountAmount = pgconv.Int64PtrFromPgtype(maxDiscountAmount)
	view.MinPurchaseAmount = pgconv.Int64PtrFromPgtype(minPurchaseAmount)
	view.ValidFrom = pgconv.TimeFromPgtype(validFrom)
	view.ValidUntil = pgconv.TimeFromPgtype(validUntil)
	view.UsageLimit = pgconv.Int32PtrFromPgtype(usageLimit)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
