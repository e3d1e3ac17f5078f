package repository

import (
	"context"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/pgconv"
	"clinic-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type voucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(dbtx db.DBTX) commands.VoucherRepository {
	return &voucherRepository{db: dbtx}
}

const createVoucherQuery = `
INSERT INTO vouchers (
    id, code, title, description,
    discount_type, discount_value, max_discount_amount, min_purchase_amount,
    valid_from, valid_until, is_active, usage_limit
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func (r *voucherRepository) Create(ctx context.Context, id uuid.UUID, params commands.CreateVoucherParams) error {
	_, err := r.db.Exec(ctx, createVoucherQuery,
		pgconv.UUIDToPgtype(id),
		params.Code,
		params.Title,
		pgconv.StringPtrToPgtype(params.Description),
		params.DiscountType,
		params.DiscountValue,
		pgconv.Int64PtrToPgtype(params.MaxDiscountAmount),
		pgconv.Int64PtrToPgtype(params.MinPurchaseAmount),
		pgconv.TimeToPgtype(params.ValidFrom),
		pgconv.TimeToPgtype(params.ValidUntil),
		params.IsActive,
		pgconv.Int32PtrToPgtype(params.UsageLimit),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

// Partial update: NULL parameters keep the stored value. Clearing a nullable
// column back to NULL is not supported through this path.
const updateVoucherQuery = `
UPDATE vouchers SET
    title               = COALESCE($2, title),
    description         = COALESCE($3, description),
    discount_type       = COALESCE($4, discount_type),
    discount_value      = COALESCE($5, discount_value),
    max_discount_amount = COALESCE($6, max_discount_amount),
    min_purchase_amount = COALESCE($7, min_purchase_amount),
    valid_from          = COALESCE($8, valid_from),
    valid_until         = COALESCE($9, valid_until),
    is_active           = COALESCE($10, is_active),
    usage_limit         = COALESCE($11, usage_limit),
    updated_at          = now()
WHERE id = $1
`

func (r *voucherRepository) Update(ctx context.Context, id uuid.UUID, params commands.UpdateVoucherParams) error {
	var validFrom, validUntil any
	if params.ValidFrom != nil {
		validFrom = pgconv.TimeToPgtype(*params.ValidFrom)
	}
	if params.ValidUntil != nil {
		validUntil = pgconv.TimeToPgtype(*params.ValidUntil)
	}

	tag, err := r.db.Exec(ctx, updateVoucherQuery,
		pgconv.UUIDToPgtype(id),
		pgconv.StringPtrToPgtype(params.Title),
		pgconv.StringPtrToPgtype(params.Description),
		pgconv.StringPtrToPgtype(params.DiscountType),
		params.DiscountValue,
		pgconv.Int64PtrToPgtype(params.MaxDiscountAmount),
		pgconv.Int64PtrToPgtype(params.MinPurchaseAmount),
		validFrom,
		validUntil,
		params.IsActive,
		pgconv.Int32PtrToPgtype(params.UsageLimit),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

// The guard and the increment are one statement, so concurrent redemptions
// of the last remaining use serialize on the row lock and only one succeeds.
const incrementUsageQuery = `
UPDATE vouchers
SET usage_count = usage_count + 1,
    updated_at  = now()
WHERE id = $1
  AND (usage_limit IS NULL OR usage_count < usage_limit)
RETURNING usage_count
`

func (r *voucherRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (int32, error) {
	var usageCount int32
	err := r.db.QueryRow(ctx, incrementUsageQuery, pgconv.UUIDToPgtype(id)).Scan(&usageCount)
	if err == nil {
		return usageCount, nil
	}
	if !pgconv.IsNoRows(err) {
		return 0, infra.WrapRepoErr("failed to increment voucher usage", err)
	}

	// Zero rows means either the id is unknown or the limit is exhausted.
	var exists bool
	checkErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vouchers WHERE id = $1)`,
		pgconv.UUIDToPgtype(id)).Scan(&exists)
	if checkErr != nil {
		return 0, infra.WrapRepoErr("failed to check voucher existence", checkErr)
	}
	if !exists {
		return 0, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return 0, infra.WrapRepoErr("voucher usage limit reached", nil, infra.KindConstraintViolated)
}
