package queries

import (
	"context"
	"time"

	"clinic-booking-api/internal/domain/voucher"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/config"
	"clinic-booking-api/internal/pkg/errs"
)

var (
	ErrVoucherNotFound = errs.New("voucher not found")
	ErrVoucherCorrupt  = errs.New("stored voucher fails domain validation")
)

const defaultPageLimit = 10

type VoucherReadStore interface {
	FindByCode(ctx context.Context, code string) (*VoucherView, error)
	ListActive(ctx context.Context, now time.Time) ([]*VoucherView, error)
	ListPage(ctx context.Context, limit, offset int32) ([]*VoucherView, int64, error)
}

// VoucherQueries is the read side of the voucher subsystem, including the
// validation engine. Validate has no side effects: it never consumes a use,
// so re-pricing a cart can call it repeatedly.
type VoucherQueries interface {
	Validate(ctx context.Context, code string, purchaseAmount int64) (*ValidationResult, error)
	GetByCode(ctx context.Context, code string) (*VoucherView, error)
	ListActive(ctx context.Context) ([]*VoucherView, error)
	ListPage(ctx context.Context, page, limit int32) (*VoucherPage, error)
}

type voucherQueriesImpl struct {
	readStore VoucherReadStore
	clock     clock.Clock
	cfg       config.VoucherConfig
}

func NewVoucherQueries(readStore VoucherReadStore, clk clock.Clock, cfg config.VoucherConfig) VoucherQueries {
	return &voucherQueriesImpl{
		readStore: readStore,
		clock:     clk,
		cfg:       cfg,
	}
}

// Validate evaluates eligibility in a fixed order and returns the first
// failing reason. Input-shape failures are detected before any store access.
func (q *voucherQueriesImpl) Validate(ctx context.Context, code string, purchaseAmount int64) (*ValidationResult, error) {
	voucherCode, err := voucher.NewCode(code)
	if err != nil {
		return invalidResult(voucher.ReasonInvalidFormat), nil
	}

	if purchaseAmount < 0 || purchaseAmount > q.cfg.MaxPurchaseAmount {
		return invalidResult(voucher.ReasonInvalidAmount), nil
	}

	view, err := q.readStore.FindByCode(ctx, voucherCode.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return invalidResult(voucher.ReasonCodeNotFound), nil
		}
		return nil, err
	}

	entity, err := ToDomain(view)
	if err != nil {
		return nil, errs.Mark(err, ErrVoucherCorrupt)
	}

	if reason, ok := entity.EligibilityAt(q.clock.Now()); !ok {
		return invalidResult(reason), nil
	}

	if !entity.MeetsMinimumPurchase(purchaseAmount) {
		return invalidResult(voucher.ReasonBelowMinimumPurchase), nil
	}

	discountAmount := entity.DiscountFor(purchaseAmount)
	id := entity.ID()

	return &ValidationResult{
		Valid:          true,
		VoucherID:      &id,
		Code:           entity.Code().String(),
		DiscountAmount: discountAmount,
		FinalAmount:    purchaseAmount - discountAmount,
	}, nil
}

func (q *voucherQueriesImpl) GetByCode(ctx context.Context, code string) (*VoucherView, error) {
	voucherCode, err := voucher.NewCode(code)
	if err != nil {
		return nil, ErrVoucherNotFound
	}

	view, err := q.readStore.FindByCode(ctx, voucherCode.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *voucherQueriesImpl) ListActive(ctx context.Context) ([]*VoucherView, error) {
	return q.readStore.ListActive(ctx, q.clock.Now())
}

func (q *voucherQueriesImpl) ListPage(ctx context.Context, page, limit int32) (*VoucherPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > q.cfg.ListMaxLimit {
		limit = q.cfg.ListMaxLimit
	}

	offset := (page - 1) * limit
	items, total, err := q.readStore.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &VoucherPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func invalidResult(reason voucher.Reason) *ValidationResult {
	return &ValidationResult{Valid: false, Reason: reason}
}

// ToDomain rebuilds the domain entity from a stored view.
func ToDomain(view *VoucherView) (*voucher.Voucher, error) {
	discount, err := voucher.NewDiscount(
		voucher.DiscountType(view.DiscountType),
		view.DiscountValue,
		view.MaxDiscountAmount,
	)
	if err != nil {
		return nil, err
	}

	return voucher.New(
		view.ID,
		view.Code,
		view.Title,
		view.Description,
		discount,
		view.MinPurchaseAmount,
		view.ValidFrom,
		view.ValidUntil,
		view.IsActive,
		view.UsageLimit,
		view.UsageCount,
		view.CreatedAt,
		view.UpdatedAt,
	)
}
