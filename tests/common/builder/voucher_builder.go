//go:build unit || integration

package builder

import (
	"time"

	"clinic-booking-api/internal/usecase/commands"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// VoucherBuilder builds voucher read models and command params for tests.
// Defaults describe a currently redeemable 20% voucher.
type VoucherBuilder struct {
	view queries.VoucherView
}

func NewVoucherBuilder() *VoucherBuilder {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &VoucherBuilder{
		view: queries.VoucherView{
			ID:            uuid.New(),
			Code:          "SUMMER20",
			Title:         "Summer promotion",
			DiscountType:  "PERCENTAGE",
			DiscountValue: 20,
			ValidFrom:     now.Add(-24 * time.Hour),
			ValidUntil:    now.Add(24 * time.Hour),
			IsActive:      true,
			UsageCount:    0,
			CreatedAt:     now.Add(-48 * time.Hour),
			UpdatedAt:     now.Add(-48 * time.Hour),
		},
	}
}

func (b *VoucherBuilder) WithID(id uuid.UUID) *VoucherBuilder {
	b.view.ID = id
	return b
}

func (b *VoucherBuilder) WithCode(code string) *VoucherBuilder {
	b.view.Code = code
	return b
}

func (b *VoucherBuilder) WithFixedDiscount(amount int64) *VoucherBuilder {
	b.view.DiscountType = "FIXED_AMOUNT"
	b.view.DiscountValue = float64(amount)
	b.view.MaxDiscountAmount = nil
	return b
}

func (b *VoucherBuilder) WithPercentageDiscount(percent float64, maxAmount *int64) *VoucherBuilder {
	b.view.DiscountType = "PERCENTAGE"
	b.view.DiscountValue = percent
	b.view.MaxDiscountAmount = maxAmount
	return b
}

func (b *VoucherBuilder) WithMinPurchaseAmount(amount int64) *VoucherBuilder {
	b.view.MinPurchaseAmount = &amount
	return b
}

func (b *VoucherBuilder) WithWindow(from, until time.Time) *VoucherBuilder {
	b.view.ValidFrom = from
	b.view.ValidUntil = until
	return b
}

func (b *VoucherBuilder) Inactive() *VoucherBuilder {
	b.view.IsActive = false
	return b
}

func (b *VoucherBuilder) WithUsage(limit int32, count int32) *VoucherBuilder {
	b.view.UsageLimit = &limit
	b.view.UsageCount = count
	return b
}

func (b *VoucherBuilder) BuildView() *queries.VoucherView {
	view := b.view
	return &view
}

func (b *VoucherBuilder) BuildCreateParams() commands.CreateVoucherParams {
	return commands.CreateVoucherParams{
		Code:              b.view.Code,
		Title:             b.view.Title,
		Description:       b.view.Description,
		DiscountType:      b.view.DiscountType,
		DiscountValue:     b.view.DiscountValue,
		MaxDiscountAmount: b.view.MaxDiscountAmount,
		MinPurchaseAmount: b.view.MinPurchaseAmount,
		ValidFrom:         b.view.ValidFrom,
		ValidUntil:        b.view.ValidUntil,
		IsActive:          b.view.IsActive,
		UsageLimit:        b.view.UsageLimit,
	}
}
