package request

import (
	"time"

	"clinic-booking-api/internal/pkg/patch"
	"clinic-booking-api/internal/usecase/commands"
)

type ValidateVoucherRequest struct {
	Code           string `json:"code" binding:"required"`
	PurchaseAmount *int64 `json:"purchase_amount" binding:"required"`
}

type CreateVoucherRequest struct {
	Code              string    `json:"code" binding:"required"`
	Title             string    `json:"title" binding:"required"`
	Description       *string   `json:"description,omitempty"`
	DiscountType      string    `json:"discount_type" binding:"required"`
	DiscountValue     float64   `json:"discount_value" binding:"required"`
	MaxDiscountAmount *int64    `json:"max_discount_amount,omitempty"`
	MinPurchaseAmount *int64    `json:"min_purchase_amount,omitempty"`
	ValidFrom         time.Time `json:"valid_from" binding:"required"`
	ValidUntil        time.Time `json:"valid_until" binding:"required"`
	IsActive          *bool     `json:"is_active,omitempty"`
	UsageLimit        *int32    `json:"usage_limit,omitempty"`
}

func (r CreateVoucherRequest) ToParams() commands.CreateVoucherParams {
	return commands.CreateVoucherParams{
		Code:              r.Code,
		Title:             r.Title,
		Description:       r.Description,
		DiscountType:      r.DiscountType,
		DiscountValue:     r.DiscountValue,
		MaxDiscountAmount: r.MaxDiscountAmount,
		MinPurchaseAmount: r.MinPurchaseAmount,
		ValidFrom:         r.ValidFrom,
		ValidUntil:        r.ValidUntil,
		IsActive:          patch.Coalesce(r.IsActive, true),
		UsageLimit:        r.UsageLimit,
	}
}

type UpdateVoucherRequest struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	DiscountType      *string    `json:"discount_type,omitempty"`
	DiscountValue     *float64   `json:"discount_value,omitempty"`
	MaxDiscountAmount *int64     `json:"max_discount_amount,omitempty"`
	MinPurchaseAmount *int64     `json:"min_purchase_amount,omitempty"`
	ValidFrom         *time.Time `json:"valid_from,omitempty"`
	ValidUntil        *time.Time `json:"valid_until,omitempty"`
	IsActive          *bool      `json:"is_active,omitempty"`
	UsageLimit        *int32     `json:"usage_limit,omitempty"`
}

func (r UpdateVoucherRequest) ToParams() commands.UpdateVoucherParams {
	return commands.UpdateVoucherParams{
		Title:             r.Title,
		Description:       r.Description,
		DiscountType:      r.DiscountType,
		DiscountValue:     r.DiscountValue,
		MaxDiscountAmount: r.MaxDiscountAmount,
		MinPurchaseAmount: r.MinPurchaseAmount,
		ValidFrom:         r.ValidFrom,
		ValidUntil:        r.ValidUntil,
		IsActive:          r.IsActive,
		UsageLimit:        r.UsageLimit,
	}
}

type ListVouchersQuery struct {
	Page  int32 `form:"page,default=1"`
	Limit int32 `form:"limit,default=10"`
}
