package response

import (
	"time"

	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VoucherResponse struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     float64   `json:"discountValue"`
	MaxDiscountAmount *int64    `json:"maxDiscountAmount,omitempty"`
	MinPurchaseAmount *int64    `json:"minPurchaseAmount,omitempty"`
	ValidFrom         time.Time `json:"validFrom"`
	ValidUntil        time.Time `json:"validUntil"`
	IsActive          bool      `json:"isActive"`
	UsageLimit        *int32    `json:"usageLimit,omitempty"`
	UsageCount        int32     `json:"usageCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type VoucherPageResponse struct {
	Items      []*VoucherResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int32              `json:"page"`
	Limit      int32              `json:"limit"`
	TotalPages int64              `json:"totalPages"`
}

type ValidateVoucherResponse struct {
	Valid          bool       `json:"valid"`
	Reason         string     `json:"reason,omitempty"`
	VoucherID      *uuid.UUID `json:"voucherId,omitempty"`
	Code           string     `json:"code,omitempty"`
	DiscountAmount int64      `json:"discountAmount"`
	FinalAmount    int64      `json:"finalAmount"`
}

func FromVoucherView(view *queries.VoucherView) *VoucherResponse {
	var resp VoucherResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromVoucherPage(page *queries.VoucherPage) *VoucherPageResponse {
	items := make([]*VoucherResponse, 0, len(page.Items))
	for _, view := range page.Items {
		items = append(items, FromVoucherView(view))
	}
	return &VoucherPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func FromValidationResult(result *queries.ValidationResult) *ValidateVoucherResponse {
	return &ValidateVoucherResponse{
		Valid:          result.Valid,
		Reason:         string(result.Reason),
		VoucherID:      result.VoucherID,
		Code:           result.Code,
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    result.FinalAmount,
	}
}
