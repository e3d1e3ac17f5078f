package request

import (
	"strings"
	"time"

	"clinic-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	BranchID      uuid.UUID `json:"branch_id" binding:"required"`
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required,email"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
	EndsAt        time.Time `json:"ends_at" binding:"required"`
	VoucherCode   *string   `json:"voucher_code,omitempty"`
	Note          *string   `json:"note,omitempty"`
}

func (r CreateBookingRequest) GetVoucherCode() *string {
	if r.VoucherCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.VoucherCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	var phone, note string
	if r.CustomerPhone != nil {
		phone = *r.CustomerPhone
	}
	if r.Note != nil {
		note = *r.Note
	}
	return commands.CreateBookingParams{
		BranchID:      r.BranchID,
		ServiceID:     r.ServiceID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: phone,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		VoucherCode:   r.GetVoucherCode(),
		Note:          note,
	}
}
