package response

import (
	"time"

	"clinic-booking-api/internal/usecase/commands"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	Reference      string     `json:"reference"`
	BranchID       uuid.UUID  `json:"branchId"`
	BranchName     string     `json:"branchName"`
	ServiceID      uuid.UUID  `json:"serviceId"`
	ServiceName    string     `json:"serviceName"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	CustomerPhone  *string    `json:"customerPhone,omitempty"`
	StartsAt       time.Time  `json:"startsAt"`
	EndsAt         time.Time  `json:"endsAt"`
	PriceAmount    int64      `json:"priceAmount"`
	DiscountAmount int64      `json:"discountAmount"`
	FinalAmount    int64      `json:"finalAmount"`
	VoucherID      *uuid.UUID `json:"voucherId,omitempty"`
	VoucherCode    *string    `json:"voucherCode,omitempty"`
	Note           *string    `json:"note,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CreateBookingResponse struct {
	BookingID      uuid.UUID `json:"bookingId"`
	Reference      string    `json:"reference"`
	PriceAmount    int64     `json:"priceAmount"`
	DiscountAmount int64     `json:"discountAmount"`
	FinalAmount    int64     `json:"finalAmount"`
	VoucherCode    *string   `json:"voucherCode,omitempty"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	resps := make([]*BookingResponse, 0, len(views))
	for _, view := range views {
		resps = append(resps, FromBookingView(view))
	}
	return resps
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:      result.BookingID,
		Reference:      result.Reference,
		PriceAmount:    result.PriceAmount,
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    result.FinalAmount,
		VoucherCode:    result.VoucherCode,
	}
}
