package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice    = errors.New("booking price cannot be negative")
	ErrDiscountTooLarge = errors.New("discount cannot exceed the service price")
)

// Booking is an appointment for a clinic service at a branch. Price fields are
// integral currency units; finalAmount is derived and never negative.
type Booking struct {
	id             uuid.UUID
	reference      Reference
	branchID       uuid.UUID
	serviceID      uuid.UUID
	customer       Customer
	slot           TimeSlot
	priceAmount    int64
	discountAmount int64
	voucherID      *uuid.UUID
	note           Note
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
}

func New(
	reference Reference,
	branchID, serviceID uuid.UUID,
	customer Customer,
	slot TimeSlot,
	priceAmount, discountAmount int64,
	voucherID *uuid.UUID,
	note Note,
) (*Booking, error) {
	if priceAmount < 0 {
		return nil, ErrNegativePrice
	}
	if discountAmount < 0 || discountAmount > priceAmount {
		return nil, ErrDiscountTooLarge
	}

	return &Booking{
		id:             uuid.New(),
		reference:      reference,
		branchID:       branchID,
		serviceID:      serviceID,
		customer:       customer,
		slot:           slot,
		priceAmount:    priceAmount,
		discountAmount: discountAmount,
		voucherID:      voucherID,
		note:           note,
		status:         StatusConfirmed,
	}, nil
}

// FinalAmount is the price after discount; non-negative by construction.
func (b *Booking) FinalAmount() int64 {
	return b.priceAmount - b.discountAmount
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) Reference() Reference  { return b.reference }
func (b *Booking) BranchID() uuid.UUID   { return b.branchID }
func (b *Booking) ServiceID() uuid.UUID  { return b.serviceID }
func (b *Booking) Customer() Customer    { return b.customer }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) PriceAmount() int64    { return b.priceAmount }
func (b *Booking) DiscountAmount() int64 { return b.discountAmount }
func (b *Booking) VoucherID() *uuid.UUID { return b.voucherID }
func (b *Booking) Note() Note            { return b.note }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
