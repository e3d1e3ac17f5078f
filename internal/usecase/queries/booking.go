package queries

import (
	"context"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByReference(ctx context.Context, reference string) (*BookingView, error)
	ListByEmail(ctx context.Context, email string) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	GetByReference(ctx context.Context, reference string) (*BookingView, error)
	ListByEmail(ctx context.Context, email string) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByReference(ctx context.Context, reference string) (*BookingView, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	view, err := q.readStore.FindByReference(ctx, ref.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByEmail(ctx context.Context, email string) ([]*BookingView, error) {
	return q.readStore.ListByEmail(ctx, email)
}
