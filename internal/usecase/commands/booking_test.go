//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/domain/voucher"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/usecase/commands"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockCatalogQueries struct {
	mock.Mock
}

func (m *mockCatalogQueries) ListBranches(ctx context.Context) ([]*queries.BranchView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*queries.BranchView), args.Error(1)
}

func (m *mockCatalogQueries) GetBranch(ctx context.Context, id uuid.UUID) (*queries.BranchView, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*queries.BranchView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogQueries) ListServices(ctx context.Context, branchID uuid.UUID) ([]*queries.ServiceView, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).([]*queries.ServiceView), args.Error(1)
}

func (m *mockCatalogQueries) GetService(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*queries.ServiceView), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVoucherQueries struct {
	mock.Mock
}

func (m *mockVoucherQueries) Validate(ctx context.Context, code string, purchaseAmount int64) (*queries.ValidationResult, error) {
	args := m.Called(ctx, code, purchaseAmount)
	if v := args.Get(0); v != nil {
		return v.(*queries.ValidationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVoucherQueries) GetByCode(ctx context.Context, code string) (*queries.VoucherView, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*queries.VoucherView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVoucherQueries) ListActive(ctx context.Context) ([]*queries.VoucherView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*queries.VoucherView), args.Error(1)
}

func (m *mockVoucherQueries) ListPage(ctx context.Context, page, limit int32) (*queries.VoucherPage, error) {
	args := m.Called(ctx, page, limit)
	if v := args.Get(0); v != nil {
		return v.(*queries.VoucherPage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVoucherCommands struct {
	mock.Mock
}

func (m *mockVoucherCommands) Create(ctx context.Context, params commands.CreateVoucherParams) (uuid.UUID, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockVoucherCommands) Update(ctx context.Context, id uuid.UUID, params commands.UpdateVoucherParams) error {
	return m.Called(ctx, id, params).Error(0)
}

func (m *mockVoucherCommands) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVoucherCommands) Redeem(ctx context.Context, id uuid.UUID) (int32, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int32), args.Error(1)
}

type bookingFixture struct {
	repo     *mockBookingRepository
	catalog  *mockCatalogQueries
	vouchers *mockVoucherQueries
	redeemer *mockVoucherCommands
	commands commands.BookingCommands

	branchID  uuid.UUID
	serviceID uuid.UUID
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		repo:      new(mockBookingRepository),
		catalog:   new(mockCatalogQueries),
		vouchers:  new(mockVoucherQueries),
		redeemer:  new(mockVoucherCommands),
		branchID:  uuid.New(),
		serviceID: uuid.New(),
	}
	f.commands = commands.NewBookingCommands(
		f.repo, f.catalog, f.vouchers, f.redeemer, clock.NewMockClock(testNow),
	)
	return f
}

func (f *bookingFixture) serviceView(price int64, active bool) *queries.ServiceView {
	return &queries.ServiceView{
		ID:          f.serviceID,
		BranchID:    f.branchID,
		Name:        "Hydra facial",
		Price:       price,
		DurationMin: 60,
		IsActive:    active,
	}
}

func (f *bookingFixture) params(voucherCode *string) commands.CreateBookingParams {
	return commands.CreateBookingParams{
		BranchID:      f.branchID,
		ServiceID:     f.serviceID,
		CustomerName:  "Linh Tran",
		CustomerEmail: "linh@example.com",
		StartsAt:      testNow.Add(24 * time.Hour),
		EndsAt:        testNow.Add(25 * time.Hour),
		VoucherCode:   voucherCode,
	}
}

func TestCreateBooking_WithoutVoucher(t *testing.T) {
	f := newBookingFixture()

	f.catalog.On("GetService", mock.Anything, f.serviceID).Return(f.serviceView(500_000, true), nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
		return b.PriceAmount() == 500_000 && b.DiscountAmount() == 0 && b.VoucherID() == nil
	})).Return(nil)

	result, err := f.commands.Create(context.Background(), f.params(nil))

	require.NoError(t, err)
	assert.Equal(t, int64(500_000), result.FinalAmount)
	assert.Regexp(t, `^BK-\d{8}-[A-Z0-9]{6}$`, result.Reference)
	f.redeemer.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}

func TestCreateBooking_ServiceChecks(t *testing.T) {
	t.Run("inactive service", func(t *testing.T) {
		f := newBookingFixture()
		f.catalog.On("GetService", mock.Anything, f.serviceID).Return(f.serviceView(500_000, false), nil)

		_, err := f.commands.Create(context.Background(), f.params(nil))
		assert.ErrorIs(t, err, commands.ErrServiceUnavailable)
	})

	t.Run("service from another branch", func(t *testing.T) {
		f := newBookingFixture()
		view := f.serviceView(500_000, true)
		view.BranchID = uuid.New()
		f.catalog.On("GetService", mock.Anything, f.serviceID).Return(view, nil)

		_, err := f.commands.Create(context.Background(), f.params(nil))
		assert.ErrorIs(t, err, commands.ErrServiceUnavailable)
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newBookingFixture()
		f.catalog.On("GetService", mock.Anything, f.serviceID).Return(nil, queries.ErrServiceNotFound)

		_, err := f.commands.Create(context.Background(), f.params(nil))
		assert.ErrorIs(t, err, commands.ErrServiceUnavailable)
	})
}

func TestCreateBooking_SlotValidation(t *testing.T) {
	f := newBookingFixture()
	f.catalog.On("GetService", mock.Anything, f.serviceID).Return(f.serviceView(500_000, true), nil)

	params := f.params(nil)
	params.StartsAt = testNow.Add(-time.Hour)
	params.EndsAt = testNow.Add(time.Hour)

	_, err := f.commands.Create(context.Background(), params)
	assert.ErrorIs(t, err, commands.ErrInvalidBookingInput)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_WithVoucher(t *testing.T) {
	code := "SUMMER20"

	t.Run("validates against the service price and redeems after insert", func(t *testing.T) {
		f := newBookingFixture()
		voucherID := uuid.New()

		f.catalog.On("GetService", mock.Anything, f.serviceID).Return(f.serviceView(500_000, true), nil)
		f.vouchers.On("Validate", mock.Anything, code, int64(500_000)).Return(&queries.ValidationResult{
			Valid:          true,
			VoucherID:      &voucherID,
			Code:           code,
			DiscountAmount: 100_000,
			FinalAmount:    400_000,
		}, nil)
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
			return b.DiscountAmount() == 100_000 && b.VoucherID() != nil && *b.VoucherID() == voucherID
		})).Return(nil)
		f.redeemer.On("Redeem", mock.Anything, voucherID).Return(int32(1), nil)

		result, err := f.commands.Create(context.Background(), f.params(&code))

		require.NoError(t, err)
		assert.Equal(t, int64(400_000), result.FinalAmount)
		require.NotNil(t, result.VoucherCode)
		assert.Equal(t, code, *result.VoucherCode)
		f.redeemer.AssertExpectations(t)
	})

	t.Run("rejected voucher blocks the booking", func(t *testing.T) {
		f := newBookingFixture()

		f.catalog.On("GetService", mock.Anything, f.serviceID).Return(f.serviceView(500_000, true), nil)
		f.vouchers.On("Validate", mock.Anything, code, int64(500_000)).Return(&queries.ValidationResult{
			Valid:  false,
			Reason: voucher.ReasonExpired,
		}, nil)

		_, err := f.commands.Create(context.Background(), f.params(&code))

		var rejected *commands.VoucherRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, voucher.ReasonExpired, rejected.Reason)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("losing the last use cancels the booking", func(t *testing.T) {
		f := newBookingFixture()
		voucherID := uuid.New()

		f.catalog.On("GetService", mock.Anything, f.serviceID).Return(f.serviceView(500_000, true), nil)
		f.vouchers.On("Validate", mock.Anything, code, int64(500_000)).Return(&queries.ValidationResult{
			Valid:          true,
			VoucherID:      &voucherID,
			Code:           code,
			DiscountAmount: 100_000,
			FinalAmount:    400_000,
		}, nil)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.redeemer.On("Redeem", mock.Anything, voucherID).
			Return(int32(0), commands.ErrUsageLimitReached)
		f.repo.On("UpdateStatus", mock.Anything, mock.Anything, booking.StatusCancelled).Return(nil)

		_, err := f.commands.Create(context.Background(), f.params(&code))

		var rejected *commands.VoucherRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, voucher.ReasonUsageLimitReached, rejected.Reason)
		f.repo.AssertExpectations(t)
	})
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture()
	id := uuid.New()
	f.repo.On("UpdateStatus", mock.Anything, id, booking.StatusCancelled).Return(nil)

	err := f.commands.Cancel(context.Background(), id)
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}
