//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/usecase/commands"
	"clinic-booking-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

type mockVoucherRepository struct {
	mock.Mock
}

func (m *mockVoucherRepository) Create(ctx context.Context, id uuid.UUID, params commands.CreateVoucherParams) error {
	return m.Called(ctx, id, params).Error(0)
}

func (m *mockVoucherRepository) Update(ctx context.Context, id uuid.UUID, params commands.UpdateVoucherParams) error {
	return m.Called(ctx, id, params).Error(0)
}

func (m *mockVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVoucherRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (int32, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int32), args.Error(1)
}

func newVoucherCommands(repo *mockVoucherRepository) commands.VoucherCommands {
	return commands.NewVoucherCommands(repo, clock.NewMockClock(testNow))
}

func TestCreateVoucher(t *testing.T) {
	t.Run("persists canonical code and discount type", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		params := builder.NewVoucherBuilder().WithCode("  summer20 ").BuildCreateParams()
		params.DiscountType = "fixed"
		params.DiscountValue = 50_000

		repo.On("Create", mock.Anything, mock.Anything,
			mock.MatchedBy(func(p commands.CreateVoucherParams) bool {
				return p.Code == "SUMMER20" && p.DiscountType == "FIXED_AMOUNT"
			})).Return(nil)

		id, err := c.Create(context.Background(), params)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey))

		_, err := c.Create(context.Background(), builder.NewVoucherBuilder().BuildCreateParams())
		assert.ErrorIs(t, err, commands.ErrDuplicateCode)
	})

	t.Run("rejects invalid discount without repository access", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		params := builder.NewVoucherBuilder().BuildCreateParams()
		params.DiscountType = "PERCENTAGE"
		params.DiscountValue = 150

		_, err := c.Create(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrInvalidVoucherInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		params := builder.NewVoucherBuilder().
			WithWindow(testNow, testNow.Add(-time.Hour)).BuildCreateParams()

		_, err := c.Create(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrInvalidVoucherInput)
	})
}

func TestUpdateVoucher(t *testing.T) {
	t.Run("requires type and value together", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		discountType := "PERCENTAGE"
		err := c.Update(context.Background(), uuid.New(), commands.UpdateVoucherParams{
			DiscountType: &discountType,
		})
		assert.ErrorIs(t, err, commands.ErrInvalidVoucherInput)
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		repo.On("Update", mock.Anything, mock.Anything, mock.Anything).
			Return(infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound))

		title := "New title"
		err := c.Update(context.Background(), uuid.New(), commands.UpdateVoucherParams{Title: &title})
		assert.ErrorIs(t, err, commands.ErrVoucherNotFound)
	})
}

func TestRedeem(t *testing.T) {
	id := uuid.New()

	t.Run("returns the new usage count", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		repo.On("IncrementUsage", mock.Anything, id).Return(int32(4), nil)

		count, err := c.Redeem(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, int32(4), count)
	})

	t.Run("exhausted ceiling", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		repo.On("IncrementUsage", mock.Anything, id).
			Return(int32(0), infra.WrapRepoErr("limit reached", nil, infra.KindConstraintViolated))

		_, err := c.Redeem(context.Background(), id)
		assert.ErrorIs(t, err, commands.ErrUsageLimitReached)
	})

	t.Run("unknown voucher", func(t *testing.T) {
		repo := new(mockVoucherRepository)
		c := newVoucherCommands(repo)

		repo.On("IncrementUsage", mock.Anything, id).
			Return(int32(0), infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound))

		_, err := c.Redeem(context.Background(), id)
		assert.ErrorIs(t, err, commands.ErrVoucherNotFound)
	})
}
