//go:build unit

package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/voucher"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/config"
	"clinic-booking-api/internal/usecase/queries"
	"clinic-booking-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

type mockVoucherReadStore struct {
	mock.Mock
}

func (m *mockVoucherReadStore) FindByCode(ctx context.Context, code string) (*queries.VoucherView, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*queries.VoucherView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVoucherReadStore) ListActive(ctx context.Context, now time.Time) ([]*queries.VoucherView, error) {
	args := m.Called(ctx, now)
	if v := args.Get(0); v != nil {
		return v.([]*queries.VoucherView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVoucherReadStore) ListPage(ctx context.Context, limit, offset int32) ([]*queries.VoucherView, int64, error) {
	args := m.Called(ctx, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*queries.VoucherView), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func newVoucherQueries(store *mockVoucherReadStore) queries.VoucherQueries {
	cfg := config.VoucherConfig{MaxPurchaseAmount: 1_000_000_000, ListMaxLimit: 100}
	return queries.NewVoucherQueries(store, clock.NewMockClock(testNow), cfg)
}

func TestValidate_InputShape(t *testing.T) {
	cases := []struct {
		name   string
		code   string
		amount int64
		reason voucher.Reason
	}{
		{"empty code", "", 100_000, voucher.ReasonInvalidFormat},
		{"blank code", "   ", 100_000, voucher.ReasonInvalidFormat},
		{"oversized code", strings.Repeat("X", 51), 100_000, voucher.ReasonInvalidFormat},
		{"negative amount", "SUMMER20", -1, voucher.ReasonInvalidAmount},
		{"absurd amount", "SUMMER20", 1_000_000_001, voucher.ReasonInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockVoucherReadStore)
			q := newVoucherQueries(store)

			result, err := q.Validate(context.Background(), tc.code, tc.amount)

			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Equal(t, tc.reason, result.Reason)
			// Shape failures must never touch the store.
			store.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
		})
	}
}

func TestValidate_NormalizesCodeBeforeLookup(t *testing.T) {
	store := new(mockVoucherReadStore)
	q := newVoucherQueries(store)

	view := builder.NewVoucherBuilder().WithCode("SUMMER20").BuildView()
	store.On("FindByCode", mock.Anything, "SUMMER20").Return(view, nil)

	result, err := q.Validate(context.Background(), "  summer20 ", 500_000)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "SUMMER20", result.Code)
	store.AssertExpectations(t)
}

func TestValidate_CodeNotFound(t *testing.T) {
	store := new(mockVoucherReadStore)
	q := newVoucherQueries(store)

	store.On("FindByCode", mock.Anything, "MISSING").
		Return(nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound))

	result, err := q.Validate(context.Background(), "missing", 100_000)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, voucher.ReasonCodeNotFound, result.Reason)
}

func TestValidate_StoreFailurePropagates(t *testing.T) {
	store := new(mockVoucherReadStore)
	q := newVoucherQueries(store)

	store.On("FindByCode", mock.Anything, "SUMMER20").
		Return(nil, infra.WrapRepoErr("connection reset", assert.AnError))

	result, err := q.Validate(context.Background(), "SUMMER20", 100_000)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestValidate_EligibilityReasons(t *testing.T) {
	cases := []struct {
		name   string
		build  func() *queries.VoucherView
		amount int64
		reason voucher.Reason
	}{
		{
			"inactive",
			func() *queries.VoucherView { return builder.NewVoucherBuilder().Inactive().BuildView() },
			500_000, voucher.ReasonInactive,
		},
		{
			"inactive wins over expired",
			func() *queries.VoucherView {
				return builder.NewVoucherBuilder().Inactive().
					WithWindow(testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour)).BuildView()
			},
			500_000, voucher.ReasonInactive,
		},
		{
			"not yet valid",
			func() *queries.VoucherView {
				return builder.NewVoucherBuilder().
					WithWindow(testNow.Add(time.Hour), testNow.Add(48*time.Hour)).BuildView()
			},
			500_000, voucher.ReasonNotYetValid,
		},
		{
			"expired",
			func() *queries.VoucherView {
				return builder.NewVoucherBuilder().
					WithWindow(testNow.Add(-48*time.Hour), testNow.Add(-time.Hour)).BuildView()
			},
			500_000, voucher.ReasonExpired,
		},
		{
			"usage limit reached",
			func() *queries.VoucherView { return builder.NewVoucherBuilder().WithUsage(5, 5).BuildView() },
			500_000, voucher.ReasonUsageLimitReached,
		},
		{
			"below minimum purchase",
			func() *queries.VoucherView {
				return builder.NewVoucherBuilder().WithMinPurchaseAmount(200_000).BuildView()
			},
			199_999, voucher.ReasonBelowMinimumPurchase,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockVoucherReadStore)
			q := newVoucherQueries(store)
			store.On("FindByCode", mock.Anything, "SUMMER20").Return(tc.build(), nil)

			result, err := q.Validate(context.Background(), "SUMMER20", tc.amount)

			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Equal(t, tc.reason, result.Reason)
			assert.Zero(t, result.DiscountAmount)
		})
	}
}

func TestValidate_DiscountComputation(t *testing.T) {
	t.Run("percentage capped by max discount", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		maxOff := int64(50_000)
		view := builder.NewVoucherBuilder().WithPercentageDiscount(20, &maxOff).BuildView()
		store.On("FindByCode", mock.Anything, "SUMMER20").Return(view, nil)

		result, err := q.Validate(context.Background(), "SUMMER20", 500_000)

		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, int64(50_000), result.DiscountAmount)
		assert.Equal(t, int64(450_000), result.FinalAmount)
		require.NotNil(t, result.VoucherID)
		assert.Equal(t, view.ID, *result.VoucherID)
	})

	t.Run("fixed discount never exceeds purchase", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		view := builder.NewVoucherBuilder().WithFixedDiscount(700_000).BuildView()
		store.On("FindByCode", mock.Anything, "SUMMER20").Return(view, nil)

		result, err := q.Validate(context.Background(), "SUMMER20", 500_000)

		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, int64(500_000), result.DiscountAmount)
		assert.Equal(t, int64(0), result.FinalAmount)
	})

	t.Run("repeat validation is side effect free", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		view := builder.NewVoucherBuilder().WithUsage(10, 3).BuildView()
		store.On("FindByCode", mock.Anything, "SUMMER20").Return(view, nil).Times(3)

		for range 3 {
			result, err := q.Validate(context.Background(), "SUMMER20", 500_000)
			require.NoError(t, err)
			assert.True(t, result.Valid)
			assert.Equal(t, int64(100_000), result.DiscountAmount)
		}
		store.AssertExpectations(t)
	})
}

func TestGetByCode(t *testing.T) {
	t.Run("maps not found kind to sentinel", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		store.On("FindByCode", mock.Anything, "MISSING").
			Return(nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound))

		_, err := q.GetByCode(context.Background(), "missing")
		assert.ErrorIs(t, err, queries.ErrVoucherNotFound)
	})

	t.Run("malformed code is not found without lookup", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		_, err := q.GetByCode(context.Background(), "")
		assert.ErrorIs(t, err, queries.ErrVoucherNotFound)
		store.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	})
}

func TestListPage(t *testing.T) {
	t.Run("clamps limit and defaults page", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		store.On("ListPage", mock.Anything, int32(100), int32(0)).
			Return([]*queries.VoucherView{}, int64(250), nil)

		page, err := q.ListPage(context.Background(), 0, 500)

		require.NoError(t, err)
		assert.Equal(t, int32(1), page.Page)
		assert.Equal(t, int32(100), page.Limit)
		assert.Equal(t, int64(250), page.Total)
		assert.Equal(t, int64(3), page.TotalPages)
	})

	t.Run("computes offset from page", func(t *testing.T) {
		store := new(mockVoucherReadStore)
		q := newVoucherQueries(store)

		view := builder.NewVoucherBuilder().WithID(uuid.New()).BuildView()
		store.On("ListPage", mock.Anything, int32(10), int32(20)).
			Return([]*queries.VoucherView{view}, int64(21), nil)

		page, err := q.ListPage(context.Background(), 3, 10)

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(3), page.TotalPages)
	})
}
