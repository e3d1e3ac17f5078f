//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/voucher"
	"clinic-booking-api/internal/infra/readstore"
	"clinic-booking-api/internal/infra/repository"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/config"
	"clinic-booking-api/internal/usecase/commands"
	"clinic-booking-api/internal/usecase/queries"
	"clinic-booking-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	pool         *pgxpool.Pool
	bookings     commands.BookingCommands
	vouchers     commands.VoucherCommands
	bookingStore queries.BookingReadStore
	branchID     uuid.UUID
	serviceID    uuid.UUID
}

const fixtureServicePrice = int64(500_000)

// newCheckoutFixture wires the full checkout stack against a real database
// and seeds one branch with one bookable service.
func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	pool := setupDatabase(t)
	ctx := context.Background()

	branchID := uuid.New()
	serviceID := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO branches (id, name, address) VALUES ($1, 'District 1 Clinic', '12 Nguyen Hue')`,
		branchID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx,
		`INSERT INTO services (id, branch_id, name, price, duration_min) VALUES ($1, $2, 'Facial Treatment', $3, 60)`,
		serviceID, branchID, fixtureServicePrice)
	require.NoError(t, err)

	clk := clock.NewRealClock()
	voucherCfg := config.VoucherConfig{MaxPurchaseAmount: 1_000_000_000, ListMaxLimit: 100}
	voucherQueries := queries.NewVoucherQueries(readstore.NewVoucherReadStore(pool), clk, voucherCfg)
	voucherCommands := commands.NewVoucherCommands(repository.NewVoucherRepository(pool), clk)
	catalogQueries := queries.NewCatalogQueries(readstore.NewCatalogReadStore(pool))
	bookingCommands := commands.NewBookingCommands(
		repository.NewBookingRepository(pool),
		catalogQueries,
		voucherQueries,
		voucherCommands,
		clk,
	)

	return &checkoutFixture{
		pool:         pool,
		bookings:     bookingCommands,
		vouchers:     voucherCommands,
		bookingStore: readstore.NewBookingReadStore(pool),
		branchID:     branchID,
		serviceID:    serviceID,
	}
}

func (f *checkoutFixture) bookingParams(voucherCode *string) commands.CreateBookingParams {
	starts := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	return commands.CreateBookingParams{
		BranchID:      f.branchID,
		ServiceID:     f.serviceID,
		CustomerName:  "Linh Tran",
		CustomerEmail: "linh@example.com",
		CustomerPhone: "0901234567",
		StartsAt:      starts,
		EndsAt:        starts.Add(time.Hour),
		VoucherCode:   voucherCode,
	}
}

func (f *checkoutFixture) createVoucher(t *testing.T, b *builder.VoucherBuilder) {
	t.Helper()
	now := time.Now().UTC()
	_, err := f.vouchers.Create(context.Background(),
		b.WithWindow(now.Add(-time.Hour), now.Add(24*time.Hour)).BuildCreateParams())
	require.NoError(t, err)
}

func TestCheckout_WithVoucher(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.createVoucher(t, builder.NewVoucherBuilder().WithCode("SUMMER20"))

	code := "summer20"
	result, err := f.bookings.Create(ctx, f.bookingParams(&code))
	require.NoError(t, err)

	assert.Equal(t, fixtureServicePrice, result.PriceAmount)
	assert.Equal(t, int64(100_000), result.DiscountAmount)
	assert.Equal(t, int64(400_000), result.FinalAmount)
	require.NotNil(t, result.VoucherCode)
	assert.Equal(t, "SUMMER20", *result.VoucherCode)

	view, err := f.bookingStore.FindByReference(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, result.BookingID, view.ID)
	assert.Equal(t, "confirmed", view.Status)
	assert.Equal(t, int64(400_000), view.FinalAmount)
	require.NotNil(t, view.VoucherCode)
	assert.Equal(t, "SUMMER20", *view.VoucherCode)

	var usageCount int32
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT usage_count FROM vouchers WHERE code = 'SUMMER20'`).Scan(&usageCount))
	assert.Equal(t, int32(1), usageCount)
}

func TestCheckout_ExhaustedVoucherCancelsNothingExtra(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.createVoucher(t, builder.NewVoucherBuilder().WithCode("LASTONE").WithUsage(1, 0))

	code := "LASTONE"
	first, err := f.bookings.Create(ctx, f.bookingParams(&code))
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), first.DiscountAmount)

	// The voucher is now exhausted, so validation rejects the second
	// checkout before a booking row is written.
	_, err = f.bookings.Create(ctx, f.bookingParams(&code))
	var rejected *commands.VoucherRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, voucher.ReasonUsageLimitReached, rejected.Reason)

	var confirmed int
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT count(*) FROM bookings WHERE status = 'confirmed'`).Scan(&confirmed))
	assert.Equal(t, 1, confirmed)
}

func TestCheckout_WithoutVoucher(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	result, err := f.bookings.Create(ctx, f.bookingParams(nil))
	require.NoError(t, err)
	assert.Equal(t, fixtureServicePrice, result.FinalAmount)
	assert.Zero(t, result.DiscountAmount)
	assert.Nil(t, result.VoucherCode)

	require.NoError(t, f.bookings.Cancel(ctx, result.BookingID))
	view, err := f.bookingStore.FindByReference(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", view.Status)
}
