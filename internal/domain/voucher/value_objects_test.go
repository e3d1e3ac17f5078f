//go:build unit

package voucher_test

import (
	"strings"
	"testing"

	"clinic-booking-api/internal/domain/voucher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"upper cases", "summer20", "SUMMER20", false},
		{"trims whitespace", "  SAVE10  ", "SAVE10", false},
		{"mixed case", "WeLcOmE", "WELCOME", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", strings.Repeat("A", 51), "", true},
		{"at max length", strings.Repeat("A", 50), strings.Repeat("A", 50), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := voucher.NewCode(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, voucher.ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, code.String())
		})
	}
}

func TestNewDiscount(t *testing.T) {
	t.Run("percentage out of range", func(t *testing.T) {
		_, err := voucher.NewDiscount(voucher.DiscountPercentage, 101, nil)
		assert.ErrorIs(t, err, voucher.ErrInvalidDiscountPercent)

		_, err = voucher.NewDiscount(voucher.DiscountPercentage, -1, nil)
		assert.ErrorIs(t, err, voucher.ErrInvalidDiscountPercent)
	})

	t.Run("negative fixed amount", func(t *testing.T) {
		_, err := voucher.NewDiscount(voucher.DiscountFixed, -100, nil)
		assert.ErrorIs(t, err, voucher.ErrInvalidDiscountAmount)
	})

	t.Run("negative cap", func(t *testing.T) {
		max := int64(-1)
		_, err := voucher.NewDiscount(voucher.DiscountPercentage, 10, &max)
		assert.ErrorIs(t, err, voucher.ErrInvalidMaxDiscount)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := voucher.NewDiscount(voucher.DiscountType("BOGOF"), 10, nil)
		assert.ErrorIs(t, err, voucher.ErrInvalidDiscountType)
	})

	t.Run("round trips type and value", func(t *testing.T) {
		d, err := voucher.NewDiscount(voucher.DiscountPercentage, 25, nil)
		require.NoError(t, err)
		assert.Equal(t, voucher.DiscountPercentage, d.Type())
		assert.Equal(t, 25.0, d.Value())

		d, err = voucher.NewDiscount(voucher.DiscountFixed, 50_000, nil)
		require.NoError(t, err)
		assert.Equal(t, voucher.DiscountFixed, d.Type())
		assert.Equal(t, 50_000.0, d.Value())
	})
}
