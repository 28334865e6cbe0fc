package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBarcode(t *testing.T) {
	t.Run("composes code4 + ddmmyy + zero-padded seq", func(t *testing.T) {
		date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

		barcode := ComposeBarcode("4821", date, 1)

		assert.Equal(t, "482115012500001", barcode)
		assert.Len(t, barcode, BarcodeLength)
	})

	t.Run("pads sequence to five digits", func(t *testing.T) {
		date := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, "000131122400042", ComposeBarcode("0001", date, 42))
		assert.Equal(t, "000131122499999", ComposeBarcode("0001", date, MaxSeq))
	})
}

func TestParseBarcode(t *testing.T) {
	t.Run("recovers the exact components", func(t *testing.T) {
		code4, date, seq, err := ParseBarcode("482115012500001")

		require.NoError(t, err)
		assert.Equal(t, "4821", code4)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), date)
		assert.Equal(t, 1, seq)
	})

	t.Run("round-trips every composed barcode", func(t *testing.T) {
		dates := []time.Time{
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2031, 12, 1, 0, 0, 0, 0, time.UTC),
		}
		seqs := []int{1, 7, 99, 12345, MaxSeq}

		for _, d := range dates {
			for _, s := range seqs {
				barcode := ComposeBarcode("0304", d, s)

				code4, date, seq, err := ParseBarcode(barcode)
				require.NoError(t, err, "barcode %s", barcode)
				assert.Equal(t, "0304", code4)
				assert.True(t, d.Equal(date))
				assert.Equal(t, s, seq)
			}
		}
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		for _, input := range []string{"", "48211501250000", "4821150125000011"} {
			_, _, _, err := ParseBarcode(input)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("rejects non-numeric code segment", func(t *testing.T) {
		_, _, _, err := ParseBarcode("48a115012500001")
		assert.Error(t, err)
	})

	t.Run("rejects invalid date segment", func(t *testing.T) {
		// day 32 does not exist
		_, _, _, err := ParseBarcode("482132012500001")
		assert.Error(t, err)
	})

	t.Run("rejects zero sequence", func(t *testing.T) {
		_, _, _, err := ParseBarcode("482115012500000")
		assert.Error(t, err)
	})
}
