package stock

import (
	"fmt"
	"strconv"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

const (
	// BarcodeLength is the fixed length of an item barcode:
	// 4-digit product code + 6-digit ddmmyy date + 5-digit sequence.
	BarcodeLength = 15

	// MaxSeq is the largest sequence number the 5-digit segment can carry.
	MaxSeq = 99999

	barcodeDateLayout = "020106" // ddmmyy
)

// ComposeBarcode builds the 15-character item barcode from its components.
// The composition is injective: ParseBarcode recovers the exact inputs.
func ComposeBarcode(code4 string, importDate time.Time, seq int) string {
	return fmt.Sprintf("%s%s%05d", code4, importDate.Format(barcodeDateLayout), seq)
}

// ParseBarcode decomposes a barcode into product code, import date and
// sequence number. It is the inverse of ComposeBarcode.
func ParseBarcode(barcode string) (code4 string, importDate time.Time, seq int, err error) {
	if len(barcode) != BarcodeLength {
		return "", time.Time{}, 0, shared.NewDomainError("INVALID_BARCODE", "Barcode must be exactly 15 characters")
	}

	code4 = barcode[0:4]
	for _, r := range code4 {
		if r < '0' || r > '9' {
			return "", time.Time{}, 0, shared.NewDomainError("INVALID_BARCODE", "Barcode product code must be numeric")
		}
	}

	importDate, err = time.Parse(barcodeDateLayout, barcode[4:10])
	if err != nil {
		return "", time.Time{}, 0, shared.NewDomainError("INVALID_BARCODE", "Barcode date segment is not a valid ddmmyy date")
	}

	seq, err = strconv.Atoi(barcode[10:15])
	if err != nil || seq <= 0 {
		return "", time.Time{}, 0, shared.NewDomainError("INVALID_BARCODE", "Barcode sequence segment must be a positive number")
	}

	return code4, importDate, seq, nil
}
