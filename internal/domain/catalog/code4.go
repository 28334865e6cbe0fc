package catalog

import (
	"fmt"
	"hash/crc32"

	"github.com/wms/backend/internal/domain/shared"
)

// code4Space is the size of the product code namespace (0000-9999).
const code4Space = 10000

// AssignCode4 derives a 4-digit product code from a SKU.
//
// The base candidate is CRC-32 of the SKU modulo 10000; when taken, the
// candidates (base+1)%10000, (base+2)%10000, ... are probed in order until a
// free slot is found. The result is a pure function of the SKU and the set of
// codes already taken, so re-running it with the same occupancy always yields
// the same code.
//
// Returns ErrCodeSpaceExhausted when all 10000 codes are taken. That is a
// hard capacity limit of the namespace, not a retryable condition.
func AssignCode4(sku string, taken func(code string) bool) (string, error) {
	base := crc32.ChecksumIEEE([]byte(sku)) % code4Space
	for step := uint32(0); step < code4Space; step++ {
		candidate := fmt.Sprintf("%04d", (base+step)%code4Space)
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return "", shared.ErrCodeSpaceExhausted
}
