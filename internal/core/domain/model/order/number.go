package order

import (
	"fmt"

	"visadesk/internal/core/domain/model/kernel"
)

// FormatNumber renders an order number: the creation year and the id padded
// to four digits, e.g. 2026-0042. Ids beyond 9999 keep all their digits.
func FormatNumber(year int, id kernel.ID) string {
	return fmt.Sprintf("%d-%04d", year, id.Int64())
}
