package orders

import (
	"fmt"
	"time"

	"storefront/utils"
)

// GenerateOrderNumber produces ORD-<millisecond timestamp>-<3 digits>.
// Unique with high probability only; no store lookup is done before insert,
// so the orders collection's unique index is the sole collision guard.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), utils.GenerateRandomDigitString(3))
}
