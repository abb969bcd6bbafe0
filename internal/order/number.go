package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateOrderNumber returns a human-readable order number like
// ORD-3F9A01BC.
func GenerateOrderNumber() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// fallback: time-based entropy
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}

	return "ORD-" + strings.ToUpper(hex.EncodeToString(buf))
}
