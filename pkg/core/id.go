package core

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// idLength is the number of characters kept from the random UUID.
const idLength = 13

// NewID returns a short random opaque identifier.
// Byte 6 of a v4 UUID carries the version nibble, so it is skipped.
func NewID() string {
	u := uuid.New()
	b := append(u[:6:6], u[7:]...)
	return hex.EncodeToString(b)[:idLength]
}

// NowMillis returns the current time as epoch milliseconds, the unit of CreatedAt.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
