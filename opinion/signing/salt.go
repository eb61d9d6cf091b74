package signing

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastSalt atomic.Int64

// NextSalt returns a wall-clock-millisecond salt with a monotonic floor:
// when two orders are built within the same millisecond, or the clock steps
// backwards, the salt still strictly increases within the process.
func NextSalt() int64 {
	for {
		prev := lastSalt.Load()
		salt := time.Now().UnixMilli()
		if salt <= prev {
			salt = prev + 1
		}
		if lastSalt.CompareAndSwap(prev, salt) {
			return salt
		}
	}
}

// NextSaltString returns the next salt as a decimal string, the representation
// used in order records and wire payloads.
func NextSaltString() string {
	return strconv.FormatInt(NextSalt(), 10)
}
