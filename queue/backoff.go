package queue

import (
	"time"

	"github.com/HumansWindow/minting-service/app"
)

// NextDelay returns how long a request must wait before its next attempt,
// doubling per recorded failure and capped at the configured maximum.
func NextDelay(retryCount int64) time.Duration {
	baseMillis := app.Config.Queue.BaseDelayMillis
	maxMillis := app.Config.Queue.MaxDelayMillis

	delayMillis := baseMillis
	for i := int64(0); i < retryCount; i++ {
		delayMillis *= 2
		if delayMillis >= maxMillis || delayMillis <= 0 {
			return time.Duration(maxMillis) * time.Millisecond
		}
	}

	return time.Duration(delayMillis) * time.Millisecond
}
