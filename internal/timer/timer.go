package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which the clock is refreshed. Half a second is precise
// enough for I/O deadlines, which are the only consumers.
const Resolution = 500 * time.Millisecond

var clock = new(atomic.Int64)

func init() {
	// store the first value synchronously, otherwise an early caller could observe
	// the zero time and set a deadline in the past
	clock.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			clock.Store(time.Now().UnixMilli())
		}
	}()
}

// Now returns the coarse current time.
func Now() time.Time {
	millis := clock.Load()
	return time.UnixMilli(millis)
}

// Deadline returns the moment the timeout expires at. Zero timeout results in the
// zero time, which disables deadlines on net.Conn and net.Listener.
func Deadline(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}

	return Now().Add(timeout)
}
