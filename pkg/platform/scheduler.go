package platform

import "time"

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means it already fired or was stopped.
	Stop() bool
}

// UIScheduler runs timer callbacks and posted work on the UI thread through
// [Dispatch].
type UIScheduler struct{}

// AfterFunc waits for d and then dispatches f to the UI thread.
func (UIScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { Dispatch(f) })
}

// Post dispatches f to the UI thread.
func (UIScheduler) Post(f func()) {
	Dispatch(f)
}
