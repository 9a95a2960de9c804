package platform

import "sync/atomic"

var dispatchFunc atomic.Pointer[func(callback func())]

// RegisterDispatch sets the function used to schedule callbacks on the UI
// thread and returns the previous one. The host registers it during
// initialization; every decoder and OS callback reaches the player through
// it. Pass nil to drop callbacks.
func RegisterDispatch(fn func(callback func())) (previous func(callback func())) {
	var p *func(func())
	if fn != nil {
		p = &fn
	}
	if old := dispatchFunc.Swap(p); old != nil {
		previous = *old
	}
	return previous
}

// Dispatch schedules a callback to run on the UI thread.
// Returns false if no dispatch function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	p := dispatchFunc.Load()
	if p == nil || callback == nil {
		return false
	}
	(*p)(callback)
	return true
}
