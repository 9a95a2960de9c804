package testing

import (
	"fmt"
	"strings"
	"sync"
)

// Call is one recorded side effect on a fake collaborator.
type Call struct {
	Target string // "decoder", "orientation", "immersive", "statusBar", "host"
	Method string
	Arg    any // nil for calls without arguments
}

// Name returns "target.Method".
func (c Call) Name() string {
	return c.Target + "." + c.Method
}

func (c Call) String() string {
	if c.Arg == nil {
		return c.Name() + "()"
	}
	return fmt.Sprintf("%s(%v)", c.Name(), c.Arg)
}

// CallLog records side effects across all fakes in order.
type CallLog struct {
	mu    sync.Mutex
	calls []Call
}

func (l *CallLog) record(target, method string, arg any) {
	l.mu.Lock()
	l.calls = append(l.calls, Call{Target: target, Method: method, Arg: arg})
	l.mu.Unlock()
}

// Calls returns a copy of every recorded call.
func (l *CallLog) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.calls...)
}

// Names returns the "target.Method" name of every recorded call.
func (l *CallLog) Names() []string {
	calls := l.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name()
	}
	return names
}

// Filter returns the calls made on target.
func (l *CallLog) Filter(target string) []Call {
	var out []Call
	for _, c := range l.Calls() {
		if c.Target == target {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of the first call whose String() has the given
// prefix, or -1.
func (l *CallLog) Index(prefix string) int {
	for i, c := range l.Calls() {
		if strings.HasPrefix(c.String(), prefix) {
			return i
		}
	}
	return -1
}

// Reset forgets every recorded call.
func (l *CallLog) Reset() {
	l.mu.Lock()
	l.calls = nil
	l.mu.Unlock()
}
