package uthread

import "sync"

// The gate is this runtime's critical-section primitive: the single
// lock that makes every thread-table and scheduler mutation atomic
// with respect to both other goroutines calling into the package and
// the SIGALRM-driven preemption tick. It plays the role
// sigprocmask(SIG_BLOCK, {SIGALRM}) plays in a signal-driven runtime:
// a caller inside the gate cannot be rescheduled out from under
// itself.
//
// gateMu serializes every goroutine that calls into the package.
// maskAlarm/unmaskAlarm additionally block and unblock the real
// SIGALRM at the OS thread level where the platform supports it
// (gate_linux.go); elsewhere they are a no-op and preemption is kept
// safe purely by funneling the signal through a channel instead of a
// handler (see timer.go).
var gateMu sync.Mutex

// enterCritical acquires the gate: it blocks SIGALRM for the calling
// goroutine's OS thread and then takes gateMu. Every exported
// operation that touches the thread table calls this first.
func enterCritical() {
	maskAlarm()
	gateMu.Lock()
}

// leaveCritical is the inverse of enterCritical.
func leaveCritical() {
	gateMu.Unlock()
	unmaskAlarm()
}
