package uthread

import "runtime"

// schedule picks the next runnable thread, scanning the table
// round-robin starting just after current, the same way a process
// table scheduler walks its slots looking for the next runnable
// entry. It only ever looks at slots below numThreads: nothing past
// the high-water mark has ever been allocated, so inspecting it would
// violate the "never look past num_threads" invariant. excludeCurrent
// is set by callers for whom the current slot is no longer a
// candidate (it just blocked or exited); checkPreempt leaves it false
// so a tick with nothing else ready just keeps the current thread
// running.
//
// The gate must already be held by the caller.
func schedule(excludeCurrent bool) (slot int, ok bool) {
	n := numThreads
	for i := 1; i <= n; i++ {
		s := (current + i) % n
		if s == current && excludeCurrent {
			continue
		}
		rec := threads[s]
		if rec != nil && rec.status == statusReady {
			return s, true
		}
	}
	return -1, false
}

// blockAndSwitch is the shared blocking path for Join and SemWait.
// The caller has already marked its own slot statusBlocked and must
// hold the gate. blockAndSwitch finds the next runnable thread, hands
// it control, parks the caller, and on wake reacquires the gate
// before returning. If nothing else is runnable, the caller is
// genuinely stuck: there is nothing left to hand off to, so it parks
// forever. The condition is not detected or reported; while the timer
// is armed the process keeps running, so Go's own "all goroutines are
// asleep" check does not fire either.
func blockAndSwitch() {
	me := current
	next, ok := schedule(true)
	if !ok {
		leaveCritical()
		select {}
	}
	threads[next].status = statusRunning
	current = next
	leaveCritical()
	threads[next].ctx.restore()

	threads[me].ctx.save()
	enterCritical()
}

// checkPreempt is consulted at every exported API boundary. If the
// timer goroutine has requested a rotation since the last check, it
// rotates to the next ready thread exactly like a voluntary yield.
// This is the safe-point substitute for an asynchronous SIGALRM
// handler: Go does not let a library install a true synchronous
// signal handler without cgo, so preemption here is cooperative at
// well-defined points rather than truly asynchronous. See timer.go
// and DESIGN.md.
func checkPreempt() {
	if !preemptRequested.CompareAndSwap(true, false) {
		return
	}
	enterCritical()
	rotate()
	leaveCritical()
}

// rotate hands control to the next ready thread, if any, leaving the
// current thread itself marked ready so it will be picked up again
// later. The gate must be held by the caller and remains held on
// return: rotate releases it only around the handoff, matching
// blockAndSwitch's contract.
func rotate() {
	me := current
	next, ok := schedule(false)
	if !ok || next == me {
		return
	}
	threads[me].status = statusReady
	threads[next].status = statusRunning
	current = next
	leaveCritical()
	threads[next].ctx.restore()

	threads[me].ctx.save()
	enterCritical()
	threads[me].status = statusRunning
}

// Gosched voluntarily yields the calling thread to the next runnable
// thread, the uthread analogue of runtime.Gosched. It is also what
// the periodic timer tick does to the currently running thread, just
// invoked directly by the caller instead of by the clock.
func Gosched() {
	ensureInit()
	enterCritical()
	rotate()
	leaveCritical()
}

// goexit ends the calling goroutine without unwinding the process,
// used once Exit has finished handing off the uthread-level state.
func goexit() {
	runtime.Goexit()
}
