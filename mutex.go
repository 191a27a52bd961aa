package uthread

// Lock and Unlock expose the same critical-section gate the runtime
// itself uses, for user code that wants to protect a region against
// preemption the same way the thread table and semaphore directory
// are protected. The gate is binary: nested Lock calls by the same
// thread are undefined, matching the open question left unresolved
// by design (see DESIGN.md).

// Lock acquires the critical-section gate.
func Lock() {
	ensureInit()
	checkPreempt()
	enterCritical()
}

// Unlock releases the critical-section gate.
func Unlock() {
	leaveCritical()
}
