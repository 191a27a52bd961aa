package uthread

import "github.com/gammazero/deque"

// SemID is a semaphore handle chosen by the caller, the same way
// POSIX sem_init takes caller-owned storage rather than allocating an
// identifier itself. The runtime only tracks which handles are
// currently initialized; it imposes no ordering or range on the
// values a caller picks.
type SemID int

// MaxSemaphores bounds how many semaphores can be simultaneously
// initialized at once.
const MaxSemaphores = 128

// semMaxValue is V_MAX from the data model: the exclusive ceiling on
// a semaphore's logical count. Init rejects value >= semMaxValue;
// Post refuses to push the count past semMaxValue-1.
const semMaxValue = 65536

type semRecord struct {
	value   uint32
	waiters deque.Deque[int] // thread slots parked in SemWait, FIFO
}

// sems is the semaphore directory. Every read and mutation of it, or
// of any semRecord it holds, happens under the gate, the same as the
// thread table: there is exactly one critical-section primitive in
// this package, not one per data structure.
var sems = make(map[SemID]*semRecord)

// SemInit initializes the semaphore named by handle with the given
// starting count. shared must be false: cross-process shared
// semaphores are out of scope for this runtime.
func SemInit(handle SemID, shared bool, value uint32) error {
	ensureInit()
	checkPreempt()

	if shared || value >= semMaxValue {
		return ErrBadParam
	}

	enterCritical()
	defer leaveCritical()
	if _, exists := sems[handle]; !exists && len(sems) >= MaxSemaphores {
		return ErrOutOfSemaphores
	}
	sems[handle] = &semRecord{value: value}
	trace("seminit: handle=%d value=%d", handle, value)
	return nil
}

// SemDestroy retires a semaphore. Any thread still parked in SemWait
// on it is left blocked forever, the same way destroying a POSIX
// semaphore out from under a waiter is the caller's own error to
// avoid; this package does not reject the call for it.
func SemDestroy(handle SemID) error {
	ensureInit()
	enterCritical()
	defer leaveCritical()

	if _, ok := sems[handle]; !ok {
		return ErrUninitSemaphore
	}
	delete(sems, handle)
	return nil
}

// SemWait decrements the semaphore's count, blocking the calling
// thread in FIFO order if the count is already zero. The blocking
// path never decrements the count itself: SemPost hands the wakeup
// directly to the head of the queue instead.
func SemWait(handle SemID) error {
	ensureInit()
	checkPreempt()

	enterCritical()
	rec, ok := sems[handle]
	if !ok {
		leaveCritical()
		return ErrUninitSemaphore
	}
	if rec.value > 0 {
		rec.value--
		leaveCritical()
		return nil
	}

	rec.waiters.PushBack(current)
	threads[current].status = statusBlocked
	blockAndSwitch()
	leaveCritical()
	return nil
}

// SemPost increments the semaphore's count, or, if a thread is
// already parked in SemWait, marks the longest-waiting one ready
// instead of letting the count ever rise while someone is blocked.
// Post never yields its own caller: the woken thread runs at the next
// scheduling decision.
func SemPost(handle SemID) error {
	ensureInit()
	checkPreempt()

	enterCritical()
	defer leaveCritical()
	rec, ok := sems[handle]
	if !ok {
		return ErrUninitSemaphore
	}
	if rec.waiters.Len() > 0 {
		slot := rec.waiters.PopFront()
		wake(slot)
		return nil
	}
	if rec.value >= semMaxValue-1 {
		return ErrOverflow
	}
	rec.value++
	return nil
}

// wake marks a blocked thread ready again. It does not itself switch
// to it; the thread becomes a normal candidate for the next schedule
// decision, the same as any other ready thread. The gate must already
// be held by the caller.
func wake(slot int) {
	if threads[slot] != nil {
		threads[slot].status = statusReady
	}
}
