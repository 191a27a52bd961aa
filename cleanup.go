package uthread

import "sync"

// teardown resets every piece of package state back to its pristine,
// never-initialized shape: it stops the timer, frees every stack,
// clears the thread table and the semaphore directory, and rearms
// initOnce so the next exported call starts a fresh runtime
// generation. Exit runs it once every thread that has ever existed is
// a zombie, and Shutdown runs it on demand: the timer, signal
// disposition and thread table all reset together. Nothing forces the host process to exit: only this
// package's own state resets.
func teardown() {
	stopTimer()

	enterCritical()
	for i := 0; i < numThreads; i++ {
		if rec := threads[i]; rec != nil {
			stackPool.put(rec.stack)
			threads[i] = nil
		}
	}
	numThreads = 0
	current = 0
	sems = make(map[SemID]*semRecord)
	leaveCritical()

	initOnce = sync.Once{}
}
