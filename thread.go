package uthread

import "sync"

// ThreadID identifies a thread. It is dense and equal to the thread's
// table slot at allocation time; ids are never reused for the
// lifetime of one runtime generation.
type ThreadID int64

// MaxThreads bounds the number of threads a single runtime generation
// can ever allocate, slot 0 (the initial thread) included. Once the
// table holds MaxThreads entries, every further Create fails with
// ErrOutOfThreads until teardown (via Shutdown or the last Exit) runs,
// whether or not earlier threads have since been joined: slots are a
// high-water mark, not a free list.
const MaxThreads = 150

type threadStatus int

const (
	statusReady threadStatus = iota
	statusRunning
	statusBlocked
	statusZombie
)

type threadRecord struct {
	id            ThreadID
	status        threadStatus
	ctx           *context
	stack         []byte
	fn            func(any) any
	arg           any
	retval        any
	joinedBy      int // slot blocked in Join on this thread, or -1
	hasBeenJoined bool
}

var (
	initOnce sync.Once

	threads    [MaxThreads]*threadRecord
	numThreads int
	current    int
)

func ensureInit() {
	initOnce.Do(func() {
		threads[0] = &threadRecord{
			id:       0,
			status:   statusRunning,
			ctx:      newContext(),
			joinedBy: -1,
		}
		numThreads = 1
		current = 0
		startTimer()
		installExitHook()
	})
}

// Create allocates a new thread, gives it a stack from the pool and
// marks it runnable. fn runs with arg once the scheduler dispatches
// the thread for the first time; its return value becomes the value
// a later Join on this id observes.
func Create(fn func(arg any) any, arg any) (ThreadID, error) {
	ensureInit()
	checkPreempt()
	enterCritical()
	defer leaveCritical()

	if numThreads >= MaxThreads {
		return 0, ErrOutOfThreads
	}
	stack, err := stackPool.get()
	if err != nil {
		return 0, ErrOutOfMemory
	}

	slot := numThreads
	numThreads++
	rec := &threadRecord{
		id:       ThreadID(slot),
		status:   statusReady,
		ctx:      newContext(),
		stack:    stack,
		fn:       fn,
		arg:      arg,
		joinedBy: -1,
	}
	threads[slot] = rec

	go runThread(rec)

	trace("create: slot=%d numThreads=%d", slot, numThreads)
	return rec.id, nil
}

// runThread is the body every created thread's backing goroutine
// runs. It parks immediately: the thread does not actually execute
// fn until the scheduler dispatches it for the first time, mirroring
// a fabricated context that has not yet been restored into.
func runThread(rec *threadRecord) {
	rec.ctx.save()
	unmaskAlarm()
	result := rec.fn(rec.arg)
	Exit(result)
}

// Self reports the calling thread's ID.
func Self() ThreadID {
	ensureInit()
	checkPreempt()
	enterCritical()
	id := threads[current].id
	leaveCritical()
	return id
}

// Exit terminates the calling thread with the given value, which a
// later Join on this thread's ID will return. Exit never returns: if
// another thread is runnable, control is handed to it and this
// goroutine unwinds via runtime.Goexit; if every thread that has ever
// been created is now a zombie, the runtime is torn down and this
// goroutine exits the same way. If some other thread remains BLOCKED
// forever with nothing left runnable, this goroutine parks for good;
// the condition is not detected or reported.
func Exit(value any) {
	ensureInit()
	enterCritical()

	rec := threads[current]
	rec.retval = value
	rec.status = statusZombie
	rec.fn = nil
	rec.arg = nil

	if rec.joinedBy >= 0 {
		threads[rec.joinedBy].status = statusReady
	}

	if allExited() {
		trace("exit: slot=%d was the last thread standing", current)
		leaveCritical()
		teardown()
		goexit()
	}

	next, ok := schedule(true)
	if !ok {
		trace("exit: slot=%d found nothing runnable; parking", current)
		leaveCritical()
		select {}
	}

	threads[next].status = statusRunning
	trace("exit: slot=%d hands off to slot=%d", current, next)
	current = next
	leaveCritical()
	threads[next].ctx.restore()
	goexit()
}

func allExited() bool {
	for i := 0; i < numThreads; i++ {
		if threads[i].status != statusZombie {
			return false
		}
	}
	return true
}

// Join blocks until the thread named by id has exited, then returns
// the value it passed to Exit. A thread may be joined only once;
// joining self always fails instead of deadlocking silently.
func Join(id ThreadID) (any, error) {
	ensureInit()
	checkPreempt()
	enterCritical()

	slot := int(id)
	if slot < 0 || slot >= numThreads {
		leaveCritical()
		return nil, ErrNoSuchThread
	}
	target := threads[slot]
	if target.hasBeenJoined {
		leaveCritical()
		return nil, ErrAlreadyJoined
	}
	if slot == current {
		leaveCritical()
		return nil, ErrJoinDeadlock
	}

	if target.status == statusZombie {
		result := reap(target)
		leaveCritical()
		return result, nil
	}

	if target.joinedBy >= 0 {
		leaveCritical()
		return nil, ErrAlreadyJoined
	}

	target.joinedBy = current
	threads[current].status = statusBlocked
	blockAndSwitch()

	result := reap(target)
	leaveCritical()
	return result, nil
}

// reap copies out a zombie's return value, frees its stack and marks
// it joined. The gate must be held by the caller.
func reap(target *threadRecord) any {
	result := target.retval
	stackPool.put(target.stack)
	target.stack = nil
	target.hasBeenJoined = true
	trace("reap: slot=%d", target.id)
	return result
}
