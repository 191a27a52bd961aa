package uthread

import (
	"errors"
	"syscall"
)

// Sentinel errors returned by the thread and semaphore API. Where a
// POSIX errno has a direct match, we return the matching
// syscall.Errno so callers can still errors.Is against ESRCH, EINVAL
// and EDEADLK; the remaining kinds have no POSIX errno equivalent and
// are plain sentinels.
var (
	// ErrOutOfThreads is returned by Create when the thread table is
	// full (MaxThreads live or zombie entries).
	ErrOutOfThreads = errors.New("uthread: out of threads")

	// ErrOutOfMemory is returned by Create when a stack cannot be
	// obtained from the stack pool.
	ErrOutOfMemory = errors.New("uthread: out of memory")

	// ErrOutOfSemaphores is returned by SemInit when the semaphore
	// table is full.
	ErrOutOfSemaphores = errors.New("uthread: out of semaphores")

	// ErrUninitSemaphore is returned by SemWait, SemPost and
	// SemDestroy when called on a semaphore ID that was never
	// initialized by SemInit, or was already destroyed.
	ErrUninitSemaphore = errors.New("uthread: uninitialized semaphore")

	// ErrBadParam is returned for invalid arguments that are not
	// already covered by a more specific error.
	ErrBadParam = errors.New("uthread: bad parameter")

	// ErrOverflow is returned by SemPost when a semaphore's count
	// would exceed its maximum representable value.
	ErrOverflow = errors.New("uthread: semaphore count overflow")

	// ErrNoSuchThread is returned by Join when given an ID that was
	// never allocated by Create.
	ErrNoSuchThread = syscall.ESRCH

	// ErrAlreadyJoined is returned by Join when the target has
	// already been reclaimed by an earlier Join, or already has a
	// different thread blocked joining it.
	ErrAlreadyJoined = syscall.EINVAL

	// ErrJoinDeadlock is returned by Join when a thread tries to join
	// itself. Cycles of threads mutually joining each other are not
	// detected.
	ErrJoinDeadlock = syscall.EDEADLK
)
