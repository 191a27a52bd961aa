//go:build unix

package uthread

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// TimerInterval is the period of the preemption tick.
const TimerInterval = 50 * time.Millisecond

// preemptRequested is set by the SIGALRM monitor goroutine and
// consumed by checkPreempt at the next safe point. A true signal
// handler could interrupt a thread anywhere; Go gives a library no
// such hook without cgo, so the signal only ever sets this flag and
// the actual rotation happens cooperatively.
var preemptRequested atomic.Bool

var timerOnce sync.Once
var timerStop chan struct{}

// startTimer arms a real itimer and starts the goroutine that turns
// delivered SIGALRMs into preemption requests. It is idempotent and
// safe to call from ensureInit on every process; teardown reverses it
// so a later ensureInit (after teardown) can start fresh.
func startTimer() {
	timerOnce.Do(func() {
		timerStop = make(chan struct{})
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGALRM)

		it := unix.Itimerval{
			Value:    durationToTimeval(TimerInterval),
			Interval: durationToTimeval(TimerInterval),
		}
		_, _ = unix.Setitimer(unix.ITIMER_REAL, it)

		go func() {
			for {
				select {
				case <-sigs:
					preemptRequested.Store(true)
				case <-timerStop:
					signal.Stop(sigs)
					return
				}
			}
		}()
	})
}

// stopTimer disarms the itimer and shuts the monitor goroutine down.
// It is a no-op if the timer was never started.
func stopTimer() {
	if timerStop == nil {
		return
	}
	var zero unix.Itimerval
	_, _ = unix.Setitimer(unix.ITIMER_REAL, zero)
	select {
	case <-timerStop:
	default:
		close(timerStop)
	}
	timerOnce = sync.Once{}
}

func durationToTimeval(d time.Duration) unix.Timeval {
	sec := int64(d / time.Second)
	usec := int64((d % time.Second) / time.Microsecond)
	return unix.Timeval{Sec: sec, Usec: usec}
}
