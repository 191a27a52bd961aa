//go:build !unix

package uthread

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimerInterval is the period of the preemption tick.
const TimerInterval = 50 * time.Millisecond

var preemptRequested atomic.Bool

var timerOnce sync.Once
var timerTicker *time.Ticker
var timerStop chan struct{}

// startTimer falls back to a plain time.Ticker on platforms without
// a real itimer/SIGALRM (there is no unix.Setitimer off the unix
// build tag). The observable behavior at the package API is
// identical: a periodic request to rotate, consumed at the next safe
// point by checkPreempt.
func startTimer() {
	timerOnce.Do(func() {
		timerTicker = time.NewTicker(TimerInterval)
		timerStop = make(chan struct{})
		go func() {
			for {
				select {
				case <-timerTicker.C:
					preemptRequested.Store(true)
				case <-timerStop:
					return
				}
			}
		}()
	})
}

func stopTimer() {
	if timerStop == nil {
		return
	}
	if timerTicker != nil {
		timerTicker.Stop()
	}
	select {
	case <-timerStop:
	default:
		close(timerStop)
	}
	timerOnce = sync.Once{}
}
