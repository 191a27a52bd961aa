//go:build linux

package uthread

import (
	"golang.org/x/sys/unix"
)

// alarmSigset is a sigset_t with only SIGALRM set, built once and
// reused. unix.Sigset_t on linux is a fixed-size bitmap (Val is a
// [16]uint64); SIGALRM lives in the first word.
var alarmSigset = func() unix.Sigset_t {
	var set unix.Sigset_t
	bit := uint(unix.SIGALRM) - 1
	set.Val[bit/64] |= 1 << (bit % 64)
	return set
}()

// maskAlarm blocks SIGALRM on the calling OS thread. Go multiplexes
// goroutines over OS threads, so this is advisory rather than a
// strict per-thread guarantee; real preemption safety comes from
// timer.go routing the signal through a channel rather than a
// handler. Masking it here still keeps the delivering thread itself
// from being interrupted mid-syscall while it holds the gate.
func maskAlarm() {
	_ = unix.PthreadSigmask(unix.SIG_BLOCK, &alarmSigset, nil)
}

// unmaskAlarm reverses maskAlarm.
func unmaskAlarm() {
	_ = unix.PthreadSigmask(unix.SIG_UNBLOCK, &alarmSigset, nil)
}
