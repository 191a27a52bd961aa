//go:build !linux

package uthread

// On platforms without a raw PthreadSigmask primitive we fall back to
// gateMu alone. Preemption stays safe because timer.go never installs
// a signal handler directly; it only ever sets an atomic flag that
// threads observe at their own safe points.
func maskAlarm()   {}
func unmaskAlarm() {}
