package uthread

// context stands in for a hand-forged jmp_buf: instead of saving
// registers and a stack pointer, it parks its goroutine on a
// rendezvous channel and wakes it by sending on that same channel.
// Exactly one goroutine backs each thread slot for the slot's whole
// lifetime, so save/restore only ever rendezvous with that one
// goroutine.
//
// resume is unbuffered: restore only returns once save's goroutine has
// actually woken up and taken the token, which is what gives the
// scheduler the same "the next thread is now definitely running"
// guarantee a setjmp/longjmp based save and restore would give.
type context struct {
	resume chan struct{}
}

func newContext() *context {
	return &context{resume: make(chan struct{})}
}

// save parks the calling goroutine until some other goroutine calls
// restore on this same context. It is the analogue of the point where
// setjmp captures control and the scheduler is invoked.
func (c *context) save() {
	<-c.resume
}

// restore wakes the goroutine parked in save. It is the analogue of
// longjmp transferring control into a previously saved context.
func (c *context) restore() {
	c.resume <- struct{}{}
}
