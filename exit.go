package uthread

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var exitHookOnce sync.Once

// installExitHook arms a best-effort substitute for the atexit hook
// spec.md's init describes registering against normal process exit.
// The standard library has no atexit, and a library has no business
// calling os.Exit on its embedder's behalf, so instead this watches
// for SIGINT and SIGTERM, runs Shutdown to stop the itimer and
// restore the package to its pristine state, and then re-raises the
// same signal so the process terminates exactly the way it would
// have if this package had never run, rather than swallowing the
// host's own termination signal.
//
// This does not cover every way a process can end — a bare os.Exit
// call, a panic that unwinds past main, or SIGKILL all bypass it.
// Embedders that control their own shutdown path should call
// Shutdown directly (see cmd/uthreaddemo/main.go for the pattern);
// this hook is a fallback for the common case where neither happens.
func installExitHook() {
	exitHookOnce.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			signal.Stop(sigs)
			Shutdown()
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				p.Signal(sig)
			}
		}()
	})
}

// Shutdown restores the runtime to its pristine, never-initialized
// state: it stops the timer, frees every stack, clears the thread
// table and the semaphore directory, and rearms the package for a
// fresh generation on the next call into it. It is safe to call more
// than once and safe to call even if no uthread API was ever used.
//
// Embedders that manage their own process lifecycle should call this
// directly, typically via defer in main, rather than relying solely
// on the SIGINT/SIGTERM hook installed by ensureInit.
func Shutdown() {
	teardown()
}
