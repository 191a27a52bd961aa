// Command uthreaddemo exercises the uthread runtime from outside the
// package: it spawns a handful of worker threads that share a
// counter guarded by Lock/Unlock, joins them all, and reports the
// final count. Run with -v to see the scheduler's handoffs on stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"uthread"
)

func main() {
	var (
		workers = flag.Int("workers", 4, "number of worker threads to create")
		rounds  = flag.Int("rounds", 1000, "increments performed by each worker")
		verbose = flag.Bool("v", false, "trace scheduler handoffs to stderr")
	)
	flag.Parse()
	uthread.SetVerbose(*verbose)
	defer uthread.Shutdown()

	count := 0
	ids := make([]uthread.ThreadID, 0, *workers)
	for i := 0; i < *workers; i++ {
		id, err := uthread.Create(func(arg any) any {
			n := arg.(int)
			for j := 0; j < n; j++ {
				uthread.Lock()
				count++
				uthread.Unlock()
			}
			return nil
		}, *rounds)
		if err != nil {
			fmt.Fprintln(os.Stderr, "uthreaddemo: create:", err)
			os.Exit(1)
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		if _, err := uthread.Join(id); err != nil {
			fmt.Fprintln(os.Stderr, "uthreaddemo: join:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("expected %d, got %d\n", *workers*(*rounds), count)
}
