package uthread

import (
	"fmt"
	"os"
	"sync/atomic"
)

// verbose toggles scheduler tracing to stderr. It is off by default;
// the demo command's -v flag turns it on to watch handoffs happen.
var verbose atomic.Bool

// SetVerbose enables or disables scheduler tracing.
func SetVerbose(v bool) {
	verbose.Store(v)
}

func trace(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	fmt.Fprintf(os.Stderr, "uthread: "+format+"\n", args...)
}
