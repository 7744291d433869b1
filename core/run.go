package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// crashHandler runs before the stack trace is printed. The composition root
// injects terminal cleanup here so this package stays independent of the
// screen backend.
var crashHandler func(r any)

// SetCrashHandler installs the pre-exit cleanup callback
// Call once during startup, before any Go spawn
func SetCrashHandler(fn func(r any)) {
	crashHandler = fn
}

// HandleCrash is the unified panic handler: restore the terminal via the
// injected callback, then print the stack trace to stderr and exit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if crashHandler != nil {
		crashHandler(r)
	}

	// \r\n keeps the trace readable if raw mode was not fully restored
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so a crash in a background goroutine
// still cleans up the terminal.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
