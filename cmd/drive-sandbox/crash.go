package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// crashScreen is finalized before a crash report is printed, set once the screen is up
var crashScreen tcell.Screen

// handleCrash resets the terminal and prints the stack trace
func handleCrash(r any) {
	if r == nil {
		return
	}

	if crashScreen != nil {
		crashScreen.Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mDRIVE-SANDBOX CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// goSafe runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func goSafe(fn func()) {
	go func() {
		defer func() {
			handleCrash(recover())
		}()
		fn()
	}()
}
