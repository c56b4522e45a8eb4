package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// Finisher restores the terminal before the stack trace is printed
// *tcell.Screen satisfies it through Fini
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
	reporting     bool
)

// SetCrashTerminal registers the terminal restored by HandleCrash, nil clears it
func SetCrashTerminal(t Finisher) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// InitReporting enables Sentry crash reports; empty dsn leaves reporting off
func InitReporting(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	crashMu.Lock()
	reporting = true
	crashMu.Unlock()
	return nil
}

// FlushReporting drains pending reports on normal shutdown
func FlushReporting() {
	crashMu.Lock()
	on := reporting
	crashMu.Unlock()
	if on {
		sentry.Flush(2 * time.Second)
	}
}

// HandleCrash is the unified panic handler: restore terminal, report, print stack, exit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term := crashTerminal
	crashTerminal = nil
	on := reporting
	crashMu.Unlock()

	if term != nil {
		term.Fini()
	}

	if on {
		sentry.CurrentHub().Recover(r)
		sentry.Flush(2 * time.Second)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash restores the terminal
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
