package shell

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Notices printed when SIGTSTP toggles foreground-only mode.
const (
	enterForegroundOnlyNotice = "Entering foreground-only mode (& is now ignored)"
	exitForegroundOnlyNotice  = "Exiting foreground-only mode"
)

const (
	noticeNone = int32(iota)
	noticeEnterForegroundOnly
	noticeExitForegroundOnly
)

// SignalBridge holds the flag-sized state shared between the asynchronous
// signal handlers and the main loop. Handlers only touch these atomics; job
// table edits and status messages happen synchronously on the main loop.
//
// SIGCHLD is owned by the Go runtime: child completion reaches the main loop
// over the shell's reap channel, fed by one watcher goroutine per background
// child, rather than through a handler here.
type SignalBridge struct {
	foregroundOnly      atomic.Bool
	waitingOnForeground atomic.Bool
	pendingNotice       atomic.Int32
}

// ForegroundOnly reports whether trailing & operators are currently ignored.
func (b *SignalBridge) ForegroundOnly() bool {
	return b.foregroundOnly.Load()
}

// SetWaiting marks whether the main loop is blocked on a foreground child.
func (b *SignalBridge) SetWaiting(waiting bool) {
	b.waitingOnForeground.Store(waiting)
}

// ToggleForegroundOnly flips the mode and returns the notice for the user.
// While a foreground child is being waited on the notice is deferred so the
// main loop can print it before the next prompt instead.
func (b *SignalBridge) ToggleForegroundOnly() (notice string, deferred bool) {
	entering := !b.foregroundOnly.Load()
	b.foregroundOnly.Store(entering)

	pending := noticeExitForegroundOnly
	notice = exitForegroundOnlyNotice
	if entering {
		pending = noticeEnterForegroundOnly
		notice = enterForegroundOnlyNotice
	}

	if b.waitingOnForeground.Load() {
		b.pendingNotice.Store(pending)
		return notice, true
	}
	return notice, false
}

// TakeNotice returns and clears any deferred mode-change notice.
func (b *SignalBridge) TakeNotice() (string, bool) {
	switch b.pendingNotice.Swap(noticeNone) {
	case noticeEnterForegroundOnly:
		return enterForegroundOnlyNotice, true
	case noticeExitForegroundOnly:
		return exitForegroundOnlyNotice, true
	}
	return "", false
}

// installSignalHandlers wires the process signal dispositions for the shell.
//
// SIGINT is caught and discarded rather than ignored: a caught signal
// reverts to its default disposition in exec'd children, so a foreground
// child stays killable from the terminal. Background children sit in their
// own process group and never see terminal interrupts.
func (s *Shell) installSignalHandlers() {
	ints := make(chan os.Signal, 1)
	signal.Notify(ints, syscall.SIGINT)
	go func() {
		for range ints {
		}
	}()

	stops := make(chan os.Signal, 1)
	signal.Notify(stops, syscall.SIGTSTP)
	go func() {
		for range stops {
			notice, deferred := s.signals.ToggleForegroundOnly()
			if !deferred {
				fmt.Fprintf(s.stdout, "\n%s\n", notice)
			}
		}
	}()
}
