// Package spinning provides a friendly spinning clock (or some other spinning symbols)
// to use while the program is thinking about its next move.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// Spinning display, running on a separate goroutine until Done is called.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
	out    io.Writer
	theme  []rune
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else before calling New.
	Theme = ThemeClock

	// Period between updates of the spinning symbol.
	Period = 250 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program haven't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}

		// Wait for gracePeriod before exiting.
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n") // Restore cursor and colors.
}

// New starts a spinning display on the standard output.
// It stops when Spinning.Done is called or when ctx is cancelled.
func New(ctx context.Context) *Spinning {
	return NewWithWriter(ctx, os.Stdout)
}

// NewWithWriter starts a spinning display that writes to out.
func NewWithWriter(ctx context.Context, out io.Writer) *Spinning {
	s := &Spinning{out: out, theme: Theme}
	if len(s.theme) == 0 {
		s.theme = ThemeAscii
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
	return s
}

func (s *Spinning) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(Period)
	defer ticker.Stop()
	_, _ = fmt.Fprint(s.out, "\033[?25l")                    // Hide cursor.
	defer func() { _, _ = fmt.Fprint(s.out, "\033[?25h") }() // Restore cursor.

	_, _ = fmt.Fprint(s.out, "  ")
	for idx := 0; ; idx = (idx + 1) % len(s.theme) {
		_, _ = fmt.Fprintf(s.out, "\b\b%c", s.theme[idx])
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprint(s.out, "\b\b")
			return
		case <-ticker.C:
		}
	}
}

// Done stops the spinning display and waits for it to clean up. It can be called more than once.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
