//go:build unix

package keys

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Terminal reads raw stdin on a goroutine and presses buttons.
// Only used interactively; tests drive Decode and Apply directly.
type Terminal struct {
	buttons Buttons
	stopCh  chan struct{}
	done    chan struct{}
	quit    chan struct{}
	stopped sync.Once
	quitted sync.Once

	fd          int
	nonblockSet bool
	oldState    *term.State
}

// NewTerminal creates a keyboard reader for buttons
func NewTerminal(buttons Buttons) *Terminal {
	return &Terminal{
		buttons: buttons,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
	}
}

// Start puts stdin in raw non-blocking mode and begins reading. Call Stop to
// restore the terminal.
func (t *Terminal) Start() error {
	t.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		close(t.done)
		return fmt.Errorf("set raw mode: %w", err)
	}
	t.oldState = oldState

	if err := syscall.SetNonblock(t.fd, true); err != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
		close(t.done)
		return fmt.Errorf("set nonblocking stdin: %w", err)
	}
	t.nonblockSet = true

	go t.readLoop()
	return nil
}

func (t *Terminal) readLoop() {
	defer close(t.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := syscall.Read(t.fd, buf)
		if n > 0 && Apply(Decode(buf[0]), t.buttons) {
			t.quitted.Do(func() { close(t.quit) })
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || (err == nil && n == 0) {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

// Quit is closed when the user asks to leave
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

// Stop ends the reader and restores stdin
func (t *Terminal) Stop() {
	t.stopped.Do(func() {
		close(t.stopCh)
	})
	<-t.done
	if t.nonblockSet {
		_ = syscall.SetNonblock(t.fd, false)
		t.nonblockSet = false
	}
	if t.oldState != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
	}
}
