//go:build !unix

package keys

import "errors"

// ErrNoRawTerminal is returned where raw, non-blocking stdin is unavailable
var ErrNoRawTerminal = errors.New("raw terminal input not supported on this platform; use -scope")

// Terminal is unavailable on this platform
type Terminal struct {
	quit chan struct{}
}

func NewTerminal(buttons Buttons) *Terminal {
	return &Terminal{quit: make(chan struct{})}
}

func (t *Terminal) Start() error {
	return ErrNoRawTerminal
}

func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

func (t *Terminal) Stop() {}
