package sim

import (
	"errors"
	"sync"
	"sync/atomic"

	"dacwave/config"
	"dacwave/core"
)

// ErrBoardStarted is returned when Start is called twice
var ErrBoardStarted = errors.New("board already started")

// Board wires a Port, an in-memory NVIC and the dispatcher together. The
// port's interrupt request is delivered on a dedicated goroutine, which
// preempts nothing but is serialized with other handlers the same way.
type Board struct {
	NVIC       *core.NVIC
	Port       *Port
	Mode       *core.ModeCell
	Dispatcher *core.Dispatcher

	cfg     core.EdgeInterruptConfig
	buttonA uint32
	buttonB uint32

	irq     chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	started atomic.Bool
	once    sync.Once

	delivered atomic.Uint32
	dropped   atomic.Uint32
}

// NewBoard builds a board wired as described by cfg
func NewBoard(cfg *config.Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port := NewPort()
	mode := core.NewModeCell(core.ModeIdle)
	disp, err := core.NewDispatcher(cfg.ButtonAMask, cfg.ButtonBMask, mode, port)
	if err != nil {
		return nil, err
	}

	b := &Board{
		NVIC:       core.NewMemoryNVIC(core.MaxInterruptLine + 1),
		Port:       port,
		Mode:       mode,
		Dispatcher: disp,
		cfg:        cfg.EdgeInterrupt(),
		buttonA:    cfg.ButtonAMask,
		buttonB:    cfg.ButtonBMask,
		irq:        make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	port.setNotify(b.request)
	b.NVIC.SetAdmitHook(b.raisePending)
	return b, nil
}

// Start runs the interrupt setup and begins delivering interrupts
func (b *Board) Start() error {
	if b.started.Swap(true) {
		return ErrBoardStarted
	}
	if err := core.InitEdgeInterrupts(b.NVIC, b.Port, b.cfg); err != nil {
		return err
	}

	b.wg.Add(1)
	go b.irqLoop()
	return nil
}

// request latches the interrupt line; repeated requests before service merge
func (b *Board) request() {
	select {
	case b.irq <- struct{}{}:
	default:
	}
}

// raisePending re-raises the request line while the port still holds an
// unmasked edge. The port's request is level-held, so an edge refused while
// the line was disabled is delivered once the controller admits it again.
func (b *Board) raisePending() {
	if b.Port.PendingMask() != 0 {
		b.request()
	}
}

func (b *Board) irqLoop() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return
		case <-b.irq:
			if !b.NVIC.Admits(b.cfg.Line) {
				b.dropped.Add(1)
				continue
			}
			b.Dispatcher.Dispatch()
			b.delivered.Add(1)
		}
	}
}

// PressA presses button A
func (b *Board) PressA() {
	b.Port.Press(b.buttonA)
}

// PressB presses button B
func (b *Board) PressB() {
	b.Port.Press(b.buttonB)
}

// PressBoth presses both buttons at the same instant
func (b *Board) PressBoth() {
	b.Port.Press(b.buttonA | b.buttonB)
}

// Delivered returns how many interrupts ran the dispatcher
func (b *Board) Delivered() uint32 {
	return b.delivered.Load()
}

// Dropped returns how many requests arrived while the line was not admitted.
// Their edges stay latched and are delivered after the line is enabled again.
func (b *Board) Dropped() uint32 {
	return b.dropped.Load()
}

// Close stops interrupt delivery
func (b *Board) Close() {
	b.once.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}
