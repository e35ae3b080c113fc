// Package keys turns keystrokes on a raw terminal into button presses
package keys

// Action is what a keystroke does to the board
type Action uint8

const (
	ActionNone Action = iota
	ActionPressA
	ActionPressB
	ActionPressBoth
	ActionQuit
)

// Buttons is the board side of the keyboard; sim.Board implements it
type Buttons interface {
	PressA()
	PressB()
	PressBoth()
}

// Decode maps one input byte to an action.
// a and b press one button, space or x presses both, q or Ctrl-C quits.
func Decode(b byte) Action {
	switch b {
	case 'a', 'A':
		return ActionPressA
	case 'b', 'B':
		return ActionPressB
	case ' ', 'x', 'X':
		return ActionPressBoth
	case 'q', 'Q', 0x03:
		return ActionQuit
	}
	return ActionNone
}

// Apply performs action on buttons and reports whether it asks to quit
func Apply(action Action, buttons Buttons) (quit bool) {
	switch action {
	case ActionPressA:
		buttons.PressA()
	case ActionPressB:
		buttons.PressB()
	case ActionPressBoth:
		buttons.PressBoth()
	case ActionQuit:
		return true
	}
	return false
}
