// Package input defines the toolkit-neutral input events consumed by camera
// controllers, plus a translator from terminal events.
package input

import "fmt"

// Event is one of PressEvent, DragEvent, ReleaseEvent, ScrollEvent or KeyEvent.
type Event interface {
	isEvent()
}

// PressEvent is a pointer button going down at (X, Y).
type PressEvent struct {
	X, Y int
}

// DragEvent is the pointer moving to (X, Y) while a button is held.
type DragEvent struct {
	X, Y int
}

// ReleaseEvent is the pointer button going up at (X, Y).
type ReleaseEvent struct {
	X, Y int
}

// ScrollEvent is a wheel movement. Positive Delta scrolls away from the user
// (zoom out), negative toward the user (zoom in).
type ScrollEvent struct {
	Delta int
}

// KeyEvent is a movement key going down.
type KeyEvent struct {
	Key Key
}

func (PressEvent) isEvent()   {}
func (DragEvent) isEvent()    {}
func (ReleaseEvent) isEvent() {}
func (ScrollEvent) isEvent()  {}
func (KeyEvent) isEvent()     {}

// Key is one of the fixed set of movement keys.
type Key int

const (
	KeyForward Key = iota + 1
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

var keyNames = map[Key]string{
	KeyForward: "forward",
	KeyBack:    "back",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Key(%d)", int(k))
}
