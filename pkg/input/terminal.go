package input

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Bindings maps movement keys to ultraviolet key strings, as accepted by
// uv.Key.MatchString.
type Bindings map[Key][]string

// DefaultBindings is WASD plus E/Q for vertical movement, with the arrow keys
// as alternatives for the horizontal ones.
func DefaultBindings() Bindings {
	return Bindings{
		KeyForward: {"w", "up"},
		KeyBack:    {"s", "down"},
		KeyLeft:    {"a", "left"},
		KeyRight:   {"d", "right"},
		KeyUp:      {"e", "pgup"},
		KeyDown:    {"q", "pgdown"},
	}
}

// Translator turns terminal events into neutral events. It tracks whether
// the left button is held so that motion is reported as a drag only while
// dragging.
type Translator struct {
	Bindings Bindings

	dragging bool
}

// NewTranslator creates a translator with DefaultBindings.
func NewTranslator() *Translator {
	return &Translator{Bindings: DefaultBindings()}
}

// Dragging reports whether the left button is currently held.
func (t *Translator) Dragging() bool {
	return t.dragging
}

// Translate converts ev. ok is false for events with no neutral equivalent.
func (t *Translator) Translate(ev uv.Event) (out Event, ok bool) {
	switch ev := ev.(type) {
	case uv.MouseClickEvent:
		if ev.Button != uv.MouseLeft {
			return nil, false
		}
		t.dragging = true
		return PressEvent{X: ev.X, Y: ev.Y}, true

	case uv.MouseMotionEvent:
		if !t.dragging {
			return nil, false
		}
		return DragEvent{X: ev.X, Y: ev.Y}, true

	case uv.MouseReleaseEvent:
		if !t.dragging {
			return nil, false
		}
		t.dragging = false
		return ReleaseEvent{X: ev.X, Y: ev.Y}, true

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			return ScrollEvent{Delta: -1}, true
		case uv.MouseWheelDown:
			return ScrollEvent{Delta: 1}, true
		}

	case uv.KeyPressEvent:
		for key, names := range t.Bindings {
			if ev.MatchString(names...) {
				return KeyEvent{Key: key}, true
			}
		}
	}
	return nil, false
}
