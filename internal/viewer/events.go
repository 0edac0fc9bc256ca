package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cassini/internal/engine/camera"
	"github.com/Faultbox/cassini/internal/engine/input"
)

// action is what the event loop must do after one event.
type action struct {
	redraw bool
	resize bool
	quit   bool
}

// handleEvent feeds e to the trackball and reports the resulting work.
// Only the left button rotates.
func handleEvent(tb *camera.Trackball, e input.Event) action {
	switch e.Type {
	case input.EventQuit:
		return action{quit: true}

	case input.EventKeyDown:
		switch e.Key {
		case sdl.SCANCODE_ESCAPE:
			return action{quit: true}
		case sdl.SCANCODE_R:
			tb.Reset()
			return action{redraw: true}
		}

	case input.EventWindowResize:
		tb.Resize(e.Width, e.Height)
		return action{resize: true, redraw: true}

	case input.EventExpose:
		return action{redraw: true}

	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			tb.Begin(e.MouseX, e.MouseY)
		}

	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			tb.End()
		}

	case input.EventMouseMove:
		return action{redraw: tb.Drag(e.MouseX, e.MouseY)}
	}
	return action{}
}
