package input

import (
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// Handler drains the keyboard event channel without blocking and maps
// runes to lane indices via the configured keybind string.
type Handler struct {
	events <-chan keyboard.KeyEvent
	binds  []rune
}

func Open(binds string) (*Handler, error) {
	events, err := keyboard.GetKeys(128)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	return &Handler{events: events, binds: []rune(binds)}, nil
}

func (h *Handler) Close() error {
	return keyboard.Close()
}

// Poll returns the next buffered key event if one exists. No input
// available is the common case, not an error.
func (h *Handler) Poll() (keyboard.KeyEvent, bool) {
	select {
	case ev := <-h.events:
		return ev, true
	default:
		return keyboard.KeyEvent{}, false
	}
}

// Lane returns the lane bound to the rune, or -1.
func (h *Handler) Lane(r rune) int {
	for i, b := range h.binds {
		if r == b {
			return i
		}
	}
	return -1
}
