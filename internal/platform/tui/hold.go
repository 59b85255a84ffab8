package tui

import (
	"time"

	"github.com/vovakirdan/tilejump/internal/core"
)

// DefaultHoldWindow is how long an action stays held after its last key
// event. It must exceed the terminal's key auto-repeat interval.
const DefaultHoldWindow = 150 * time.Millisecond

// HoldTracker turns the key-press stream of a terminal into held actions.
// Terminals send no key-up events; a key counts as held until no repeat
// has arrived for the hold window.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window selects DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Window returns the hold window.
func (h *HoldTracker) Window() time.Duration {
	return h.window
}

// Press records a key event for the action. Pressing one direction
// releases the opposite one immediately.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	h.last[a] = now
	switch a {
	case core.ActionLeft:
		delete(h.last, core.ActionRight)
	case core.ActionRight:
		delete(h.last, core.ActionLeft)
	}
}

// Release drops an action immediately.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.last, a)
}

// Held reports whether the action is held at the given time.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) <= h.window
}

// Apply sets every held action on the frame and forgets expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.last {
		if now.Sub(t) > h.window {
			delete(h.last, a)
			continue
		}
		frame.Set(a)
	}
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	clear(h.last)
}
