package tui

import (
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

// Terminals report key presses and auto-repeats but never releases, so a
// held key is modelled as a press that expires unless repeated.
const (
	firstHold  = 550 * time.Millisecond // Covers the typical auto-repeat delay
	repeatHold = 120 * time.Millisecond
)

// holdTracker turns press and repeat events into held/released edges.
type holdTracker struct {
	move    [4]time.Duration
	trigger time.Duration
}

func opposite(d core.MoveDir) core.MoveDir {
	switch d {
	case core.MoveUp:
		return core.MoveDown
	case core.MoveDown:
		return core.MoveUp
	case core.MoveLeft:
		return core.MoveRight
	default:
		return core.MoveLeft
	}
}

// press records a key event for d and returns the directions to release.
// Pressing the opposite direction releases the current one at once.
func (h *holdTracker) press(d core.MoveDir) (released []core.MoveDir) {
	if h.move[d] > 0 {
		h.move[d] = max(h.move[d], repeatHold)
	} else {
		h.move[d] = firstHold
	}
	if o := opposite(d); h.move[o] > 0 {
		h.move[o] = 0
		released = append(released, o)
	}
	return released
}

// pressTrigger records a fire-key event.
func (h *holdTracker) pressTrigger() {
	if h.trigger > 0 {
		h.trigger = max(h.trigger, repeatHold)
	} else {
		h.trigger = firstHold
	}
}

// advance ages every hold by dt and reports the ones that just expired.
func (h *holdTracker) advance(dt time.Duration) (expired []core.MoveDir, triggerExpired bool) {
	for i := range h.move {
		if h.move[i] <= 0 {
			continue
		}
		h.move[i] -= dt
		if h.move[i] <= 0 {
			h.move[i] = 0
			expired = append(expired, core.MoveDir(i))
		}
	}
	if h.trigger > 0 {
		h.trigger -= dt
		if h.trigger <= 0 {
			h.trigger = 0
			triggerExpired = true
		}
	}
	return expired, triggerExpired
}

// reset forgets every hold.
func (h *holdTracker) reset() {
	*h = holdTracker{}
}
