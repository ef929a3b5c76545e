package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/spaceshooter/game"
)

type action uint8

const (
	actionNone action = iota
	actionLeft
	actionRight
	actionUp
	actionDown
	actionShoot
	actionConfirm
)

// Terminals report key presses and auto-repeats but never releases, so a key counts as
// held until window passes without another event for it.
type heldKeys struct {
	window time.Duration
	last   map[action]time.Time

	pointer game.Pointer
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{window: window, last: map[action]time.Time{}}
}

func actionFor(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyEnter:
		return actionConfirm
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return actionShoot
		case 'a', 'h':
			return actionLeft
		case 'd', 'l':
			return actionRight
		case 'w', 'k':
			return actionUp
		case 's', 'j':
			return actionDown
		}
	}
	return actionNone
}

func (h *heldKeys) press(a action, now time.Time) {
	if a != actionNone {
		h.last[a] = now
	}
}

func (h *heldKeys) held(a action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) <= h.window
}

// mouse records a pointer event in terminal cells, converted to UI pixels at the
// centre of the cell.
func (h *heldKeys) mouse(col, row, cols, rows int, down bool) {
	if cols <= 0 || rows <= 0 {
		return
	}
	h.pointer = game.Pointer{
		X:    (float64(col) + 0.5) * game.ScreenWidth / float64(cols),
		Y:    (float64(row) + 0.5) * game.ScreenHeight / float64(rows),
		Down: down,
	}
}

func (h *heldKeys) input(now time.Time) game.Input {
	return game.Input{
		Left:    h.held(actionLeft, now),
		Right:   h.held(actionRight, now),
		Up:      h.held(actionUp, now),
		Down:    h.held(actionDown, now),
		Shoot:   h.held(actionShoot, now),
		Confirm: h.held(actionConfirm, now),
		Pointer: h.pointer,
	}
}
