package main

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"mitosis-arcade/game"
)

// mapKey translates a terminal key: arrows or WASD move, space places an
// obstacle, E destroys the last one.
func mapKey(ev *tcell.EventKey) (game.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRight:
		return game.KeyRight, true
	case tcell.KeyLeft:
		return game.KeyLeft, true
	case tcell.KeyUp:
		return game.KeyUp, true
	case tcell.KeyDown:
		return game.KeyDown, true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'd':
			return game.KeyRight, true
		case 'a':
			return game.KeyLeft, true
		case 'w':
			return game.KeyUp, true
		case 's':
			return game.KeyDown, true
		case ' ':
			return game.KeyPlace, true
		case 'e':
			return game.KeyDestroy, true
		}
	}
	return game.KeyNone, false
}

func isMovement(k game.Key) bool {
	switch k {
	case game.KeyRight, game.KeyLeft, game.KeyUp, game.KeyDown:
		return true
	}
	return false
}

func opposite(k game.Key) game.Key {
	switch k {
	case game.KeyRight:
		return game.KeyLeft
	case game.KeyLeft:
		return game.KeyRight
	case game.KeyUp:
		return game.KeyDown
	case game.KeyDown:
		return game.KeyUp
	}
	return game.KeyNone
}
