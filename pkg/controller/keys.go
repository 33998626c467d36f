package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// runeBase lifts rune keys above tcell's named keys so both fit in one event map.
const runeBase tcell.Key = 1024

// Rune keys used as shortcuts while a list has focus.
const (
	KeyA = runeBase + 'a'
	KeyJ = runeBase + 'j'
	KeyK = runeBase + 'k'
	KeyQ = runeBase + 'q'
	KeyT = runeBase + 't'
	KeyX = runeBase + 'x'
)

// AsKey maps a key event to the key used in event maps.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() == tcell.KeyRune {
		return runeBase + tcell.Key(evt.Rune())
	}

	return evt.Key()
}

func isRuneKey(key tcell.Key) bool {
	return key >= runeBase
}

func keyName(key tcell.Key) string {
	if isRuneKey(key) {
		return string(rune(key - runeBase))
	}

	if name, ok := tcell.KeyNames[key]; ok {
		return name
	}

	return fmt.Sprintf("key(%d)", int(key))
}
