package event

import (
	"fmt"
	"strings"
)

// Mod is a bitset of key modifiers.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether every modifier in m is set.
func (m Mod) Has(mod Mod) bool { return m&mod == mod }

func (m Mod) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Code identifies a non-printing key. Printing keys use CodeRune and carry
// the character in Key.Rune.
type Code int

const (
	CodeRune Code = iota
	CodeEnter
	CodeTab
	CodeBackspace
	CodeEsc
	CodeSpace
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeInsert
	CodeDelete
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

var codeNames = map[Code]string{
	CodeEnter:     "enter",
	CodeTab:       "tab",
	CodeBackspace: "backspace",
	CodeEsc:       "esc",
	CodeSpace:     "space",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePageUp:    "pgup",
	CodePageDown:  "pgdown",
	CodeInsert:    "insert",
	CodeDelete:    "delete",
	CodeF1:        "f1",
	CodeF2:        "f2",
	CodeF3:        "f3",
	CodeF4:        "f4",
	CodeF5:        "f5",
	CodeF6:        "f6",
	CodeF7:        "f7",
	CodeF8:        "f8",
	CodeF9:        "f9",
	CodeF10:       "f10",
	CodeF11:       "f11",
	CodeF12:       "f12",
}

// Key is a single keyboard event. For printing keys Code is CodeRune and
// Rune holds the character; for special keys Code identifies the key and
// Rune is zero.
type Key struct {
	Code Code
	Rune rune
	Mod  Mod
}

func (Key) isEvent() {}

// String renders the key in a human-readable form such as "ctrl+q" or "up".
// It is used for logging and for keybinding labels.
func (k Key) String() string {
	var name string
	if k.Code == CodeRune {
		name = string(k.Rune)
	} else {
		name = codeNames[k.Code]
		if name == "" {
			name = fmt.Sprintf("key(%d)", int(k.Code))
		}
	}
	if mods := k.Mod.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// RuneKey returns a Key for a plain printing character.
func RuneKey(r rune) Key { return Key{Code: CodeRune, Rune: r} }

// Ctrl returns a Key for a control chord on a printing character.
func Ctrl(r rune) Key { return Key{Code: CodeRune, Rune: r, Mod: ModCtrl} }

// MouseKind distinguishes press, release, motion and wheel events.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMotion
	MouseWheelUp
	MouseWheelDown
)

// MouseButton identifies which button a mouse event refers to. Wheel and
// motion events use MouseButtonNone.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// Mouse is a single mouse event with zero-based cell coordinates.
type Mouse struct {
	Kind   MouseKind
	Button MouseButton
	X, Y   int
	Mod    Mod
}

func (Mouse) isEvent() {}
