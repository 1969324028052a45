package term

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muurk/tapestry/internal/event"
)

// Input decoding: bytes from the terminal are translated into events one
// sequence at a time. decode returns the decoded event (nil when the
// sequence is recognised but produces nothing) and the number of bytes
// consumed; n == 0 means the buffer holds an incomplete sequence and more
// bytes are needed.

const (
	esc = 0x1b
	del = 0x7f
)

var pasteEnd = []byte("\x1b[201~")

func decode(p []byte) (ev event.Event, n int) {
	if len(p) == 0 {
		return nil, 0
	}
	if p[0] == esc {
		return decodeEscape(p)
	}
	return decodeByte(p)
}

// decodeByte handles everything that does not start with ESC: control
// characters and UTF-8 runes.
func decodeByte(p []byte) (event.Event, int) {
	switch b := p[0]; {
	case b == '\r' || b == '\n':
		return event.Key{Code: event.CodeEnter}, 1
	case b == '\t':
		return event.Key{Code: event.CodeTab}, 1
	case b == del || b == 0x08:
		return event.Key{Code: event.CodeBackspace}, 1
	case b == ' ':
		return event.Key{Code: event.CodeSpace}, 1
	case b == 0x00:
		return event.Key{Code: event.CodeSpace, Mod: event.ModCtrl}, 1
	case b < 0x20:
		// Ctrl+letter chords arrive as 0x01..0x1a.
		return event.Ctrl(rune('a' + b - 1)), 1
	default:
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(p) {
				return nil, 0
			}
			return nil, 1
		}
		return event.RuneKey(r), size
	}
}

func decodeEscape(p []byte) (event.Event, int) {
	if len(p) == 1 {
		return nil, 0
	}
	switch p[1] {
	case '[':
		return decodeCSI(p)
	case 'O':
		return decodeSS3(p)
	default:
		// ESC-prefixed ordinary key: Alt chord.
		ev, n := decodeByte(p[1:])
		if n == 0 {
			return nil, 0
		}
		if key, ok := ev.(event.Key); ok {
			key.Mod |= event.ModAlt
			return key, n + 1
		}
		return ev, n + 1
	}
}

// decodeSS3 handles ESC O sequences (F1-F4 and application-mode arrows).
func decodeSS3(p []byte) (event.Event, int) {
	if len(p) < 3 {
		return nil, 0
	}
	codes := map[byte]event.Code{
		'P': event.CodeF1, 'Q': event.CodeF2, 'R': event.CodeF3, 'S': event.CodeF4,
		'A': event.CodeUp, 'B': event.CodeDown, 'C': event.CodeRight, 'D': event.CodeLeft,
		'H': event.CodeHome, 'F': event.CodeEnd,
	}
	if code, ok := codes[p[2]]; ok {
		return event.Key{Code: code}, 3
	}
	return nil, 3
}

// decodeCSI handles ESC [ sequences: arrows, navigation and function keys,
// SGR mouse reports, focus reports and bracketed paste.
func decodeCSI(p []byte) (event.Event, int) {
	// Find the final byte (0x40-0x7e).
	end := -1
	for i := 2; i < len(p); i++ {
		if p[i] >= 0x40 && p[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, 0
	}
	params := string(p[2:end])
	final := p[end]
	n := end + 1

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F':
		arrows := map[byte]event.Code{
			'A': event.CodeUp, 'B': event.CodeDown,
			'C': event.CodeRight, 'D': event.CodeLeft,
			'H': event.CodeHome, 'F': event.CodeEnd,
		}
		return event.Key{Code: arrows[final], Mod: csiMod(params)}, n
	case 'Z':
		return event.Key{Code: event.CodeTab, Mod: event.ModShift}, n
	case 'I':
		return event.FocusGained{}, n
	case 'O':
		return event.FocusLost{}, n
	case 'M', 'm':
		if strings.HasPrefix(params, "<") {
			return decodeSGRMouse(params[1:], final), n
		}
		return nil, n
	case '~':
		return decodeTilde(p, params, n)
	default:
		// Recognised shape, unknown meaning: consume silently.
		return nil, n
	}
}

// csiMod extracts the xterm modifier parameter ("1;5" in ESC[1;5A).
func csiMod(params string) event.Mod {
	parts := strings.Split(params, ";")
	if len(parts) < 2 {
		return 0
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil || v < 2 {
		return 0
	}
	bits := v - 1
	var mod event.Mod
	if bits&1 != 0 {
		mod |= event.ModShift
	}
	if bits&2 != 0 {
		mod |= event.ModAlt
	}
	if bits&4 != 0 {
		mod |= event.ModCtrl
	}
	return mod
}

var tildeCodes = map[int]event.Code{
	1: event.CodeHome, 2: event.CodeInsert, 3: event.CodeDelete,
	4: event.CodeEnd, 5: event.CodePageUp, 6: event.CodePageDown,
	11: event.CodeF1, 12: event.CodeF2, 13: event.CodeF3, 14: event.CodeF4,
	15: event.CodeF5, 17: event.CodeF6, 18: event.CodeF7, 19: event.CodeF8,
	20: event.CodeF9, 21: event.CodeF10, 23: event.CodeF11, 24: event.CodeF12,
}

func decodeTilde(p []byte, params string, n int) (event.Event, int) {
	first := params
	if i := strings.IndexByte(params, ';'); i >= 0 {
		first = params[:i]
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return nil, n
	}
	if num == 200 {
		// Bracketed paste: everything until ESC[201~ is literal text.
		rest := p[n:]
		end := bytes.Index(rest, pasteEnd)
		if end < 0 {
			return nil, 0
		}
		return event.Paste{Text: string(rest[:end])}, n + end + len(pasteEnd)
	}
	if code, ok := tildeCodes[num]; ok {
		return event.Key{Code: code, Mod: csiMod(params)}, n
	}
	return nil, n
}

// decodeSGRMouse parses the "b;x;y" payload of an SGR mouse report.
func decodeSGRMouse(params string, final byte) event.Event {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return nil
	}
	b, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}

	m := event.Mouse{X: x - 1, Y: y - 1}
	if b&4 != 0 {
		m.Mod |= event.ModShift
	}
	if b&8 != 0 {
		m.Mod |= event.ModAlt
	}
	if b&16 != 0 {
		m.Mod |= event.ModCtrl
	}

	switch {
	case b&64 != 0:
		if b&1 != 0 {
			m.Kind = event.MouseWheelDown
		} else {
			m.Kind = event.MouseWheelUp
		}
	case b&32 != 0:
		m.Kind = event.MouseMotion
	case final == 'm':
		m.Kind = event.MouseRelease
		m.Button = mouseButton(b)
	default:
		m.Kind = event.MousePress
		m.Button = mouseButton(b)
	}
	return m
}

func mouseButton(b int) event.MouseButton {
	switch b & 3 {
	case 0:
		return event.MouseButtonLeft
	case 1:
		return event.MouseButtonMiddle
	case 2:
		return event.MouseButtonRight
	}
	return event.MouseButtonNone
}
