package window

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"saba/display"
	"saba/ui"
)

const keyInterrupt = 0x03

// inputEvent is one decoded unit of terminal input.
type inputEvent struct {
	key       rune
	mouse     *ui.MouseEvent
	interrupt bool
}

// decodeInput splits raw terminal bytes into keys and SGR mouse reports.
// An incomplete trailing sequence is returned as rest for the next read.
// Escape sequences other than mouse reports are dropped.
func decodeInput(buf []byte) (events []inputEvent, rest []byte) {
	for len(buf) > 0 {
		b := buf[0]

		if b == 0x1b {
			n, ev, complete := decodeEscape(buf)
			if !complete {
				return events, buf
			}
			if ev != nil {
				events = append(events, *ev)
			}
			buf = buf[n:]
			continue
		}

		if b == keyInterrupt {
			events = append(events, inputEvent{interrupt: true})
			buf = buf[1:]
			continue
		}

		if !utf8.FullRune(buf) {
			return events, buf
		}
		r, size := utf8.DecodeRune(buf)
		buf = buf[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		events = append(events, inputEvent{key: r})
	}
	return events, nil
}

// decodeEscape handles a sequence starting with ESC. It returns the bytes
// consumed, the event (nil when the sequence is ignored) and whether the
// sequence was complete.
func decodeEscape(buf []byte) (int, *inputEvent, bool) {
	if len(buf) < 2 {
		return 0, nil, false
	}
	if buf[1] != '[' {
		// alt-modified key: drop the ESC, keep the key
		return 1, nil, true
	}
	if len(buf) >= 3 && buf[2] == '<' {
		for i := 3; i < len(buf); i++ {
			if buf[i] == 'M' || buf[i] == 'm' {
				ev, ok := parseSGRMouse(string(buf[3:i]), buf[i] == 'M')
				if !ok {
					return i + 1, nil, true
				}
				return i + 1, &inputEvent{mouse: &ev}, true
			}
		}
		return 0, nil, false
	}
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			return i + 1, nil, true
		}
	}
	return 0, nil, false
}

// parseSGRMouse reads "b;col;row". Only a fresh press reports buttons;
// motion, release and wheel events only move the pointer.
func parseSGRMouse(params string, press bool) (ui.MouseEvent, bool) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return ui.MouseEvent{}, false
	}
	code, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	row, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return ui.MouseEvent{}, false
	}

	ev := ui.MouseEvent{Position: cellCenter(col-1, row-1)}
	if press && code&(32|64) == 0 {
		switch code & 3 {
		case 0:
			ev.Buttons = ui.ButtonLeft
		case 1:
			ev.Buttons = ui.ButtonMiddle
		case 2:
			ev.Buttons = ui.ButtonRight
		}
	}
	return ev, true
}

// cellCenter returns the screen pixel at the middle of a cell.
func cellCenter(col, row int) display.Point {
	return display.Point{X: col*CellWidth + CellWidth/2, Y: row*CellHeight + CellHeight/2}
}
