package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"saba/display"
	"saba/ui"
	"saba/window"
)

// step is one scripted input.
type step struct {
	keys  string
	mouse *ui.MouseEvent
}

// parseScript reads one command per line:
//
//	click X Y     left press at a window-relative pixel
//	move X Y      pointer motion without buttons
//	type TEXT     keystrokes (the rest of the line, verbatim)
//	key CODE      a single key by code, e.g. 0x7f
//	enter         commit the address bar
//
// Blank lines and lines starting with # are skipped.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "click", "move":
			var x, y int
			if _, err := fmt.Sscanf(rest, "%d %d", &x, &y); err != nil {
				return nil, fmt.Errorf("line %d: %s needs X Y: %w", lineNo, cmd, err)
			}
			ev := ui.MouseEvent{Position: display.Point{X: x, Y: y}}
			if cmd == "click" {
				ev.Buttons = ui.ButtonLeft
			}
			steps = append(steps, step{mouse: &ev})
		case "type":
			steps = append(steps, step{keys: rest})
		case "key":
			code, err := strconv.ParseInt(strings.TrimSpace(rest), 0, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad key code %q", lineNo, rest)
			}
			steps = append(steps, step{keys: string(rune(code))})
		case "enter":
			steps = append(steps, step{keys: "\n"})
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", lineNo, cmd)
		}
	}
	return steps, sc.Err()
}

// queue loads the steps into the recorder, shifting pointer positions by
// the window origin.
func queue(rec *window.Recorder, steps []step, origin display.Point) {
	for _, s := range steps {
		if s.mouse != nil {
			ev := *s.mouse
			ev.Position = ev.Position.Add(origin)
			rec.QueueMouse(ev)
			continue
		}
		rec.QueueKeys(s.keys)
	}
}
