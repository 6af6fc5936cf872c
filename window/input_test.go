package window

import (
	"testing"

	"saba/ui"
)

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		keys    string
		mice    int
		buttons ui.Buttons
		rest    string
	}{
		{name: "plain keys", in: "ab\n", keys: "ab\n"},
		{name: "delete", in: "\x7f", keys: "\x7f"},
		{name: "press", in: "\x1b[<0;10;5M", mice: 1, buttons: ui.ButtonLeft},
		{name: "right press", in: "\x1b[<2;10;5M", mice: 1, buttons: ui.ButtonRight},
		{name: "release", in: "\x1b[<0;10;5m", mice: 1},
		{name: "motion", in: "\x1b[<35;3;3M", mice: 1},
		{name: "drag", in: "\x1b[<32;3;3M", mice: 1},
		{name: "wheel", in: "\x1b[<64;3;3M", mice: 1},
		{name: "arrow dropped", in: "\x1b[Ax", keys: "x"},
		{name: "alt key", in: "\x1bx", keys: "x"},
		{name: "partial mouse", in: "a\x1b[<0;1", keys: "a", rest: "\x1b[<0;1"},
		{name: "partial utf8", in: "\xe3\x81", rest: "\xe3\x81"},
		{name: "lone escape", in: "\x1b", rest: "\x1b"},
		{name: "bad mouse", in: "\x1b[<x;1;1Mz", keys: "z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, rest := decodeInput([]byte(tt.in))
			var keys []rune
			mice := 0
			var buttons ui.Buttons
			for _, ev := range events {
				switch {
				case ev.mouse != nil:
					mice++
					buttons = ev.mouse.Buttons
				case !ev.interrupt:
					keys = append(keys, ev.key)
				}
			}
			if string(keys) != tt.keys {
				t.Errorf("keys = %q, expected %q", string(keys), tt.keys)
			}
			if mice != tt.mice || buttons != tt.buttons {
				t.Errorf("mice = %d buttons %v, expected %d %v", mice, buttons, tt.mice, tt.buttons)
			}
			if string(rest) != tt.rest {
				t.Errorf("rest = %q, expected %q", rest, tt.rest)
			}
		})
	}
}

func TestDecodeInterrupt(t *testing.T) {
	events, _ := decodeInput([]byte{keyInterrupt})
	if len(events) != 1 || !events[0].interrupt {
		t.Errorf("events = %+v", events)
	}
}

func TestMousePositionIsCellCenter(t *testing.T) {
	events, _ := decodeInput([]byte("\x1b[<0;1;1M"))
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	p := events[0].mouse.Position
	if p.X != CellWidth/2 || p.Y != CellHeight/2 {
		t.Errorf("position = %+v", p)
	}
}
