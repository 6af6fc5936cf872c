package window

import (
	"fmt"

	"saba/display"
	"saba/ui"
)

// Recorded operation names.
const (
	OpFillRect    = "FillRect"
	OpDrawLine    = "DrawLine"
	OpDrawString  = "DrawString"
	OpFlush       = "Flush"
	OpFlushArea   = "FlushArea"
	OpDrawPointer = "DrawPointer"
)

// Call is one recorded surface operation. Only the fields relevant to Op
// are set: X, Y, W, H for FillRect; X, Y, X1, Y1 for DrawLine; X, Y, Text,
// Size, Underline for DrawString; Area for FlushArea and DrawPointer.
type Call struct {
	Op        string
	Color     display.Color
	X, Y      int
	W, H      int
	X1, Y1    int
	Text      string
	Size      ui.StringSize
	Underline bool
	Area      ui.Rect
}

func (c Call) String() string {
	switch c.Op {
	case OpFillRect:
		return fmt.Sprintf("%s %s (%d,%d) %dx%d", c.Op, c.Color.Hex(), c.X, c.Y, c.W, c.H)
	case OpDrawLine:
		return fmt.Sprintf("%s %s (%d,%d)-(%d,%d)", c.Op, c.Color.Hex(), c.X, c.Y, c.X1, c.Y1)
	case OpDrawString:
		u := ""
		if c.Underline {
			u = " underline"
		}
		return fmt.Sprintf("%s %s (%d,%d) %s%s %q", c.Op, c.Color.Hex(), c.X, c.Y, c.Size, u, c.Text)
	case OpFlushArea, OpDrawPointer:
		return fmt.Sprintf("%s (%d,%d) %dx%d", c.Op, c.Area.X, c.Area.Y, c.Area.Width, c.Area.Height)
	}
	return c.Op
}

// Recorder is an in-memory ui.Surface. It records every call, replays
// queued input and can be told to fail selected drawing calls.
type Recorder struct {
	Calls []Call

	// FailWhen, if set, is consulted before recording each drawing call;
	// a non-nil result is returned to the caller and the call is not recorded.
	FailWhen func(Call) error

	// OnIdle, if set, is called when a poll finds both input queues empty.
	OnIdle func()

	keys  []rune
	mouse []ui.MouseEvent
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// QueueKeys appends the runes of s to the keyboard queue.
func (r *Recorder) QueueKeys(s string) {
	r.keys = append(r.keys, []rune(s)...)
}

// QueueMouse appends events to the pointer queue.
func (r *Recorder) QueueMouse(events ...ui.MouseEvent) {
	r.mouse = append(r.mouse, events...)
}

// Click queues a left-button press at an absolute position.
func (r *Recorder) Click(x, y int) {
	r.QueueMouse(ui.MouseEvent{Buttons: ui.ButtonLeft, Position: display.Point{X: x, Y: y}})
}

// Pending reports how many queued key and mouse events remain.
func (r *Recorder) Pending() (keys, mouse int) {
	return len(r.keys), len(r.mouse)
}

// Reset forgets recorded calls, keeping queued input.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Ops returns the recorded calls with the given operation name.
func (r *Recorder) Ops(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) record(c Call) error {
	if r.FailWhen != nil {
		if err := r.FailWhen(c); err != nil {
			return err
		}
	}
	r.Calls = append(r.Calls, c)
	return nil
}

func (r *Recorder) FillRect(color display.Color, x, y, width, height int) error {
	return r.record(Call{Op: OpFillRect, Color: color, X: x, Y: y, W: width, H: height})
}

func (r *Recorder) DrawLine(color display.Color, x0, y0, x1, y1 int) error {
	return r.record(Call{Op: OpDrawLine, Color: color, X: x0, Y: y0, X1: x1, Y1: y1})
}

func (r *Recorder) DrawString(color display.Color, x, y int, text string, size ui.StringSize, underline bool) error {
	return r.record(Call{Op: OpDrawString, Color: color, X: x, Y: y, Text: text, Size: size, Underline: underline})
}

func (r *Recorder) Flush() {
	r.Calls = append(r.Calls, Call{Op: OpFlush})
}

func (r *Recorder) FlushArea(area ui.Rect) {
	r.Calls = append(r.Calls, Call{Op: OpFlushArea, Area: area})
}

func (r *Recorder) DrawPointer(area ui.Rect) {
	r.Calls = append(r.Calls, Call{Op: OpDrawPointer, Area: area})
}

func (r *Recorder) PollKey() (rune, bool) {
	if len(r.keys) == 0 {
		r.idle()
		return 0, false
	}
	k := r.keys[0]
	r.keys = r.keys[1:]
	return k, true
}

func (r *Recorder) PollMouse() (ui.MouseEvent, bool) {
	if len(r.mouse) == 0 {
		r.idle()
		return ui.MouseEvent{}, false
	}
	ev := r.mouse[0]
	r.mouse = r.mouse[1:]
	return ev, true
}

func (r *Recorder) idle() {
	if r.OnIdle != nil && len(r.keys) == 0 && len(r.mouse) == 0 {
		r.OnIdle()
	}
}

var (
	_ ui.Surface       = (*Recorder)(nil)
	_ ui.PointerDrawer = (*Recorder)(nil)
)
