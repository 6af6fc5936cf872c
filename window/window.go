// Package window hosts the browser UI in a terminal. The window is painted
// onto a character grid where one cell stands for CellWidth×CellHeight
// pixels; keyboard and xterm mouse input are read in raw mode.
package window

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sys/unix"

	"saba/display"
	"saba/fault"
	"saba/render"
	"saba/ui"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

var errClosed = errors.New("window is closed")

var titleBarColor = display.Color(0x2f3b52)

// Options configures a terminal window.
type Options struct {
	Position    display.Point // top-left corner in screen pixels
	Title       string
	PollTimeout time.Duration // how long PollKey waits for input
	Interrupt   func()        // called on Ctrl-C
}

// Window is a ui.Surface backed by a terminal.
type Window struct {
	out    io.Writer
	fd     int
	term   *render.Terminal
	canvas *render.Canvas
	opts   Options
	closed bool

	pending []byte
	keys    []rune
	mouse   []ui.MouseEvent
}

// Open takes over the terminal: raw mode, alternate screen and mouse
// reporting. Close restores it.
func Open(in, out *os.File, opts Options) (*Window, error) {
	term, err := render.NewTerminal(in)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	cols, rows, err := render.TerminalSize()
	if err != nil {
		return nil, err
	}
	if cols <= 0 || rows <= 0 {
		return nil, fault.Other("terminal reports no size")
	}
	if err := term.EnterRawMode(); err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}

	w := newWindow(out, cols, rows, opts)
	w.fd = term.Fd()
	w.term = term

	render.EnterAltScreen(out)
	io.WriteString(out, render.MouseTrackingOn)
	w.Flush()
	return w, nil
}

func newWindow(out io.Writer, cols, rows int, opts Options) *Window {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 10 * time.Millisecond
	}
	w := &Window{
		out:    out,
		fd:     -1,
		canvas: render.NewCanvas(cols, rows),
		opts:   opts,
	}
	w.paintTitleBar()
	return w
}

// Close hands the terminal back.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	io.WriteString(w.out, render.MouseTrackingOff)
	render.ExitAltScreen(w.out)
	if w.term != nil {
		return w.term.RestoreMode()
	}
	return nil
}

// Canvas exposes the screen grid.
func (w *Window) Canvas() *render.Canvas { return w.canvas }

// bounds returns the window's cells as [col0, col1) × [row0, row1).
func (w *Window) bounds() (col0, row0, col1, row1 int) {
	p := w.opts.Position
	return p.X / CellWidth, p.Y / CellHeight,
		(p.X + ui.WindowWidth) / CellWidth, (p.Y + ui.WindowHeight) / CellHeight
}

// cell maps a content-area pixel to a screen cell.
func (w *Window) cell(x, y int) (col, row int) {
	p := w.opts.Position
	return floorDiv(p.X+x, CellWidth), floorDiv(p.Y+ui.TitleBarHeight+y, CellHeight)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// inside reports whether a cell belongs to the window body, below the title row.
func (w *Window) inside(col, row int) bool {
	col0, row0, col1, row1 := w.bounds()
	return col >= col0 && col < col1 && row > row0 && row < row1
}

func (w *Window) paintTitleBar() {
	col0, row0, col1, _ := w.bounds()
	r, g, b := titleBarColor.RGB()
	st := render.Style{Bold: true}.WithFg(255, 255, 255).WithBg(r, g, b)
	w.canvas.Fill(col0, row0, col1-col0, 1, ' ', st)
	w.canvas.WriteString(col0+1, row0, render.Truncate(w.opts.Title, col1-col0-4), st)
	w.canvas.Set(col1-2, row0, 'x', st)
}

func bgStyle(c display.Color) render.Style {
	r, g, b := c.RGB()
	return render.Style{}.WithBg(r, g, b)
}

// FillRect paints a rectangle given in content-area pixels. Parts outside
// the window are clipped.
func (w *Window) FillRect(color display.Color, x, y, width, height int) error {
	if w.closed {
		return errClosed
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid rect size %dx%d", width, height)
	}
	if width == 0 || height == 0 {
		return nil
	}
	c0, r0 := w.cell(x, y)
	c1, r1 := w.cell(x+width-1, y+height-1)
	st := bgStyle(color)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if w.inside(col, row) {
				w.canvas.Set(col, row, ' ', st)
			}
		}
	}
	return nil
}

// DrawLine draws a line between two content-area pixels with box glyphs.
func (w *Window) DrawLine(color display.Color, x0, y0, x1, y1 int) error {
	if w.closed {
		return errClosed
	}
	c0, r0 := w.cell(x0, y0)
	c1, r1 := w.cell(x1, y1)
	dc, dr := c1-c0, r1-r0

	glyph := '·'
	switch {
	case dr == 0:
		glyph = '─'
	case dc == 0:
		glyph = '│'
	}

	steps := max(abs(dc), abs(dr))
	red, green, blue := color.RGB()
	for i := 0; i <= steps; i++ {
		col, row := c0, r0
		if steps > 0 {
			col = c0 + dc*i/steps
			row = r0 + dr*i/steps
		}
		if !w.inside(col, row) {
			continue
		}
		st := w.canvas.Get(col, row).Style.WithFg(red, green, blue)
		w.canvas.Set(col, row, glyph, st)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DrawString writes text whose top-left corner is at a content-area pixel.
// Terminals have one glyph size, so the larger sizes are drawn bold.
func (w *Window) DrawString(color display.Color, x, y int, text string, size ui.StringSize, underline bool) error {
	if w.closed {
		return errClosed
	}
	col, row := w.cell(x, y)
	red, green, blue := color.RGB()
	for _, r := range text {
		rw := render.UnicodeWidth(r)
		if rw == 0 {
			continue
		}
		if !w.inside(col, row) || !w.inside(col+rw-1, row) {
			break
		}
		st := w.canvas.Get(col, row).Style.WithFg(red, green, blue)
		st.Underline = underline
		st.Bold = size != ui.SizeMedium
		st.Reverse = false
		w.canvas.Set(col, row, r, st)
		if rw == 2 {
			w.canvas.Set(col+1, row, ' ', st)
		}
		col += rw
	}
	return nil
}

// Flush repaints the whole window.
func (w *Window) Flush() {
	if w.closed {
		return
	}
	_, row0, _, row1 := w.bounds()
	w.paintTitleBar()
	io.WriteString(w.out, w.canvas.RenderRows(row0, row1))
}

// FlushArea repaints the rows that intersect an absolute pixel rectangle.
func (w *Window) FlushArea(r ui.Rect) {
	if w.closed || r.Width <= 0 || r.Height <= 0 {
		return
	}
	_, wr0, _, wr1 := w.bounds()
	row0 := max(floorDiv(r.Y, CellHeight), wr0)
	row1 := min(floorDiv(r.Y+r.Height-1, CellHeight)+1, wr1)
	if row0 >= row1 {
		return
	}
	io.WriteString(w.out, w.canvas.RenderRows(row0, row1))
}

// DrawPointer shades the cell under the pointer without touching the grid,
// so the next flush of that row erases it.
func (w *Window) DrawPointer(r ui.Rect) {
	if w.closed {
		return
	}
	col, row := floorDiv(r.X, CellWidth), floorDiv(r.Y, CellHeight)
	if col < 0 || row < 0 || col >= w.canvas.Width() || row >= w.canvas.Height() {
		return
	}
	cell := w.canvas.Get(col, row)
	st := cell.Style
	base := colorful.Color{R: 0, G: 0, B: 0}
	if st.HasBg {
		base = colorful.Color{R: float64(st.Bg[0]) / 255, G: float64(st.Bg[1]) / 255, B: float64(st.Bg[2]) / 255}
	}
	shade := base.BlendRgb(colorful.Color{R: 0.5, G: 0.5, B: 0.5}, 0.6)
	st = st.WithBg(shade.RGB255())

	one := render.NewCanvas(1, 1)
	one.Set(0, 0, cell.Rune, st)
	seq := one.RenderRows(0, 1)
	// RenderRows homes to column 1; move to the pointer cell instead
	fmt.Fprintf(w.out, "\033[%d;%dH%s", row+1, col+1, seq[len("\033[1;1H"):])
}

// PollKey returns the next keystroke, waiting up to the poll timeout.
func (w *Window) PollKey() (rune, bool) {
	if len(w.keys) == 0 {
		w.fill(w.opts.PollTimeout)
	}
	if len(w.keys) == 0 {
		return 0, false
	}
	k := w.keys[0]
	w.keys = w.keys[1:]
	return k, true
}

// PollMouse returns the next pointer event without waiting.
func (w *Window) PollMouse() (ui.MouseEvent, bool) {
	if len(w.mouse) == 0 {
		w.fill(0)
	}
	if len(w.mouse) == 0 {
		return ui.MouseEvent{}, false
	}
	ev := w.mouse[0]
	w.mouse = w.mouse[1:]
	return ev, true
}

// fill reads whatever input is available within timeout and decodes it.
func (w *Window) fill(timeout time.Duration) {
	if w.closed || w.fd < 0 {
		return
	}
	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil || n == 0 {
		// a lone ESC with nothing after it is a key of its own
		if len(w.pending) == 1 && w.pending[0] == 0x1b {
			w.pending = nil
			w.keys = append(w.keys, 0x1b)
		}
		return
	}

	buf := make([]byte, 256)
	nr, err := unix.Read(w.fd, buf)
	if err != nil || nr <= 0 {
		return
	}
	w.feed(buf[:nr])
}

// feed decodes raw input into the key and pointer queues.
func (w *Window) feed(data []byte) {
	events, rest := decodeInput(append(w.pending, data...))
	w.pending = append([]byte(nil), rest...)
	for _, ev := range events {
		switch {
		case ev.interrupt:
			if w.opts.Interrupt != nil {
				w.opts.Interrupt()
			}
		case ev.mouse != nil:
			w.mouse = append(w.mouse, *ev.mouse)
		default:
			w.keys = append(w.keys, ev.key)
		}
	}
}

var (
	_ ui.Surface       = (*Window)(nil)
	_ ui.PointerDrawer = (*Window)(nil)
)
