package render

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Canvas is a drawable buffer that can be rendered to the terminal.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Rune: ' '}
		}
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// TerminalSize returns the current terminal dimensions.
func TerminalSize() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Set places a rune at the given position with the given style.
func (c *Canvas) Set(x, y int, r rune, style Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at the given position.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// Fill sets every cell of the rectangle to r in the given style.
func (c *Canvas) Fill(x, y, width, height int, r rune, style Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.Set(col, row, r, style)
		}
	}
}

// WriteString writes a string starting at the given position.
// Returns the number of terminal cells used (not runes).
func (c *Canvas) WriteString(x, y int, s string, style Style) int {
	pos := 0
	for _, r := range s {
		w := UnicodeWidth(r)
		if w == 0 {
			continue
		}
		if x+pos+w > c.width {
			break
		}
		c.Set(x+pos, y, r, style)
		if w == 2 {
			// the trailing half of a wide rune is blank
			c.Set(x+pos+1, y, ' ', style)
		}
		pos += w
	}
	return pos
}

// RenderRows outputs rows [y0, y1) with absolute cursor positioning, so a
// partial repaint leaves other rows untouched.
func (c *Canvas) RenderRows(y0, y1 int) string {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > c.height {
		y1 = c.height
	}

	var sb strings.Builder
	var currentStyle Style

	for y := y0; y < y1; y++ {
		fmt.Fprintf(&sb, "\033[%d;1H", y+1)
		sb.WriteString(styleSequence(currentStyle))
		for x := 0; x < c.width; x++ {
			cell := c.cells[y][x]

			if cell.Style != currentStyle {
				sb.WriteString(styleSequence(cell.Style))
				currentStyle = cell.Style
			}

			sb.WriteRune(cell.Rune)
		}
	}

	sb.WriteString("\033[0m")
	return sb.String()
}

func styleSequence(s Style) string {
	codes := []string{"0"}
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.Reverse {
		codes = append(codes, "7")
	}
	if s.HasFg {
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", s.Fg[0], s.Fg[1], s.Fg[2]))
	}
	if s.HasBg {
		codes = append(codes, fmt.Sprintf("48;2;%d;%d;%d", s.Bg[0], s.Bg[1], s.Bg[2]))
	}
	return fmt.Sprintf("\033[%sm", strings.Join(codes, ";"))
}

// PlainText returns the canvas content as plain text without ANSI codes.
func (c *Canvas) PlainText() string {
	var cleaned []string
	for y := 0; y < c.height; y++ {
		var sb strings.Builder
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
		cleaned = append(cleaned, strings.TrimRight(sb.String(), " \t"))
	}
	// Remove trailing empty lines
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n") + "\n"
}
