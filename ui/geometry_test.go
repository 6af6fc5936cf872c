package ui

import (
	"testing"

	"saba/display"
)

func TestHitTest(t *testing.T) {
	win := display.Point{X: 100, Y: 50}

	tests := []struct {
		name   string
		ptr    display.Point
		region Region
		local  display.Point
	}{
		{"left of window", display.Point{X: 99, Y: 60}, OutsideWindow, display.Point{}},
		{"above window", display.Point{X: 150, Y: 49}, OutsideWindow, display.Point{}},
		{"right edge", display.Point{X: 100 + WindowWidth, Y: 60}, OutsideWindow, display.Point{}},
		{"bottom edge", display.Point{X: 150, Y: 50 + WindowHeight}, OutsideWindow, display.Point{}},
		{"toolbar top", display.Point{X: 110, Y: 50 + TitleBarHeight}, Toolbar, display.Point{}},
		{"toolbar bottom", display.Point{X: 110, Y: 50 + TitleBarHeight + ToolbarHeight - 1}, Toolbar, display.Point{}},
		{"content origin", display.Point{X: 100, Y: 50 + TitleBarHeight + ToolbarHeight}, ContentArea, display.Point{X: 0, Y: 0}},
		{"content", display.Point{X: 130, Y: 150}, ContentArea, display.Point{X: 30, Y: 50}},
		{"last pixel", display.Point{X: 699, Y: 449}, ContentArea, display.Point{X: 599, Y: 349}},
		{"title bar", display.Point{X: 110, Y: 55}, ContentArea, display.Point{X: 10, Y: 5 - TitleBarHeight - ToolbarHeight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, local := HitTest(tt.ptr, win)
			if region != tt.region {
				t.Errorf("region = %v, expected %v", region, tt.region)
			}
			if local != tt.local {
				t.Errorf("local = %+v, expected %+v", local, tt.local)
			}
		})
	}
}

func TestFontSizeToStringSize(t *testing.T) {
	tests := []struct {
		in   display.FontSize
		want StringSize
	}{
		{display.Medium, SizeMedium},
		{display.XLarge, SizeLarge},
		{display.XXLarge, SizeXLarge},
	}
	for _, tt := range tests {
		for i := 0; i < 3; i++ {
			if got := FontSizeToStringSize(tt.in); got != tt.want {
				t.Errorf("FontSizeToStringSize(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestButtonsPressed(t *testing.T) {
	if Buttons(0).Pressed() {
		t.Error("no buttons should not be pressed")
	}
	for _, b := range []Buttons{ButtonLeft, ButtonMiddle, ButtonRight, ButtonLeft | ButtonRight} {
		if !b.Pressed() {
			t.Errorf("%b should be pressed", b)
		}
	}
}

func TestCursorRect(t *testing.T) {
	var c Cursor
	c.SetPosition(display.Point{X: 3, Y: 4})
	want := Rect{X: 3, Y: 4, Width: CursorWidth, Height: CursorHeight}
	if c.Rect() != want {
		t.Errorf("Rect() = %+v", c.Rect())
	}
}

func TestContentAreaHeight(t *testing.T) {
	if ContentAreaHeight != 350 {
		t.Errorf("ContentAreaHeight = %d", ContentAreaHeight)
	}
}
