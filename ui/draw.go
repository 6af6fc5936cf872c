package ui

import (
	"saba/display"
	"saba/fault"
)

// setupToolbar paints the toolbar background, the "Address:" label and the
// address-bar frame.
func (s *Session) setupToolbar() error {
	steps := []func() error{
		func() error {
			return s.surface.FillRect(display.LightGray, 0, 0, WindowWidth, ToolbarHeight)
		},
		func() error {
			return s.surface.DrawLine(display.Gray, 0, ToolbarHeight, WindowWidth-1, ToolbarHeight)
		},
		func() error {
			return s.surface.DrawLine(display.DarkGray, 0, TitleBarHeight+1, WindowWidth-1, TitleBarHeight+1)
		},
		func() error {
			return s.surface.DrawString(display.Black, 5, 5, "Address:", SizeMedium, false)
		},
		func() error {
			return s.surface.FillRect(display.White, 70, 2, WindowWidth-74, 2+AddressBarHeight)
		},
		func() error {
			return s.surface.DrawLine(display.Gray, 70, 2, WindowWidth-4, 2)
		},
		func() error {
			return s.surface.DrawLine(display.Black, 71, 3, WindowWidth-5, 3)
		},
		func() error {
			return s.surface.DrawLine(display.Gray, 71, 3, 71, 1+AddressBarHeight)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fault.InvalidUI("failed to initialize a toolbar", err)
		}
	}
	s.surface.Flush()
	return nil
}

func (s *Session) toolbarArea() Rect {
	return Rect{
		X:      s.windowPos.X,
		Y:      s.windowPos.Y + TitleBarHeight,
		Width:  WindowWidth,
		Height: ToolbarHeight,
	}
}

func (s *Session) fillAddressBar() error {
	if err := s.surface.FillRect(display.White, 72, 4, WindowWidth-76, AddressBarHeight-2); err != nil {
		return fault.InvalidUI("failed to clear an address bar", err)
	}
	return nil
}

// updateAddressBar repaints the address bar with the buffer contents.
func (s *Session) updateAddressBar() error {
	if err := s.fillAddressBar(); err != nil {
		return err
	}
	if err := s.surface.DrawString(display.Black, 74, 6, s.address.Text(), SizeMedium, false); err != nil {
		return fault.InvalidUI("failed to update an address bar", err)
	}
	s.surface.FlushArea(s.toolbarArea())
	return nil
}

// clearAddressBar blanks the address bar without touching the buffer.
func (s *Session) clearAddressBar() error {
	if err := s.fillAddressBar(); err != nil {
		return err
	}
	s.surface.FlushArea(s.toolbarArea())
	return nil
}

func (s *Session) clearContentArea() error {
	err := s.surface.FillRect(display.White, 0, ToolbarHeight+2, ContentAreaWidth, ContentAreaHeight-2)
	if err != nil {
		return fault.InvalidUI("failed to clear a content area", err)
	}
	s.surface.Flush()
	return nil
}

// Redraw paints the current page's display items in order and flushes once.
// The first failing item aborts the pass.
func (s *Session) Redraw() error {
	for _, item := range s.browser.CurrentPage().DisplayItems() {
		switch it := item.(type) {
		case display.Text:
			err := s.surface.DrawString(
				it.Style.Color,
				it.Point.X+WindowPadding,
				it.Point.Y+WindowPadding+ToolbarHeight,
				it.Text,
				FontSizeToStringSize(it.Style.FontSize),
				it.Style.Decoration == display.Underline,
			)
			if err != nil {
				return fault.InvalidUI("failed to draw a string", err)
			}
		case display.Rect:
			err := s.surface.FillRect(
				it.Style.BackgroundColor,
				it.Point.X+WindowPadding,
				it.Point.Y+WindowPadding+ToolbarHeight,
				it.Size.Width,
				it.Size.Height,
			)
			if err != nil {
				return fault.InvalidUI("failed to draw a rectangle", err)
			}
		}
	}
	s.surface.Flush()
	return nil
}

func (s *Session) moveCursor(p display.Point) {
	s.surface.FlushArea(s.cursor.Rect())
	s.cursor.SetPosition(p)
	s.surface.FlushArea(s.cursor.Rect())
	if pd, ok := s.surface.(PointerDrawer); ok {
		pd.DrawPointer(s.cursor.Rect())
	}
}
