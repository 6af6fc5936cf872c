package display

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB value laid out as 0xRRGGBB.
type Color uint32

const (
	Black     Color = 0x000000
	White     Color = 0xffffff
	LightGray Color = 0xd3d3d3
	Gray      Color = 0x808080
	DarkGray  Color = 0x5a5a5a
	Red       Color = 0xff0000
	Green     Color = 0x008000
	Blue      Color = 0x0000ff
	Navy      Color = 0x000080
	Orange    Color = 0xffa500
	Yellow    Color = 0xffff00
	Purple    Color = 0x800080
)

var named = map[string]Color{
	"black":     Black,
	"white":     White,
	"lightgray": LightGray,
	"lightgrey": LightGray,
	"gray":      Gray,
	"grey":      Gray,
	"darkgray":  DarkGray,
	"darkgrey":  DarkGray,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"navy":      Navy,
	"orange":    Orange,
	"yellow":    Yellow,
	"purple":    Purple,
}

// RGB returns the channel values.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// ParseColor accepts a CSS color name, #rgb or #rrggbb.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("unsupported color %q", s)
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}
