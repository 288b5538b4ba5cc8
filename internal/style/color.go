package style

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Color is 0x00RRGGBB. A high byte of 0xFF means the color is not set and
// the style inherits it.
type Color uint32

// ColorUnset is the canonical unset value.
const ColorUnset Color = 0xFFFFFFFF

// RGB packs the three channels into a set color.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// ParseHexColor decodes a hex attribute such as "1E90FF". A value that does
// not parse yields ColorUnset.
func ParseHexColor(s string) Color {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorUnset
	}
	return Color(v)
}

// IsSet reports whether the color was given, i.e. the high byte is not 0xFF.
func (c Color) IsSet() bool {
	return c>>24 != 0xFF
}

// R, G and B return the channels.
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Hex renders the six-digit uppercase attribute form.
func (c Color) Hex() string {
	return fmt.Sprintf("%06X", uint32(c)&0xFFFFFF)
}

// Tcell converts to a terminal color. Unset maps to the terminal default.
func (c Color) Tcell() tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}
