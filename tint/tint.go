/*
Package tint implements the colours used to recolour sprite layers.

A Color is three floating point channels in the range [0, 1]. Colours are
exchanged with users as "#rrggbb" strings and applied to pixels as a diagonal
4x4 colour matrix which multiplies the red, green and blue channels and leaves
alpha untouched.
*/
package tint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with each channel in the range [0, 1]
type Color = colorful.Color

var (
	// White is the default tint and leaves a sprite unchanged
	White = Color{R: 1, G: 1, B: 1}
	// Black is returned for any colour string that can't be parsed
	Black = Color{}
)

// RGB is a convenience constructor for a Color
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

func hexChannel(c float64) string {
	v := math.Floor(math.Min(c*255, 255))
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	return fmt.Sprintf("%02x", int(v))
}

// ToHex returns c as a "#rrggbb" string. Each channel is scaled by 255 and
// truncated, values above 1 saturate.
func ToHex(c Color) string {
	return "#" + hexChannel(c.R) + hexChannel(c.G) + hexChannel(c.B)
}

// FromHex parses a "#rrggbb" or "rrggbb" string. Anything else, including
// the short "#rgb" form, returns Black rather than an error.
func FromHex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Black
	}
	v, err := strconv.ParseUint(s, 16, 24)
	if err != nil {
		return Black
	}
	return Color{
		R: float64(v>>16&0xff) / 255.0,
		G: float64(v>>8&0xff) / 255.0,
		B: float64(v&0xff) / 255.0,
	}
}
