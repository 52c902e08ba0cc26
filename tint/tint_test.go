package tint

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHex(t *testing.T) {
	tables := []struct {
		name  string
		color Color
		hex   string
	}{
		{"white", White, "#ffffff"},
		{"black", Black, "#000000"},
		{"disc background", RGB(0.318, 0.318, 0.318), "#515151"},
		{"horn base", RGB(0.722, 0.663, 0.6), "#b8a999"},
		{"saturates", RGB(1.5, 2, 100), "#ffffff"},
		{"negative", RGB(-0.5, 0, 0.5), "#00007f"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.hex, ToHex(table.color))
		})
	}
}

func TestFromHex(t *testing.T) {
	tables := []struct {
		name string
		hex  string
		want Color
	}{
		{"with hash", "#ff0000", RGB(1, 0, 0)},
		{"without hash", "00ff00", RGB(0, 1, 0)},
		{"upper case", "#0000FF", RGB(0, 0, 1)},
		{"short form", "#fff", Black},
		{"too long", "#ff00000", Black},
		{"not hex", "#gg0000", Black},
		{"signed", "+fffff", Black},
		{"empty", "", Black},
		{"double hash", "##ff000", Black},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, FromHex(table.hex))
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, v := range []int{0x000000, 0x515151, 0xb8a999, 0x123456, 0xfedcba, 0xffffff} {
		s := fmt.Sprintf("#%06x", v)
		assert.Equal(t, s, ToHex(FromHex(s)))
	}

	for _, c := range []Color{RGB(0.318, 0.318, 0.318), RGB(0.722, 0.663, 0.6), RGB(0.1, 0.2, 0.3)} {
		got := FromHex(ToHex(c))
		assert.InDelta(t, c.R, got.R, 1.0/255)
		assert.InDelta(t, c.G, got.G, 1.0/255)
		assert.InDelta(t, c.B, got.B, 1.0/255)
	}
}

func TestMatrix(t *testing.T) {
	var zero Matrix
	r, g, b, a := zero.Diagonal()
	assert.Equal(t, [4]float64{1, 1, 1, 1}, [4]float64{r, g, b, a})

	m := MatrixOf(RGB(0.5, 2, -1))
	r, g, b, a = m.Diagonal()
	assert.Equal(t, [4]float64{0.5, 1, 0, 1}, [4]float64{r, g, b, a})
	assert.Equal(t, "0.5 0 0 0 0 1 0 0 0 0 0 0 0 0 0 0 0 0 1 0", m.String())

	assert.Equal(t, color.NRGBA{R: 100, G: 50, B: 0, A: 7}, m.Apply(color.NRGBA{R: 200, G: 50, B: 255, A: 7}))
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, Identity().Apply(color.NRGBA{R: 1, G: 2, B: 3, A: 4}))
	assert.Equal(t, color.NRGBA{R: 9, G: 8, B: 7, A: 6}, zero.Apply(color.NRGBA{R: 9, G: 8, B: 7, A: 6}))

	// Each channel is rounded, alpha passes through
	grey := MatrixOf(RGB(0.318, 0.318, 0.318))
	assert.Equal(t, color.NRGBA{R: 64, G: 32, B: 81, A: 255}, grey.Apply(color.NRGBA{R: 200, G: 100, B: 255, A: 255}))
}
