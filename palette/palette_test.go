package palette

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/bodgit/packmaker/tint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func halves() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(img, image.Rect(0, 0, 32, 16), image.NewUniform(color.NRGBA{255, 0, 0, 255}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 16, 32, 32), image.NewUniform(color.NRGBA{0, 0, 255, 255}), image.Point{}, draw.Src)
	return img
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodDominant, MethodKMeans} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMethod("octree")
	assert.ErrorIs(t, err, errUnknownMethod)
}

func TestSuggestKMeans(t *testing.T) {
	colors, err := Suggest(halves(), 2, MethodKMeans)
	require.NoError(t, err)
	require.Len(t, colors, 2)

	var red, blue bool
	for _, c := range colors {
		switch tint.ToHex(c) {
		case "#ff0000":
			red = true
		case "#0000ff":
			blue = true
		}
	}
	assert.True(t, red, "red suggested")
	assert.True(t, blue, "blue suggested")
}

func TestSuggestDominant(t *testing.T) {
	colors, err := Suggest(halves(), 2, MethodDominant)
	require.NoError(t, err)
	require.NotEmpty(t, colors)
	assert.LessOrEqual(t, len(colors), 2)

	for _, c := range colors {
		assert.True(t, c.IsValid(), tint.ToHex(c))
	}
}

func TestSuggestEmpty(t *testing.T) {
	colors, err := Suggest(halves(), 0, MethodKMeans)
	assert.NoError(t, err)
	assert.Nil(t, colors)

	_, err = Suggest(image.NewNRGBA(image.Rect(0, 0, 4, 4)), 2, MethodKMeans)
	assert.ErrorIs(t, err, errNoColors)

	_, err = Suggest(halves(), 2, Method(9))
	assert.ErrorIs(t, err, errUnknownMethod)
}

func TestDiverse(t *testing.T) {
	cands := []candidate{
		{tint.RGB(1, 0, 0), 10},
		{tint.RGB(0.98, 0, 0), 9},
		{tint.RGB(0, 0, 1), 1},
	}

	got := diverse(cands, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "#ff0000", tint.ToHex(got[0]))
	assert.Equal(t, "#0000ff", tint.ToHex(got[1]))

	assert.Len(t, diverse(cands, 5), 3)
}
