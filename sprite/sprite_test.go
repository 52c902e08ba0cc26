package sprite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
	"testing"

	"github.com/bodgit/packmaker/tint"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	solid = color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// testSheet returns a three tile sheet: tile 0 is solid, tile 1 is only
// opaque in its bottom right quarter and tile 2 is fully transparent
func testSheet(t *testing.T) *Sheet {
	m := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize*3))
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			m.SetNRGBA(x, y, solid)
			if x >= TileSize/2 && y >= TileSize/2 {
				m.SetNRGBA(x, TileSize+y, white)
			}
		}
	}
	s, err := NewSheet(m)
	require.Nil(t, err)
	return s
}

func scaled(c uint8, f float64) uint8 {
	return uint8(math.Round(float64(c) * f))
}

func TestSheet(t *testing.T) {
	s := testSheet(t)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, image.Rect(0, 32, 16, 48), s.Rect(2))

	_, err := NewSheet(image.NewNRGBA(image.Rect(0, 0, 8, 64)))
	assert.Equal(t, errNarrowSheet, err)

	b := new(bytes.Buffer)
	require.Nil(t, png.Encode(b, s.Image()))
	d, err := DecodeSheet(b)
	require.Nil(t, err)
	assert.Equal(t, 3, d.Len())

	_, err = DecodeSheet(bytes.NewReader([]byte("not an image")))
	assert.NotNil(t, err)
}

func TestStackRender(t *testing.T) {
	s := NewStack(testSheet(t))
	bg := s.AddBase(0)
	bg.SetTint(tint.RGB(0.318, 0.318, 0.318))
	s.AddBase(1)

	c := NewCanvas(TextureSize, TextureSize)
	s.Render(c, TextureSize, 0)

	want := color.NRGBA{
		R: scaled(solid.R, 0.318),
		G: scaled(solid.G, 0.318),
		B: scaled(solid.B, 0.318),
		A: 255,
	}
	assert.Equal(t, want, c.At(0, 0))
	assert.Equal(t, white, c.At(15, 15))
	assert.Equal(t, want, c.At(7, 15))

	// A tinted overlay draws over everything beneath it
	o := s.Add(1)
	o.SetTint(tint.RGB(1, 0, 0))
	s.Render(c, TextureSize, 0)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c.At(15, 15))
	assert.Equal(t, want, c.At(0, 0))
}

func TestStackRenderScaledOffset(t *testing.T) {
	s := NewStack(testSheet(t))
	s.AddBase(0)
	s.AddBase(1)

	c := NewCanvas(IconSize, IconSize)
	c.Fill(color.Black)
	s.Render(c, IconArtSize, 8)

	assert.Equal(t, color.NRGBA{A: 255}, c.At(0, 0))
	assert.Equal(t, color.NRGBA{A: 255}, c.At(7, 7))
	assert.Equal(t, solid, c.At(8, 8))
	assert.Equal(t, solid, c.At(8+IconArtSize/2-1, 8+IconArtSize/2-1))
	assert.Equal(t, white, c.At(8+IconArtSize/2, 8+IconArtSize/2))
	assert.Equal(t, white, c.At(8+IconArtSize-1, 8+IconArtSize-1))
	assert.Equal(t, color.NRGBA{A: 255}, c.At(8+IconArtSize, 8+IconArtSize))
}

func TestRenderTransparent(t *testing.T) {
	s := NewStack(testSheet(t))
	s.AddBase(2)
	s.Add(99)

	c := NewCanvas(TextureSize, TextureSize)
	s.Render(c, TextureSize, 0)
	for _, p := range []image.Point{{0, 0}, {8, 8}, {15, 15}} {
		assert.Equal(t, color.NRGBA{}, c.At(p.X, p.Y))
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := NewStack(testSheet(t))
	s.AddBase(0).SetTint(tint.RGB(0.2, 0.4, 0.6))
	s.Add(1).SetTint(tint.RGB(0.9, 0.1, 0.5))

	var wg sync.WaitGroup
	canvases := make([]*Canvas, 8)
	for i := range canvases {
		canvases[i] = NewCanvas(32, 32)
		wg.Add(1)
		go func(c *Canvas) {
			defer wg.Done()
			s.Render(c, 32, 0)
		}(canvases[i])
	}
	wg.Wait()

	for _, c := range canvases[1:] {
		assert.Equal(t, canvases[0].Image().Pix, c.Image().Pix)
	}
}

func TestStackRemove(t *testing.T) {
	s := NewStack(testSheet(t))
	base := s.AddBase(0)
	a := s.Add(1)
	b := s.Add(2)
	c := s.Add(1)

	var notified []*Layer
	s.Subscribe(func(l *Layer) {
		notified = append(notified, l)
	})

	assert.False(t, s.Remove(uuid.New()))
	assert.Equal(t, []*Layer{base, a, b, c}, s.Layers())

	assert.False(t, s.Remove(base.ID()))
	assert.Equal(t, 4, s.Len())

	assert.True(t, s.Remove(b.ID()))
	assert.Equal(t, []*Layer{base, a, c}, s.Layers())
	assert.Equal(t, []*Layer{b}, notified)
	assert.Nil(t, s.Layer(b.ID()))
	assert.Equal(t, c, s.Layer(c.ID()))

	assert.False(t, s.Remove(b.ID()))
	assert.Equal(t, 3, s.Len())

	b.SetTint(tint.RGB(1, 0, 0))
	assert.Equal(t, []*Layer{b}, notified)
	assert.Equal(t, "#ff0000", tint.ToHex(b.Tint()))
}

func TestStackIdentities(t *testing.T) {
	s1 := NewStack(testSheet(t))
	s2 := NewStack(testSheet(t))

	seen := make(map[uuid.UUID]struct{})
	for i := 0; i < 10; i++ {
		for _, l := range []*Layer{s1.Add(i), s2.Add(i)} {
			_, ok := seen[l.ID()]
			assert.False(t, ok)
			seen[l.ID()] = struct{}{}
		}
	}
}

func TestStackNotifications(t *testing.T) {
	s := NewStack(testSheet(t))

	var first, second, slot int
	cancel := s.Subscribe(func(*Layer) { first++ })
	s.Subscribe(func(*Layer) { second++ })

	l := s.Add(0)
	assert.Equal(t, 0, first)
	assert.Equal(t, tint.White, l.Tint())

	l.SetTint(tint.RGB(0.5, 0.5, 0.5))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	cancel()
	l.SetTint(tint.RGB(2, -1, 0.5))
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, tint.RGB(1, 0, 0.5), l.Tint())

	var replaced int
	s.SetUpdateCallback(func() { replaced++ })
	s.SetUpdateCallback(func() { slot++ })
	l.SetTint(tint.White)
	assert.Equal(t, 0, replaced)
	assert.Equal(t, 1, slot)
	assert.Equal(t, 3, second)

	s.SetUpdateCallback(nil)
	l.SetTint(tint.White)
	assert.Equal(t, 1, slot)
}

func TestSubscriberCanRender(t *testing.T) {
	s := NewStack(testSheet(t))
	l := s.AddBase(0)

	c := NewCanvas(TextureSize, TextureSize)
	s.SetUpdateCallback(func() {
		s.Render(c, TextureSize, 0)
	})
	l.SetTint(tint.RGB(0, 1, 0))

	assert.Equal(t, color.NRGBA{G: solid.G, A: 255}, c.At(3, 3))
}

func TestFreeLayer(t *testing.T) {
	l := NewLayer(testSheet(t), 0)
	l.SetTint(tint.RGB(0.5, 1, 1))

	c := NewCanvas(48, 48)
	l.Render(c, 48, 0)
	assert.Equal(t, color.NRGBA{R: 100, G: 100, B: 50, A: 255}, c.At(47, 47))
	assert.True(t, l.Removable() == false)

	snap := c.Snapshot()
	c.Clear()
	assert.Equal(t, color.NRGBA{}, c.At(47, 47))
	assert.Equal(t, color.NRGBA{R: 100, G: 100, B: 50, A: 255}, snap.NRGBAAt(47, 47))
}
