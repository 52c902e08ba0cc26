package sprite

import (
	"errors"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
)

var errNarrowSheet = errors.New("sprite: sheet is narrower than a tile")

// Sheet is a shared tile atlas. Tile i occupies the square starting
// TileSize*i pixels from the top.
type Sheet struct {
	img image.Image
}

// NewSheet wraps an already decoded image
func NewSheet(img image.Image) (*Sheet, error) {
	b := img.Bounds()
	if b.Dx() < TileSize || b.Dy() < TileSize {
		return nil, errNarrowSheet
	}
	return &Sheet{img: img}, nil
}

// DecodeSheet reads a sheet image in any registered format, normally PNG
func DecodeSheet(r io.Reader) (*Sheet, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewSheet(m)
}

// Image returns the underlying atlas image
func (s *Sheet) Image() image.Image {
	return s.img
}

// Len returns the number of complete tiles in the sheet
func (s *Sheet) Len() int {
	return s.img.Bounds().Dy() / TileSize
}

// Rect returns the source rectangle of tile index. Indices past the end of
// the sheet are not an error; they select a region outside the image which
// draws as transparent.
func (s *Sheet) Rect(index int) image.Rectangle {
	p := s.img.Bounds().Min.Add(image.Pt(0, index*TileSize))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(TileSize, TileSize))}
}
