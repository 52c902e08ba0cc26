package sprite

import (
	"image"
	"sync"

	"github.com/bodgit/packmaker/tint"
	"github.com/google/uuid"
)

// Layer is a single tintable tile reference
type Layer struct {
	id        uuid.UUID
	index     int
	removable bool
	sheet     *Sheet

	// Shared with the owning Stack, if any
	mu     *sync.RWMutex
	tint   tint.Color
	notify func(*Layer)
}

// NewLayer returns a free-standing layer, useful for previewing a single
// tile outside of a Stack
func NewLayer(sheet *Sheet, index int) *Layer {
	return &Layer{
		id:    uuid.New(),
		index: index,
		sheet: sheet,
		mu:    new(sync.RWMutex),
		tint:  tint.White,
	}
}

// ID returns the identity token of the layer
func (l *Layer) ID() uuid.UUID {
	return l.id
}

// Index returns the tile index the layer draws
func (l *Layer) Index() int {
	return l.index
}

// Removable reports whether the layer is an overlay rather than a base layer
func (l *Layer) Removable() bool {
	return l.removable
}

// Tint returns the current tint
func (l *Layer) Tint() tint.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tint
}

// SetTint changes the tint and notifies the owning stack's subscribers
func (l *Layer) SetTint(c tint.Color) {
	l.mu.Lock()
	l.tint = c.Clamped()
	notify := l.notify
	l.mu.Unlock()

	if notify != nil {
		notify(l)
	}
}

// Render draws the layer onto s, scaled to size and positioned at
// (offset, offset)
func (l *Layer) Render(s Surface, size, offset int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.render(s, size, offset)
}

// Caller must hold l.mu
func (l *Layer) render(s Surface, size, offset int) {
	s.Draw(tint.MatrixOf(l.tint), l.sheet.Image(), l.sheet.Rect(l.index), image.Rect(offset, offset, offset+size, offset+size))
}
