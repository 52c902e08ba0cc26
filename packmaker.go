/*
Package packmaker builds Minecraft data packs and resource packs that add a
custom music disc or goat horn, using a sprite sheet for the item artwork and
an audio codec for the sound.
*/
package packmaker

import (
	"errors"
	"sync/atomic"

	"github.com/bodgit/packmaker/audio"
	"github.com/bodgit/packmaker/sprite"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoName is returned when an export is requested without a title
	ErrNoName = errors.New("packmaker: track name must be set")
	// ErrBusy is returned when a resource pack is already being built
	ErrBusy = errors.New("packmaker: already building a resource pack")
	// ErrNoSheet is returned when no sprite sheet is available for a kind
	ErrNoSheet = errors.New("packmaker: no sprite sheet")
)

// PackMaker ties together the sprite sheet library, the audio codec and the
// pack builders
type PackMaker struct {
	db       *SheetDB
	codec    audio.Codec
	logger   logrus.FieldLogger
	building atomic.Bool
}

// New returns a PackMaker. db may be nil if sheets are always loaded from
// files.
func New(db *SheetDB, codec audio.Codec, logger logrus.FieldLogger) *PackMaker {
	return &PackMaker{
		db:     db,
		codec:  codec,
		logger: logger,
	}
}

// Sheet returns the sprite sheet for k, decoded from file if it's set or
// otherwise looked up in the library
func (m *PackMaker) Sheet(k Kind, file string) (*sprite.Sheet, error) {
	if file != "" {
		return decodeSheetFile(file)
	}

	if m.db == nil {
		return nil, ErrNoSheet
	}

	sheet, err := m.db.FindSheet(k)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, ErrNoSheet
	}

	return sheet, nil
}
