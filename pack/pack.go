/*
Package pack assembles the data pack and resource pack for a custom music
disc or goat horn.

A Bundle collects everything an export needs. BuildData and BuildResources
turn a Bundle into a Tree, an in-memory file tree that serializes to a zip
archive ready to drop into a world's datapacks directory or the game's
resourcepacks directory. The builders are pure: the same Bundle always
produces the same Tree.
*/
package pack

import (
	"encoding/base64"
	"image"

	"github.com/bodgit/packmaker/naming"
)

const (
	// DataFormat is the default pack_format of a data pack
	DataFormat = 52
	// ResourceFormat is the default pack_format of a resource pack
	ResourceFormat = 37

	manifestName = "pack.mcmeta"
	iconName     = "pack.png"
	langName     = "en_us.json"
	soundsName   = "sounds.json"
)

// Bundle is the input to both pack builders. The identifier is always
// derived from the display name so the two can't disagree.
type Bundle struct {
	name   string
	id     naming.Identifier
	domain naming.Domain

	// Comparator output level for discs, range for horns
	Parameter int
	// Length of the audio in seconds
	Duration float64

	// Item texture, normally 16x16
	Texture image.Image
	// Pack icon, normally 128x128
	Icon image.Image
	// If non-zero the icon is reduced to a palette of this many colors
	IconColors int

	DataFormat     int
	ResourceFormat int
}

// NewBundle returns a Bundle for the given domain and display name with the
// default pack formats
func NewBundle(domain naming.Domain, name string) *Bundle {
	return &Bundle{
		name:           name,
		id:             naming.Derive(name),
		domain:         domain,
		DataFormat:     DataFormat,
		ResourceFormat: ResourceFormat,
	}
}

// Name returns the display name
func (b *Bundle) Name() string {
	return b.name
}

// ID returns the identifier derived from the display name
func (b *Bundle) ID() naming.Identifier {
	return b.id
}

// Domain returns the naming domain
func (b *Bundle) Domain() naming.Domain {
	return b.domain
}

// Names returns the templated names, or naming.ErrUnset
func (b *Bundle) Names() (naming.Names, error) {
	return b.domain.Names(b.id)
}

// Archive is a serialized pack and the file name it should be saved as
type Archive struct {
	Name string
	Data []byte
}

// Serialize encodes t as a zip archive
func Serialize(name string, t *Tree) (*Archive, error) {
	b, err := t.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &Archive{
		Name: name,
		Data: b,
	}, nil
}

// Base64 returns the archive data in standard base64 encoding
func (a *Archive) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}
