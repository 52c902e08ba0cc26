/*
Package sprite implements the layer compositing engine used to build item
textures.

A Sheet is a vertical strip of 16 by 16 tiles. A Layer selects one tile by
index and recolours it with a tint; a Stack draws its layers in insertion
order onto a Surface so later layers cover earlier ones wherever their tile is
opaque. Canvas is the software Surface used for previews, textures and pack
icons.
*/
package sprite

const (
	// TileSize is the width and height of every tile in a sheet
	TileSize = 16

	// TextureSize is the size of the item texture shipped in a resource pack
	TextureSize = TileSize

	// IconSize is the size of the pack icon canvas
	IconSize = 128
	// IconArtSize is the size the layers are drawn at within the pack icon
	IconArtSize = 112
)
