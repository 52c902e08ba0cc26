package pack

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/bodgit/packmaker/naming"
	"github.com/ericpauley/go-quantize/quantize"
)

const maxIconColors = 256

var errNoImage = errors.New("pack: missing image")

func encodePNG(m image.Image) ([]byte, error) {
	if m == nil {
		return nil, errNoImage
	}
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// reduceIcon quantizes m to a palette of at most n colors
func reduceIcon(m image.Image, n int) image.Image {
	if n <= 0 || m == nil {
		return m
	}
	if n > maxIconColors {
		n = maxIconColors
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

func soundDefinitions(b *Bundle, n naming.Names) (map[string]soundDefinition, error) {
	var def soundDefinition
	switch b.domain.Registry {
	case naming.Disc.Registry:
		// Records are streamed rather than loaded up front
		def.Sounds = []sound{{Name: n.SoundID, Stream: true}}
	case naming.Horn.Registry:
		def.Subtitle = "subtitles.item.goat_horn.play"
		def.Sounds = []sound{{Name: n.SoundID}}
	default:
		return nil, errUnknownDomain
	}
	return map[string]soundDefinition{n.SoundEventKey: def}, nil
}

func models(b *Bundle, n naming.Names) (map[string]model, error) {
	tex := textures{Layer0: n.TextureID}
	switch b.domain.Registry {
	case naming.Disc.Registry:
		return map[string]model{
			n.ModelPath: {
				Parent:   "minecraft:item/template_music_disc",
				Textures: tex,
			},
		}, nil
	case naming.Horn.Registry:
		return map[string]model{
			n.ModelPath: {
				Parent:   "minecraft:item/goat_horn",
				Textures: tex,
				Overrides: []override{
					{
						Predicate: map[string]int{b.domain.Alternate: 1},
						Model:     n.AlternateID,
					},
				},
			},
			n.AlternatePath: {
				Parent:   "minecraft:item/tooting_goat_horn",
				Textures: tex,
			},
		}, nil
	default:
		return nil, errUnknownDomain
	}
}

// BuildResources returns the resource pack for b. audio is the transcoded
// Ogg Vorbis sound which is stored unchanged.
func BuildResources(b *Bundle, audio []byte) (*Tree, error) {
	n, err := b.Names()
	if err != nil {
		return nil, err
	}

	sounds, err := soundDefinitions(b, n)
	if err != nil {
		return nil, err
	}

	m, err := models(b, n)
	if err != nil {
		return nil, err
	}

	texture, err := encodePNG(b.Texture)
	if err != nil {
		return nil, fmt.Errorf("encoding texture: %w", err)
	}

	icon, err := encodePNG(reduceIcon(b.Icon, b.IconColors))
	if err != nil {
		return nil, fmt.Errorf("encoding icon: %w", err)
	}

	assets := "assets/" + b.domain.Prefix + "/"

	t := NewTree()

	if err := setJSON(t, manifestName, newManifest(b.ResourceFormat, fmt.Sprintf("%s Resources: %s", b.domain.Product, b.name))); err != nil {
		return nil, err
	}
	if err := t.Set(iconName, icon); err != nil {
		return nil, err
	}
	if err := setJSON(t, assets+"lang/"+langName, map[string]string{n.TranslationKey: b.name}); err != nil {
		return nil, err
	}
	if err := t.Set(n.SoundPath, audio); err != nil {
		return nil, err
	}
	if err := t.Set(n.TexturePath, texture); err != nil {
		return nil, err
	}
	if err := setJSON(t, assets+soundsName, sounds); err != nil {
		return nil, err
	}
	for name, v := range m {
		if err := setJSON(t, name, v); err != nil {
			return nil, err
		}
	}

	return t, nil
}
