package packmaker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/packmaker/naming"
	"github.com/bodgit/packmaker/sprite"
	"github.com/bodgit/packmaker/tint"
)

// Kind is the type of item being made
type Kind int

const (
	// KindDisc is a music disc
	KindDisc Kind = iota + 1
	// KindHorn is a goat horn
	KindHorn
)

var (
	errUnknownKind = errors.New("packmaker: unknown kind")
	errBadOverlay  = errors.New("packmaker: invalid overlay")
)

// BaseLayer is a layer present on every new stack
type BaseLayer struct {
	Index int
	Tint  tint.Color
}

// Kinds lists every kind in order
func Kinds() []Kind {
	return []Kind{KindDisc, KindHorn}
}

// ParseKind is the inverse of String
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "disc":
		return KindDisc, nil
	case "horn":
		return KindHorn, nil
	}
	return 0, fmt.Errorf("%w: %q", errUnknownKind, s)
}

func (k Kind) valid() bool {
	return k == KindDisc || k == KindHorn
}

func (k Kind) String() string {
	switch k {
	case KindDisc:
		return "disc"
	case KindHorn:
		return "horn"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Domain returns the naming domain for k
func (k Kind) Domain() naming.Domain {
	if k == KindHorn {
		return naming.Horn
	}
	return naming.Disc
}

// BaseLayers returns the layers every new stack starts with, bottom first
func (k Kind) BaseLayers() []BaseLayer {
	switch k {
	case KindHorn:
		return []BaseLayer{
			{0, tint.RGB(0.722, 0.663, 0.6)},
		}
	default:
		return []BaseLayer{
			{0, tint.RGB(0.318, 0.318, 0.318)},
			{1, tint.White},
		}
	}
}

// Overlays returns the inclusive range of sheet indices that can be added as
// overlays
func (k Kind) Overlays() (first, last int) {
	if k == KindHorn {
		return 1, 3
	}
	return 2, 23
}

// IconOffset returns the inset of the artwork on the pack icon
func (k Kind) IconOffset() int {
	if k == KindHorn {
		return 8
	}
	return 12
}

// Channels returns the number of channels to transcode to, discs are
// positional so must be mono
func (k Kind) Channels() int {
	if k == KindDisc {
		return 1
	}
	return 0
}

// NewStack returns a stack over sheet holding the base layers for k
func (k Kind) NewStack(sheet *sprite.Sheet) *sprite.Stack {
	s := sprite.NewStack(sheet)
	for _, b := range k.BaseLayers() {
		s.AddBase(b.Index).SetTint(b.Tint)
	}
	return s
}

// Overlay is a layer to add on top of the base layers
type Overlay struct {
	Index int
	Tint  tint.Color
}

// ParseOverlay parses "index" or "index=#rrggbb"
func (k Kind) ParseOverlay(s string) (Overlay, error) {
	idx, hex, found := strings.Cut(s, "=")

	i, err := strconv.Atoi(idx)
	if err != nil {
		return Overlay{}, fmt.Errorf("%w: %q", errBadOverlay, s)
	}

	if first, last := k.Overlays(); i < first || i > last {
		return Overlay{}, fmt.Errorf("%w: %d is outside %d..%d", errBadOverlay, i, first, last)
	}

	o := Overlay{
		Index: i,
		Tint:  tint.White,
	}
	if found {
		o.Tint = tint.FromHex(hex)
	}

	return o, nil
}

// Compose returns a stack for k with the base layers retinted by base, in
// order, and then the overlays added
func (k Kind) Compose(sheet *sprite.Sheet, base []string, overlays []string) (*sprite.Stack, error) {
	s := k.NewStack(sheet)

	layers := s.Layers()
	if len(base) > len(layers) {
		return nil, fmt.Errorf("packmaker: %s has %d base layers, %d tints given", k, len(layers), len(base))
	}
	for i, hex := range base {
		layers[i].SetTint(tint.FromHex(hex))
	}

	for _, v := range overlays {
		o, err := k.ParseOverlay(v)
		if err != nil {
			return nil, err
		}
		s.Add(o.Index).SetTint(o.Tint)
	}

	return s, nil
}

// DefaultParameter returns the comparator output for discs or the range for
// horns used when none is given
func (k Kind) DefaultParameter() int {
	if k == KindHorn {
		return 256
	}
	return 15
}

// TextureName returns the file name used when saving the item texture
func (k Kind) TextureName() string {
	if k == KindHorn {
		return "goat_horn.png"
	}
	return "disc.png"
}
