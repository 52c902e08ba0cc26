/*
Package palette suggests layer tints from a piece of artwork, usually the
cover of the song being packed.
*/
package palette

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/bodgit/packmaker/tint"
	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how candidate colours are found
type Method int

const (
	// MethodDominant uses dominantcolor
	MethodDominant Method = iota
	// MethodKMeans clusters the pixels in RGB space
	MethodKMeans
)

const maxSamples = 12000

var (
	errUnknownMethod = errors.New("palette: unknown method")
	errNoColors      = errors.New("palette: image has no opaque pixels")
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseMethod is the inverse of String
func ParseMethod(s string) (Method, error) {
	switch s {
	case "dominant", "":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return 0, fmt.Errorf("%w: %q", errUnknownMethod, s)
}

type candidate struct {
	c tint.Color
	w float64
}

// Suggest returns up to k distinct tints, strongest first
func Suggest(img image.Image, k int, method Method) ([]tint.Color, error) {
	if k <= 0 {
		return nil, nil
	}

	var cands []candidate
	switch method {
	case MethodDominant:
		cands = dominant(img, k)
	case MethodKMeans:
		var err error
		if cands, err = partition(img, k); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownMethod, method)
	}

	if len(cands) == 0 {
		return nil, errNoColors
	}

	return diverse(cands, k), nil
}

func dominant(img image.Image, k int) []candidate {
	found := dominantcolor.FindWeight(img, max(24, k*8))

	cands := make([]candidate, 0, len(found))
	for _, f := range found {
		c, _ := colorful.MakeColor(f.RGBA)
		cands = append(cands, candidate{c.Clamped(), max(f.Weight, 1e-6)})
	}
	return cands
}

func partition(img image.Image, k int) ([]candidate, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}

	step := 1
	if n := b.Dx() * b.Dy(); n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}

	var data clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			// Undo the alpha premultiplication
			data = append(data, clusters.Coordinates{
				float64(cr) / float64(ca),
				float64(cg) / float64(ca),
				float64(cb) / float64(ca),
			})
		}
	}
	if len(data) == 0 {
		return nil, nil
	}

	cc, err := kmeans.New().Partition(data, min(max(k*4, k+2), len(data)))
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	cands := make([]candidate, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		cands = append(cands, candidate{
			tint.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped(),
			float64(len(c.Observations)),
		})
	}
	return cands, nil
}

// diverse greedily picks the heaviest candidate and then whichever remaining
// one is furthest away in Lab space, biased by weight
func diverse(cands []candidate, k int) []tint.Color {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		switch {
		case a.w > b.w:
			return -1
		case a.w < b.w:
			return 1
		}
		return 0
	})

	heaviest := cands[0].w
	picked := []int{0}
	used := make([]bool, len(cands))
	used[0] = true

	for len(picked) < min(k, len(cands)) {
		best, score := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			d := math.MaxFloat64
			for _, p := range picked {
				d = min(d, c.c.DistanceLab(cands[p].c))
			}
			if s := d * (0.55 + 0.45*math.Sqrt(c.w/heaviest)); s > score {
				best, score = i, s
			}
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]tint.Color, 0, len(picked))
	for _, p := range picked {
		out = append(out, cands[p].c)
	}
	return out
}
