package tint

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a diagonal colour matrix with the diagonal (r, g, b, 1). The
// zero value is the identity.
type Matrix struct {
	d *mat.DiagDense
}

// MatrixOf returns the recolour matrix for c after clamping it
func MatrixOf(c Color) Matrix {
	c = c.Clamped()
	return Matrix{
		d: mat.NewDiagDense(4, []float64{c.R, c.G, c.B, 1}),
	}
}

// Identity returns a matrix that leaves every pixel unchanged
func Identity() Matrix {
	return MatrixOf(White)
}

// Diagonal returns the four diagonal entries of the matrix
func (m Matrix) Diagonal() (r, g, b, a float64) {
	if m.d == nil {
		return 1, 1, 1, 1
	}
	return m.d.At(0, 0), m.d.At(1, 1), m.d.At(2, 2), m.d.At(3, 3)
}

// Color returns the tint the matrix was built from
func (m Matrix) Color() Color {
	r, g, b, _ := m.Diagonal()
	return Color{R: r, G: g, B: b}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// Apply recolours a single non-premultiplied pixel
func (m Matrix) Apply(c color.NRGBA) color.NRGBA {
	if m.d == nil {
		return c
	}

	var out mat.VecDense
	out.MulVec(m.d, mat.NewVecDense(4, []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}))

	return color.NRGBA{
		R: channel(out.AtVec(0)),
		G: channel(out.AtVec(1)),
		B: channel(out.AtVec(2)),
		A: c.A,
	}
}

// String returns the matrix in the 4x5 row-major form used by SVG
// feColorMatrix values
func (m Matrix) String() string {
	r, g, b, a := m.Diagonal()
	return fmt.Sprintf("%g 0 0 0 0 %g 0 0 0 0 %g 0 0 0 0 0 0 0 %g 0", r, g, b, a)
}
