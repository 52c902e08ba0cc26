/*
Package cyrb53 implements the cyrb53 string hash.

cyrb53 is a fast, non-cryptographic hash with two 32-bit lanes that are mixed
together to produce a 53-bit result. Text is consumed as UTF-16 code units so
the output matches implementations that hash JavaScript strings, which is how
previously generated identifiers were created.
*/
package cyrb53

import "unicode/utf16"

const (
	seed1 = 0xdeadbeef
	seed2 = 0x41c6ce57

	prime1 = 2654435761
	prime2 = 1597334677
	mix1   = 2246822507
	mix2   = 3266489909
)

// Size53 is the exclusive upper bound of every hash value
const Size53 = 1 << 53

// Digest is a running cyrb53 computation. The zero value is not usable, use
// New.
type Digest struct {
	h1, h2 uint32
	seed   uint32
}

// New returns a Digest using the given seed
func New(seed uint32) *Digest {
	d := &Digest{seed: seed}
	d.Reset()
	return d
}

// Reset returns the Digest to its initial state
func (d *Digest) Reset() {
	d.h1 = seed1 ^ d.seed
	d.h2 = seed2 ^ d.seed
}

func (d *Digest) update(ch uint16) {
	d.h1 = (d.h1 ^ uint32(ch)) * prime1
	d.h2 = (d.h2 ^ uint32(ch)) * prime2
}

// WriteRune adds r to the hash as one or two UTF-16 code units
func (d *Digest) WriteRune(r rune) (int, error) {
	if r1, r2 := utf16.EncodeRune(r); r1 != '\uFFFD' || r2 != '\uFFFD' {
		d.update(uint16(r1))
		d.update(uint16(r2))
		return 2, nil
	}
	if r < 0 || r > 0xffff || (r >= 0xd800 && r < 0xe000) {
		r = '\uFFFD'
	}
	d.update(uint16(r))
	return 1, nil
}

// WriteString adds s to the hash and returns the number of UTF-16 code
// units consumed
func (d *Digest) WriteString(s string) (int, error) {
	var n int
	for _, r := range s {
		c, _ := d.WriteRune(r)
		n += c
	}
	return n, nil
}

// Sum53 returns the hash of everything written so far. It does not change
// the underlying state.
func (d *Digest) Sum53() uint64 {
	h1 := (d.h1 ^ d.h1>>16) * mix1
	h1 ^= (d.h2 ^ d.h2>>13) * mix2
	h2 := (d.h2 ^ d.h2>>16) * mix1
	h2 ^= (h1 ^ h1>>13) * mix2

	return uint64(h2&0x1fffff)<<32 | uint64(h1)
}

// SumSeed returns the cyrb53 hash of s using the given seed
func SumSeed(s string, seed uint32) uint64 {
	d := New(seed)
	d.WriteString(s)
	return d.Sum53()
}

// Sum returns the cyrb53 hash of s with a zero seed
func Sum(s string) uint64 {
	return SumSeed(s, 0)
}
