/*
Package naming derives the identifier for an export and every file name,
resource location and translation key that embeds it.

All of the strings used by a data pack and resource pack pair are produced
from a single Identifier by Domain.Names, so cross references between the two
packs always agree.
*/
package naming

import (
	"errors"
	"strconv"

	"github.com/bodgit/packmaker/cyrb53"
)

// ErrUnset is returned when names are requested for an unset Identifier
var ErrUnset = errors.New("naming: identifier is not set")

// Identifier is the hash of a display name. The zero value is unset and is
// distinct from every hash value.
type Identifier struct {
	value uint64
	valid bool
}

// Derive hashes raw into an Identifier. An empty string yields an unset
// Identifier.
func Derive(raw string) Identifier {
	if raw == "" {
		return Identifier{}
	}
	return Identifier{
		value: cyrb53.Sum(raw),
		valid: true,
	}
}

// Valid reports whether the Identifier has been set
func (id Identifier) Valid() bool {
	return id.valid
}

// Value returns the numeric identifier, which is zero if unset
func (id Identifier) Value() uint64 {
	return id.value
}

// String returns the decimal form of the identifier, or "" if unset
func (id Identifier) String() string {
	if !id.valid {
		return ""
	}
	return strconv.FormatUint(id.value, 10)
}
