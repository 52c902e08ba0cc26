package pack

import (
	"errors"
	"fmt"

	"github.com/bodgit/packmaker/naming"
)

var errUnknownDomain = errors.New("pack: unknown domain")

// setJSON marshals v and stores it in t at name
func setJSON(t *Tree, name string, v interface{}) error {
	b, err := marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return t.Set(name, b)
}

func dataEntry(b *Bundle, n naming.Names) (interface{}, error) {
	desc := translate{Translate: n.TranslationKey}
	event := soundEvent{SoundID: n.SoundEvent}

	switch b.domain.Registry {
	case naming.Disc.Registry:
		return jukeboxSong{
			ComparatorOutput: b.Parameter,
			Description:      desc,
			LengthInSeconds:  b.Duration,
			SoundEvent:       event,
		}, nil
	case naming.Horn.Registry:
		return instrument{
			Range:       b.Parameter,
			Description: desc,
			UseDuration: b.Duration,
			SoundEvent:  event,
		}, nil
	default:
		return nil, errUnknownDomain
	}
}

// BuildData returns the data pack for b: a manifest and the registry entry
// describing the sound
func BuildData(b *Bundle) (*Tree, error) {
	n, err := b.Names()
	if err != nil {
		return nil, err
	}

	entry, err := dataEntry(b, n)
	if err != nil {
		return nil, err
	}

	t := NewTree()

	if err := setJSON(t, manifestName, newManifest(b.DataFormat, fmt.Sprintf("%s Data: %s", b.domain.Product, b.name))); err != nil {
		return nil, err
	}

	if err := setJSON(t, n.DataPath, entry); err != nil {
		return nil, err
	}

	return t, nil
}
