package naming

import "fmt"

// Domain holds the naming templates for one kind of item
type Domain struct {
	// Namespace used for every resource location, e.g. "discmaker"
	Prefix string
	// Product name used in pack descriptions and archive names
	Product string
	// Data pack registry directory
	Registry string
	// First component of translation keys
	Translation string
	// Prefix of the sound event name
	SoundEvent string
	// Directory under sounds/ holding the audio
	SoundDir string
	// Vanilla item the components are applied to
	Item string
	// Item component that plays the sound
	Component string
	// Suffix of the alternate model, empty if there isn't one
	Alternate string
}

var (
	// Disc is the music disc domain
	Disc = Domain{
		Prefix:      "discmaker",
		Product:     "DiscMaker",
		Registry:    "jukebox_song",
		Translation: "record",
		SoundEvent:  "music_disc",
		SoundDir:    "records",
		Item:        "music_disc_cat",
		Component:   "jukebox_playable",
	}

	// Horn is the goat horn domain
	Horn = Domain{
		Prefix:      "hornmaker",
		Product:     "HornMaker",
		Registry:    "instrument",
		Translation: "instrument",
		SoundEvent:  "goat_horn",
		SoundDir:    "goat_horn",
		Item:        "goat_horn",
		Component:   "instrument",
		Alternate:   "tooting",
	}
)

// Names is every templated string for one identifier
type Names struct {
	ID string

	// Data pack entry, e.g. data/discmaker/jukebox_song/<id>.json
	DataPath string

	// Registry entry and item model, "<prefix>:<id>"
	ResourceID string

	// Sound event, "<prefix>:<event>.<id>", and its sounds.json key
	SoundEvent    string
	SoundEventKey string

	// "<translation>.<prefix>.<id>"
	TranslationKey string

	SoundID   string
	SoundPath string

	TextureID   string
	TexturePath string

	ModelID   string
	ModelPath string

	// Only set for domains with an alternate model
	AlternateID   string
	AlternatePath string
}

// Names returns the templated strings for id
func (d Domain) Names(id Identifier) (Names, error) {
	if !id.Valid() {
		return Names{}, ErrUnset
	}

	s := id.String()
	n := Names{
		ID:             s,
		DataPath:       fmt.Sprintf("data/%s/%s/%s.json", d.Prefix, d.Registry, s),
		ResourceID:     fmt.Sprintf("%s:%s", d.Prefix, s),
		SoundEvent:     fmt.Sprintf("%s:%s.%s", d.Prefix, d.SoundEvent, s),
		SoundEventKey:  fmt.Sprintf("%s.%s", d.SoundEvent, s),
		TranslationKey: fmt.Sprintf("%s.%s.%s", d.Translation, d.Prefix, s),
		SoundID:        fmt.Sprintf("%s:%s/%s", d.Prefix, d.SoundDir, s),
		SoundPath:      fmt.Sprintf("assets/%s/sounds/%s/%s.ogg", d.Prefix, d.SoundDir, s),
		TextureID:      fmt.Sprintf("%s:item/%s", d.Prefix, s),
		TexturePath:    fmt.Sprintf("assets/%s/textures/item/%s.png", d.Prefix, s),
		ModelID:        fmt.Sprintf("%s:item/%s", d.Prefix, s),
		ModelPath:      fmt.Sprintf("assets/%s/models/item/%s.json", d.Prefix, s),
	}

	if d.Alternate != "" {
		n.AlternateID = fmt.Sprintf("%s:item/%s_%s", d.Prefix, s, d.Alternate)
		n.AlternatePath = fmt.Sprintf("assets/%s/models/item/%s_%s.json", d.Prefix, s, d.Alternate)
	}

	return n, nil
}

// GiveCommand returns the chat command that gives the player the item
func (d Domain) GiveCommand(id Identifier) (string, error) {
	n, err := d.Names(id)
	if err != nil {
		return "", err
	}
	if d.Component == "jukebox_playable" {
		return fmt.Sprintf("/give @s minecraft:%s[minecraft:item_model=\"%s\",minecraft:%s={song:\"%s\"}]", d.Item, n.ResourceID, d.Component, n.ResourceID), nil
	}
	return fmt.Sprintf("/give @s minecraft:%s[minecraft:item_model=\"%s\",minecraft:%s=\"%s\"]", d.Item, n.ResourceID, d.Component, n.ResourceID), nil
}

// ItemJSON returns the item stack in the JSON form used by loot tables and
// other data files
func (d Domain) ItemJSON(id Identifier) (string, error) {
	n, err := d.Names(id)
	if err != nil {
		return "", err
	}
	if d.Component == "jukebox_playable" {
		return fmt.Sprintf(`{"id":"minecraft:%s","count":1,"components":{"minecraft:item_model":"%s","minecraft:%s":{"song":"%s"}}}`, d.Item, n.ResourceID, d.Component, n.ResourceID), nil
	}
	return fmt.Sprintf(`{"id":"minecraft:%s","count":1,"components":{"minecraft:item_model":"%s","minecraft:%s":"%s"}}`, d.Item, n.ResourceID, d.Component, n.ResourceID), nil
}

// DisplayName builds the name that is hashed and shown in game. An artist,
// if given, is prefixed as "artist - title". An empty title always gives an
// empty name. Whitespace is kept as-is since it changes the identifier.
func DisplayName(title, artist string) string {
	if title == "" {
		return ""
	}
	if artist != "" {
		return artist + " - " + title
	}
	return title
}

// ArchiveName returns the download file name for a pack, e.g.
// "Alice - MySong [DiscMaker Data].zip"
func (d Domain) ArchiveName(display, kind string) string {
	return fmt.Sprintf("%s [%s %s].zip", display, d.Product, kind)
}
