package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	var unset Identifier
	assert.False(t, unset.Valid())
	assert.Equal(t, "", unset.String())
	assert.Equal(t, unset, Derive(""))

	id := Derive("A")
	assert.True(t, id.Valid())
	assert.Equal(t, uint64(4438178491138429), id.Value())
	assert.Equal(t, "4438178491138429", id.String())
	assert.Equal(t, id, Derive("A"))
	assert.NotEqual(t, unset, id)
}

func TestDisplayName(t *testing.T) {
	tables := []struct {
		title, artist, want string
	}{
		{"MySong", "Alice", "Alice - MySong"},
		{"MySong", "", "MySong"},
		{"", "Alice", ""},
		{"", "", ""},
		{" padded ", "", " padded "},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, DisplayName(table.title, table.artist))
	}
}

func TestNamesDisc(t *testing.T) {
	id := Derive(DisplayName("MySong", "Alice"))
	n, err := Disc.Names(id)
	require.Nil(t, err)

	const s = "8636415290054139"
	assert.Equal(t, Names{
		ID:             s,
		DataPath:       "data/discmaker/jukebox_song/" + s + ".json",
		ResourceID:     "discmaker:" + s,
		SoundEvent:     "discmaker:music_disc." + s,
		SoundEventKey:  "music_disc." + s,
		TranslationKey: "record.discmaker." + s,
		SoundID:        "discmaker:records/" + s,
		SoundPath:      "assets/discmaker/sounds/records/" + s + ".ogg",
		TextureID:      "discmaker:item/" + s,
		TexturePath:    "assets/discmaker/textures/item/" + s + ".png",
		ModelID:        "discmaker:item/" + s,
		ModelPath:      "assets/discmaker/models/item/" + s + ".json",
	}, n)

	for _, v := range []string{n.SoundEvent, n.TranslationKey, n.ModelPath} {
		assert.True(t, strings.Contains(v, id.String()))
	}
}

func TestNamesHorn(t *testing.T) {
	id := Derive("Creeper, aw man")
	n, err := Horn.Names(id)
	require.Nil(t, err)

	const s = "5236484029101003"
	assert.Equal(t, "data/hornmaker/instrument/"+s+".json", n.DataPath)
	assert.Equal(t, "hornmaker:goat_horn."+s, n.SoundEvent)
	assert.Equal(t, "instrument.hornmaker."+s, n.TranslationKey)
	assert.Equal(t, "hornmaker:goat_horn/"+s, n.SoundID)
	assert.Equal(t, "assets/hornmaker/sounds/goat_horn/"+s+".ogg", n.SoundPath)
	assert.Equal(t, "hornmaker:item/"+s+"_tooting", n.AlternateID)
	assert.Equal(t, "assets/hornmaker/models/item/"+s+"_tooting.json", n.AlternatePath)
}

func TestNamesUnset(t *testing.T) {
	for _, d := range []Domain{Disc, Horn} {
		_, err := d.Names(Derive(""))
		assert.Equal(t, ErrUnset, err)
		_, err = d.GiveCommand(Identifier{})
		assert.Equal(t, ErrUnset, err)
		_, err = d.ItemJSON(Identifier{})
		assert.Equal(t, ErrUnset, err)
	}
}

func TestCommands(t *testing.T) {
	id := Derive("A")

	cmd, err := Disc.GiveCommand(id)
	require.Nil(t, err)
	assert.Equal(t, `/give @s minecraft:music_disc_cat[minecraft:item_model="discmaker:4438178491138429",minecraft:jukebox_playable={song:"discmaker:4438178491138429"}]`, cmd)

	item, err := Disc.ItemJSON(id)
	require.Nil(t, err)
	assert.Equal(t, `{"id":"minecraft:music_disc_cat","count":1,"components":{"minecraft:item_model":"discmaker:4438178491138429","minecraft:jukebox_playable":{"song":"discmaker:4438178491138429"}}}`, item)

	cmd, err = Horn.GiveCommand(id)
	require.Nil(t, err)
	assert.Equal(t, `/give @s minecraft:goat_horn[minecraft:item_model="hornmaker:4438178491138429",minecraft:instrument="hornmaker:4438178491138429"]`, cmd)

	item, err = Horn.ItemJSON(id)
	require.Nil(t, err)
	assert.Equal(t, `{"id":"minecraft:goat_horn","count":1,"components":{"minecraft:item_model":"hornmaker:4438178491138429","minecraft:instrument":"hornmaker:4438178491138429"}}`, item)
}

func TestArchiveName(t *testing.T) {
	assert.Equal(t, "Alice - MySong [DiscMaker Data].zip", Disc.ArchiveName("Alice - MySong", "Data"))
	assert.Equal(t, "Toot [HornMaker Resources].zip", Horn.ArchiveName("Toot", "Resources"))
}
