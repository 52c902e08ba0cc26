package pack

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSet(t *testing.T) {
	tables := []struct {
		path string
		ok   bool
	}{
		{"pack.mcmeta", true},
		{"assets/discmaker/sounds.json", true},
		{"", false},
		{"/pack.mcmeta", false},
		{"../pack.mcmeta", false},
		{"assets/../../x", false},
		{"assets//x", false},
		{"assets/x/", false},
		{".", false},
		{"assets\\x", false},
	}

	for _, table := range tables {
		t.Run(table.path, func(t *testing.T) {
			tree := NewTree()
			err := tree.Set(table.path, []byte("x"))
			if table.ok {
				assert.Nil(t, err)
				assert.Equal(t, 1, tree.Length())
			} else {
				assert.ErrorIs(t, err, errBadPath)
				assert.Equal(t, 0, tree.Length())
			}
		})
	}
}

func TestTreeRoundTrip(t *testing.T) {
	tree := NewTree()
	require.Nil(t, tree.Set("pack.mcmeta", []byte("{}")))
	require.Nil(t, tree.Set("assets/a/b.json", []byte("b")))
	require.Nil(t, tree.Set("assets/a/c/d.ogg", []byte{0, 1, 2}))
	require.Nil(t, tree.Set("empty", nil))

	b, err := tree.MarshalBinary()
	require.Nil(t, err)

	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.Nil(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		assert.True(t, epoch.Equal(f.Modified), f.Name)
	}
	assert.Equal(t, []string{"assets/", "assets/a/", "assets/a/c/", "assets/a/b.json", "assets/a/c/d.ogg", "empty", "pack.mcmeta"}, names)

	dup := NewTree()
	require.Nil(t, dup.Set("stale", []byte("x")))
	require.Nil(t, dup.UnmarshalBinary(b))
	assert.Equal(t, tree.Paths(), dup.Paths())
	for _, p := range tree.Paths() {
		want, _ := tree.Get(p)
		got, ok := dup.Get(p)
		assert.True(t, ok)
		assert.Equal(t, len(want), len(got))
		assert.True(t, bytes.Equal(want, got))
	}

	assert.NotNil(t, dup.UnmarshalBinary([]byte("not a zip")))
}
