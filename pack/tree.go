package pack

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

var errBadPath = errors.New("pack: invalid path")

// Every entry is stamped with the same time so the same tree always
// serializes to the same bytes
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Tree is an in-memory file tree keyed by slash-separated paths. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces using the zip format.
type Tree struct {
	files map[string][]byte
}

// NewTree returns an empty tree
func NewTree() *Tree {
	return &Tree{
		files: make(map[string][]byte),
	}
}

func cleanPath(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", errBadPath
	}
	clean := path.Clean(name)
	if clean != name || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errBadPath
	}
	return clean, nil
}

// Set stores b at the given path, replacing any previous content
func (t *Tree) Set(name string, b []byte) error {
	clean, err := cleanPath(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	t.files[clean] = b
	return nil
}

// Get returns the content stored at the given path
func (t *Tree) Get(name string) ([]byte, bool) {
	b, ok := t.files[name]
	return b, ok
}

// Length returns the number of files in the tree
func (t *Tree) Length() int {
	return len(t.files)
}

// Paths returns every file path in sorted order
func (t *Tree) Paths() []string {
	paths := make([]string, 0, len(t.files))
	for k := range t.files {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

// directories returns every parent directory, with a trailing slash, in
// sorted order
func (t *Tree) directories() []string {
	seen := make(map[string]struct{})
	for name := range t.files {
		for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
			seen[dir+"/"] = struct{}{}
		}
	}
	dirs := make([]string, 0, len(seen))
	for k := range seen {
		dirs = append(dirs, k)
	}
	sort.Strings(dirs)
	return dirs
}

// MarshalBinary encodes the tree as a zip archive. Directories are written
// before files and each group is sorted.
func (t *Tree) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	zw := zip.NewWriter(b)

	for _, dir := range t.directories() {
		h := &zip.FileHeader{
			Name:     dir,
			Method:   zip.Store,
			Modified: epoch,
		}
		h.SetMode(os.ModeDir | 0755)
		if _, err := zw.CreateHeader(h); err != nil {
			return nil, fmt.Errorf("writing zip directory: %w", err)
		}
	}

	for _, name := range t.Paths() {
		h := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: epoch,
		}
		h.SetMode(0644)
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, fmt.Errorf("writing zip header: %w", err)
		}
		if _, err := w.Write(t.files[name]); err != nil {
			return nil, fmt.Errorf("writing zip data: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip writer: %w", err)
	}

	return b.Bytes(), nil
}

// UnmarshalBinary replaces the tree with the files in the zip archive b
func (t *Tree) UnmarshalBinary(b []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return fmt.Errorf("reading zip: %w", err)
	}

	t.files = make(map[string][]byte)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Name, err)
		}
		if err := t.Set(f.Name, data); err != nil {
			return err
		}
	}

	return nil
}
