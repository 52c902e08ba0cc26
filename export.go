package packmaker

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/bodgit/packmaker/audio"
	"github.com/bodgit/packmaker/naming"
	"github.com/bodgit/packmaker/pack"
	"github.com/bodgit/packmaker/sprite"
	"github.com/sirupsen/logrus"
)

// Request describes a pack to export
type Request struct {
	Kind   Kind
	Title  string
	Artist string

	// Path to the audio file
	Audio string

	// Comparator output for discs, range for horns
	Parameter int

	// Overrides for the pack formats, zero means the default
	DataFormat     int
	ResourceFormat int

	// Reduce the pack icon to this many colors, zero keeps it as-is
	IconColors int
}

// Name returns the display name. Horns don't have an artist.
func (r *Request) Name() string {
	if r.Kind == KindHorn {
		return naming.DisplayName(r.Title, "")
	}
	return naming.DisplayName(r.Title, r.Artist)
}

func (r *Request) bundle() (*pack.Bundle, error) {
	if !r.Kind.valid() {
		return nil, fmt.Errorf("%w: %s", errUnknownKind, r.Kind)
	}

	b := pack.NewBundle(r.Kind.Domain(), r.Name())
	if !b.ID().Valid() {
		return nil, ErrNoName
	}

	b.Parameter = r.Parameter
	b.IconColors = r.IconColors
	if r.DataFormat != 0 {
		b.DataFormat = r.DataFormat
	}
	if r.ResourceFormat != 0 {
		b.ResourceFormat = r.ResourceFormat
	}

	return b, nil
}

// RenderTexture composites the stack at item size
func RenderTexture(s *sprite.Stack) image.Image {
	c := sprite.NewCanvas(sprite.TextureSize, sprite.TextureSize)
	s.Render(c, sprite.TextureSize, 0)
	return c.Snapshot()
}

// RenderIcon composites the stack onto a black pack icon
func RenderIcon(s *sprite.Stack, k Kind) image.Image {
	c := sprite.NewCanvas(sprite.IconSize, sprite.IconSize)
	c.Fill(color.Black)
	s.Render(c, sprite.IconArtSize, k.IconOffset())
	return c.Snapshot()
}

func (m *PackMaker) writeAudio(ctx context.Context, name, file string) (audio.Handle, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return m.codec.Write(ctx, name, f)
}

func (m *PackMaker) remove(ctx context.Context, logger logrus.FieldLogger, h audio.Handle) {
	if err := m.codec.Remove(ctx, h); err != nil {
		logger.WithError(err).Warnf("Unable to remove %s", h)
	}
}

// DataPack probes the audio duration and builds the data pack
func (m *PackMaker) DataPack(ctx context.Context, r Request) (*pack.Archive, error) {
	b, err := r.bundle()
	if err != nil {
		return nil, err
	}

	logger := m.logger.WithFields(logrus.Fields{
		"kind": r.Kind,
		"id":   b.ID(),
	})

	h, err := m.writeAudio(ctx, b.ID().String()+"-data"+filepath.Ext(r.Audio), r.Audio)
	if err != nil {
		return nil, fmt.Errorf("writing audio: %w", err)
	}
	defer m.remove(ctx, logger, h)

	if b.Duration, err = m.codec.Probe(ctx, h); err != nil {
		return nil, fmt.Errorf("probing audio: %w", err)
	}
	logger.Debugf("Duration is %gs", b.Duration)

	t, err := pack.BuildData(b)
	if err != nil {
		return nil, err
	}

	a, err := pack.Serialize(b.Domain().ArchiveName(b.Name(), "Data"), t)
	if err != nil {
		return nil, err
	}
	logger.Infof("Built %q", a.Name)

	return a, nil
}

// ResourcePack renders the stack, transcodes the audio and builds the
// resource pack. Only one can run at a time, ErrBusy is returned otherwise.
func (m *PackMaker) ResourcePack(ctx context.Context, s *sprite.Stack, r Request) (*pack.Archive, error) {
	if !m.building.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer m.building.Store(false)

	return m.resourcePack(ctx, s, r)
}

func (m *PackMaker) resourcePack(ctx context.Context, s *sprite.Stack, r Request) (*pack.Archive, error) {
	b, err := r.bundle()
	if err != nil {
		return nil, err
	}

	logger := m.logger.WithFields(logrus.Fields{
		"kind": r.Kind,
		"id":   b.ID(),
	})

	b.Texture = RenderTexture(s)

	in, err := m.writeAudio(ctx, b.ID().String()+"-resources"+filepath.Ext(r.Audio), r.Audio)
	if err != nil {
		return nil, fmt.Errorf("writing audio: %w", err)
	}
	defer m.remove(ctx, logger, in)

	out, err := m.codec.Transcode(ctx, in, b.ID().String()+".ogg", audio.Options{Channels: r.Kind.Channels()})
	if err != nil {
		return nil, fmt.Errorf("transcoding audio: %w", err)
	}
	defer m.remove(ctx, logger, out)

	sound, err := m.codec.Read(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}

	b.Icon = RenderIcon(s, r.Kind)

	t, err := pack.BuildResources(b, sound)
	if err != nil {
		return nil, err
	}

	a, err := pack.Serialize(b.Domain().ArchiveName(b.Name(), "Resources"), t)
	if err != nil {
		return nil, err
	}
	logger.Infof("Built %q", a.Name)

	return a, nil
}

// WriteArchive saves a in dir under its own name
func WriteArchive(dir string, a *pack.Archive) error {
	f, err := os.Create(filepath.Join(dir, filepath.Base(a.Name)))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(a.Data); err != nil {
		return err
	}

	return nil
}
