package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultCodec = "libvorbis"

var errBadName = errors.New("audio: invalid file name")

// FFmpeg is a Codec that keeps its files in a private temporary directory
// and shells out to ffmpeg and ffprobe
type FFmpeg struct {
	dir     string
	ffmpeg  string
	ffprobe string
	logger  logrus.FieldLogger
}

// NewFFmpeg returns a Codec using the given ffmpeg and ffprobe binaries,
// which are looked up in $PATH if they aren't paths themselves
func NewFFmpeg(ffmpeg, ffprobe string, logger logrus.FieldLogger) (*FFmpeg, error) {
	dir, err := os.MkdirTemp("", "packmaker-")
	if err != nil {
		return nil, err
	}
	return &FFmpeg{
		dir:     dir,
		ffmpeg:  ffmpeg,
		ffprobe: ffprobe,
		logger:  logger,
	}, nil
}

func (f *FFmpeg) path(name string) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", errBadName, name)
	}
	return filepath.Join(f.dir, base), nil
}

func (f *FFmpeg) run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = f.dir

	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr

	f.logger.WithField("args", strings.Join(args, " ")).Debugf("Running %s", filepath.Base(bin))

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", filepath.Base(bin), err, msg)
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(bin), err)
	}
	return out, nil
}

// Write implements Codec. Only the base name of name is used.
func (f *FFmpeg) Write(ctx context.Context, name string, r io.Reader) (Handle, error) {
	file, err := f.path(filepath.Base(name))
	if err != nil {
		return "", err
	}

	w, err := os.Create(file)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		os.Remove(file)
		return "", err
	}

	if err := w.Close(); err != nil {
		os.Remove(file)
		return "", err
	}

	return Handle(filepath.Base(file)), nil
}

// Probe implements Codec
func (f *FFmpeg) Probe(ctx context.Context, h Handle) (float64, error) {
	file, err := f.path(string(h))
	if err != nil {
		return 0, err
	}

	out, err := f.run(ctx, f.ffprobe, "-v", "error", "-select_streams", "a:0", "-show_entries", "stream=duration", "-of", "default=noprint_wrappers=1:nokey=1", file)
	if err != nil {
		return 0, err
	}

	return parseDuration(out)
}

func parseDuration(b []byte) (float64, error) {
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "N/A" {
			continue
		}
		d, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return 0, fmt.Errorf("audio: bad duration %q: %w", line, err)
		}
		return d, nil
	}
	return 0, ErrNoDuration
}

// Transcode implements Codec
func (f *FFmpeg) Transcode(ctx context.Context, h Handle, output string, opts Options) (Handle, error) {
	in, err := f.path(string(h))
	if err != nil {
		return "", err
	}
	out, err := f.path(output)
	if err != nil {
		return "", err
	}

	codec := opts.Codec
	if codec == "" {
		codec = defaultCodec
	}

	args := []string{"-y", "-v", "error", "-i", in, "-map", "0:a"}
	if opts.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(opts.Channels))
	}
	args = append(args, "-c:a", codec, out)

	if _, err := f.run(ctx, f.ffmpeg, args...); err != nil {
		os.Remove(out)
		return "", err
	}

	return Handle(output), nil
}

// Read implements Codec
func (f *FFmpeg) Read(ctx context.Context, h Handle) ([]byte, error) {
	file, err := f.path(string(h))
	if err != nil {
		return nil, err
	}
	return os.ReadFile(file)
}

// Remove implements Codec
func (f *FFmpeg) Remove(ctx context.Context, h Handle) error {
	file, err := f.path(string(h))
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close implements Codec and deletes the working directory
func (f *FFmpeg) Close() error {
	return os.RemoveAll(f.dir)
}
