/*
Package audio defines the codec service used to measure and transcode the
sound shipped in a pack, along with an implementation that drives the
ffmpeg and ffprobe command line tools.
*/
package audio

import (
	"context"
	"errors"
	"io"
)

// ErrNoDuration is returned when a probe doesn't report a duration
var ErrNoDuration = errors.New("audio: no duration found")

// Handle names a file held by a Codec
type Handle string

// Options control a transcode
type Options struct {
	// Encoder name, libvorbis if empty
	Codec string
	// Number of output channels, zero keeps the input layout
	Channels int
}

// Codec is the audio service. Every call can fail and a failed call leaves
// no new handle behind.
type Codec interface {
	// Write stores the content of r under name
	Write(ctx context.Context, name string, r io.Reader) (Handle, error)
	// Probe returns the duration of the first audio stream in seconds
	Probe(ctx context.Context, h Handle) (float64, error)
	// Transcode converts the first audio stream of h into output
	Transcode(ctx context.Context, h Handle, output string, opts Options) (Handle, error)
	// Read returns the content of h
	Read(ctx context.Context, h Handle) ([]byte, error)
	// Remove deletes h, removing an unknown handle is not an error
	Remove(ctx context.Context, h Handle) error
	// Close releases everything held by the codec
	Close() error
}
