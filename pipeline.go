package packmaker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/packmaker/sprite"
)

var audioExtensions = map[string]struct{}{
	".aac":  {},
	".flac": {},
	".m4a":  {},
	".mp3":  {},
	".ogg":  {},
	".opus": {},
	".wav":  {},
	".webm": {},
}

func isAudio(file string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

func (m *PackMaker) findAudio(ctx context.Context, base string) (<-chan track, <-chan error, error) {
	out := make(chan track)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		cues := make(map[string]track)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Directories are visited before their contents so pick up any
			// cue sheets first
			if info.Mode().IsDir() {
				tracks, err := m.cueTracks(file)
				if err != nil {
					return err
				}
				for k, v := range tracks {
					cues[k] = v
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isAudio(file) {
				return nil
			}

			t, ok := cues[file]
			if !ok {
				t = track{file: file}
			}

			select {
			case out <- t:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *PackMaker) exportWorker(ctx context.Context, s *sprite.Stack, template Request, outDir string, seen *sync.Map, in <-chan track) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for t := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			r := template
			r.Title = t.title
			if r.Title == "" {
				r.Title = strings.TrimSuffix(filepath.Base(t.file), filepath.Ext(t.file))
			}
			if t.artist != "" {
				r.Artist = t.artist
			}
			r.Audio = t.file

			b, err := r.bundle()
			if err != nil {
				errc <- err
				return
			}

			if prev, loaded := seen.LoadOrStore(b.ID(), t.file); loaded {
				m.logger.Warnf("Skipping \"%s\", identifier %s is already used by \"%s\"", t.file, b.ID(), prev)
				continue
			}

			data, err := m.DataPack(ctx, r)
			if err != nil {
				errc <- err
				return
			}

			res, err := m.resourcePack(ctx, s, r)
			if err != nil {
				errc <- err
				return
			}

			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			if err := WriteArchive(outDir, data); err != nil {
				errc <- err
				return
			}
			if err := WriteArchive(outDir, res); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline cancels the pipeline on the first error but only returns
// once every stage has finished
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch exports a data pack and a resource pack for every audio file found
// under path, using the same artwork for all of them. The title and artist
// come from a cue sheet in the same directory if one describes the file,
// otherwise the file name is the title. The archives are written to outDir.
// Files whose identifier has already been used are skipped. On the first
// error the remaining work is cancelled and Batch waits for it to stop.
func (m *PackMaker) Batch(ctx context.Context, s *sprite.Stack, template Request, path, outDir string, workers int) error {
	if !m.building.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer m.building.Store(false)

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := m.findAudio(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	var seen sync.Map
	for i := 0; i < max(workers, 1); i++ {
		errc, err := m.exportWorker(ctx, s, template, outDir, &seen, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
