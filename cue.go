package packmaker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vchimishuk/chub/cue"
)

// track is an audio file found by the batch walker, with the title and
// performer from a cue sheet if one describes it
type track struct {
	file   string
	title  string
	artist string
}

func cueFiles(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	files, err := d.Readdirnames(0)
	if err != nil {
		return nil, err
	}

	var cues []string
	for _, file := range files {
		if file[0] != '.' && strings.EqualFold(filepath.Ext(file), ".cue") {
			cues = append(cues, file)
		}
	}

	return cues, nil
}

func parseCue(file string) ([]track, error) {
	sheet, err := cue.ParseFile(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
	}

	var tracks []track
	for _, f := range sheet.Files {
		// A single image holding several tracks can't be split, so it
		// keeps its file name
		if len(f.Tracks) != 1 || f.Tracks[0].DataType != cue.DataTypeAudio {
			continue
		}

		t := track{
			file:   filepath.Join(filepath.Dir(file), filepath.Clean(strings.ReplaceAll(f.Name, "\\", string(os.PathSeparator)))),
			title:  f.Tracks[0].Title,
			artist: f.Tracks[0].Performer,
		}
		if t.artist == "" {
			t.artist = sheet.Performer
		}

		tracks = append(tracks, t)
	}

	return tracks, nil
}

// cueTracks returns the tracks described by any cue sheets in dir, keyed by
// audio file path. Sheets that can't be parsed are logged and skipped.
func (m *PackMaker) cueTracks(dir string) (map[string]track, error) {
	files, err := cueFiles(dir)
	if err != nil {
		return nil, err
	}

	tracks := make(map[string]track)
	for _, file := range files {
		parsed, err := parseCue(filepath.Join(dir, file))
		if err != nil {
			m.logger.WithError(err).Warnf("Ignoring cue sheet \"%s\"", filepath.Join(dir, file))
			continue
		}
		for _, t := range parsed {
			tracks[t.file] = t
		}
	}

	return tracks, nil
}
