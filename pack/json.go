package pack

import (
	"bytes"
	"encoding/json"
)

type manifest struct {
	Pack struct {
		Format      int    `json:"pack_format"`
		Description string `json:"description"`
	} `json:"pack"`
}

type translate struct {
	Translate string `json:"translate"`
}

type soundEvent struct {
	SoundID string `json:"sound_id"`
}

type jukeboxSong struct {
	ComparatorOutput int        `json:"comparator_output"`
	Description      translate  `json:"description"`
	LengthInSeconds  float64    `json:"length_in_seconds"`
	SoundEvent       soundEvent `json:"sound_event"`
}

type instrument struct {
	Range       int        `json:"range"`
	Description translate  `json:"description"`
	UseDuration float64    `json:"use_duration"`
	SoundEvent  soundEvent `json:"sound_event"`
}

type sound struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream,omitempty"`
}

type soundDefinition struct {
	Subtitle string  `json:"subtitle,omitempty"`
	Sounds   []sound `json:"sounds"`
}

type textures struct {
	Layer0 string `json:"layer0"`
}

type override struct {
	Predicate map[string]int `json:"predicate"`
	Model     string         `json:"model"`
}

type model struct {
	Parent    string     `json:"parent"`
	Textures  textures   `json:"textures"`
	Overrides []override `json:"overrides,omitempty"`
}

// marshal is json.Marshal without HTML escaping or a trailing newline
func marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	e := json.NewEncoder(b)
	e.SetEscapeHTML(false)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte{'\n'}), nil
}

func newManifest(format int, description string) manifest {
	var m manifest
	m.Pack.Format = format
	m.Pack.Description = description
	return m
}
