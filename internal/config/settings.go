package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Scan settings
	InputPath string `json:"input_path"`

	// File naming
	RenameFiles    bool   `json:"rename_files"`
	FileNameFormat string `json:"file_name_format"`

	// Tag settings
	WriteTrackNumbers bool `json:"write_track_numbers"`
	WriteReleaseDate  bool `json:"write_release_date"`

	// Cover art settings
	EmbedCoverArt   bool `json:"embed_cover_art"`
	CoverArtResize  bool `json:"cover_art_resize"`
	CoverArtMaxSize int  `json:"cover_art_max_size"`

	// MusicBrainz settings
	MusicBrainzURL  string  `json:"musicbrainz_url"`
	CoverArtURL     string  `json:"cover_art_url"`
	UserAgent       string  `json:"user_agent"`
	SearchLimit     int     `json:"search_limit"`
	RequestInterval float64 `json:"request_interval"` // seconds between requests
}

// DefaultSettings returns settings with default values.
//
// The defaults match the original workflow: files are collected from an
// "Input" folder next to the working directory, renamed to
// "{tracknum} - {title}", and MusicBrainz is queried at most once per
// second as its API terms require.
func DefaultSettings() *Settings {
	wd, _ := os.Getwd()
	return &Settings{
		InputPath: filepath.Join(wd, "Input"),

		RenameFiles:    true,
		FileNameFormat: "{tracknum} - {title}",

		WriteTrackNumbers: true,
		WriteReleaseDate:  true,

		EmbedCoverArt:   false,
		CoverArtResize:  true,
		CoverArtMaxSize: 1000,

		MusicBrainzURL:  "https://musicbrainz.org/ws/2",
		CoverArtURL:     "https://coverartarchive.org",
		UserAgent:       "tagrestore/1.0 ( https://github.com/mikann/tagrestore )",
		SearchLimit:     10,
		RequestInterval: 1.0,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so a first run
// works without any setup.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
