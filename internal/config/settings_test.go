package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.FileNameFormat != "{tracknum} - {title}" {
		t.Errorf("FileNameFormat = %q, want default", settings.FileNameFormat)
	}
	if settings.RequestInterval != 1.0 {
		t.Errorf("RequestInterval = %v, want 1.0", settings.RequestInterval)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"input_path": "/music", "rename_files": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.InputPath != "/music" {
		t.Errorf("InputPath = %q, want /music", settings.InputPath)
	}
	if settings.RenameFiles {
		t.Error("RenameFiles should be overridden to false")
	}
	if settings.SearchLimit != 10 {
		t.Errorf("SearchLimit = %d, want default 10", settings.SearchLimit)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	settings := DefaultSettings()
	settings.EmbedCoverArt = true
	settings.CoverArtMaxSize = 500
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.EmbedCoverArt || loaded.CoverArtMaxSize != 500 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
