// Package config provides configuration management for tagrestore.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scans ./Input, renames files to "{tracknum} - {title}",
//	// cover art embedding disabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.InputPath = "/music/incoming"
//	err := settings.Save("/path/to/config.json")
package config
