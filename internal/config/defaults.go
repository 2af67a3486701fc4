package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults/config.ini
var defaultSettings []byte

//go:embed defaults/payload-template.json
var defaultTemplate []byte

//go:embed defaults/app.yaml
var defaultAppConfig []byte

type defaultFile struct {
	path    string
	content []byte
}

func defaultFiles(appConfigPath string, config *AppConfig) []defaultFile {
	return []defaultFile{
		{path: appConfigPath, content: defaultAppConfig},
		{path: config.SettingsFile, content: defaultSettings},
		{path: config.TemplateFile, content: defaultTemplate},
	}
}

// ProvisionDefaults writes the default app config, settings and template
// files where they do not exist yet. Existing files are never overwritten.
//
// RETURNS:
//   - The paths that were created.
//   - An error if a file could not be checked or written.
func ProvisionDefaults(appConfigPath string, config *AppConfig) ([]string, error) {
	var created []string

	for _, file := range defaultFiles(appConfigPath, config) {
		path := file.path

		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return created, fmt.Errorf("failed to check %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return created, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, file.content, 0644); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", path, err)
		}
		created = append(created, path)
	}

	return created, nil
}
