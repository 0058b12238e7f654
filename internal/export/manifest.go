package export

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteManifest пишет описание листа в YAML рядом с изображением.
func WriteManifest(sheet *Sheet, path string) error {
	data, err := yaml.Marshal(sheet)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadManifest читает описание, записанное WriteManifest.
func ReadManifest(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, err
	}

	return &sheet, nil
}

// ManifestPath — путь манифеста для изображения листа.
func ManifestPath(sheetPath string) string {
	return strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath)) + ".yaml"
}
