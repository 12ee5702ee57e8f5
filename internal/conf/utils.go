package conf

import (
	"os"
	"path/filepath"
)

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// in order: the working directory, then $HOME/.config/weatherapp.
func GetDefaultConfigPaths() []string {
	paths := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "weatherapp"))
	}
	return paths
}
