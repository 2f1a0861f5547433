// Package settings loads optional defaults from p2bookmarks.yaml in the
// working directory. Flags always override settings.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up relative to the working directory.
const FileName = "p2bookmarks.yaml"

// Settings holds p2bookmarks configuration from p2bookmarks.yaml.
type Settings struct {
	// AssumeYes suppresses all confirmations, as if --yes was passed.
	AssumeYes bool `yaml:"assumeYes"`
	// Input is the default preferences file or directory.
	Input string `yaml:"input"`
	// Output is the default bookmarks file or directory.
	Output string `yaml:"output"`
}

// Load reads p2bookmarks.yaml relative to dir.
// Returns nil (not an error) if the file does not exist.
func Load(dir string) (*Settings, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}
