package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, the score database and
// the log file.
const AppDir = ".gemquest"

// ConfigFile is the name searched for in the config directories.
const ConfigFile = "gemquest.yaml"

// EmbeddedSource names the built-in defaults in Loaded.Source.
const EmbeddedSource = "embedded"

// Loaded is a configuration together with where it came from.
type Loaded struct {
	Config GemQuestConfig
	Source string // file path, or EmbeddedSource
}

// LoadGemQuest loads Gem Quest configuration. See Load.
func LoadGemQuest(customPath string) (GemQuestConfig, error) {
	l, err := Load(customPath)
	return l.Config, err
}

// Load resolves the configuration. A non-empty customPath must exist and
// parse. Otherwise the first file found among SearchPaths wins, and the
// embedded YAML is used when there is none. A search file that exists but
// does not parse is an error rather than being skipped.
//
// Files are read over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (Loaded, error) {
	if customPath != "" {
		cfg, err := decodeFile(customPath)
		return Loaded{Config: cfg, Source: customPath}, err
	}

	for _, path := range SearchPaths() {
		cfg, err := decodeFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Loaded{Config: cfg, Source: path}, err
	}

	cfg := DefaultGemQuestConfig()
	if err := yaml.Unmarshal(defaultGemQuestYAML, &cfg); err != nil {
		return Loaded{Config: DefaultGemQuestConfig(), Source: EmbeddedSource}, nil
	}
	return Loaded{Config: cfg, Source: EmbeddedSource}, nil
}

// SearchPaths lists the config files tried when no path is given, in order:
// ~/.gemquest/configs/gemquest.yaml then ./configs/gemquest.yaml.
func SearchPaths() []string {
	var paths []string
	if dir := UserDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "configs", ConfigFile))
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

func decodeFile(path string) (GemQuestConfig, error) {
	cfg := DefaultGemQuestConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// UserDir returns ~/.gemquest, or "" when the home directory is unknown.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir)
}
