package config

import (
	"os"
	"path/filepath"
)

// Loader resolves and reads the configuration file.
type Loader struct {
	Version      string // build version; "dev" enables the working-directory file
	OverridePath string // compile-time override, set with -ldflags -X
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the configuration file if one exists. A missing file is not an
// error; the defaults are returned.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the first configuration file that exists, or the
// empty string. Probe order: the compile-time override, $INKBOARD_CONFIG,
// .inkboardrc in the working directory on dev builds, then the user config
// directory.
func (l *Loader) GetConfigPath() string {
	candidates := []string{l.OverridePath, os.Getenv("INKBOARD_CONFIG")}

	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(wd, ".inkboardrc"))
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "inkboard", "config.rc"),
			filepath.Join(home, ".config", "inkboard", "inkboard.rc"),
		)
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
