// Package config reads and writes the ansible-bender configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the persisted tool configuration.
type Config struct {
	DatabasePath    string            `toml:"database-path,omitempty"`
	BuildVolumes    []string          `toml:"build-volumes,omitempty"`
	RegistryMirrors map[string]string `toml:"registry-mirrors,omitempty"`
}

// BenderHome returns the directory holding the configuration and the build
// database. Overridable through ANSIBLE_BENDER_HOME.
func BenderHome() (string, error) {
	if home := os.Getenv("ANSIBLE_BENDER_HOME"); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home")
	}
	return filepath.Join(home, ".ansible-bender"), nil
}

// DefaultConfigPath returns the path of the configuration file.
func DefaultConfigPath() (string, error) {
	home, err := BenderHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.toml"), nil
}

// DefaultDatabasePath returns the build database location used when the
// configuration does not name one.
func DefaultDatabasePath() (string, error) {
	home, err := BenderHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "builds.db"), nil
}

// Read loads the configuration from path. A missing file is not an error:
// it yields the zero configuration.
func Read(path string) (Config, error) {
	cfg := Config{}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return cfg, nil
}

// Write stores the configuration at path, creating parent directories as
// needed.
func Write(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	return toml.NewEncoder(w).Encode(cfg)
}
