package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fivetwenty-io/econ-client/internal/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigPersister reads and writes individual keys of the YAML config file,
// leaving unknown keys untouched.
type ConfigPersister struct {
	mutex sync.Mutex
	path  string
}

// NewConfigPersister creates a persister for the config file at path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// DefaultConfigPersister persists to the config file in use, or
// $HOME/.econ/config.yml when none was loaded.
func DefaultConfigPersister() (*ConfigPersister, error) {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}

		path = filepath.Join(home, ".econ", "config.yml")
	}

	return NewConfigPersister(path), nil
}

// Path returns the config file location.
func (p *ConfigPersister) Path() string {
	return p.path
}

// Load returns the raw contents of the config file; a missing file is empty.
func (p *ConfigPersister) Load() (map[string]any, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.load()
}

// Set stores value under key and writes the file.
func (p *ConfigPersister) Set(key string, value any) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	values, err := p.load()
	if err != nil {
		return err
	}

	values[key] = value

	return p.save(values)
}

// Unset removes key and writes the file.
func (p *ConfigPersister) Unset(key string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	values, err := p.load()
	if err != nil {
		return err
	}

	delete(values, key)

	return p.save(values)
}

func (p *ConfigPersister) load() (map[string]any, error) {
	values := map[string]any{}

	// #nosec G304 -- the path is the user's own config file
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if values == nil {
		values = map[string]any{}
	}

	return values, nil
}

func (p *ConfigPersister) save(values map[string]any) error {
	err := os.MkdirAll(filepath.Dir(p.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.WriteFile(p.path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
