package config

import (
	"fmt"
	"os"

	"github.com/openkraft/javaqc/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLLoader implements domain.ConfigLoader by reading a YAML file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the file at path. An empty path yields an empty Config so
// that flags alone can drive a run; a path that was given but cannot be
// read is an error.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	if path == "" {
		return domain.Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
