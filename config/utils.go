package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// ToYaml formats the configuration into YAML and returns the bytes.
func ToYaml(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// ToYamlFile writes the configuration to a YAML file.
func ToYamlFile(c Config, p string) error {
	b, err := ToYaml(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0600)
}

// ToYamlTempFile writes the configuration to a YAML file named "name"
// in a new temporary directory. Calling cleanup removes the directory.
func ToYamlTempFile(c Config, name string) (p string, cleanup func(), err error) {
	tmpdir, err := os.MkdirTemp("", "simbatch-config-")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() {
		os.RemoveAll(tmpdir)
	}

	p = filepath.Join(tmpdir, name)
	if err := ToYamlFile(c, p); err != nil {
		cleanup()
		return "", nil, err
	}
	return p, cleanup, nil
}

// Parse parses a YAML doc into the given Config instance.
// Fields missing from the doc keep their current values.
func Parse(raw []byte, conf *Config) error {
	if err := yaml.Unmarshal(raw, conf); err != nil {
		return err
	}
	return conf.Validate()
}

// ParseFile parses a simbatch config file, which is formatted in YAML,
// into the given Config instance. An empty path is a no-op.
func ParseFile(relpath string, conf *Config) error {
	if relpath == "" {
		return nil
	}

	// Try to get absolute path. If it fails, fall back to relative path.
	path, abserr := filepath.Abs(relpath)
	if abserr != nil {
		path = relpath
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config at path %s: %w", path, err)
	}

	if err := Parse(source, conf); err != nil {
		return fmt.Errorf("failed to parse config at path %s: %w", path, err)
	}
	return nil
}
