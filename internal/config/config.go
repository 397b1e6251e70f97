package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no config file exists at the searched places.
var ErrNotFound = errors.New("no config file")

// FileConfig is the on-disk YAML configuration shape for zerowidth.
type FileConfig struct {
	Alphabet        *string `yaml:"alphabet,omitempty"`
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Enable          *string `yaml:"enable,omitempty"`
	Disable         *string `yaml:"disable,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
	FailOn          *string `yaml:"fail_on,omitempty"`
	LogLevel        *string `yaml:"log_level,omitempty"`

	Provenance *ProvenanceConfig `yaml:"provenance,omitempty"`
}

// ProvenanceConfig holds defaults for the stamp command.
type ProvenanceConfig struct {
	// Href is recorded as the source of stamped text when --href is not given.
	Href *string `yaml:"href,omitempty"`
}

// LocalNames are the repo-local config file names in search order.
var LocalNames = []string{".zerowidth.yml", ".zerowidth.yaml", "zerowidth.yml", "zerowidth.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNotFound
}

// GlobalPath returns the global config location under XDG_CONFIG_HOME or
// ~/.config.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("no config dir")
	}
	return filepath.Join(base, "zerowidth", "config.yml"), nil
}

// LoadGlobal loads the global config file.
func LoadGlobal() (FileConfig, error) {
	p, err := GlobalPath()
	if err != nil {
		return FileConfig{}, err
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// Href returns the configured provenance href or "".
func (fc FileConfig) Href() string {
	if fc.Provenance == nil || fc.Provenance.Href == nil {
		return ""
	}
	return *fc.Provenance.Href
}

// Sample is the file written by "config init".
const Sample = `# zerowidth configuration
alphabet: quad          # quad | binary
# include: "**/*.md,**/*.txt"
# exclude: "**/testdata/**"
max_bytes: 1048576
default_excludes: true
# enable: payload,provenance
# disable: stray_run
fail_on: medium         # low | medium | high
log_level: warn         # debug | info | warn | error
# provenance:
#   href: https://example.com
`

// WriteSample writes Sample to path unless a file already exists there.
func WriteSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Sample), 0o644)
}
