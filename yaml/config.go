// Package yaml loads and writes pmst configuration files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/pmst"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML file over pmst.DefaultConfig and validates the
// result. Keys absent from the file keep their default. A rules list in
// the file replaces the default rules; selector maps are merged per kind.
func LoadConfig(path string) (*pmst.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pmst.Errorf(pmst.ENOTFOUND, "config file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML over pmst.DefaultConfig and validates it.
func ParseConfig(data []byte) (*pmst.Config, error) {
	cfg := pmst.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pmst.Errorf(pmst.EINVALID, "failed to parse config file: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig encodes cfg as YAML.
func WriteConfig(w io.Writer, cfg *pmst.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return enc.Close()
}
