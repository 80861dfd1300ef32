package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultExitCode = 64
	DefaultPrefix   = "ERROR"
)

// Config holds settings for the golean command line tools.
type Config struct {
	// Verbosity is passed to commonlog.Configure.
	Verbosity int `yaml:"verbosity"`
	// ExitCode is returned when any failure was reported.
	ExitCode int          `yaml:"exit_code"`
	Report   ReportConfig `yaml:"report"`
}

type ReportConfig struct {
	Prefix  string `yaml:"prefix"`
	Excerpt bool   `yaml:"excerpt"`
}

func Default() *Config {
	return &Config{
		ExitCode: DefaultExitCode,
		Report: ReportConfig{
			Prefix:  DefaultPrefix,
			Excerpt: true,
		},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(content []byte) (*Config, error) {
	cfg := Default()
	if err := yamlDecodeStrict(string(content), cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ExitCode < 1 || c.ExitCode > 125 {
		return fmt.Errorf("exit_code must be in 1..125, got %d", c.ExitCode)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

func yamlDecodeStrict(content string, out any) error {
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	// Reject multi-document YAML to keep behavior deterministic.
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return errors.New("multiple YAML documents are not allowed")
	} else if !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
