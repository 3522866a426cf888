package main

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mewa-lang/mewa"
)

// config holds settings from the config file and command line. Flags
// override the file.
type config struct {
	Prompt        string  `yaml:"prompt"`
	PageSize      int     `yaml:"page_size"`
	Epsilon       float64 `yaml:"epsilon"`
	Echo          bool    `yaml:"echo"`
	GroupDigits   bool    `yaml:"group_digits"`
	StopOnNewline bool    `yaml:"stop_on_newline"`
}

func defaultConfig() config {
	return config{
		Prompt:   "> ",
		PageSize: mewa.DefaultPageSize,
		Epsilon:  mewa.DefaultEpsilon,
	}
}

// configPath returns the default location of the config file, or the empty
// string if there is no home directory.
func configPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "mewa", "config.yml")
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(h, ".config", "mewa", "config.yml")
}

// loadConfig reads the config file at path over cfg. A missing file is an
// error only if required.
func loadConfig(cfg *config, path string, required bool) error {
	f, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "opening config")
	}
	defer f.Close()
	return decodeConfig(cfg, f, path)
}

// decodeConfig decodes YAML from r over cfg. Unknown keys are errors.
func decodeConfig(cfg *config, r io.Reader, name string) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrapf(err, "config %s", name)
	}
	return errors.Wrapf(cfg.validate(), "config %s", name)
}

func (cfg *config) validate() error {
	if cfg.PageSize <= 0 {
		return errors.Errorf("page size must be positive, not %d", cfg.PageSize)
	}
	if cfg.Epsilon <= 0 {
		return errors.Errorf("epsilon must be positive, not %g", cfg.Epsilon)
	}
	return nil
}

// override copies the setting named by a flag from fl.
func (cfg *config) override(name string, fl *config) {
	switch name {
	case "prompt":
		cfg.Prompt = fl.Prompt
	case "page":
		cfg.PageSize = fl.PageSize
	case "eps":
		cfg.Epsilon = fl.Epsilon
	case "echo":
		cfg.Echo = fl.Echo
	case "group":
		cfg.GroupDigits = fl.GroupDigits
	case "n":
		cfg.StopOnNewline = fl.StopOnNewline
	}
}

func (cfg *config) parseOptions() []mewa.ParseOption {
	opts := []mewa.ParseOption{mewa.PageSize(cfg.PageSize)}
	if cfg.StopOnNewline {
		opts = append(opts, mewa.StopOn('\n'))
	}
	return opts
}
