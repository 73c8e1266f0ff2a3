// Package config loads the settings shared by the command line and the desktop window.
// Values are resolved in the following order, the last one winning:
// built-in defaults, YAML configuration file, environment variables (optionally
// read from a .env file) and finally command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/esimov/img2pdf"
	"github.com/esimov/img2pdf/utils"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "img2pdf.yaml"

// Environment variables overriding the file settings.
const (
	EnvOutput     = "IMG2PDF_OUTPUT"
	EnvDir        = "IMG2PDF_DIR"
	EnvThumbSize  = "IMG2PDF_THUMB_SIZE"
	EnvTimeout    = "IMG2PDF_TIMEOUT"
	EnvOpenFolder = "IMG2PDF_OPEN_FOLDER"
	EnvExtensions = "IMG2PDF_EXTENSIONS"
)

// Config holds the application settings.
type Config struct {
	Output     string        `yaml:"output"`
	Dir        string        `yaml:"dir"`
	ThumbSize  int           `yaml:"thumb_size"`
	Timeout    time.Duration `yaml:"timeout"`
	OpenFolder bool          `yaml:"open_folder"`
	Extensions []string      `yaml:"extensions"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output:     "output.pdf",
		ThumbSize:  img2pdf.DefaultThumbSize,
		Timeout:    img2pdf.DefaultTimeout,
		Extensions: append([]string(nil), utils.DefaultExtensions...),
	}
}

// Load builds the configuration. An empty path means DefaultFile, which may be absent;
// an explicitly provided file has to exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse the config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("unable to read the config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvOutput); ok {
		c.Output = v
	}
	if v, ok := os.LookupEnv(EnvDir); ok {
		c.Dir = v
	}
	if v, ok := os.LookupEnv(EnvThumbSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvThumbSize, v, err)
		}
		c.ThumbSize = n
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v, ok := os.LookupEnv(EnvOpenFolder); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvOpenFolder, v, err)
		}
		c.OpenFolder = b
	}
	if v, ok := os.LookupEnv(EnvExtensions); ok {
		c.Extensions = ParseExtensions(v)
	}
	return nil
}

// Validate checks the settings for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.ThumbSize <= 0 {
		return fmt.Errorf("thumbnail size should be positive, got %d", c.ThumbSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("download timeout should be positive, got %v", c.Timeout)
	}
	if len(c.Extensions) == 0 {
		return errors.New("at least one image extension should be allowed")
	}
	return nil
}

// Options converts the settings into pipeline options.
func (c *Config) Options() img2pdf.Options {
	return img2pdf.Options{
		Dir:       c.Dir,
		ThumbSize: c.ThumbSize,
		Timeout:   c.Timeout,
	}
}

// ParseExtensions splits a comma separated extension list, normalizing
// every entry to a lower case value with a leading dot.
func ParseExtensions(s string) []string {
	var exts []string
	for _, e := range strings.Split(s, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
