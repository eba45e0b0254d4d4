package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// File is where the config was read from; empty when running on defaults.
	File string `yaml:"-"`

	Home     string         `yaml:"home"`
	Storage  StorageConfig  `yaml:"storage"`
	Location LocationConfig `yaml:"location"`
	Locale   string         `yaml:"locale" default:"en"`
}

type StorageConfig struct {
	File string `yaml:"file" default:"notes.db"`
	Key  string `yaml:"key" default:"notes"`
}

// LocationConfig picks where coordinates come from: "ip" asks an IP
// geolocation service, "static" uses Latitude/Longitude, "off" disables
// lookups so every note gets the fallback location.
type LocationConfig struct {
	Mode        string        `yaml:"mode" default:"ip"`
	Latitude    float64       `yaml:"latitude"`
	Longitude   float64       `yaml:"longitude"`
	ReverseURL  string        `yaml:"reverse-url" default:"https://nominatim.openstreetmap.org/reverse"`
	IPLookupURL string        `yaml:"ip-lookup-url" default:"http://ip-api.com/json"`
	UserAgent   string        `yaml:"user-agent" default:"locanote/0.1"`
	// Timeout of 0 disables the HTTP timeout.
	Timeout time.Duration `yaml:"timeout" default:"10s"`
	// RateLimit is geocoding requests per second; 0 means unlimited.
	RateLimit float64 `yaml:"rate-limit" default:"1"`
}

const (
	ModeIP     = "ip"
	ModeStatic = "static"
	ModeOff    = "off"
)

// DefaultHome is $LOCANOTE_HOME, or ~/.locanote.
func DefaultHome() (string, error) {
	if home := os.Getenv("LOCANOTE_HOME"); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".locanote"), nil
}

// Load reads the YAML file at f. A missing file yields the defaults.
func Load(f string) (*Config, error) {
	c := new(Config)

	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if f != "" {
		realpath, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}

		file, err := os.ReadFile(realpath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "read config file failed")
		default:
			if err := yaml.Unmarshal(file, c); err != nil {
				return nil, errors.Wrap(err, "parse config file failed")
			}

			c.File = realpath
		}
	}

	// Zero is a meaningful value for these, so the second pass must not
	// replace an explicit 0 from the file. The first pass already filled
	// them when the file left them out.
	timeout, rateLimit := c.Location.Timeout, c.Location.RateLimit

	// fills fields the file set to zero values
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}

	c.Location.Timeout, c.Location.RateLimit = timeout, rateLimit

	if c.Home == "" {
		home, err := DefaultHome()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home directory")
		}

		c.Home = home
	}

	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.Location.Timeout < 0 {
		return errors.New("location.timeout must not be negative")
	}

	if c.Location.RateLimit < 0 {
		return errors.New("location.rate-limit must not be negative")
	}

	switch c.Location.Mode {
	case ModeIP, ModeStatic, ModeOff:
	default:
		return errors.Errorf("location.mode must be one of ip, static, off; got %q", c.Location.Mode)
	}

	if c.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}

	return nil
}
