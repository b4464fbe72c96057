// Package config handles loading and managing application configuration
// from YAML files and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ludhianaseo/reviewqr/qr"
	"github.com/ludhianaseo/reviewqr/review"
)

// Built-in business identity. Both can be overridden, but nothing needs to be
// configured for the program to run.
const (
	DefaultBusinessName = "Ludhiana SEO Expert"
	DefaultPlaceID      = "ChIJP1UfWFWDGjkRxFYT32EgTVI"
)

// QR holds the QR rendering settings.
type QR struct {
	Level       string `yaml:"level"`
	BoxSize     int    `yaml:"box_size"`
	Border      int    `yaml:"border"`
	DisplaySize int    `yaml:"display_size"`
}

// Config holds all application configuration values.
type Config struct {
	Port         int    `yaml:"port"`
	BusinessName string `yaml:"business_name"`
	PlaceID      string `yaml:"place_id"`
	PhrasesFile  string `yaml:"phrases_file"`
	LogLevel     string `yaml:"log_level"`
	QR           QR     `yaml:"qr"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		Port:         8556,
		BusinessName: DefaultBusinessName,
		PlaceID:      DefaultPlaceID,
		LogLevel:     "info",
		QR: QR{
			Level:       "L",
			BoxSize:     10,
			Border:      4,
			DisplaySize: 200,
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Environment variables with the
// REVIEWQR_ prefix override any file or default values.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// Missing file: keep the defaults.
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies REVIEWQR_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REVIEWQR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("REVIEWQR_BUSINESS_NAME"); v != "" {
		cfg.BusinessName = v
	}
	if v := os.Getenv("REVIEWQR_PLACE_ID"); v != "" {
		cfg.PlaceID = v
	}
	if v := os.Getenv("REVIEWQR_PHRASES_FILE"); v != "" {
		cfg.PhrasesFile = v
	}
	if v := os.Getenv("REVIEWQR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REVIEWQR_QR_LEVEL"); v != "" {
		cfg.QR.Level = v
	}
	if v := os.Getenv("REVIEWQR_QR_DISPLAY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QR.DisplaySize = n
		}
	}
}

// Validate checks that the configuration can drive the generate action.
func (c *Config) Validate() error {
	var errs []error
	if c.BusinessName == "" {
		errs = append(errs, errors.New("business_name is required"))
	}
	if c.PlaceID == "" {
		errs = append(errs, errors.New("place_id is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.QR.BoxSize <= 0 {
		errs = append(errs, fmt.Errorf("qr.box_size must be positive, got %d", c.QR.BoxSize))
	}
	if c.QR.Border < 0 {
		errs = append(errs, fmt.Errorf("qr.border must not be negative, got %d", c.QR.Border))
	}
	if c.QR.DisplaySize < 0 {
		errs = append(errs, fmt.Errorf("qr.display_size must not be negative, got %d", c.QR.DisplaySize))
	} else if floor := qr.MinDisplaySize(c.QR.Border); c.QR.DisplaySize > 0 && c.QR.DisplaySize < floor {
		errs = append(errs, fmt.Errorf("qr.display_size must be 0 or at least %d, got %d", floor, c.QR.DisplaySize))
	}
	if _, err := qr.ParseLevel(c.QR.Level); err != nil {
		errs = append(errs, fmt.Errorf("qr.level: %w", err))
	}
	if c.BusinessName != "" {
		if book, err := c.PhraseBook(); err != nil {
			errs = append(errs, fmt.Errorf("phrases_file: %w", err))
		} else if err := book.CheckBusiness(c.BusinessName); err != nil {
			errs = append(errs, fmt.Errorf("business_name: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// QROptions converts the QR section into encoder options. Validate must have
// succeeded.
func (c *Config) QROptions() qr.Options {
	level, _ := qr.ParseLevel(c.QR.Level)
	return qr.Options{
		Level:       level,
		BoxSize:     c.QR.BoxSize,
		Border:      c.QR.Border,
		DisplaySize: c.QR.DisplaySize,
	}
}

// PhraseBook returns the phrase book from PhrasesFile, or the built-in one
// when no file is configured.
func (c *Config) PhraseBook() (review.PhraseBook, error) {
	if c.PhrasesFile == "" {
		return review.DefaultPhraseBook(), nil
	}
	return review.LoadPhraseBook(c.PhrasesFile)
}
