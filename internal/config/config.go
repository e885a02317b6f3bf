// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every setting has a default, so a missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jusunglee/trainstats/internal/models"
)

// Environment variables read by Load
const (
	EnvConfigPath = "TRAINSTATS_CONFIG"
	EnvTimezone   = "TRAINSTATS_TZ"
)

// DefaultPath is used when neither a flag nor EnvConfigPath names a file
const DefaultPath = "config.yml"

// ErrNoDataset is returned when no dataset file was configured
var ErrNoDataset = errors.New("no dataset configured")

// ReportConfig selects the parameters of the parameterized statistics
type ReportConfig struct {
	Station string `yaml:"station" validate:"required,station"`
	Kind    string `yaml:"kind" validate:"required,stopkind"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Datasets []string     `yaml:"datasets" validate:"dive,required"`
	Timezone string       `yaml:"timezone" validate:"required,timezone"`
	Report   ReportConfig `yaml:"report"`
}

// Default returns the configuration used when no file is present
func Default() AppConfig {
	return AppConfig{
		Timezone: "Europe/Berlin",
		Report: ReportConfig{
			Station: string(models.NuernbergHbf),
			Kind:    models.Cancelled.String(),
		},
	}
}

// NewValidator returns a validator that also understands the "station" and
// "stopkind" tags. Both accept exactly what the models parsers accept.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil function.
	_ = v.RegisterValidation("station", func(fl validator.FieldLevel) bool {
		_, err := models.ParseStation(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("stopkind", func(fl validator.FieldLevel) bool {
		_, err := models.ParseStopKind(fl.Field().String())
		return err == nil
	})
	return v
}

// Load reads the configuration from path. An empty path falls back to
// EnvConfigPath and then DefaultPath. Values absent from the file keep their
// defaults, and EnvTimezone overrides the configured timezone.
func Load(path string) (AppConfig, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	default:
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	if tz := strings.TrimSpace(os.Getenv(EnvTimezone)); tz != "" {
		cfg.Timezone = tz
	}
	cfg.Report.Station = strings.ToUpper(strings.TrimSpace(cfg.Report.Station))
	cfg.Report.Kind = strings.ToUpper(strings.TrimSpace(cfg.Report.Kind))

	if err := NewValidator().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Location returns the timezone used to interpret dataset timestamps
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Station returns the configured report station
func (c AppConfig) Station() (models.Station, error) {
	return models.ParseStation(c.Report.Station)
}

// Kind returns the configured report stop kind
func (c AppConfig) Kind() (models.StopKind, error) {
	return models.ParseStopKind(c.Report.Kind)
}

// DatasetPaths returns args when given, otherwise the configured datasets
func (c AppConfig) DatasetPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(c.Datasets) == 0 {
		return nil, ErrNoDataset
	}
	return c.Datasets, nil
}
