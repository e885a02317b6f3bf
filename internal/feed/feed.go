package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jusunglee/trainstats/internal/config"
	"github.com/jusunglee/trainstats/internal/models"
	"github.com/jusunglee/trainstats/internal/store"
)

// ErrUnsupportedFormat is returned for dataset files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// LocalTimeLayout is the timestamp layout without offset, read in the
// loader's location
const LocalTimeLayout = "2006-01-02T15:04:05"

// Dataset is the on-disk representation of a timetable
type Dataset struct {
	Connections []ConnectionRecord `yaml:"connections" json:"connections" validate:"dive"`
}

// ConnectionRecord is one connection as stored in a dataset file
type ConnectionRecord struct {
	Name     string       `yaml:"name" json:"name" validate:"required"`
	Type     string       `yaml:"type" json:"type" validate:"required"`
	Line     string       `yaml:"line" json:"line"`
	Operator string       `yaml:"operator" json:"operator"`
	Stops    []StopRecord `yaml:"stops" json:"stops" validate:"required,min=1,dive"`
}

// StopRecord is one stop as stored in a dataset file
type StopRecord struct {
	Station   string `yaml:"station" json:"station" validate:"required,station"`
	Scheduled string `yaml:"scheduled" json:"scheduled" validate:"required"`
	Actual    string `yaml:"actual" json:"actual" validate:"required"`
	Kind      string `yaml:"kind" json:"kind" validate:"omitempty,stopkind"`
}

// Loader reads dataset files into model values
type Loader struct {
	location *time.Location
	validate *validator.Validate
	logger   *slog.Logger
}

// NewLoader creates a loader that reads offset-less timestamps in loc.
// A nil logger discards log output.
func NewLoader(loc *time.Location, logger *slog.Logger) *Loader {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		location: loc,
		validate: config.NewValidator(),
		logger:   logger,
	}
}

// LoadFiles reads every file in order and concatenates their connections
func (l *Loader) LoadFiles(paths ...string) ([]models.TrainConnection, error) {
	var connections []models.TrainConnection
	for _, path := range paths {
		loaded, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		connections = append(connections, loaded...)
	}
	return connections, nil
}

// LoadInto reads the files and replaces the contents of s with them
func (l *Loader) LoadInto(s *store.Store, paths ...string) error {
	connections, err := l.LoadFiles(paths...)
	if err != nil {
		return err
	}
	s.UpdateConnections(connections)
	return nil
}

// LoadFile reads a single YAML or JSON dataset file
func (l *Loader) LoadFile(path string) ([]models.TrainConnection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var ds Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &ds)
	case ".json":
		err = json.Unmarshal(data, &ds)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	connections, err := l.Convert(ds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.Debug("Loaded dataset", "path", path, "connections", len(connections))
	return connections, nil
}

// Convert validates a decoded dataset and turns it into model values
func (l *Loader) Convert(ds Dataset) ([]models.TrainConnection, error) {
	connections := make([]models.TrainConnection, 0, len(ds.Connections))
	for i, rec := range ds.Connections {
		if err := l.validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}

		stops := make([]models.TrainStop, len(rec.Stops))
		for j, sr := range rec.Stops {
			stop, err := l.convertStop(sr)
			if err != nil {
				return nil, fmt.Errorf("connection %d (%s) stop %d: %w", i, rec.Name, j, err)
			}
			stops[j] = stop
		}

		connections = append(connections, models.TrainConnection{
			Name:     rec.Name,
			Type:     rec.Type,
			Line:     rec.Line,
			Operator: rec.Operator,
			Stops:    stops,
		})
	}
	return connections, nil
}

func (l *Loader) convertStop(sr StopRecord) (models.TrainStop, error) {
	station, err := models.ParseStation(sr.Station)
	if err != nil {
		return models.TrainStop{}, err
	}

	kind := models.Regular
	if sr.Kind != "" {
		if kind, err = models.ParseStopKind(sr.Kind); err != nil {
			return models.TrainStop{}, err
		}
	}

	scheduled, err := l.parseTime(sr.Scheduled)
	if err != nil {
		return models.TrainStop{}, fmt.Errorf("scheduled: %w", err)
	}
	actual, err := l.parseTime(sr.Actual)
	if err != nil {
		return models.TrainStop{}, fmt.Errorf("actual: %w", err)
	}

	return models.TrainStop{
		Station:   station,
		Scheduled: scheduled,
		Actual:    actual,
		Kind:      kind,
	}, nil
}

// parseTime accepts RFC 3339 timestamps and local timestamps without offset
func (l *Loader) parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(LocalTimeLayout, value, l.location); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return t, nil
}
