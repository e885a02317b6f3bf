package trainstats

import (
	"log/slog"
	"time"

	"github.com/jusunglee/trainstats/internal/models"
)

// Client defines the interface for querying train delay statistics
// Every query runs against the full loaded dataset
type Client interface {
	CleanDataset() []models.TrainConnection
	WorstDelayedTrain() (models.TrainConnection, bool)
	PercentOfKindStops(kind models.StopKind) float64
	AverageDelayAt(station models.Station) float64
	DelayComparedToTotalTravelTimeByTransport() map[string]float64
	AverageDelayByHour() map[int]float64

	Report(station models.Station, kind models.StopKind) Report

	Len() int
	GetConnectionsByType(transport string) ([]models.TrainConnection, error)
	GetTypes() []string
	GetStations() []models.Station
	GetLastUpdate() time.Time
}

// Config holds configuration for the local client
// Dataset timestamps without offset are read in Location
type Config struct {
	Datasets []string
	Location *time.Location
	Logger   *slog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Location: time.UTC,
		Logger:   slog.Default(),
	}
}

// Report collects the results of every statistic for one dataset
type Report struct {
	Connections         []models.ConnectionResponse `json:"connections"`
	WorstDelayedTrain   *models.ConnectionResponse  `json:"worst_delayed_train,omitempty"`
	Kind                models.StopKind             `json:"kind"`
	PercentOfKindStops  float64                     `json:"percent_of_kind_stops"`
	Station             models.Station              `json:"station"`
	AverageDelayAt      float64                     `json:"average_delay_at"`
	DelayRatioByType    map[string]float64          `json:"delay_ratio_by_type"`
	AverageDelayByHour  map[int]float64             `json:"average_delay_by_hour"`
	GeneratedFromUpdate time.Time                   `json:"updated"`
}
