package trainstats

import (
	"fmt"
	"slices"
	"time"

	"github.com/jusunglee/trainstats/internal/feed"
	"github.com/jusunglee/trainstats/internal/models"
	"github.com/jusunglee/trainstats/internal/processing"
	"github.com/jusunglee/trainstats/internal/store"
)

// LocalClient implements the Client interface over an in-memory dataset
type LocalClient struct {
	store *store.Store
}

var _ Client = (*LocalClient)(nil)

// NewLocal creates a client and loads the configured dataset files
func NewLocal(config Config) (*LocalClient, error) {
	s := store.NewStore()

	loader := feed.NewLoader(config.Location, config.Logger)
	if err := loader.LoadInto(s, config.Datasets...); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	return &LocalClient{store: s}, nil
}

// NewFromConnections creates a client over already loaded connections
func NewFromConnections(connections []models.TrainConnection) *LocalClient {
	s := store.NewStore()
	s.UpdateConnections(connections)
	return &LocalClient{store: s}
}

func (c *LocalClient) CleanDataset() []models.TrainConnection {
	return slices.Collect(processing.CleanDataset(c.store.Connections()))
}

func (c *LocalClient) WorstDelayedTrain() (models.TrainConnection, bool) {
	return processing.WorstDelayedTrain(c.store.Connections())
}

func (c *LocalClient) PercentOfKindStops(kind models.StopKind) float64 {
	return processing.PercentOfKindStops(c.store.Connections(), kind)
}

func (c *LocalClient) AverageDelayAt(station models.Station) float64 {
	return processing.AverageDelayAt(c.store.Connections(), station)
}

func (c *LocalClient) DelayComparedToTotalTravelTimeByTransport() map[string]float64 {
	return processing.DelayComparedToTotalTravelTimeByTransport(c.store.Connections())
}

func (c *LocalClient) AverageDelayByHour() map[int]float64 {
	return processing.AverageDelayByHour(c.store.Connections())
}

// Report runs every statistic over the raw dataset; the connection list is
// the cleaned dataset.
func (c *LocalClient) Report(station models.Station, kind models.StopKind) Report {
	cleaned := c.CleanDataset()
	connections := make([]models.ConnectionResponse, len(cleaned))
	for i, conn := range cleaned {
		connections[i] = conn.ConvertToResponse()
	}

	report := Report{
		Connections:         connections,
		Kind:                kind,
		PercentOfKindStops:  c.PercentOfKindStops(kind),
		Station:             station,
		AverageDelayAt:      c.AverageDelayAt(station),
		DelayRatioByType:    c.DelayComparedToTotalTravelTimeByTransport(),
		AverageDelayByHour:  c.AverageDelayByHour(),
		GeneratedFromUpdate: c.store.GetLastUpdate(),
	}
	if worst, ok := c.WorstDelayedTrain(); ok {
		response := worst.ConvertToResponse()
		report.WorstDelayedTrain = &response
	}
	return report
}

func (c *LocalClient) Len() int {
	return c.store.Len()
}

// GetConnectionsByType returns the raw connections whose type label is
// exactly transport
func (c *LocalClient) GetConnectionsByType(transport string) ([]models.TrainConnection, error) {
	return c.store.GetConnectionsByType(transport)
}

// ForType returns a client over the connections of one transport type
func (c *LocalClient) ForType(transport string) (*LocalClient, error) {
	connections, err := c.GetConnectionsByType(transport)
	if err != nil {
		return nil, err
	}
	return NewFromConnections(connections), nil
}

func (c *LocalClient) GetTypes() []string {
	return c.store.GetTypes()
}

func (c *LocalClient) GetStations() []models.Station {
	return c.store.GetStations()
}

func (c *LocalClient) GetLastUpdate() time.Time {
	return c.store.GetLastUpdate()
}
