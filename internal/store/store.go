package store

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jusunglee/trainstats/internal/models"
)

// Store holds a materialized set of train connections so that the same
// dataset can be analyzed any number of times
type Store struct {
	mu          sync.RWMutex
	connections []models.TrainConnection
	byType      map[string][]int
	types       []string
	stations    []models.Station
	lastUpdate  time.Time
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		byType: make(map[string][]int),
	}
}

// UpdateConnections replaces the stored connections
func (s *Store) UpdateConnections(connections []models.TrainConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections = slices.Clone(connections)
	s.lastUpdate = time.Now()

	// Rebuild indices
	s.byType = make(map[string][]int)
	stationSet := make(map[models.Station]bool)

	for i, conn := range s.connections {
		s.byType[conn.Type] = append(s.byType[conn.Type], i)
		for _, stop := range conn.Stops {
			stationSet[stop.Station] = true
		}
	}

	s.types = make([]string, 0, len(s.byType))
	for t := range s.byType {
		s.types = append(s.types, t)
	}
	sort.Strings(s.types)

	s.stations = make([]models.Station, 0, len(stationSet))
	for station := range stationSet {
		s.stations = append(s.stations, station)
	}
	slices.Sort(s.stations)
}

// Connections returns a fresh sequence over the stored connections. Each call
// sees the data as it was when Connections was called.
func (s *Store) Connections() iter.Seq[models.TrainConnection] {
	s.mu.RLock()
	snapshot := s.connections
	s.mu.RUnlock()

	return slices.Values(snapshot)
}

// Len returns the number of stored connections
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// GetConnectionsByType returns all connections of a transport type.
// Labels match exactly, the same way the statistics group them.
func (s *Store) GetConnectionsByType(transport string) ([]models.TrainConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indices, ok := s.byType[transport]
	if !ok {
		return nil, fmt.Errorf("transport type %s not found", transport)
	}

	result := make([]models.TrainConnection, len(indices))
	for i, idx := range indices {
		result[i] = s.connections[idx]
	}

	return result, nil
}

// GetTypes returns all transport types, sorted
func (s *Store) GetTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.types))
	copy(result, s.types)
	return result
}

// GetStations returns every station visited by a stored connection, sorted
func (s *Store) GetStations() []models.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Station, len(s.stations))
	copy(result, s.stations)
	return result
}

// GetLastUpdate returns the last update time
func (s *Store) GetLastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}
