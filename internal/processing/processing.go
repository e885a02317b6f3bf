// Package processing computes statistics over train connections.
//
// Every function takes its input as an iter.Seq and consumes it in a single
// pass. Sequences backed by a one-shot source are exhausted afterwards; to run
// several analyses over the same dataset, range a re-derivable sequence such
// as slices.Values or store.Store.Connections.
package processing

import (
	"iter"
	"slices"

	"github.com/jusunglee/trainstats/internal/models"
)

// CleanDataset removes duplicate connections (keeping the first occurrence),
// orders them by the scheduled time of their first stop and drops cancelled
// stops from every connection.
//
// The returned sequence is lazy: nothing is read from connections until it is
// ranged, and every range reads connections again. A connection whose stops
// were all cancelled is yielded with an empty stop list.
func CleanDataset(connections iter.Seq[models.TrainConnection]) iter.Seq[models.TrainConnection] {
	return func(yield func(models.TrainConnection) bool) {
		seen := make(map[string]struct{})
		var distinct []models.TrainConnection
		for c := range connections {
			key := Fingerprint(c)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			distinct = append(distinct, c)
		}

		slices.SortStableFunc(distinct, func(a, b models.TrainConnection) int {
			return a.FirstStop().Scheduled.Compare(b.FirstStop().Scheduled)
		})

		for _, c := range distinct {
			if !yield(withoutCancelledStops(c)) {
				return
			}
		}
	}
}

func withoutCancelledStops(c models.TrainConnection) models.TrainConnection {
	stops := make([]models.TrainStop, 0, len(c.Stops))
	for _, stop := range c.Stops {
		if stop.Kind != models.Cancelled {
			stops = append(stops, stop)
		}
	}
	return c.WithUpdatedStops(stops)
}

// WorstDelayedTrain returns the connection with the highest peak delay.
// Ties keep the connection seen first. The boolean is false for empty input.
func WorstDelayedTrain(connections iter.Seq[models.TrainConnection]) (models.TrainConnection, bool) {
	var (
		worst models.TrainConnection
		peak  int
		found bool
	)
	for c := range connections {
		if d := c.PeakDelay(); !found || d > peak {
			worst, peak, found = c, d, true
		}
	}
	return worst, found
}

// PercentOfKindStops returns the share of all stops having the given kind,
// in percent. It is 0 when there are no stops.
func PercentOfKindStops(connections iter.Seq[models.TrainConnection], kind models.StopKind) float64 {
	var matches, total int
	for c := range connections {
		for _, stop := range c.Stops {
			total++
			if stop.Kind == kind {
				matches++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matches) / float64(total) * 100
}

// AverageDelayAt averages the delay of every stop at station, or 0 if the
// station is never visited.
func AverageDelayAt(connections iter.Seq[models.TrainConnection], station models.Station) float64 {
	var acc mean
	for c := range connections {
		for _, stop := range c.Stops {
			if stop.Station == station {
				acc.add(stop.Delay())
			}
		}
	}
	return acc.value()
}

// DelayComparedToTotalTravelTimeByTransport groups connections by transport
// type and returns, per type, the percentage of actual travel time that was
// lost to delay: 100 * (actual - scheduled) / actual, with both sums taken
// over the whole group. A type whose actual travel time sums to zero maps to 0.
func DelayComparedToTotalTravelTimeByTransport(connections iter.Seq[models.TrainConnection]) map[string]float64 {
	type travelTime struct {
		scheduled, actual float64
	}

	byType := make(map[string]*travelTime)
	for c := range connections {
		tt, ok := byType[c.Type]
		if !ok {
			tt = &travelTime{}
			byType[c.Type] = tt
		}
		tt.scheduled += c.TotalTimeTraveledScheduled().Minutes()
		tt.actual += c.TotalTimeTraveledActual().Minutes()
	}

	result := make(map[string]float64, len(byType))
	for transport, tt := range byType {
		if tt.actual == 0 {
			result[transport] = 0
			continue
		}
		result[transport] = (tt.actual - tt.scheduled) * 100 / tt.actual
	}
	return result
}

// AverageDelayByHour averages stop delays grouped by the wall clock hour of
// the actual time. Hours without stops are absent from the result.
func AverageDelayByHour(connections iter.Seq[models.TrainConnection]) map[int]float64 {
	byHour := make(map[int]*mean)
	for c := range connections {
		for _, stop := range c.Stops {
			hour := stop.Actual.Hour()
			acc, ok := byHour[hour]
			if !ok {
				acc = &mean{}
				byHour[hour] = acc
			}
			acc.add(stop.Delay())
		}
	}

	result := make(map[int]float64, len(byHour))
	for hour, acc := range byHour {
		result[hour] = acc.value()
	}
	return result
}

type mean struct {
	sum   int
	count int
}

func (m *mean) add(v int) {
	m.sum += v
	m.count++
}

func (m *mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.count)
}
