package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrUnknownStopKind is returned when a stop kind label is not recognised
var ErrUnknownStopKind = errors.New("unknown stop kind")

// StopKind is the status classification of a stop
type StopKind int

const (
	Regular StopKind = iota
	Cancelled
	Additional
)

var stopKindNames = [...]string{
	Regular:    "REGULAR",
	Cancelled:  "CANCELLED",
	Additional: "ADDITIONAL",
}

// AllStopKinds returns every known stop kind
func AllStopKinds() []StopKind {
	return []StopKind{Regular, Cancelled, Additional}
}

func (k StopKind) String() string {
	if k < 0 || int(k) >= len(stopKindNames) {
		return fmt.Sprintf("StopKind(%d)", int(k))
	}
	return stopKindNames[k]
}

// ParseStopKind converts a label such as "CANCELLED" into a StopKind
func ParseStopKind(s string) (StopKind, error) {
	label := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range stopKindNames {
		if name == label {
			return StopKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStopKind, s)
}

func (k StopKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(stopKindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStopKind, int(k))
	}
	return []byte(stopKindNames[k]), nil
}

func (k *StopKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStopKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TrainStop represents one visit of a connection at a station
type TrainStop struct {
	Station   Station   `json:"station"`
	Scheduled time.Time `json:"scheduled"`
	Actual    time.Time `json:"actual"`
	Kind      StopKind  `json:"kind"`
}

// Delay returns actual minus scheduled time in whole minutes.
// Early arrivals yield a negative delay.
func (s TrainStop) Delay() int {
	return int(s.Actual.Sub(s.Scheduled) / time.Minute)
}

// Equal reports whether two stops have the same attributes
func (s TrainStop) Equal(other TrainStop) bool {
	return s.Station == other.Station &&
		s.Kind == other.Kind &&
		s.Scheduled.Equal(other.Scheduled) &&
		s.Actual.Equal(other.Actual)
}

// TrainConnection represents one scheduled journey
type TrainConnection struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Line     string      `json:"line"`
	Operator string      `json:"operator"`
	Stops    []TrainStop `json:"stops"`
}

// FirstStop returns the first stop of the route, or the zero stop if the
// connection has none (possible after cancelled stops were filtered out).
func (c TrainConnection) FirstStop() TrainStop {
	if len(c.Stops) == 0 {
		return TrainStop{}
	}
	return c.Stops[0]
}

// TotalTimeTraveledScheduled is the scheduled time between first and last stop
func (c TrainConnection) TotalTimeTraveledScheduled() time.Duration {
	if len(c.Stops) == 0 {
		return 0
	}
	return c.Stops[len(c.Stops)-1].Scheduled.Sub(c.Stops[0].Scheduled)
}

// TotalTimeTraveledActual is the actual time between first and last stop
func (c TrainConnection) TotalTimeTraveledActual() time.Duration {
	if len(c.Stops) == 0 {
		return 0
	}
	return c.Stops[len(c.Stops)-1].Actual.Sub(c.Stops[0].Actual)
}

// WithUpdatedStops returns a copy of the connection carrying the given stops.
// The receiver is left untouched.
func (c TrainConnection) WithUpdatedStops(stops []TrainStop) TrainConnection {
	c.Stops = slices.Clone(stops)
	return c
}

// Equal reports structural equality, including the full stop list
func (c TrainConnection) Equal(other TrainConnection) bool {
	if c.Name != other.Name || c.Type != other.Type || c.Line != other.Line || c.Operator != other.Operator {
		return false
	}
	return slices.EqualFunc(c.Stops, other.Stops, TrainStop.Equal)
}

// ConnectionResponse is the report format for a connection
type ConnectionResponse struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Line      string         `json:"line"`
	Operator  string         `json:"operator"`
	Departure time.Time      `json:"departure"`
	PeakDelay int            `json:"peak_delay"`
	Stops     []StopResponse `json:"stops"`
}

// StopResponse is the report format for a stop
type StopResponse struct {
	Station   Station   `json:"station"`
	Name      string    `json:"name"`
	Scheduled time.Time `json:"scheduled"`
	Actual    time.Time `json:"actual"`
	Kind      StopKind  `json:"kind"`
	Delay     int       `json:"delay"`
}

// PeakDelay returns the largest stop delay, or 0 without stops
func (c TrainConnection) PeakDelay() int {
	if len(c.Stops) == 0 {
		return 0
	}
	peak := c.Stops[0].Delay()
	for _, stop := range c.Stops[1:] {
		if d := stop.Delay(); d > peak {
			peak = d
		}
	}
	return peak
}

// ConvertToResponse converts a TrainConnection to ConnectionResponse format
func (c TrainConnection) ConvertToResponse() ConnectionResponse {
	stops := make([]StopResponse, len(c.Stops))
	for i, stop := range c.Stops {
		stops[i] = StopResponse{
			Station:   stop.Station,
			Name:      stop.Station.DisplayName(),
			Scheduled: stop.Scheduled,
			Actual:    stop.Actual,
			Kind:      stop.Kind,
			Delay:     stop.Delay(),
		}
	}

	return ConnectionResponse{
		Name:      c.Name,
		Type:      c.Type,
		Line:      c.Line,
		Operator:  c.Operator,
		Departure: c.FirstStop().Scheduled,
		PeakDelay: c.PeakDelay(),
		Stops:     stops,
	}
}
