package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2022, 12, 1, hour, minute, 0, 0, time.UTC)
}

func TestTrainStopDelay(t *testing.T) {
	tests := []struct {
		name      string
		scheduled time.Time
		actual    time.Time
		expected  int
	}{
		{"on time", at(10, 0), at(10, 0), 0},
		{"late", at(12, 20), at(13, 0), 40},
		{"early", at(12, 20), at(12, 15), -5},
		{"partial minute truncated", at(10, 0), at(10, 0).Add(90 * time.Second), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop := TrainStop{Station: MuenchenHbf, Scheduled: tt.scheduled, Actual: tt.actual}
			if got := stop.Delay(); got != tt.expected {
				t.Errorf("Delay() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTrainConnectionDerivedValues(t *testing.T) {
	conn := TrainConnection{
		Name: "ICE 2", Type: "ICE", Line: "2", Operator: "DB",
		Stops: []TrainStop{
			{Station: MuenchenHbf, Scheduled: at(11, 0), Actual: at(11, 0), Kind: Regular},
			{Station: NuernbergHbf, Scheduled: at(11, 30), Actual: at(12, 0), Kind: Regular},
		},
	}

	if conn.FirstStop().Station != MuenchenHbf {
		t.Errorf("Expected first stop %s, got %s", MuenchenHbf, conn.FirstStop().Station)
	}
	if got := conn.TotalTimeTraveledScheduled(); got != 30*time.Minute {
		t.Errorf("Expected scheduled travel time 30m, got %v", got)
	}
	if got := conn.TotalTimeTraveledActual(); got != time.Hour {
		t.Errorf("Expected actual travel time 1h, got %v", got)
	}
	if got := conn.PeakDelay(); got != 30 {
		t.Errorf("Expected peak delay 30, got %d", got)
	}

	empty := conn.WithUpdatedStops(nil)
	if !empty.FirstStop().Scheduled.IsZero() {
		t.Error("Expected zero first stop for empty connection")
	}
	if empty.TotalTimeTraveledActual() != 0 || empty.TotalTimeTraveledScheduled() != 0 {
		t.Error("Expected zero travel time for empty connection")
	}
	if empty.PeakDelay() != 0 {
		t.Error("Expected zero peak delay for empty connection")
	}
}

func TestWithUpdatedStopsLeavesOriginal(t *testing.T) {
	stops := []TrainStop{
		{Station: MuenchenHbf, Scheduled: at(12, 0), Actual: at(12, 0), Kind: Regular},
		{Station: AugsburgHbf, Scheduled: at(12, 20), Actual: at(13, 0), Kind: Cancelled},
	}
	original := TrainConnection{Name: "ICE 3", Type: "ICE", Line: "3", Operator: "DB", Stops: stops}

	updated := original.WithUpdatedStops(stops[:1])
	updated.Stops[0].Kind = Additional

	if len(original.Stops) != 2 {
		t.Fatalf("Original connection lost stops: %d", len(original.Stops))
	}
	if original.Stops[0].Kind != Regular {
		t.Error("Updating the copy modified the original stop list")
	}
	if updated.Name != original.Name || updated.Type != original.Type || updated.Operator != original.Operator {
		t.Error("Connection attributes were not carried over")
	}
}

func TestTrainConnectionEqual(t *testing.T) {
	base := TrainConnection{
		Name: "ICE 1", Type: "ICE", Line: "1", Operator: "DB",
		Stops: []TrainStop{{Station: MuenchenHbf, Scheduled: at(10, 0), Actual: at(10, 0)}},
	}
	same := base.WithUpdatedStops(base.Stops)
	if !base.Equal(same) {
		t.Error("Expected identical connections to be equal")
	}

	otherZone := base.WithUpdatedStops([]TrainStop{{
		Station:   MuenchenHbf,
		Scheduled: at(10, 0).In(time.FixedZone("CET", 3600)),
		Actual:    at(10, 0).In(time.FixedZone("CET", 3600)),
	}})
	if !base.Equal(otherZone) {
		t.Error("Expected same instants in different zones to be equal")
	}

	renamed := base
	renamed.Name = "ICE 9"
	if base.Equal(renamed) {
		t.Error("Expected different names to differ")
	}

	moreStops := base.WithUpdatedStops([]TrainStop{
		base.Stops[0],
		{Station: NuernbergHbf, Scheduled: at(10, 30), Actual: at(10, 30)},
	})
	if base.Equal(moreStops) {
		t.Error("Expected different stop lists to differ")
	}
}

func TestStopKindText(t *testing.T) {
	for _, kind := range AllStopKinds() {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", kind, err)
		}
		var parsed StopKind
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if parsed != kind {
			t.Errorf("Round trip of %v gave %v", kind, parsed)
		}
	}

	if k, err := ParseStopKind(" cancelled "); err != nil || k != Cancelled {
		t.Errorf("ParseStopKind lowercase = %v, %v", k, err)
	}
	if _, err := ParseStopKind("DELAYED"); !errors.Is(err, ErrUnknownStopKind) {
		t.Errorf("Expected ErrUnknownStopKind, got %v", err)
	}
	if got := StopKind(7).String(); got != "StopKind(7)" {
		t.Errorf("Unexpected String() for unknown kind: %s", got)
	}
}

func TestParseStation(t *testing.T) {
	station, err := ParseStation("nuernberg_hbf")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if station != NuernbergHbf {
		t.Errorf("Expected %s, got %s", NuernbergHbf, station)
	}
	if station.DisplayName() != "Nürnberg Hbf" {
		t.Errorf("Unexpected display name %q", station.DisplayName())
	}

	if _, err := ParseStation("ATLANTIS"); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("Expected ErrUnknownStation, got %v", err)
	}
	if Station("ATLANTIS").DisplayName() != "ATLANTIS" {
		t.Error("Unknown station should display its identifier")
	}

	for _, s := range AllStations() {
		if !s.Known() {
			t.Errorf("Catalog station %s is not known", s)
		}
	}
}

func TestConnectionConvertToResponse(t *testing.T) {
	conn := TrainConnection{
		Name: "ICE 3", Type: "ICE", Line: "3", Operator: "DB",
		Stops: []TrainStop{
			{Station: MuenchenHbf, Scheduled: at(12, 0), Actual: at(12, 0), Kind: Regular},
			{Station: AugsburgHbf, Scheduled: at(12, 20), Actual: at(13, 0), Kind: Cancelled},
		},
	}

	response := conn.ConvertToResponse()

	if response.Name != conn.Name {
		t.Errorf("Expected Name %s, got %s", conn.Name, response.Name)
	}
	if !response.Departure.Equal(at(12, 0)) {
		t.Errorf("Expected departure 12:00, got %v", response.Departure)
	}
	if response.PeakDelay != 40 {
		t.Errorf("Expected peak delay 40, got %d", response.PeakDelay)
	}
	if len(response.Stops) != 2 {
		t.Fatalf("Expected 2 stops, got %d", len(response.Stops))
	}
	if response.Stops[1].Name != "Augsburg Hbf" || response.Stops[1].Delay != 40 {
		t.Errorf("Unexpected stop response: %+v", response.Stops[1])
	}

	data, err := json.Marshal(response.Stops[1])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["kind"] != "CANCELLED" {
		t.Errorf("Expected kind to encode as CANCELLED, got %v", decoded["kind"])
	}
}
