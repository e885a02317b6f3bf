package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStation is returned when a station identifier is not in the catalog
var ErrUnknownStation = errors.New("unknown station")

// Station identifies a physical stop location
type Station string

const (
	MuenchenHbf   Station = "MUENCHEN_HBF"
	NuernbergHbf  Station = "NUERNBERG_HBF"
	AugsburgHbf   Station = "AUGSBURG_HBF"
	StuttgartHbf  Station = "STUTTGART_HBF"
	FrankfurtHbf  Station = "FRANKFURT_HBF"
	BerlinHbf     Station = "BERLIN_HBF"
	HamburgHbf    Station = "HAMBURG_HBF"
	KoelnHbf      Station = "KOELN_HBF"
	LeipzigHbf    Station = "LEIPZIG_HBF"
	WuerzburgHbf  Station = "WUERZBURG_HBF"
	IngolstadtHbf Station = "INGOLSTADT_HBF"
	MannheimHbf   Station = "MANNHEIM_HBF"
)

var stationNames = map[Station]string{
	MuenchenHbf:   "München Hbf",
	NuernbergHbf:  "Nürnberg Hbf",
	AugsburgHbf:   "Augsburg Hbf",
	StuttgartHbf:  "Stuttgart Hbf",
	FrankfurtHbf:  "Frankfurt (Main) Hbf",
	BerlinHbf:     "Berlin Hbf",
	HamburgHbf:    "Hamburg Hbf",
	KoelnHbf:      "Köln Hbf",
	LeipzigHbf:    "Leipzig Hbf",
	WuerzburgHbf:  "Würzburg Hbf",
	IngolstadtHbf: "Ingolstadt Hbf",
	MannheimHbf:   "Mannheim Hbf",
}

// AllStations returns the station catalog in declaration order
func AllStations() []Station {
	return []Station{
		MuenchenHbf, NuernbergHbf, AugsburgHbf, StuttgartHbf,
		FrankfurtHbf, BerlinHbf, HamburgHbf, KoelnHbf,
		LeipzigHbf, WuerzburgHbf, IngolstadtHbf, MannheimHbf,
	}
}

// ParseStation looks up a station identifier, ignoring case and surrounding space
func ParseStation(s string) (Station, error) {
	station := Station(strings.ToUpper(strings.TrimSpace(s)))
	if !station.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStation, s)
	}
	return station, nil
}

// Known reports whether the station is part of the catalog
func (s Station) Known() bool {
	_, ok := stationNames[s]
	return ok
}

// DisplayName returns the human readable station name
func (s Station) DisplayName() string {
	if name, ok := stationNames[s]; ok {
		return name
	}
	return string(s)
}
