package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jusunglee/trainstats/internal/config"
	"github.com/jusunglee/trainstats/internal/feed"
	"github.com/jusunglee/trainstats/internal/models"
	"github.com/jusunglee/trainstats/pkg/trainstats"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (default $TRAINSTATS_CONFIG or config.yml)")
		sample     = flag.Bool("sample", false, "Analyze the built-in sample timetable")
		format     = flag.String("format", "text", "Output format: text|json")
		station    = flag.String("station", "", "Station for the average delay (overrides config): "+stationList())
		kind       = flag.String("kind", "", "Stop kind for the percentage (overrides config)")
		transport  = flag.String("type", "", "Only analyze connections of this transport type, e.g. ICE")
		verbose    = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *station != "" {
		cfg.Report.Station = *station
	}
	if *kind != "" {
		cfg.Report.Kind = *kind
	}

	reportStation, err := cfg.Station()
	if err != nil {
		slog.Error("Invalid station", "station", cfg.Report.Station, "valid", stationList(), "error", err)
		os.Exit(1)
	}
	reportKind, err := cfg.Kind()
	if err != nil {
		slog.Error("Invalid stop kind", "kind", cfg.Report.Kind, "error", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	var client *trainstats.LocalClient
	if *sample {
		client = trainstats.NewFromConnections(feed.SampleConnections(loc))
	} else {
		paths, err := cfg.DatasetPaths(flag.Args())
		if err != nil {
			slog.Error("Nothing to analyze (pass dataset files, configure datasets or use -sample)", "error", err)
			os.Exit(1)
		}
		client, err = trainstats.NewLocal(trainstats.Config{
			Datasets: paths,
			Location: loc,
			Logger:   logger,
		})
		if err != nil {
			slog.Error("Failed to load datasets", "error", err)
			os.Exit(1)
		}
	}

	if *transport != "" {
		all := client.GetTypes()
		client, err = client.ForType(*transport)
		if err != nil {
			slog.Error("Unknown transport type", "type", *transport, "available", strings.Join(all, ", "), "error", err)
			os.Exit(1)
		}
	}
	slog.Debug("Dataset ready", "connections", client.Len(), "types", client.GetTypes())

	report := client.Report(reportStation, reportKind)

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			slog.Error("Failed to encode report", "error", err)
			os.Exit(1)
		}
	case "text":
		writeText(os.Stdout, report)
	default:
		slog.Error("Unknown output format", "format", *format)
		os.Exit(1)
	}
}

func writeText(w io.Writer, report trainstats.Report) {
	fmt.Fprintln(w, "Connections (cleaned):")
	for _, conn := range report.Connections {
		fmt.Fprintf(w, "\n%s (%s, line %s, %s)\n", conn.Name, conn.Type, conn.Line, conn.Operator)
		for _, stop := range conn.Stops {
			fmt.Fprintf(w, "  %-22s %s  %s  %+d min\n",
				stop.Name, stop.Scheduled.Format("15:04"), stop.Actual.Format("15:04"), stop.Delay)
		}
	}

	fmt.Fprintln(w)
	if report.WorstDelayedTrain != nil {
		fmt.Fprintf(w, "Worst delayed train: %s (%d min)\n",
			report.WorstDelayedTrain.Name, report.WorstDelayedTrain.PeakDelay)
	} else {
		fmt.Fprintln(w, "Worst delayed train: none")
	}
	fmt.Fprintf(w, "%s stops: %.2f%%\n", titleCase(report.Kind.String()), report.PercentOfKindStops)
	fmt.Fprintf(w, "Average delay at %s: %.2f min\n", report.Station.DisplayName(), report.AverageDelayAt)

	fmt.Fprintln(w, "\nDelay share of travel time by transport type:")
	types := make([]string, 0, len(report.DelayRatioByType))
	for t := range report.DelayRatioByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %-6s %6.2f%%\n", t, report.DelayRatioByType[t])
	}

	fmt.Fprintln(w, "\nAverage delay by hour:")
	hours := make([]int, 0, len(report.AverageDelayByHour))
	for h := range report.AverageDelayByHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		fmt.Fprintf(w, "  %02d:00  %6.2f min\n", h, report.AverageDelayByHour[h])
	}
}

// stationList names every station the -station flag accepts
func stationList() string {
	names := make([]string, 0, len(models.AllStations()))
	for _, station := range models.AllStations() {
		names = append(names, string(station))
	}
	return strings.Join(names, ", ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
