package core

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"dwdweather/cdc"
	"dwdweather/knowledge"
	"dwdweather/utils"
)

// ImportStations loads the station description files of all selected
// categories from the server and upserts them into the cache.
// Re-imports are idempotent.
func (w *Weather) ImportStations() error {
	results, err := w.client.GetStations(w.categories)
	if err != nil {
		return err
	}
	for _, result := range results {
		stations, err := cdc.ParseStations(result.Payload)
		if err != nil {
			slog.Warn(fmt.Sprintf("Parsing station description %s failed: %s", result.URI, err))
			continue
		}
		if err := w.store.UpsertStations(stations); err != nil {
			return fmt.Errorf("importing stations from %s: %w", result.URI, err)
		}
	}
	return nil
}

// ImportMeasurements downloads and ingests the archives of every
// selected category for one station and timerange set. Failures of a
// single category degrade that category to "no data" and processing
// continues; only cache write errors abort.
func (w *Weather) ImportMeasurements(stationID int, timeranges []string) error {
	slog.Info(fmt.Sprintf("Downloading measurements for station %d and timeranges %v", stationID, timeranges))
	if station, err := w.store.StationInfo(stationID); err == nil && station != nil {
		if info, err := json.Marshal(station); err == nil {
			slog.Info("Station information: " + string(info))
		}
	}

	bar := utils.NewBar(len(w.categories), fmt.Sprintf("station %05d", stationID))
	bar.RenderBlank()
	for _, category := range w.categories {
		if err := w.importCategory(stationID, category.Name, timeranges); err != nil {
			return err
		}
		bar.Add(1)
	}
	return nil
}

func (w *Weather) importCategory(stationID int, name string, timeranges []string) error {
	category, ok := findCategory(name)
	if !ok {
		return nil
	}
	if _, ok := w.res.Schema(name); !ok {
		if w.verbose {
			slog.Info(fmt.Sprintf("Importing %q data is not implemented for resolution %q",
				strings.ReplaceAll(name, "_", " "), w.res.Name))
		}
		return nil
	}

	results, err := w.client.GetMeasurements(stationID, category, timeranges)
	if err != nil {
		slog.Warn(fmt.Sprintf("Acquiring %q data failed: %s", name, err))
		return nil
	}
	for _, result := range results {
		slog.Info(fmt.Sprintf("Importing %q data from %s", strings.ReplaceAll(name, "_", " "), result.URI))
		rows, err := cdc.ParseMeasurements(w.res, name, result.Payload)
		if err != nil {
			slog.Warn(fmt.Sprintf("Parsing %s failed: %s", result.URI, err))
			continue
		}
		if err := w.store.UpsertMeasurements(name, rows); err != nil {
			return fmt.Errorf("importing %q data from %s: %w", name, result.URI, err)
		}
	}
	return nil
}

func findCategory(name string) (knowledge.Category, bool) {
	for _, c := range knowledge.Measurements {
		if c.Name == name {
			return c, true
		}
	}
	return knowledge.Category{}, false
}
