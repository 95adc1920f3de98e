package cdc

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var stationColumns = regexp.MustCompile(`\s+`)

// ParseStations converts one station description file into station
// records. The file has two header lines (column names and a dashed
// separator), then fixed-order whitespace-separated columns:
// station id, date start, date end, height, latitude, longitude,
// followed by the station name and the state, both of which may
// contain spaces (the state is the last token).
func ParseStations(payload []byte) ([]Station, error) {
	lines := splitLines(payload)

	var stations []Station
	var skipped int
	for i, line := range lines {
		if i < 2 {
			continue
		}
		station, err := parseStationLine(line)
		if err != nil {
			skipped++
			continue
		}
		stations = append(stations, station)
	}
	if skipped > 0 {
		slog.Warn(fmt.Sprintf("Skipped %d malformed station description rows", skipped))
	}
	return stations, nil
}

func parseStationLine(line string) (Station, error) {
	parts := stationColumns.Split(line, 7)
	if len(parts) < 7 {
		return Station{}, fmt.Errorf("too few columns")
	}

	// The tail holds "name state"; the state is the last word
	cut := strings.LastIndex(parts[6], " ")
	name := parts[6]
	state := ""
	if cut >= 0 {
		name = strings.TrimSpace(parts[6][:cut])
		state = parts[6][cut+1:]
	}

	stationID, err := strconv.Atoi(parts[0])
	if err != nil {
		return Station{}, err
	}
	dateStart, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Station{}, err
	}
	dateEnd, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Station{}, err
	}
	height, err := strconv.Atoi(parts[3])
	if err != nil {
		return Station{}, err
	}
	lat, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return Station{}, err
	}
	lon, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return Station{}, err
	}

	return Station{
		StationID: stationID,
		DateStart: dateStart,
		DateEnd:   dateEnd,
		GeoLon:    lon,
		GeoLat:    lat,
		Height:    height,
		Name:      name,
		State:     state,
	}, nil
}
