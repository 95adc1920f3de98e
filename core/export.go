package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gocarina/gocsv"
	geojson "github.com/paulmach/go.geojson"
)

// stationExport shapes one station list row for delimited-text export.
// Coordinates are rendered with four decimals, like the source files.
type stationExport struct {
	StationID string `csv:"station_id"`
	DateStart string `csv:"date_start"`
	DateEnd   string `csv:"date_end"`
	GeoLon    string `csv:"geo_lon"`
	GeoLat    string `csv:"geo_lat"`
	Height    string `csv:"height"`
	Name      string `csv:"name"`
}

// StationsGeoJSON exports the station list as a FeatureCollection of
// Point features carrying id and name properties.
func (w *Weather) StationsGeoJSON() ([]byte, error) {
	stations, err := w.Stations()
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for _, station := range stations {
		feature := geojson.NewPointFeature([]float64{station.GeoLon, station.GeoLat})
		feature.SetProperty("id", station.StationID)
		feature.SetProperty("name", station.Name)
		fc.AddFeature(feature)
	}
	return fc.MarshalJSON()
}

// StationsCSV exports the station list as delimited text with the given
// delimiter.
func (w *Weather) StationsCSV(delimiter rune) (string, error) {
	stations, err := w.Stations()
	if err != nil {
		return "", err
	}
	rows := make([]stationExport, 0, len(stations))
	for _, station := range stations {
		rows = append(rows, stationExport{
			StationID: strconv.Itoa(station.StationID),
			DateStart: strconv.FormatInt(station.DateStart, 10),
			DateEnd:   strconv.FormatInt(station.DateEnd, 10),
			GeoLon:    fmt.Sprintf("%.4f", station.GeoLon),
			GeoLat:    fmt.Sprintf("%.4f", station.GeoLat),
			Height:    strconv.Itoa(station.Height),
			Name:      station.Name,
		})
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	writer.Comma = delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
