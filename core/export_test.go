package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationsGeoJSON(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC))
	w := newTestWeather(t, &fakeAcquirer{}, clock, "air_temperature")
	seedStations(t, w)

	payload, err := w.StationsGeoJSON()
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(payload, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 2)

	first := doc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{8.2370, 52.9336}, first.Geometry.Coordinates)
	assert.Equal(t, float64(44), first.Properties["id"])
	assert.Equal(t, "Grossenkneten", first.Properties["name"])
}

func TestStationsCSV(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC))
	w := newTestWeather(t, &fakeAcquirer{}, clock, "air_temperature")
	seedStations(t, w)

	out, err := w.StationsCSV(',')
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "station_id,date_start,date_end,geo_lon,geo_lat,height,name", lines[0])
	assert.Equal(t, "44,20070401,20250828,8.2370,52.9336,44,Grossenkneten", lines[1])

	// Tab-delimited plain output
	out, err = w.StationsCSV('\t')
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "44\t20070401\t20250828\t8.2370\t52.9336\t44\tGrossenkneten", lines[1])
}
