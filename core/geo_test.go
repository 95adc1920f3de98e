package core

import (
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwdweather/cdc"
)

func TestHaversineDistance(t *testing.T) {
	type testCase struct {
		lon1, lat1 float64
		lon2, lat2 float64
		expected   float64
		tolerance  float64
	}

	cases := []testCase{
		// Identical coordinates
		{8.2370, 52.9336, 8.2370, 52.9336, 0, 0.001},
		// One degree of latitude along a meridian
		{7.0, 51.0, 7.0, 52.0, 111194.93, 1},
		// Berlin to Hamburg
		{13.4050, 52.5200, 9.9937, 53.5511, 255300, 2000},
	}

	for _, c := range cases {
		got := HaversineDistance(c.lon1, c.lat1, c.lon2, c.lat2)
		if math.Abs(got-c.expected) > c.tolerance {
			t.Errorf("(%v,%v)-(%v,%v): got %v, wanted %v +- %v",
				c.lon1, c.lat1, c.lon2, c.lat2, got, c.expected, c.tolerance)
		}
	}
}

func seedStations(t *testing.T, w *Weather) []cdc.Station {
	t.Helper()
	stations := []cdc.Station{
		{StationID: 44, DateStart: 20070401, DateEnd: 20250828, GeoLon: 8.2370, GeoLat: 52.9336, Height: 44, Name: "Grossenkneten", State: "Niedersachsen"},
		{StationID: 164, DateStart: 20050101, DateEnd: 20250828, GeoLon: 13.9908, GeoLat: 53.0316, Height: 40, Name: "Angermuende", State: "Brandenburg"},
	}
	require.NoError(t, w.store.UpsertStations(stations))
	return stations
}

func TestNearestStation(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC))
	w := newTestWeather(t, &fakeAcquirer{}, clock, "air_temperature")
	seedStations(t, w)

	station, err := w.NearestStation(8.0, 53.0)
	require.NoError(t, err)
	require.NotNil(t, station)
	assert.Equal(t, 44, station.StationID)

	station, err = w.NearestStation(13.5, 52.5)
	require.NoError(t, err)
	require.NotNil(t, station)
	assert.Equal(t, 164, station.StationID)
}

func TestSurroundingStations(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC))
	w := newTestWeather(t, &fakeAcquirer{}, clock, "air_temperature")
	seedStations(t, w)

	// A zero buffer still yields the nearest station itself
	nearby, err := w.SurroundingStations(8.0, 53.0, 0)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, 44, nearby[0].StationID)

	// A buffer wider than the station spacing yields everything
	nearby, err = w.SurroundingStations(8.0, 53.0, 1e7)
	require.NoError(t, err)
	assert.Len(t, nearby, 2)
}

func TestStationsImportsWhenEmpty(t *testing.T) {
	description := []byte(
		"Stations_id von_datum bis_datum Stationshoehe geoBreite geoLaenge Stationsname Bundesland\n" +
			"----------- --------- --------- ------------- --------- --------- ------------ ----------\n" +
			"00044 20070401 20250828 44 52.9336 8.2370 Grossenkneten Niedersachsen\n")
	fake := &fakeAcquirer{stations: map[string][]byte{"air_temperature": description}}
	clock := clockwork.NewFakeClockAt(time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC))
	w := newTestWeather(t, fake, clock, "air_temperature")

	stations, err := w.Stations()
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, 44, stations[0].StationID)
	assert.Equal(t, 1, fake.stationCalls)

	// Subsequent scans read the cache
	_, err = w.Stations()
	require.NoError(t, err)
	assert.Equal(t, 1, fake.stationCalls)
}
