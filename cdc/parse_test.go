package cdc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwdweather/knowledge"
)

func hourlyResolution(t *testing.T) *knowledge.Resolution {
	t.Helper()
	res, err := knowledge.Init().Resolution("hourly")
	require.NoError(t, err)
	return res
}

func TestParseMeasurements(t *testing.T) {
	payload := []byte(
		"STATIONS_ID;MESS_DATUM;QN_9;TT_TU;RF_TU;eor\r\n" +
			"     44;2020060108;    1;   15.3;   54.0;eor\r\n" +
			"     44;2020060109;    1;   16.1;   52.0;eor\r\n" +
			"\x1a\r\n")

	rows, err := ParseMeasurements(hourlyResolution(t), "air_temperature", payload)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[0]
	assert.Equal(t, 44, row.StationID)
	assert.Equal(t, int64(2020060108), row.Timestamp)
	assert.Equal(t, int64(1), row.Values["air_temperature_quality_level"])
	assert.Equal(t, 15.3, row.Values["air_temperature_200"])
	assert.Equal(t, 54.0, row.Values["relative_humidity_200"])
}

func TestParseMeasurementsMissingValue(t *testing.T) {
	payload := []byte(
		"STATIONS_ID;MESS_DATUM;QN_8;R1;RS_IND;WRTR;eor\n" +
			"44;2020060108;3;0.0;0;-999;eor\n")

	rows, err := ParseMeasurements(hourlyResolution(t), "precipitation", payload)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	values := rows[0].Values
	assert.Equal(t, 0.0, values["precipitation_height"])
	assert.Equal(t, false, values["precipitation_fallen"])
	assert.Nil(t, values["precipitation_form"])
}

func TestParseMeasurementsSkipsMalformedRows(t *testing.T) {
	payload := []byte(
		"STATIONS_ID;MESS_DATUM;QN_9;TT_TU;RF_TU;eor\n" +
			"44;2020060108;1;15.3;54.0;eor\n" +
			"44;not-a-date;1;15.3;54.0;eor\n" +
			"garbage\n" +
			"44;2020060110;1;bogus;54.0;eor\n")

	rows, err := ParseMeasurements(hourlyResolution(t), "air_temperature", payload)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2020060108), rows[0].Timestamp)
}

func TestParseMeasurementsLegacySecondHeader(t *testing.T) {
	payload := []byte(
		"STATIONS_ID;MESS_DATUM;QN_9;TT_TU;RF_TU\n" +
			"-----------;----------;----;------;------\n" +
			"44;2020060108;1;15.3;54.0;eor\n")

	rows, err := ParseMeasurements(hourlyResolution(t), "air_temperature", payload)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParseMeasurementsUnknownCategory(t *testing.T) {
	_, err := ParseMeasurements(hourlyResolution(t), "cloud_type", []byte("x"))
	assert.Error(t, err)
}

func TestParseTimestampToken(t *testing.T) {
	type testCase struct {
		resolution string
		token      string
		expected   int64
	}

	cases := []testCase{
		{"hourly", "2020060108", 2020060108},
		{"hourly", "2020-06-01T08:00", 2020060108},
		{"hourly", "202006010800", 2020060108},
		{"10_minutes", "2020060108", 202006010800},
		{"10_minutes", "202006010810", 202006010810},
		{"daily", "20200601", 20200601},
	}

	registry := knowledge.Init()
	for _, c := range cases {
		res, err := registry.Resolution(c.resolution)
		require.NoError(t, err)

		got, err := parseTimestampToken(res, c.token)
		require.NoError(t, err, "token %q", c.token)
		assert.Equal(t, c.expected, got, "token %q at %s", c.token, c.resolution)
	}

	_, err := parseTimestampToken(hourlyResolution(t), "20200601T")
	assert.Error(t, err)
}

func TestParseStations(t *testing.T) {
	payload := []byte(
		"Stations_id von_datum bis_datum Stationshoehe geoBreite geoLaenge Stationsname Bundesland\n" +
			"----------- --------- --------- ------------- --------- --------- ------------ ----------\n" +
			"00044 20070401 20250828            44     52.9336    8.2370 Gro\xdfenkneten                            Niedersachsen\n" +
			"00164 20050101 20250828            40     53.0316   13.9908 Angerm\xfcnde                              Brandenburg\n" +
			"01766 19470101 20250828            63     52.1344    7.6969 M\xfcnster/Osnabr\xfcck                       Nordrhein-Westfalen\n" +
			"bogus line\n")

	stations, err := ParseStations(payload)
	require.NoError(t, err)
	require.Len(t, stations, 3)

	first := stations[0]
	assert.Equal(t, 44, first.StationID)
	assert.Equal(t, int64(20070401), first.DateStart)
	assert.Equal(t, int64(20250828), first.DateEnd)
	assert.Equal(t, 44, first.Height)
	assert.Equal(t, 52.9336, first.GeoLat)
	assert.Equal(t, 8.2370, first.GeoLon)
	assert.Equal(t, "Großenkneten", first.Name)
	assert.Equal(t, "Niedersachsen", first.State)

	// Latin-1 umlauts decode and multi-word names keep their spaces
	assert.Equal(t, "Angermünde", stations[1].Name)
	assert.Equal(t, "Münster/Osnabrück", stations[2].Name)
}
