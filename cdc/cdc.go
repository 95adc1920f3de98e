// Package cdc talks to the DWD Climate Data Center server: it locates
// and fetches station description files and per-station measurement
// archives, and parses their delimited text payloads into typed records.
package cdc

import "dwdweather/knowledge"

// DefaultBaseURI points at the current HTTPS incarnation of the CDC
// server. The legacy FTP layout (ftp://ftp-cdc.dwd.de/pub/CDC/...) is
// reachable through the same client by configuring an ftp:// base URI.
const DefaultBaseURI = "https://opendata.dwd.de/climate_environment/CDC/observations_germany/climate"

// Result is one fetched remote resource, ready for parsing.
type Result struct {
	Resolution string
	Category   knowledge.Category
	URI        string
	Payload    []byte
}

// Row is one parsed measurement record. Values maps schema field names
// to typed values; a missing observation (source literal -999) is nil.
type Row struct {
	StationID int
	Timestamp int64
	Values    map[string]any
}

// Station is one validity period of a station's metadata. A station can
// have several records over time, keyed by (station_id, date_start).
type Station struct {
	StationID int     `db:"station_id" json:"station_id"`
	DateStart int64   `db:"date_start" json:"date_start"`
	DateEnd   int64   `db:"date_end" json:"date_end"`
	GeoLon    float64 `db:"geo_lon" json:"geo_lon"`
	GeoLat    float64 `db:"geo_lat" json:"geo_lat"`
	Height    int     `db:"height" json:"height"`
	Name      string  `db:"name" json:"name"`
	State     string  `db:"state" json:"state"`
}
