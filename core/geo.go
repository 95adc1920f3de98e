package core

import (
	"math"

	"dwdweather/cdc"
)

const earthRadius = 6371000 // meters

// HaversineDistance returns the great-circle distance in meters between
// two (lon, lat) coordinates.
func HaversineDistance(lon1, lat1, lon2, lat2 float64) float64 {
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

// Stations returns all stations, one record per station id. An empty
// store triggers one station-metadata import, then a single rescan.
func (w *Weather) Stations() ([]cdc.Station, error) {
	stations, err := w.store.ListStations()
	if err != nil {
		return nil, err
	}
	if len(stations) > 0 {
		return stations, nil
	}
	if err := w.ImportStations(); err != nil {
		return nil, err
	}
	return w.store.ListStations()
}

// NearestStation returns the station with the minimal great-circle
// distance to the given coordinate. Ties keep the first station in
// store iteration order. Nil when no stations exist at all.
func (w *Weather) NearestStation(lon, lat float64) (*cdc.Station, error) {
	stations, err := w.Stations()
	if err != nil {
		return nil, err
	}
	var closest *cdc.Station
	closestDistance := math.Inf(1)
	for i := range stations {
		d := HaversineDistance(lon, lat, stations[i].GeoLon, stations[i].GeoLat)
		if d < closestDistance {
			closest = &stations[i]
			closestDistance = d
		}
	}
	return closest, nil
}

// SurroundingStations returns all stations within the distance of the
// nearest station plus the given buffer in meters.
func (w *Weather) SurroundingStations(lon, lat, buffer float64) ([]cdc.Station, error) {
	stations, err := w.Stations()
	if err != nil {
		return nil, err
	}
	closestDistance := math.Inf(1)
	for i := range stations {
		d := HaversineDistance(lon, lat, stations[i].GeoLon, stations[i].GeoLat)
		if d < closestDistance {
			closestDistance = d
		}
	}

	var out []cdc.Station
	limit := closestDistance + buffer
	for i := range stations {
		if HaversineDistance(lon, lat, stations[i].GeoLon, stations[i].GeoLat) <= limit {
			out = append(out, stations[i])
		}
	}
	return out, nil
}
