package cache

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"dwdweather/cdc"
)

// UpsertStation writes one station record: insert-if-absent on
// (station_id, date_start), then an unconditional update of the mutable
// fields for that key. Re-importing the same description file leaves
// the table unchanged.
func (s *Store) UpsertStation(station cdc.Station) error {
	return s.UpsertStations([]cdc.Station{station})
}

// UpsertStations imports a whole station description file, committing
// in batches.
func (s *Store) UpsertStations(stations []cdc.Station) error {
	table := s.stationTable()
	insert := fmt.Sprintf(`INSERT OR IGNORE INTO %s
		(station_id, date_start, date_end, geo_lon, geo_lat, height, name, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, table)
	update := fmt.Sprintf(`UPDATE %s
		SET date_end=?, geo_lon=?, geo_lat=?, height=?, name=?, state=?
		WHERE station_id=? AND date_start=?`, table)

	for start := 0; start < len(stations); start += batchSize {
		end := min(start+batchSize, len(stations))
		tx, err := s.db.Beginx()
		if err != nil {
			return err
		}
		for _, station := range stations[start:end] {
			if err := upsertStationTx(tx, insert, update, station); err != nil {
				tx.Rollback()
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func upsertStationTx(tx *sqlx.Tx, insert, update string, station cdc.Station) error {
	if _, err := tx.Exec(insert,
		station.StationID, station.DateStart, station.DateEnd,
		station.GeoLon, station.GeoLat, station.Height, station.Name, station.State,
	); err != nil {
		return err
	}
	_, err := tx.Exec(update,
		station.DateEnd, station.GeoLon, station.GeoLat,
		station.Height, station.Name, station.State,
		station.StationID, station.DateStart,
	)
	return err
}

// StationInfo returns the latest validity record for a station, or nil.
func (s *Store) StationInfo(stationID int) (*cdc.Station, error) {
	var station cdc.Station
	query := fmt.Sprintf("SELECT * FROM %s WHERE station_id=? ORDER BY date_start DESC LIMIT 1", s.stationTable())
	err := s.db.Get(&station, query, stationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// ListStations returns every station, deduplicated to the latest
// validity record per station id.
func (s *Store) ListStations() ([]cdc.Station, error) {
	table := s.stationTable()
	query := fmt.Sprintf(`SELECT s.* FROM %s s
		JOIN (SELECT station_id, MAX(date_start) AS date_start FROM %s GROUP BY station_id) latest
		ON s.station_id = latest.station_id AND s.date_start = latest.date_start
		ORDER BY s.station_id`, table, table)

	stations := []cdc.Station{}
	if err := s.db.Select(&stations, query); err != nil {
		return nil, err
	}
	return stations, nil
}
