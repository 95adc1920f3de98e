package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dwdweather/cdc"
)

// UpsertMeasurements writes parsed rows of one category. The insert is
// a native upsert on the (station_id, datetime) unique index, updating
// only this category's columns, so importing a second category for an
// existing key merges into the row instead of duplicating or clobbering
// the first category's fields.
func (s *Store) UpsertMeasurements(category string, rows []cdc.Row) error {
	fields, ok := s.res.Schema(category)
	if !ok {
		return fmt.Errorf("no schema for category %q at resolution %q", category, s.res.Name)
	}

	columns := []string{"station_id", "datetime"}
	sets := make([]string, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, field.Name)
		sets = append(sets, field.Name+"=excluded."+field.Name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(station_id, datetime) DO UPDATE SET %s",
		s.measurementTable(),
		strings.Join(columns, ", "),
		placeholders,
		strings.Join(sets, ", "),
	)

	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		tx, err := s.db.Beginx()
		if err != nil {
			return err
		}
		for _, row := range rows[start:end] {
			args := make([]any, 0, len(columns))
			args = append(args, row.StationID, row.Timestamp)
			for _, field := range fields {
				args = append(args, row.Values[field.Name])
			}
			if _, err := tx.Exec(stmt, args...); err != nil {
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

// GetMeasurement returns the cached record for one (station, timestamp)
// natural key as a flat field map, or nil on a cache miss.
func (s *Store) GetMeasurement(stationID int, timestamp int64) (map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE station_id = ? AND datetime = ?", s.measurementTable())
	row := s.db.QueryRowx(query, stationID, timestamp)

	record := map[string]any{}
	err := row.MapScan(record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// The sqlite driver hands TEXT columns back as []byte under MapScan
	for key, value := range record {
		if b, ok := value.([]byte); ok {
			record[key] = string(b)
		}
	}
	return record, nil
}

// DataAge returns the time elapsed since the newest cached measurement.
// The second return is false when the cache is empty.
func (s *Store) DataAge(now time.Time) (time.Duration, bool, error) {
	var latest sql.NullInt64
	query := fmt.Sprintf("SELECT MAX(datetime) FROM %s", s.measurementTable())
	if err := s.db.Get(&latest, query); err != nil {
		return 0, false, err
	}
	if !latest.Valid {
		return 0, false, nil
	}
	t, err := s.res.ParseTimestamp(latest.Int64)
	if err != nil {
		return 0, false, err
	}
	return now.Sub(t), true, nil
}
