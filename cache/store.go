// Package cache owns the local measurement cache: a single sqlite
// database file under the user's cache directory, holding one station
// table and one measurement table per resolution.
package cache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"dwdweather/knowledge"
)

// DatabaseFile is the cache database filename inside the cache directory.
const DatabaseFile = "dwd-weather.db"

// Rows are committed in batches of this size during large imports, so a
// failed import still leaves prior batches durable.
const batchSize = 500

type Store struct {
	db  *sqlx.DB
	res *knowledge.Resolution
}

// Open creates the cache directory and database on first use and
// idempotently ensures the per-resolution tables and unique indices.
func Open(dir string, res *knowledge.Resolution) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	file := filepath.Join(dir, DatabaseFile)
	slog.Info("Using cache database " + file)

	db, err := sqlx.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, res: res}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Reset drops the whole cache database. The next Open recreates it.
func Reset(dir string) error {
	err := os.Remove(filepath.Join(dir, DatabaseFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) measurementTable() string {
	return "measures_" + s.res.Name
}

func (s *Store) stationTable() string {
	return "stations_" + s.res.Name
}

// ensureSchema creates the measurement table as the wide union of every
// category's field set, plus the station table, with unique indices on
// the natural keys. Safe to call every startup.
func (s *Store) ensureSchema() error {
	columns := []string{"station_id int", "datetime int"}
	for _, category := range s.res.CategoryNames() {
		fields, _ := s.res.Schema(category)
		for _, field := range fields {
			columns = append(columns, field.Name+" "+field.Type.SQL())
		}
	}

	table := s.measurementTable()
	statements := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(columns, ",\n")),
		fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_uniqueidx ON %s (station_id, datetime)", table, table),
	}

	table = s.stationTable()
	statements = append(statements,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s
			(
				station_id int,
				date_start int,
				date_end int,
				geo_lon real,
				geo_lat real,
				height int,
				name text,
				state text
			)`, table),
		fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_uniqueidx ON %s (station_id, date_start)", table, table),
	)

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating cache schema: %w", err)
		}
	}
	return nil
}
