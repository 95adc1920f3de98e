package core

import (
	"encoding/json"
	"fmt"
	"os"

	"dwdweather/utils"
)

// StationCmd finds the station nearest to a coordinate.
type StationCmd struct {
	Lon float64 `arg:"positional,required" help:"Geographic longitude (x) component as float, e.g. 7.2"`
	Lat float64 `arg:"positional,required" help:"Geographic latitude (y) component as float, e.g. 53.9"`
}

func (cmd *StationCmd) Execute(w *Weather) error {
	if cmd.Lon < -180 || cmd.Lon > 180 {
		return fmt.Errorf("longitude %v not in range [-180, 180]", cmd.Lon)
	}
	if cmd.Lat < -90 || cmd.Lat > 90 {
		return fmt.Errorf("latitude %v not in range [-90, 90]", cmd.Lat)
	}
	station, err := w.NearestStation(cmd.Lon, cmd.Lat)
	if err != nil {
		return err
	}
	return printJSON(station)
}

// StationsCmd lists or exports the station collection.
type StationsCmd struct {
	Format string `arg:"-t,--format" default:"plain" help:"Export format (plain, csv, geojson)"`
	Output string `arg:"-f,--file" help:"Export file path. If not given, STDOUT is used"`
}

func (cmd *StationsCmd) Execute(w *Weather) error {
	var output []byte
	switch cmd.Format {
	case "geojson":
		body, err := w.StationsGeoJSON()
		if err != nil {
			return err
		}
		output = body
	case "csv":
		body, err := w.StationsCSV(',')
		if err != nil {
			return err
		}
		output = []byte(body)
	case "plain":
		body, err := w.StationsCSV('\t')
		if err != nil {
			return err
		}
		output = []byte(body)
	default:
		return fmt.Errorf("unknown export format %q", cmd.Format)
	}

	if cmd.Output == "" {
		fmt.Print(string(output))
		return nil
	}
	return os.WriteFile(cmd.Output, output, 0o644)
}

// WeatherCmd queries one measurement record for a station and time.
type WeatherCmd struct {
	StationID int             `arg:"positional,required" help:"Numeric ID of the station, e.g. 2667"`
	Timestamp utils.Timestamp `arg:"positional,required" help:"Timestamp in the format of YYYY-MM-DDTHH or YYYY-MM-DDTHH:MM"`
}

func (cmd *WeatherCmd) Execute(w *Weather) error {
	record, err := w.Query(cmd.StationID, cmd.Timestamp.Time())
	if err != nil {
		return err
	}
	return printJSON(record)
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
