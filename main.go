package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"dwdweather/core"
)

type CmdArgs struct {
	Station  *core.StationCmd  `arg:"subcommand:station" help:"Find the station nearest to a coordinate"`
	Stations *core.StationsCmd `arg:"subcommand:stations" help:"List or export stations"`
	Weather  *core.WeatherCmd  `arg:"subcommand:weather" help:"Get weather data for a station and time"`

	Resolution string   `arg:"--resolution" default:"hourly" help:"Select dataset by resolution (hourly, 10_minutes, daily)"`
	Categories []string `arg:"--categories" help:"Categories to process. By default all categories are processed"`
	CachePath  string   `arg:"-c,--cache-path" help:"Path to cache directory. Defaults to .dwd-weather in the user's home"`
	ResetCache bool     `arg:"--reset-cache" help:"Drop the cache database before doing any work"`
	Verbose    bool     `arg:"-v" help:"Increase verbosity level"`
}

func (CmdArgs) Description() string {
	return `Get weather information for Germany from the DWD Climate Data Center.

Optional environment variables (also read from a .env file):
    - "DWDWEATHER_BASE_URI"
    - "DWDWEATHER_FTP_USER", "DWDWEATHER_FTP_PASSWORD"
    - "DWDWEATHER_HTTP_TIMEOUT", "DWDWEATHER_RESPONSE_CACHE_TTL"
    - "DWDWEATHER_RECENT_WINDOW", "DWDWEATHER_OVERLAP_WINDOW"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println(err)
		return
	}

	var args CmdArgs
	parser := arg.MustParse(&args)

	weather, err := core.New(core.Options{
		Resolution: args.Resolution,
		Categories: args.Categories,
		CachePath:  args.CachePath,
		ResetCache: args.ResetCache,
		Verbose:    args.Verbose,
	})
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer weather.Close()

	switch {
	case args.Station != nil:
		err = args.Station.Execute(weather)
	case args.Stations != nil:
		err = args.Stations.Execute(weather)
	case args.Weather != nil:
		err = args.Weather.Execute(weather)
	default:
		parser.WriteHelp(os.Stdout)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
