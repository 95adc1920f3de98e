// Package core wires the acquisition pipeline together: it resolves the
// schema for the selected resolution, owns the transport client and the
// cache store, and answers queries through the cache-miss backfill
// protocol.
package core

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"dwdweather/cache"
	"dwdweather/cdc"
	"dwdweather/knowledge"
	"dwdweather/utils"
)

// Acquirer is the narrow transport surface the orchestrator needs.
// Satisfied by *cdc.Client; tests substitute a fake.
type Acquirer interface {
	GetStations(categories []knowledge.Category) ([]cdc.Result, error)
	GetMeasurements(stationID int, category knowledge.Category, timeranges []string) ([]cdc.Result, error)
}

type Weather struct {
	settings   Settings
	res        *knowledge.Resolution
	categories []knowledge.Category
	client     Acquirer
	store      *cache.Store
	clock      clockwork.Clock
	verbose    bool
}

type Options struct {
	// Resolution selector; defaults to "hourly"
	Resolution string
	// Optional subset of category names; empty means all
	Categories []string
	// Cache directory; defaults to ~/.dwd-weather
	CachePath string
	// Drop the cache database before doing any work
	ResetCache bool
	Verbose    bool

	// Overrides for tests. Settings nil means LoadSettings.
	Settings *Settings
	Client   Acquirer
	Clock    clockwork.Clock
}

// New builds the pipeline for one resolution. An unknown resolution is
// a fatal error: nothing can proceed without its schema.
func New(opts Options) (*Weather, error) {
	if opts.Resolution == "" {
		opts.Resolution = "hourly"
	}
	res, err := knowledge.Init().Resolution(opts.Resolution)
	if err != nil {
		return nil, err
	}

	settings := Settings{}
	if opts.Settings != nil {
		settings = *opts.Settings
	} else {
		settings, err = LoadSettings()
		if err != nil {
			return nil, err
		}
	}

	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath, err = DefaultCachePath()
		if err != nil {
			return nil, err
		}
	}
	if opts.ResetCache {
		if err := cache.Reset(cachePath); err != nil {
			return nil, err
		}
	}
	store, err := cache.Open(cachePath, res)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client = newClient(res, settings, cachePath)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Weather{
		settings:   settings,
		res:        res,
		categories: resolveCategories(opts.Categories),
		client:     client,
		store:      store,
		clock:      clock,
		verbose:    opts.Verbose,
	}, nil
}

func newClient(res *knowledge.Resolution, settings Settings, cachePath string) *cdc.Client {
	// The response cache is named after the server host, like the
	// measurement database it lives next to in the cache directory
	var respCache *cdc.ResponseCache
	if u, err := url.Parse(settings.BaseURI); err == nil && u.Host != "" {
		respCache, _ = cdc.NewResponseCache(filepath.Join(cachePath, u.Host), settings.ResponseCacheTTL)
	}
	return cdc.NewClient(res, cdc.ClientOptions{
		BaseURI:     settings.BaseURI,
		Timeout:     settings.HTTPTimeout,
		Cache:       respCache,
		FTPUser:     settings.FTPUser,
		FTPPassword: settings.FTPPassword,
	})
}

func resolveCategories(names []string) []knowledge.Category {
	if len(names) == 0 {
		return knowledge.Measurements
	}
	// Warn about unknown names, then resolve the survivors in
	// publication order
	kept := utils.FilterSlice(names, knowledge.CategoryNames(),
		"Category '%s' not found in the knowledge base, skipping")
	return knowledge.FindCategories(kept)
}

// Resolution returns the active resolution identifier.
func (w *Weather) Resolution() string {
	return w.res.Name
}

// Close releases the cache store.
func (w *Weather) Close() error {
	return w.store.Close()
}

// DataAge returns the age of the newest cached measurement, or false
// when the cache holds none.
func (w *Weather) DataAge() (time.Duration, bool, error) {
	return w.store.DataAge(w.clock.Now().UTC())
}
