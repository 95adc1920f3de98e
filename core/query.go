package core

import (
	"log/slog"
	"strings"
	"time"
)

// Lookups per query: the initial read plus exactly one retry after the
// backfill import. A timestamp with genuinely no source data terminates
// here with a nil result instead of recursing.
const maxLookups = 2

// Query returns the cached measurement record for one station and
// point in time. On a cache miss it classifies the age of the request,
// acquires the matching feed(s), and retries the lookup once. A nil
// record with nil error means the source has no data for this key.
func (w *Weather) Query(stationID int, timestamp time.Time) (map[string]any, error) {
	key := w.res.FormatTimestamp(timestamp)

	for attempt := 0; attempt < maxLookups; attempt++ {
		record, err := w.store.GetMeasurement(stationID, key)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return record, nil
		}
		if attempt+1 == maxLookups {
			break
		}
		timeranges := w.classifyAge(timestamp)
		if w.verbose {
			slog.Info("Cache miss, acquiring from feeds: " + strings.Join(timeranges, ", "))
		}
		if err := w.ImportMeasurements(stationID, timeranges); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// classifyAge maps the age of the requested timestamp onto the feeds
// that can contain it. Around the edge of the provider's rolling
// "recent" window the value may sit in either feed, so both are
// consulted there.
func (w *Weather) classifyAge(timestamp time.Time) []string {
	now := w.clock.Now().UTC()

	if now.Sub(timestamp) < w.settings.CurrentWindow {
		return []string{"now"}
	}
	recentEnd, _ := w.settings.RecentWindow.AddTo(timestamp)
	if now.Before(recentEnd) {
		return []string{"recent"}
	}
	overlapEnd, _ := w.settings.OverlapWindow.AddTo(recentEnd)
	if !now.After(overlapEnd) {
		return []string{"recent", "historical"}
	}
	return []string{"historical"}
}
