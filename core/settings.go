package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rickb777/period"

	"dwdweather/cdc"
)

// Environment variables recognized by LoadSettings. All are optional.
const (
	BaseURIEnvVar       = "DWDWEATHER_BASE_URI"
	FTPUserEnvVar       = "DWDWEATHER_FTP_USER"
	FTPPasswordEnvVar   = "DWDWEATHER_FTP_PASSWORD"
	HTTPTimeoutEnvVar   = "DWDWEATHER_HTTP_TIMEOUT"
	ResponseTTLEnvVar   = "DWDWEATHER_RESPONSE_CACHE_TTL"
	RecentWindowEnvVar  = "DWDWEATHER_RECENT_WINDOW"
	OverlapWindowEnvVar = "DWDWEATHER_OVERLAP_WINDOW"
)

// Settings carries the tunables of the acquisition pipeline. The age
// band windows mirror the provider's rolling-window publication cadence
// and are configurable because the provider may change the window size.
type Settings struct {
	BaseURI     string
	FTPUser     string
	FTPPassword string
	HTTPTimeout time.Duration
	// TTL of the response cache sitting in front of HTTP fetches
	ResponseCacheTTL time.Duration
	// Requests younger than this are served from the "now" feed
	CurrentWindow time.Duration
	// Requests younger than this are served from the rolling "recent" feed
	RecentWindow period.Period
	// Width of the band past RecentWindow where both the recent and the
	// historical feed must be consulted
	OverlapWindow period.Period
}

func DefaultSettings() Settings {
	return Settings{
		BaseURI:          cdc.DefaultBaseURI,
		HTTPTimeout:      30 * time.Second,
		ResponseCacheTTL: cdc.DefaultResponseCacheTTL,
		CurrentWindow:    24 * time.Hour,
		RecentWindow:     period.MustParse("P360D"),
		OverlapWindow:    period.MustParse("P10D"),
	}
}

// LoadSettings builds Settings from the environment on top of the
// defaults. Durations use Go syntax ("30s"), windows ISO-8601 periods
// ("P360D").
func LoadSettings() (Settings, error) {
	s := DefaultSettings()
	if v := os.Getenv(BaseURIEnvVar); v != "" {
		s.BaseURI = v
	}
	if v := os.Getenv(FTPUserEnvVar); v != "" {
		s.FTPUser = v
	}
	if v := os.Getenv(FTPPasswordEnvVar); v != "" {
		s.FTPPassword = v
	}
	if v := os.Getenv(HTTPTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", HTTPTimeoutEnvVar, err)
		}
		s.HTTPTimeout = d
	}
	if v := os.Getenv(ResponseTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", ResponseTTLEnvVar, err)
		}
		s.ResponseCacheTTL = d
	}
	if v := os.Getenv(RecentWindowEnvVar); v != "" {
		p, err := period.Parse(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", RecentWindowEnvVar, err)
		}
		s.RecentWindow = p
	}
	if v := os.Getenv(OverlapWindowEnvVar); v != "" {
		p, err := period.Parse(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", OverlapWindowEnvVar, err)
		}
		s.OverlapWindow = p
	}
	return s, nil
}

// DefaultCachePath is a dot-directory in the user's home.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dwd-weather"), nil
}
