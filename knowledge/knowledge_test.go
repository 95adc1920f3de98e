package knowledge

import (
	"testing"
	"time"
)

func TestResolutionLookup(t *testing.T) {
	registry := Init()

	for _, name := range []string{"hourly", "10_minutes", "daily"} {
		if _, err := registry.Resolution(name); err != nil {
			t.Errorf("Resolution(%q) failed: %v", name, err)
		}
	}

	if _, err := registry.Resolution("monthly"); err == nil {
		t.Error("Expected an error for an unknown resolution")
	}
}

func TestHourlyAirTemperatureSchema(t *testing.T) {
	res, err := Init().Resolution("hourly")
	if err != nil {
		t.Fatal(err)
	}

	fields, ok := res.Schema("air_temperature")
	if !ok {
		t.Fatal("hourly air_temperature schema missing")
	}

	expected := []Field{
		{"air_temperature_quality_level", Int},
		{"air_temperature_200", Real},
		{"relative_humidity_200", Real},
	}
	if len(fields) != len(expected) {
		t.Fatalf("Got %d fields, wanted %d", len(fields), len(expected))
	}
	for i, field := range fields {
		if field != expected[i] {
			t.Errorf("Field %d: got %v, wanted %v", i, field, expected[i])
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	type testCase struct {
		resolution string
		input      time.Time
		expected   int64
	}

	cases := []testCase{
		{"hourly", time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC), 2020060108},
		{"10_minutes", time.Date(2020, 6, 1, 8, 10, 0, 0, time.UTC), 202006010810},
		{"daily", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), 20200601},
	}

	registry := Init()
	for _, c := range cases {
		res, err := registry.Resolution(c.resolution)
		if err != nil {
			t.Fatal(err)
		}

		got := res.FormatTimestamp(c.input)
		if got != c.expected {
			t.Errorf("%s: got %d, wanted %d", c.resolution, got, c.expected)
		}

		back, err := res.ParseTimestamp(got)
		if err != nil {
			t.Fatal(err)
		}
		if res.FormatTimestamp(back) != c.expected {
			t.Errorf("%s: timestamp %d did not round-trip", c.resolution, c.expected)
		}
	}
}

func TestCategoryDirectories(t *testing.T) {
	type testCase struct {
		name     string
		expected string
	}

	cases := []testCase{
		{"daily_observations", "kl"},
		{"air_temperature", "air_temperature"},
	}

	for _, c := range cases {
		found := false
		for _, cat := range Measurements {
			if cat.Name != c.name {
				continue
			}
			found = true
			if cat.Dir() != c.expected {
				t.Errorf("%s: got folder %q, wanted %q", c.name, cat.Dir(), c.expected)
			}
		}
		if !found {
			t.Errorf("Category %q missing from measurements", c.name)
		}
	}
}
