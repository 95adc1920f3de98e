package utils

import (
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	type testCase struct {
		input    string
		expected time.Time
	}

	cases := []testCase{
		{"2020-06-01T08:30", time.Date(2020, 6, 1, 8, 30, 0, 0, time.UTC)},
		{"2020-06-01T08", time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2020-06-01 08:30", time.Date(2020, 6, 1, 8, 30, 0, 0, time.UTC)},
		{"2020-06-01 08", time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2020-06-01", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		var ts Timestamp
		if err := ts.UnmarshalText([]byte(c.input)); err != nil {
			t.Errorf("%q: unexpected error: %v", c.input, err)
			continue
		}
		if !ts.Time().Equal(c.expected) {
			t.Errorf("%q: got %v, wanted %v", c.input, ts.Time(), c.expected)
		}
	}
}

func TestTimestampUnmarshalRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "yesterday", "01.06.2020", "2020/06/01"} {
		var ts Timestamp
		if err := ts.UnmarshalText([]byte(input)); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestFilterSlice(t *testing.T) {
	slice := []string{"air_temperature", "bogus", "precipitation"}
	reference := []string{"air_temperature", "precipitation", "sun"}

	filtered := FilterSlice(slice, reference, "element '%s' not in reference")
	if len(filtered) != 2 {
		t.Fatalf("Got %d elements, wanted 2", len(filtered))
	}
	if filtered[0] != "air_temperature" || filtered[1] != "precipitation" {
		t.Errorf("Unexpected filter result: %v", filtered)
	}
}
