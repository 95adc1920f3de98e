package utils

import (
	"fmt"
	"time"
)

// Accepted layouts for the timestamp CLI argument, most specific first.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02 15:04",
	"2006-01-02 15",
	"2006-01-02",
}

type Timestamp struct {
	t time.Time
}

func (ts *Timestamp) UnmarshalText(b []byte) error {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, string(b))
		if err == nil {
			ts.t = t
			return nil
		}
	}
	return fmt.Errorf("Only \"YYYY-MM-DD[THH[:MM]]\" timestamps are allowed. Got %s", b)
}

func (ts Timestamp) Time() time.Time {
	return ts.t
}
