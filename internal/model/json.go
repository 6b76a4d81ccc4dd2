package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// UnmarshalJSON decodes a log entry from the loose shape produced by the log
// API. Macro fields may be numbers, numeric strings, null, or missing; any
// value that is not a finite number decodes as 0. The date is required.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date      string          `json:"date"`
		CreatedAt string          `json:"created_at"`
		Protein   json.RawMessage `json:"protein"`
		Fat       json.RawMessage `json:"fat"`
		Carbs     json.RawMessage `json:"carbs"`
		Calories  json.RawMessage `json:"calories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode log entry: %w", err)
	}
	d, err := civil.ParseDate(strings.TrimSpace(raw.Date))
	if err != nil {
		return fmt.Errorf("decode log entry: invalid date %q (expected YYYY-MM-DD)", raw.Date)
	}

	out := LogEntry{
		Date:     d,
		Protein:  looseNumber(raw.Protein),
		Fat:      looseNumber(raw.Fat),
		Carbs:    looseNumber(raw.Carbs),
		Calories: looseNumber(raw.Calories),
	}
	if ts := strings.TrimSpace(raw.CreatedAt); ts != "" {
		if created, ok := parseTimestamp(ts); ok {
			out.CreatedAt = &created
		}
	}
	*e = out
	return nil
}

func looseNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finiteOrZero(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finiteOrZero(v)
		}
	}
	return 0
}

// created_at comes from the log API with or without seconds and zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
