package cdc

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"dwdweather/knowledge"
)

// Missing observations are published as the literal -999.
const missingValue = "-999"

// Full timestamp tokens are YYYYMMDDHHMM; shorter tokens lack minutes
// (hourly) or the whole time of day (daily).
const fullTimestampLayout = "200601021504"

// ParseMeasurements converts one raw data file payload into typed rows
// according to the category's schema. Rows with malformed fields are
// skipped and counted; the count is surfaced as a single warning per
// file instead of aborting the import.
func ParseMeasurements(res *knowledge.Resolution, category string, payload []byte) ([]Row, error) {
	fields, ok := res.Schema(category)
	if !ok {
		return nil, fmt.Errorf("no schema for category %q at resolution %q", category, res.Name)
	}

	lines := splitLines(payload)
	header := headerLines(lines)

	var rows []Row
	var skipped int
	for i, line := range lines {
		if i < header {
			continue
		}
		row, err := parseDataLine(res, fields, line)
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if skipped > 0 {
		slog.Warn(fmt.Sprintf("Skipped %d malformed rows in %q data", skipped, category))
	}
	return rows, nil
}

func parseDataLine(res *knowledge.Resolution, fields []knowledge.Field, line string) (Row, error) {
	line = strings.TrimSuffix(line, ";eor")
	parts := strings.Split(line, ";")
	if len(parts) < 2 {
		return Row{}, fmt.Errorf("too few columns")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	stationID, err := strconv.Atoi(parts[0])
	if err != nil {
		return Row{}, fmt.Errorf("parsing station id %q: %w", parts[0], err)
	}
	timestamp, err := parseTimestampToken(res, parts[1])
	if err != nil {
		return Row{}, err
	}

	values := make(map[string]any, len(fields))
	for i, field := range fields {
		if i+2 >= len(parts) {
			break
		}
		value, err := coerce(res, field, parts[i+2])
		if err != nil {
			return Row{}, err
		}
		values[field.Name] = value
	}
	return Row{StationID: stationID, Timestamp: timestamp, Values: values}, nil
}

func coerce(res *knowledge.Resolution, field knowledge.Field, cell string) (any, error) {
	if cell == missingValue {
		return nil, nil
	}
	switch field.Type {
	case knowledge.Real:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("converting field %q value %q to real: %w", field.Name, cell, err)
		}
		return v, nil
	case knowledge.Int:
		// Some files publish integer columns with a decimal point
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("converting field %q value %q to int: %w", field.Name, cell, err)
		}
		return int64(v), nil
	case knowledge.Bool:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("converting field %q value %q to bool: %w", field.Name, cell, err)
		}
		return v != 0, nil
	case knowledge.Timestamp:
		v, err := parseTimestampToken(res, cell)
		if err != nil {
			return nil, fmt.Errorf("converting field %q: %w", field.Name, err)
		}
		return v, nil
	case knowledge.Text:
		return cell, nil
	}
	return nil, fmt.Errorf("unhandled field type %d for %q", field.Type, field.Name)
}

// parseTimestampToken sanitizes a raw timestamp token (date separators
// stripped, missing minutes defaulted to 00) and renders it into the
// resolution's integer format.
func parseTimestampToken(res *knowledge.Resolution, token string) (int64, error) {
	sanitized := strings.NewReplacer("T", "", ":", "", "-", "", " ", "").Replace(token)
	switch len(sanitized) {
	case 8, 10, 12:
	default:
		return 0, fmt.Errorf("unexpected timestamp %q", token)
	}
	for len(sanitized) < len(fullTimestampLayout) {
		sanitized += "00"
	}
	t, err := time.Parse(fullTimestampLayout, sanitized)
	if err != nil {
		return 0, fmt.Errorf("parsing timestamp %q failed: %w", token, err)
	}
	return res.FormatTimestamp(t), nil
}

// headerLines returns how many leading lines are headers. The first
// line always is; legacy formats carry a second header line, detected
// by its first column not being a station id.
func headerLines(lines []string) int {
	if len(lines) > 1 {
		first := strings.TrimSpace(strings.SplitN(lines[1], ";", 2)[0])
		if _, err := strconv.Atoi(first); err != nil {
			return 2
		}
	}
	return 1
}

// splitLines decodes the latin-1 payload and returns its non-empty
// lines. The provider terminates files with a SUB (0x1a) marker line.
func splitLines(payload []byte) []string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
	if err != nil {
		decoded = payload
	}
	text := strings.ReplaceAll(string(decoded), "\r", "")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "\x1a" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
