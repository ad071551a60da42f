package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// table is a parsed CSV file with headers resolved to canonical column names.
type table struct {
	columns map[string]int
	rows    [][]string
}

// Column aliases, keyed by the header lowercased with spaces and underscores removed.
var columnAliases = map[string]string{
	"name":                 "name",
	"songname":             "name",
	"trackname":            "name",
	"track":                "name",
	"title":                "name",
	"tracknumber":          "track_number",
	"number":               "track_number",
	"duration":             "duration",
	"durationms":           "duration",
	"explicit":             "explicit",
	"popularity":           "popularity",
	"songpopularity":       "popularity",
	"album":                "album_name",
	"albumname":            "album_name",
	"albumreleasedate":     "album_release_date",
	"releasedatealbum":     "album_release_date",
	"releasedate":          "album_release_date",
	"albumpopularity":      "album_popularity",
	"birthname":            "birth_name",
	"birthdate":            "birth_date",
	"dateofbirth":          "birth_date",
	"birthplace":           "birth_place",
	"placeofbirth":         "birth_place",
	"country":              "country",
	"countryofcitizenship": "country",
	"activeyears":          "active_years",
	"workperiodstart":      "active_years",
	"genres":               "genres",
	"genreswikidata":       "genres",
	"genresspotify":        "genres_extra",
	"instruments":          "instruments",
	"vocaltype":            "vocal_type",
	"voicetype":            "vocal_type",
}

func readTable(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return &table{columns: map[string]int{}}, nil
	}
	t := &table{columns: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, header := range records[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
		if canonical, ok := columnAliases[key]; ok {
			if _, seen := t.columns[canonical]; !seen {
				t.columns[canonical] = i
			}
		}
	}
	return t, nil
}

func (t *table) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// get returns the trimmed cell, or "" when the column or cell is absent.
func (t *table) get(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	value := strings.TrimSpace(row[idx])
	switch strings.ToLower(value) {
	case "nan", "null", "none":
		return ""
	}
	return value
}

func parseOptionalInt(value string) (*int, bool) {
	if value == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	n := int(f)
	return &n, true
}

// parseDuration accepts milliseconds or "m:ss".
func parseDuration(value string) (*int64, bool) {
	if value == "" {
		return nil, true
	}
	if minutes, seconds, ok := strings.Cut(value, ":"); ok {
		m, errM := strconv.Atoi(minutes)
		s, errS := strconv.Atoi(seconds)
		if errM != nil || errS != nil || m < 0 || s < 0 || s >= 60 {
			return nil, false
		}
		ms := int64(m*60+s) * 1000
		return &ms, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	ms := int64(f)
	return &ms, true
}

func parseOptionalBool(value string) (*bool, bool) {
	var b bool
	switch strings.ToLower(value) {
	case "":
		return nil, true
	case "true", "1", "yes", "y", "1.0":
		b = true
	case "false", "0", "no", "n", "0.0":
		b = false
	default:
		return nil, false
	}
	return &b, true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "01/02/2006", "2006-01", "2006"}

// normalizeDate renders parseable dates as YYYY-MM-DD (YYYY for bare years)
// and passes anything else through trimmed.
func normalizeDate(value string) string {
	for _, layout := range dateLayouts {
		ts, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if layout == "2006" {
			return ts.Format("2006")
		}
		return ts.Format("2006-01-02")
	}
	return value
}
