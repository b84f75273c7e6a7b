package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/troop32/mbcscope/internal/utils"
)

// Roster exports are named "{UNIT} Roster {DATE}.html".
var rosterFileRe = regexp.MustCompile(`^([A-Z0-9]+)\s+Roster\s+(.+)\.html$`)

var rosterDateFormats = []string{
	"02Jan2006",  // 16Sep2025
	"2006-01-02", // 2025-09-16
	"01-02-2006", // 09-16-2025
	"20060102",   // 20250916
}

// DetectLatest scans dir for roster exports and returns, per unit, the
// path of the newest one. The date embedded in the filename decides
// recency; when it cannot be parsed the file's modification time is the
// fallback.
func DetectLatest(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster directory %s: %w", dir, err)
	}

	type candidate struct {
		path string
		date time.Time
	}
	latest := make(map[string]candidate)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := rosterFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		unit, dateStr := m[1], m[2]

		date, ok := parseRosterDate(dateStr)
		if !ok {
			if info, err := entry.Info(); err == nil {
				date = info.ModTime()
			}
			utils.Log.WithField("file", entry.Name()).Warnf("roster: unparseable date %q, using file time", dateStr)
		}

		if cur, exists := latest[unit]; !exists || date.After(cur.date) {
			latest[unit] = candidate{path: filepath.Join(dir, entry.Name()), date: date}
		}
	}

	out := make(map[string]string, len(latest))
	for unit, c := range latest {
		out[unit] = c.path
	}
	return out, nil
}

func parseRosterDate(s string) (time.Time, bool) {
	for _, layout := range rosterDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
