// Package storage keeps a local sqlite history of scraped counselors
// across runs, so additions, updates and departures are visible without
// diffing raw JSON snapshots.
package storage

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/troop32/mbcscope/pkg/join"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS counselor_entries (
  id             INTEGER PRIMARY KEY,
  key            TEXT NOT NULL UNIQUE,
  name           TEXT NOT NULL,
  location       TEXT,
  email          TEXT,
  ypt_expiration TEXT,
  run_id         INTEGER NOT NULL DEFAULT 0,
  first_seen_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS counselor_badges (
  counselor_key TEXT NOT NULL,
  badge         TEXT NOT NULL,
  UNIQUE(counselor_key, badge)
);
CREATE INDEX IF NOT EXISTS idx_badges_badge ON counselor_badges(badge);
CREATE TABLE IF NOT EXISTS counselor_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  key         TEXT NOT NULL,
  name        TEXT NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','updated','removed'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON counselor_changes(occurred_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// BuildEntries converts joined counselor persons into history entries.
// Non-counselor persons are skipped.
func BuildEntries(persons []*join.Person) []Entry {
	out := make([]Entry, 0, len(persons))
	for _, p := range persons {
		if !p.IsCounselor {
			continue
		}
		badges := append([]string(nil), p.MeritBadges...)
		sort.Strings(badges)
		out = append(out, Entry{
			Key:           p.Name().PrimaryKey().String(),
			Name:          p.FullName,
			Location:      p.Location,
			Email:         p.Email,
			YPTExpiration: p.YPTExpiration,
			Badges:        badges,
		})
	}
	return out
}

// RecordRun upserts the entries of one scrape run and sweeps out
// counselors no longer present, returning the change events.
func (d *DB) RecordRun(ctx context.Context, entries []Entry) ([]Change, error) {
	now := time.Now().UTC()
	runID := time.Now().UnixNano()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, "SELECT key, name, location, email, ypt_expiration FROM counselor_entries")
	if err != nil {
		return nil, err
	}

	type existing struct{ Name, Loc, Email, YPT string }
	existingMap := make(map[string]existing)
	for rows.Next() {
		var key string
		var name string
		var loc, email, ypt sql.NullString
		if err = rows.Scan(&key, &name, &loc, &email, &ypt); err != nil {
			rows.Close()
			return nil, err
		}
		existingMap[key] = existing{Name: name, Loc: loc.String, Email: email.String, YPT: ypt.String}
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}

	existingBadges, err := loadBadges(ctx, tx)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, e := range entries {
		ex, existed := existingMap[e.Key]

		if !existed {
			_, err = tx.ExecContext(ctx, `INSERT INTO counselor_entries(key, name, location, email, ypt_expiration, run_id, first_seen_at, last_seen_at) VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`, e.Key, e.Name, nullIfEmpty(e.Location), nullIfEmpty(e.Email), nullIfEmpty(e.YPTExpiration), runID)
			if err != nil {
				return nil, err
			}
			if err = replaceBadges(ctx, tx, e.Key, e.Badges); err != nil {
				return nil, err
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO counselor_changes(occurred_at, key, name, change_type) VALUES(CURRENT_TIMESTAMP, ?, ?, 'added')`, e.Key, e.Name)
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{OccurredAt: now, Key: e.Key, Name: e.Name, ChangeType: "added"})
			continue
		}

		badgesChanged := strings.Join(existingBadges[e.Key], "\x00") != strings.Join(e.Badges, "\x00")
		if ex.Name != e.Name || ex.Loc != e.Location || ex.Email != e.Email || ex.YPT != e.YPTExpiration || badgesChanged {
			_, err = tx.ExecContext(ctx, `UPDATE counselor_entries SET name = ?, location = ?, email = ?, ypt_expiration = ?, run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE key = ?`, e.Name, nullIfEmpty(e.Location), nullIfEmpty(e.Email), nullIfEmpty(e.YPTExpiration), runID, e.Key)
			if err != nil {
				return nil, err
			}
			if badgesChanged {
				if err = replaceBadges(ctx, tx, e.Key, e.Badges); err != nil {
					return nil, err
				}
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO counselor_changes(occurred_at, key, name, change_type) VALUES(CURRENT_TIMESTAMP, ?, ?, 'updated')`, e.Key, e.Name)
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{OccurredAt: now, Key: e.Key, Name: e.Name, ChangeType: "updated"})
		} else {
			_, err = tx.ExecContext(ctx, `UPDATE counselor_entries SET run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE key = ?`, runID, e.Key)
			if err != nil {
				return nil, err
			}
		}
	}

	// Sweep: counselors not touched in this run have left the results.
	staleRows, err := tx.QueryContext(ctx, "SELECT key, name FROM counselor_entries WHERE run_id != ?", runID)
	if err != nil {
		return nil, err
	}

	type stale struct{ Key, Name string }
	var toRemove []stale
	for staleRows.Next() {
		var s stale
		if err = staleRows.Scan(&s.Key, &s.Name); err != nil {
			staleRows.Close()
			return nil, err
		}
		toRemove = append(toRemove, s)
	}
	if err = staleRows.Close(); err != nil {
		return nil, err
	}

	for _, s := range toRemove {
		if _, err = tx.ExecContext(ctx, `DELETE FROM counselor_entries WHERE key = ?`, s.Key); err != nil {
			return nil, err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM counselor_badges WHERE counselor_key = ?`, s.Key); err != nil {
			return nil, err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO counselor_changes(occurred_at, key, name, change_type) VALUES(CURRENT_TIMESTAMP, ?, ?, 'removed')`, s.Key, s.Name); err != nil {
			return nil, err
		}
		changes = append(changes, Change{OccurredAt: now, Key: s.Key, Name: s.Name, ChangeType: "removed"})
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

// ListRecentChanges returns the newest change events, most recent first.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	q := "SELECT occurred_at, key, name, change_type FROM counselor_changes ORDER BY occurred_at DESC, id DESC LIMIT ?"
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Change
	for rows.Next() {
		var c Change
		var occurredAtStr string
		if err := rows.Scan(&occurredAtStr, &c.Key, &c.Name, &c.ChangeType); err != nil {
			return nil, err
		}
		// Parse SQLite CURRENT_TIMESTAMP format
		// Try "2006-01-02 15:04:05" then RFC3339
		if t, perr := time.Parse("2006-01-02 15:04:05", occurredAtStr); perr == nil {
			c.OccurredAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, occurredAtStr); perr2 == nil {
			c.OccurredAt = t2
		} else {
			c.OccurredAt = time.Time{}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetStats returns per-badge counselor counts as currently stored,
// largest first.
func (d *DB) GetStats(ctx context.Context) ([]BadgeStats, error) {
	q := `
		SELECT
		  badge,
		  COUNT(DISTINCT counselor_key) AS counselors
		FROM counselor_badges
		GROUP BY badge
		ORDER BY counselors DESC, badge ASC`
	rows, err := d.sql.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BadgeStats
	for rows.Next() {
		var s BadgeStats
		if err := rows.Scan(&s.Badge, &s.Counselors); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountCounselors returns how many counselors are currently stored.
func (d *DB) CountCounselors(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM counselor_entries").Scan(&n)
	return n, err
}

func loadBadges(ctx context.Context, tx *sql.Tx) (map[string][]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT counselor_key, badge FROM counselor_badges ORDER BY counselor_key, badge")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string][]string)
	for rows.Next() {
		var key, badge string
		if err := rows.Scan(&key, &badge); err != nil {
			return nil, err
		}
		out[key] = append(out[key], badge)
	}
	return out, rows.Err()
}

func replaceBadges(ctx context.Context, tx *sql.Tx, key string, badges []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM counselor_badges WHERE counselor_key = ?`, key); err != nil {
		return err
	}
	for _, b := range badges {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO counselor_badges(counselor_key, badge) VALUES(?, ?)`, key, b); err != nil {
			return err
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
