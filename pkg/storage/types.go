package storage

import "time"

// Entry represents one counselor as tracked across runs. Key is the
// normalized identity key and decides row identity; everything else is
// payload whose change triggers an "updated" event.
type Entry struct {
	Key           string
	Name          string
	Location      string
	Email         string
	YPTExpiration string
	Badges        []string
}

// Change captures a single counselor change event for auditing or
// printing.
type Change struct {
	OccurredAt time.Time

	Key        string
	Name       string
	ChangeType string // added | updated | removed
}

// BadgeStats summarizes counselor coverage for one badge as currently
// stored.
type BadgeStats struct {
	Badge      string
	Counselors int
}
