// Package snapshot persists the pipeline's intermediate documents as
// JSON files in a processed-data directory, so each stage can run
// independently and pick up the newest output of the stage before it.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/troop32/mbcscope/pkg/coverage"
	"github.com/troop32/mbcscope/pkg/demand"
	"github.com/troop32/mbcscope/pkg/join"
)

const (
	joinedFile        = "roster_mbc_join.json"
	counselorsFile    = "mbc_counselors.json"
	demandFilePrefix  = "scout_demand_analysis_"
	gapFilePrefix     = "coverage_priority_analysis_"
	timestampedLayout = "20060102_150405"
)

// Store reads and writes pipeline documents under one directory.
type Store struct {
	dir string
}

// New expands dir (supporting a leading ~) and ensures it exists.
func New(dir string) (*Store, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expanding data directory: %w", err)
	}
	if err := os.MkdirAll(expanded, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: expanded}, nil
}

// Dir returns the expanded directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// CounselorDocument wraps scraped counselor records with extraction
// metadata.
type CounselorDocument struct {
	ExtractionMetadata ExtractionMetadata  `json:"extraction_metadata"`
	Counselors         []join.RawCounselor `json:"counselors"`
}

type ExtractionMetadata struct {
	Timestamp       string `json:"timestamp"`
	TotalCounselors int    `json:"total_counselors"`
	Source          string `json:"source"`
}

// SaveCounselors writes the scraped counselor document.
func (s *Store) SaveCounselors(counselors []join.RawCounselor, now time.Time) (string, error) {
	doc := CounselorDocument{
		ExtractionMetadata: ExtractionMetadata{
			Timestamp:       now.Format(time.RFC3339),
			TotalCounselors: len(counselors),
			Source:          "ScoutBook Merit Badge Counselor List",
		},
		Counselors: counselors,
	}
	path := filepath.Join(s.dir, counselorsFile)
	return path, writeJSON(path, doc)
}

// LoadCounselors reads the most recently saved counselor document.
func (s *Store) LoadCounselors() (*CounselorDocument, error) {
	var doc CounselorDocument
	if err := readJSON(filepath.Join(s.dir, counselorsFile), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveJoined writes the roster/counselor join result.
func (s *Store) SaveJoined(result *join.Result) (string, error) {
	path := filepath.Join(s.dir, joinedFile)
	return path, writeJSON(path, result)
}

// LoadJoined reads the roster/counselor join result.
func (s *Store) LoadJoined() (*join.Result, error) {
	var result join.Result
	if err := readJSON(filepath.Join(s.dir, joinedFile), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveDemand writes a timestamped demand analysis document.
func (s *Store) SaveDemand(analysis *demand.Analysis, now time.Time) (string, error) {
	name := demandFilePrefix + now.Format(timestampedLayout) + ".json"
	path := filepath.Join(s.dir, name)
	return path, writeJSON(path, analysis)
}

// LatestDemand reads the newest demand analysis document, or nil when
// none has been written yet.
func (s *Store) LatestDemand() (*demand.Analysis, string, error) {
	path, err := s.latest(demandFilePrefix)
	if err != nil || path == "" {
		return nil, "", err
	}
	var analysis demand.Analysis
	if err := readJSON(path, &analysis); err != nil {
		return nil, "", err
	}
	return &analysis, path, nil
}

// SavePriority writes a timestamped coverage-gap analysis document.
func (s *Store) SavePriority(analysis *coverage.Analysis, now time.Time) (string, error) {
	name := gapFilePrefix + now.Format(timestampedLayout) + ".json"
	path := filepath.Join(s.dir, name)
	return path, writeJSON(path, analysis)
}

// LatestPriority reads the newest coverage-gap analysis document, or
// nil when none has been written yet.
func (s *Store) LatestPriority() (*coverage.Analysis, string, error) {
	path, err := s.LatestPriorityPath()
	if err != nil || path == "" {
		return nil, "", err
	}
	var analysis coverage.Analysis
	if err := readJSON(path, &analysis); err != nil {
		return nil, "", err
	}
	return &analysis, path, nil
}

// LatestPriorityPath returns the path of the newest coverage-gap
// document without decoding it.
func (s *Store) LatestPriorityPath() (string, error) {
	return s.latest(gapFilePrefix)
}

// latest finds the lexically newest timestamped file with the given
// prefix. Timestamps in the filenames sort correctly as strings.
func (s *Store) latest(prefix string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("reading data directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(s.dir, names[len(names)-1]), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
