// Package join merges the adult records produced by roster parsing, the
// counselor records produced by search-result scraping and the
// free-text supplemental entries into a single deduplicated,
// person-centric dataset.
package join

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/troop32/mbcscope/pkg/identity"
)

// Source marks which kind of input a Person (or part of one) came from.
type Source string

const (
	SourceRoster       Source = "roster"
	SourceScraped      Source = "scraped"
	SourceSupplemental Source = "supplemental"
)

// NonLeaderPosition is the roster position title that marks 18+ members
// still registered as participants rather than adult leaders. Records
// carrying it are dropped whether or not the roster parser already
// filtered them.
const NonLeaderPosition = "Unit Participant"

// RawAdult is one unvalidated adult record from a roster export.
type RawAdult struct {
	RawFullName string
	UnitID      string
	Position    string
}

// RawCounselor is one unvalidated counselor record from a scraped
// search-result page. RawFullName may embed a parenthesized alternate
// first name ("Timothy (Tim) Werner").
type RawCounselor struct {
	RawFullName   string   `json:"name"`
	Town          string   `json:"town,omitempty"`
	State         string   `json:"state,omitempty"`
	Zip           string   `json:"zip,omitempty"`
	Phones        []string `json:"phones,omitempty"`
	Email         string   `json:"email,omitempty"`
	MeritBadges   []string `json:"merit_badges"`
	YPTExpiration string   `json:"ypt_expiration,omitempty"`
}

// Location renders the town/state/zip triple for display.
func (c RawCounselor) Location() string {
	loc := strings.TrimSpace(c.Town)
	if c.State != "" {
		if loc != "" {
			loc += ", "
		}
		loc += c.State
	}
	if c.Zip != "" {
		if loc != "" {
			loc += " "
		}
		loc += c.Zip
	}
	return loc
}

// Person is a human identified across sources. Identity is decided
// solely by the (first-or-alternate-first, last) key; everything else is
// unioned during the join.
type Person struct {
	FullName      string            `json:"name"`
	FirstName     string            `json:"first_name"`
	AltFirstName  string            `json:"alt_first_name,omitempty"`
	LastName      string            `json:"last_name"`
	Location      string            `json:"location,omitempty"`
	Phones        []string          `json:"phones,omitempty"`
	Email         string            `json:"email,omitempty"`
	Units         []string          `json:"troops"`
	Positions     map[string]string `json:"positions,omitempty"`
	IsCounselor   bool              `json:"is_counselor"`
	MeritBadges   []string          `json:"merit_badges,omitempty"`
	YPTExpiration string            `json:"ypt_expiration,omitempty"`
	Sources       []Source          `json:"sources"`
}

// Name returns the parsed identity name for this Person.
func (p *Person) Name() identity.Name {
	return identity.Name{First: p.FirstName, AltFirst: p.AltFirstName, Last: p.LastName, Raw: p.FullName}
}

// UnitDisplay renders the unit affiliations as a comma-separated label.
func (p *Person) UnitDisplay() string {
	return strings.Join(p.Units, ", ")
}

// FromSource reports whether any part of this Person came from src.
func (p *Person) FromSource(src Source) bool {
	for _, s := range p.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// IsSupplemental reports whether the Person came in whole or part from
// the supplemental input; such entries are visually marked downstream.
func (p *Person) IsSupplemental() bool {
	return p.FromSource(SourceSupplemental)
}

func (p *Person) addSource(src Source) {
	if !p.FromSource(src) {
		p.Sources = append(p.Sources, src)
	}
}

func (p *Person) addUnit(unit string) {
	for _, u := range p.Units {
		if u == unit {
			return
		}
	}
	p.Units = append(p.Units, unit)
	sort.Strings(p.Units)
}

func (p *Person) addBadges(badges []string) {
	have := make(map[string]bool, len(p.MeritBadges))
	for _, b := range p.MeritBadges {
		have[b] = true
	}
	for _, b := range badges {
		if !have[b] {
			have[b] = true
			p.MeritBadges = append(p.MeritBadges, b)
		}
	}
	sort.Strings(p.MeritBadges)
}

func (p *Person) addPhones(phones []string) {
	have := make(map[string]bool, len(p.Phones))
	for _, ph := range p.Phones {
		have[ph] = true
	}
	for _, ph := range phones {
		if ph != "" && !have[ph] {
			have[ph] = true
			p.Phones = append(p.Phones, ph)
		}
	}
}

// NormalizeUnit canonicalizes a unit identifier: "Troop 7012", "troop7012"
// and "7012" all become "T7012".
func NormalizeUnit(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "troop"):
		s = strings.TrimSpace(s[len("troop"):])
	case strings.HasPrefix(lower, "t"):
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return ""
	}
	return "T" + s
}

// SupplementalEntry is one parsed "FirstName LastName, UnitID" line.
type SupplementalEntry struct {
	Name   identity.Name
	UnitID string
	Line   int
}

// ParseSupplemental reads free-text supplemental-MBC lines. '#' comments
// and blank lines are skipped; malformed lines are dropped with a
// diagnostic carrying the line number.
func ParseSupplemental(r io.Reader) ([]SupplementalEntry, []string, error) {
	var entries []SupplementalEntry
	var diags []string

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		namePart, unitPart, found := strings.Cut(line, ",")
		if !found {
			diags = append(diags, fmt.Sprintf("supplemental line %d: missing unit: %q", lineNum, line))
			continue
		}

		name, err := identity.ParseFullName(namePart)
		if err != nil {
			diags = append(diags, fmt.Sprintf("supplemental line %d: %v: %q", lineNum, err, line))
			continue
		}
		unit := NormalizeUnit(unitPart)
		if unit == "" {
			diags = append(diags, fmt.Sprintf("supplemental line %d: empty unit: %q", lineNum, line))
			continue
		}

		entries = append(entries, SupplementalEntry{Name: name, UnitID: unit, Line: lineNum})
	}
	if err := sc.Err(); err != nil {
		return nil, diags, err
	}
	return entries, diags, nil
}
