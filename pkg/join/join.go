package join

import (
	"fmt"
	"sort"

	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/identity"
)

// Result is the joined-data document: the deduplicated Person partitions
// plus summary counts.
type Result struct {
	TroopCounselors     []*Person `json:"troop_counselors"`
	NonCounselorLeaders []*Person `json:"non_counselor_leaders"`
	TotalAdults         int       `json:"total_adults"`
	MBCMatches          int       `json:"mbc_matches"`
	SupplementalMatches int       `json:"supplemental_matches"`

	Diagnostics []string `json:"-"`
}

// counselorRecord is a scraped counselor reduced to joinable form, with
// merit badges already resolved to canonical names.
type counselorRecord struct {
	name          identity.Name
	location      string
	phones        []string
	email         string
	badges        []string
	yptExpiration string
}

// counselorIndex maps every key a counselor can be matched under to the
// canonical record, so a roster key built from either the formal first
// name or the nickname lands on the same counselor.
type counselorIndex map[identity.Key]*counselorRecord

// Joiner merges roster adults, scraped counselors and supplemental
// entries under the shared identity-key matching policy.
type Joiner struct {
	universe *badge.Universe
	diags    []string
}

// New returns a Joiner resolving badge names against the given universe.
func New(universe *badge.Universe) *Joiner {
	return &Joiner{universe: universe}
}

func (j *Joiner) diag(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	j.diags = append(j.diags, msg)
	utils.Log.Warn(msg)
}

// Join produces the unified Person set. Empty inputs degrade to a
// completed-but-degenerate result with a warning; they are never fatal
// here, since partial pipelines (skip-scraping reruns) are supported.
func (j *Joiner) Join(adults []RawAdult, counselors []RawCounselor, supplemental []SupplementalEntry) (*Result, error) {
	if len(adults) == 0 {
		j.diag("join: no roster adults provided")
	}
	if len(counselors) == 0 {
		j.diag("join: no scraped counselors provided")
	}

	index := j.buildCounselorIndex(counselors)
	persons, order := j.foldAdults(adults)

	// Probe the counselor index with each roster person's key. A hit on
	// any of the counselor's keys marks the person as a counselor and
	// unions in the counselor-side attributes.
	matches := 0
	for _, key := range order {
		p := persons[key]
		if rec, ok := index[key]; ok {
			j.mergeCounselor(p, rec)
			matches++
		}
	}

	supplementalOnly := j.applySupplemental(persons, &order, index, supplemental)

	res := &Result{
		TotalAdults:         len(order) - supplementalOnly,
		MBCMatches:          matches,
		SupplementalMatches: supplementalOnly,
		Diagnostics:         j.diags,
	}
	for _, key := range order {
		p := persons[key]
		switch {
		case p.IsCounselor && len(p.Units) > 0:
			res.TroopCounselors = append(res.TroopCounselors, p)
		case !p.IsCounselor && p.FromSource(SourceRoster):
			res.NonCounselorLeaders = append(res.NonCounselorLeaders, p)
		}
	}
	sortPersons(res.TroopCounselors)
	sortPersons(res.NonCounselorLeaders)
	return res, nil
}

// buildCounselorIndex parses counselor names and registers every lookup
// key. Two counselor records sharing a key are the same person and are
// merged.
func (j *Joiner) buildCounselorIndex(counselors []RawCounselor) counselorIndex {
	index := make(counselorIndex)
	for _, c := range counselors {
		name, err := identity.ParseFullName(c.RawFullName)
		if err != nil {
			j.diag("join: unmatchable counselor name %q: %v", c.RawFullName, err)
			continue
		}

		var badges []string
		for _, raw := range c.MeritBadges {
			canonical, ok := j.universe.Resolve(raw)
			if !ok {
				j.diag("join: counselor %q: unknown merit badge %q", c.RawFullName, raw)
				continue
			}
			badges = append(badges, canonical)
		}

		var rec *counselorRecord
		for _, key := range name.Keys() {
			if existing, ok := index[key]; ok {
				rec = existing
				break
			}
		}
		if rec == nil {
			rec = &counselorRecord{
				name:          name,
				location:      c.Location(),
				phones:        c.Phones,
				email:         c.Email,
				yptExpiration: c.YPTExpiration,
			}
		}
		rec.badges = unionStrings(rec.badges, badges)
		if rec.email == "" {
			rec.email = c.Email
		}
		if rec.yptExpiration == "" {
			rec.yptExpiration = c.YPTExpiration
		}
		for _, key := range name.Keys() {
			index[key] = rec
		}
	}
	return index
}

// foldAdults collapses roster records into Persons keyed by identity,
// accumulating unit affiliations and per-unit positions across roster
// files. Returns the persons plus their first-seen key order.
func (j *Joiner) foldAdults(adults []RawAdult) (map[identity.Key]*Person, []identity.Key) {
	persons := make(map[identity.Key]*Person)
	var order []identity.Key

	for _, a := range adults {
		if a.Position == NonLeaderPosition {
			utils.Log.WithField("name", a.RawFullName).Debug("join: skipping non-leader roster record")
			continue
		}
		name, err := identity.ParseFullName(a.RawFullName)
		if err != nil {
			j.diag("join: unmatchable roster name %q (unit %s): %v", a.RawFullName, a.UnitID, err)
			continue
		}

		key := name.PrimaryKey()
		p, ok := persons[key]
		if !ok {
			p = &Person{
				FullName:  name.DisplayName(),
				FirstName: name.First,
				LastName:  name.Last,
				Positions: make(map[string]string),
			}
			p.addSource(SourceRoster)
			persons[key] = p
			order = append(order, key)
		}
		unit := NormalizeUnit(a.UnitID)
		if unit != "" {
			p.addUnit(unit)
			if a.Position != "" {
				p.Positions[unit] = a.Position
			}
		}
	}
	return persons, order
}

// mergeCounselor unions counselor-side attributes into a roster Person.
func (j *Joiner) mergeCounselor(p *Person, rec *counselorRecord) {
	p.IsCounselor = true
	p.addSource(SourceScraped)
	p.addBadges(rec.badges)
	p.addPhones(rec.phones)
	if p.AltFirstName == "" {
		p.AltFirstName = rec.name.AltFirst
	}
	if p.Email == "" {
		p.Email = rec.email
	}
	if p.Location == "" {
		p.Location = rec.location
	}
	if p.YPTExpiration == "" {
		p.YPTExpiration = rec.yptExpiration
	}
}

// applySupplemental merges supplemental entries into existing Persons by
// identity key, or creates new counselor-only Persons for entries with
// no match. Returns the number of supplemental-only Persons created.
func (j *Joiner) applySupplemental(persons map[identity.Key]*Person, order *[]identity.Key, index counselorIndex, entries []SupplementalEntry) int {
	created := 0
	for _, e := range entries {
		var existing *Person
		var existingKey identity.Key
		for _, key := range e.Name.Keys() {
			if p, ok := persons[key]; ok {
				existing, existingKey = p, key
				break
			}
		}

		if existing != nil {
			existing.addUnit(e.UnitID)
			existing.addSource(SourceSupplemental)
			if rec, ok := index[existingKey]; ok && !existing.IsCounselor {
				j.mergeCounselor(existing, rec)
			}
			continue
		}

		p := &Person{
			FullName:    e.Name.DisplayName(),
			FirstName:   e.Name.First,
			LastName:    e.Name.Last,
			IsCounselor: true,
		}
		p.addSource(SourceSupplemental)
		p.addUnit(e.UnitID)
		for _, key := range e.Name.Keys() {
			if rec, ok := index[key]; ok {
				j.mergeCounselor(p, rec)
				break
			}
		}
		key := e.Name.PrimaryKey()
		persons[key] = p
		*order = append(*order, key)
		created++
	}
	return created
}

func sortPersons(ps []*Person) {
	sort.Slice(ps, func(i, k int) bool {
		if ps[i].LastName != ps[k].LastName {
			return ps[i].LastName < ps[k].LastName
		}
		return ps[i].FirstName < ps[k].FirstName
	})
}

func unionStrings(a, b []string) []string {
	have := make(map[string]bool, len(a))
	out := append([]string(nil), a...)
	for _, s := range a {
		have[s] = true
	}
	for _, s := range b {
		if !have[s] {
			have[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
