// Package coverage combines joined counselor coverage with aggregated
// scout demand and the Eagle-required classification to assign every
// badge in the universe a recruitment priority tier.
package coverage

import (
	"sort"
	"strings"

	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/demand"
	"github.com/troop32/mbcscope/pkg/join"
)

// Tier classifies recruitment urgency for a badge.
type Tier string

const (
	TierCritical      Tier = "CRITICAL"
	TierHigh          Tier = "HIGH"
	TierMedium        Tier = "MEDIUM"
	TierAdequate      Tier = "ADEQUATE"
	TierNotApplicable Tier = "NOT_APPLICABLE"
)

// Counselor is the per-badge counselor listing carried in a coverage
// entry: the person plus their unit affiliation label.
type Counselor struct {
	Name        string        `json:"name"`
	UnitDisplay string        `json:"troop_display"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Sources     []join.Source `json:"sources"`
}

// Entry is the derived per-badge aggregate.
type Entry struct {
	Badge           string      `json:"badge_name"`
	IsEagleRequired bool        `json:"is_eagle_required"`
	CounselorCount  int         `json:"counselor_count"`
	Counselors      []Counselor `json:"counselors,omitempty"`
	DemandCount     int         `json:"scout_demand"`
	DemandingScouts []string    `json:"interested_scouts,omitempty"`
	Tier            Tier        `json:"gap_level"`
}

// rule is one row of the priority decision table. Rows are evaluated
// top to bottom, first match wins.
type rule struct {
	tier    Tier
	applies func(eagle bool, counselors, scouts int) bool
}

var tierRules = []rule{
	{TierCritical, func(eagle bool, c, d int) bool { return eagle && c <= 1 }},
	{TierHigh, func(eagle bool, c, d int) bool { return !eagle && c == 0 && d >= 3 }},
	{TierMedium, func(eagle bool, c, d int) bool { return !eagle && c == 0 && (d == 1 || d == 2) }},
}

// adequateCounselorCount is the coverage level at which a badge is
// always considered adequately covered, whatever the table says.
const adequateCounselorCount = 3

// Classify assigns a tier from (eagle, counselor count, demand count).
// The decision table runs first; the >=3-counselor cap is applied after
// it, so a badge with three or more counselors never ranks as a
// priority.
func Classify(eagle bool, counselors, scouts int) Tier {
	tier := Tier("")
	for _, r := range tierRules {
		if r.applies(eagle, counselors, scouts) {
			tier = r.tier
			break
		}
	}
	if tier == "" {
		if counselors == 0 && scouts == 0 {
			tier = TierNotApplicable
		} else {
			tier = TierAdequate
		}
	}
	if counselors >= adequateCounselorCount {
		tier = TierAdequate
	}
	return tier
}

// IsPriority reports whether the tier appears in the priority report.
func (t Tier) IsPriority() bool {
	return t == TierCritical || t == TierHigh || t == TierMedium
}

// Analysis is the complete coverage-gap picture for a run.
type Analysis struct {
	Entries []Entry `json:"priority_analysis"`

	Critical               []Entry `json:"critical_gaps"`
	High                   []Entry `json:"high_priority_gaps"`
	Medium                 []Entry `json:"medium_priority_gaps"`
	AdequateWithCounselors []Entry `json:"adequate_coverage"`

	ScoutsImpacted int `json:"scouts_impacted"`
}

// TierCounts returns the number of badges per priority tier.
func (a *Analysis) TierCounts() map[Tier]int {
	return map[Tier]int{
		TierCritical: len(a.Critical),
		TierHigh:     len(a.High),
		TierMedium:   len(a.Medium),
		TierAdequate: len(a.AdequateWithCounselors),
	}
}

// Analyze computes a coverage entry for every badge in the universe.
// Counselor coverage comes from the joined troop counselors; demand
// comes from the aggregated per-badge analysis. Both inputs are read at
// assembly time, so counts can never go stale within a run.
func Analyze(universe *badge.Universe, counselors []*join.Person, demandByBadge map[string]*demand.BadgeDemand) *Analysis {
	byBadge := make(map[string][]Counselor)
	for _, p := range counselors {
		c := Counselor{
			Name:        p.FullName,
			UnitDisplay: p.UnitDisplay(),
			Email:       p.Email,
			Sources:     p.Sources,
		}
		if len(p.Phones) > 0 {
			c.Phone = p.Phones[0]
		}
		for _, b := range p.MeritBadges {
			byBadge[b] = append(byBadge[b], c)
		}
	}

	a := &Analysis{}
	impacted := make(map[string]bool)
	for _, name := range universe.Names() {
		e := Entry{
			Badge:           name,
			IsEagleRequired: universe.IsEagleRequired(name),
			Counselors:      byBadge[name],
			CounselorCount:  len(byBadge[name]),
		}
		if bd, ok := demandByBadge[name]; ok {
			e.DemandCount = bd.Count
			e.DemandingScouts = bd.Scouts
		}
		e.Tier = Classify(e.IsEagleRequired, e.CounselorCount, e.DemandCount)

		a.Entries = append(a.Entries, e)
		switch e.Tier {
		case TierCritical:
			a.Critical = append(a.Critical, e)
		case TierHigh:
			a.High = append(a.High, e)
		case TierMedium:
			a.Medium = append(a.Medium, e)
		case TierAdequate:
			if e.CounselorCount > 0 {
				a.AdequateWithCounselors = append(a.AdequateWithCounselors, e)
			}
		}
		if e.Tier.IsPriority() {
			for _, s := range e.DemandingScouts {
				impacted[strings.ToLower(s)] = true
			}
		}
	}
	a.ScoutsImpacted = len(impacted)

	sortEntries(a.Entries)
	sortEntries(a.Critical)
	sortEntries(a.High)
	sortEntries(a.Medium)
	sortEntries(a.AdequateWithCounselors)
	return a
}

// Each section is independently sorted alphabetically by badge name so
// re-runs with identical inputs render identically.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, k int) bool {
		return entries[i].Badge < entries[k].Badge
	})
}
