// Package report shapes the joined and analyzed data into the four
// fixed report structures the rendering layer consumes verbatim. The
// assembler does no I/O and emits deterministic ordering, so identical
// inputs produce byte-identical reports apart from timestamps.
package report

import (
	"sort"
	"time"

	"github.com/troop32/mbcscope/pkg/coverage"
	"github.com/troop32/mbcscope/pkg/exclusion"
	"github.com/troop32/mbcscope/pkg/join"
)

// CoverageSection groups the per-badge coverage entries the way the
// coverage report presents them.
type CoverageSection struct {
	EagleWithCounselors       []coverage.Entry
	EagleWithoutCounselors    []coverage.Entry
	NonEagleWithCounselors    []coverage.Entry
	NonEagleWithoutCounselors []coverage.Entry
}

// PrioritySection carries the tiered recruitment lists.
type PrioritySection struct {
	Critical               []coverage.Entry
	High                   []coverage.Entry
	Medium                 []coverage.Entry
	AdequateWithCounselors []coverage.Entry
}

// Summary is the headline counts block shown on every report.
type Summary struct {
	TotalAdults         int
	MBCMatches          int
	SupplementalMatches int
	ScoutsImpacted      int
	CriticalCount       int
	HighCount           int
	MediumCount         int
	AdequateCount       int
}

// Report is the complete, final, ordered data handed to the renderer;
// the renderer makes no further business-logic decisions.
type Report struct {
	GeneratedAt time.Time
	Units       []string

	TroopCounselors     []*join.Person
	NonCounselorLeaders []*join.Person
	Coverage            CoverageSection
	Priority            PrioritySection
	Summary             Summary
}

// Assemble applies the exclusion list as the final step and shapes the
// four report structures. Person lists arrive sorted by last name from
// the joiner and stay that way; coverage sections are alphabetical by
// badge name.
func Assemble(joined *join.Result, analysis *coverage.Analysis, excl *exclusion.List, now time.Time) *Report {
	filtered := excl.FilterResult(joined)

	r := &Report{
		GeneratedAt:         now,
		Units:               collectUnits(filtered),
		TroopCounselors:     filtered.TroopCounselors,
		NonCounselorLeaders: filtered.NonCounselorLeaders,
		Priority: PrioritySection{
			Critical:               filterEntries(analysis.Critical, excl),
			High:                   filterEntries(analysis.High, excl),
			Medium:                 filterEntries(analysis.Medium, excl),
			AdequateWithCounselors: filterEntries(analysis.AdequateWithCounselors, excl),
		},
	}

	for _, e := range filterEntries(analysis.Entries, excl) {
		switch {
		case e.IsEagleRequired && e.CounselorCount > 0:
			r.Coverage.EagleWithCounselors = append(r.Coverage.EagleWithCounselors, e)
		case e.IsEagleRequired:
			r.Coverage.EagleWithoutCounselors = append(r.Coverage.EagleWithoutCounselors, e)
		case e.CounselorCount > 0:
			r.Coverage.NonEagleWithCounselors = append(r.Coverage.NonEagleWithCounselors, e)
		default:
			r.Coverage.NonEagleWithoutCounselors = append(r.Coverage.NonEagleWithoutCounselors, e)
		}
	}

	r.Summary = Summary{
		TotalAdults:         filtered.TotalAdults,
		MBCMatches:          filtered.MBCMatches,
		SupplementalMatches: filtered.SupplementalMatches,
		ScoutsImpacted:      analysis.ScoutsImpacted,
		CriticalCount:       len(r.Priority.Critical),
		HighCount:           len(r.Priority.High),
		MediumCount:         len(r.Priority.Medium),
		AdequateCount:       len(r.Priority.AdequateWithCounselors),
	}
	return r
}

// filterEntries removes excluded counselors from each entry's listing.
// Counts are recomputed from the filtered listing so they stay
// consistent with what is displayed.
func filterEntries(entries []coverage.Entry, excl *exclusion.List) []coverage.Entry {
	if excl.Len() == 0 {
		return entries
	}
	out := make([]coverage.Entry, 0, len(entries))
	for _, e := range entries {
		kept := make([]coverage.Counselor, 0, len(e.Counselors))
		for _, c := range e.Counselors {
			if !excl.MatchesFullName(c.Name) {
				kept = append(kept, c)
			}
		}
		e.Counselors = kept
		e.CounselorCount = len(kept)
		out = append(out, e)
	}
	return out
}

func collectUnits(res *join.Result) []string {
	seen := make(map[string]bool)
	var units []string
	for _, p := range append(append([]*join.Person(nil), res.TroopCounselors...), res.NonCounselorLeaders...) {
		for _, u := range p.Units {
			if !seen[u] {
				seen[u] = true
				units = append(units, u)
			}
		}
	}
	sort.Strings(units)
	return units
}
