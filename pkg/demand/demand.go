// Package demand turns per-Scout merit badge requests from heterogeneous
// tabular inputs into a unified per-badge demand picture.
package demand

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/badge"
)

// SourceForm distinguishes the two input schemas.
type SourceForm string

const (
	FormSignup      SourceForm = "signup"
	FormRequestList SourceForm = "request_list"
)

// ErrMissingScout marks a demand record with no scout name. That is a
// structural contract violation: the analysis cannot produce a
// trustworthy ranking and must stop.
var ErrMissingScout = errors.New("demand record has no scout name")

// BadgeDemand is the aggregated demand for one canonical badge.
type BadgeDemand struct {
	Badge           string   `json:"badge_name"`
	Scouts          []string `json:"interested_scouts"`
	Count           int      `json:"scout_count"`
	IsEagleRequired bool     `json:"is_eagle_required"`
}

// Summary carries the run-level demand metrics stored alongside the
// per-badge data in the demand-analysis document.
type Summary struct {
	Timestamp           string   `json:"analysis_timestamp"`
	BadgesRequested     int      `json:"total_badges_requested"`
	TotalRequests       int      `json:"total_scout_requests"`
	UniqueScouts        int      `json:"unique_scouts_participating"`
	EagleRequested      int      `json:"eagle_badges_requested"`
	NonEagleRequested   int      `json:"non_eagle_badges_requested"`
	HighDemandBadges    []string `json:"high_demand_badges"`
	ParticipatingScouts []string `json:"participating_scouts"`
}

// Analysis is the complete demand-analysis document.
type Analysis struct {
	BadgeDemand map[string]*BadgeDemand `json:"badge_demand"`
	Summary     Summary                 `json:"demand_summary"`

	Unmapped []string `json:"-"`
}

// Aggregator accumulates (scout, badge) requests, deduplicating the pair
// across both schemas and keeping scouts in first-seen order per badge.
type Aggregator struct {
	universe *badge.Universe
	perBadge map[string]*BadgeDemand
	seen     map[string]bool
	unmapped []string
}

// NewAggregator returns an Aggregator resolving badge names against the
// given universe.
func NewAggregator(universe *badge.Universe) *Aggregator {
	return &Aggregator{
		universe: universe,
		perBadge: make(map[string]*BadgeDemand),
		seen:     make(map[string]bool),
	}
}

// Add records one scout's interest in one badge. Unresolvable badge
// names are recorded as unmapped with a diagnostic and skipped; a
// missing scout name is fatal.
func (a *Aggregator) Add(scoutName, rawBadge string, form SourceForm) error {
	scoutName = strings.Join(strings.Fields(scoutName), " ")
	if scoutName == "" {
		return ErrMissingScout
	}

	canonical, ok := a.universe.Resolve(rawBadge)
	if !ok {
		msg := fmt.Sprintf("demand: unknown merit badge %q (scout %s, %s form)", rawBadge, scoutName, form)
		a.unmapped = append(a.unmapped, msg)
		utils.Log.Warn(msg)
		return nil
	}

	pairKey := strings.ToLower(scoutName) + "|" + canonical
	if a.seen[pairKey] {
		return nil
	}
	a.seen[pairKey] = true

	bd, ok := a.perBadge[canonical]
	if !ok {
		bd = &BadgeDemand{
			Badge:           canonical,
			IsEagleRequired: a.universe.IsEagleRequired(canonical),
		}
		a.perBadge[canonical] = bd
	}
	bd.Scouts = append(bd.Scouts, scoutName)
	bd.Count = len(bd.Scouts)
	return nil
}

// Result assembles the demand-analysis document.
func (a *Aggregator) Result() *Analysis {
	scouts := make(map[string]bool)
	var highDemand []string
	total := 0
	eagle := 0
	for name, bd := range a.perBadge {
		total += bd.Count
		if bd.IsEagleRequired {
			eagle++
		}
		if bd.Count >= 3 {
			highDemand = append(highDemand, name)
		}
		for _, s := range bd.Scouts {
			scouts[s] = true
		}
	}
	sort.Strings(highDemand)

	participating := make([]string, 0, len(scouts))
	for s := range scouts {
		participating = append(participating, s)
	}
	sort.Strings(participating)

	return &Analysis{
		BadgeDemand: a.perBadge,
		Summary: Summary{
			Timestamp:           time.Now().Format(time.RFC3339),
			BadgesRequested:     len(a.perBadge),
			TotalRequests:       total,
			UniqueScouts:        len(scouts),
			EagleRequested:      eagle,
			NonEagleRequested:   len(a.perBadge) - eagle,
			HighDemandBadges:    highDemand,
			ParticipatingScouts: participating,
		},
		Unmapped: a.unmapped,
	}
}
