package demand

import (
	"errors"
	"strings"
	"testing"

	"github.com/troop32/mbcscope/pkg/badge"
)

func testAggregator(t *testing.T) *Aggregator {
	t.Helper()
	u, err := badge.Default()
	if err != nil {
		t.Fatal(err)
	}
	return NewAggregator(u)
}

func TestAddDeduplicatesScoutBadgePairs(t *testing.T) {
	agg := testAggregator(t)
	for _, scout := range []string{"Alex Lee", "alex lee", "Alex  Lee"} {
		if err := agg.Add(scout, "Camping", FormSignup); err != nil {
			t.Fatal(err)
		}
	}
	res := agg.Result()
	bd := res.BadgeDemand["Camping"]
	if bd == nil || bd.Count != 1 {
		t.Fatalf("duplicate pairs should collapse to 1, got %+v", bd)
	}
}

func TestAddSameScoutAcrossForms(t *testing.T) {
	agg := testAggregator(t)
	if err := agg.Add("Alex Lee", "Camping", FormSignup); err != nil {
		t.Fatal(err)
	}
	if err := agg.Add("Alex Lee", "camping", FormRequestList); err != nil {
		t.Fatal(err)
	}
	if bd := agg.Result().BadgeDemand["Camping"]; bd.Count != 1 {
		t.Fatalf("cross-form duplicate should collapse, got %d", bd.Count)
	}
}

func TestAddMissingScoutIsFatal(t *testing.T) {
	agg := testAggregator(t)
	if err := agg.Add("   ", "Camping", FormSignup); !errors.Is(err, ErrMissingScout) {
		t.Fatalf("expected ErrMissingScout, got %v", err)
	}
}

func TestAddUnknownBadgeSkippedWithDiagnostic(t *testing.T) {
	agg := testAggregator(t)
	if err := agg.Add("Alex Lee", "Dragon Taming", FormSignup); err != nil {
		t.Fatal(err)
	}
	res := agg.Result()
	if len(res.BadgeDemand) != 0 {
		t.Fatalf("unknown badge must not aggregate, got %v", res.BadgeDemand)
	}
	if len(res.Unmapped) != 1 {
		t.Fatalf("expected 1 unmapped diagnostic, got %v", res.Unmapped)
	}
}

func TestSummaryTotals(t *testing.T) {
	agg := testAggregator(t)
	pairs := []struct{ scout, badge string }{
		{"Alex Lee", "Camping"},
		{"Ben Ortiz", "Camping"},
		{"Cal Dunn", "Camping"},
		{"Alex Lee", "Chess"},
	}
	for _, p := range pairs {
		if err := agg.Add(p.scout, p.badge, FormSignup); err != nil {
			t.Fatal(err)
		}
	}
	s := agg.Result().Summary
	if s.BadgesRequested != 2 {
		t.Fatalf("badges requested = %d, want 2", s.BadgesRequested)
	}
	if s.TotalRequests != 4 {
		t.Fatalf("total requests = %d, want 4", s.TotalRequests)
	}
	if s.UniqueScouts != 3 {
		t.Fatalf("unique scouts = %d, want 3", s.UniqueScouts)
	}
	if len(s.HighDemandBadges) != 1 || s.HighDemandBadges[0] != "Camping" {
		t.Fatalf("high demand badges = %v, want [Camping]", s.HighDemandBadges)
	}
}

func TestParseSignupCSV(t *testing.T) {
	in := `,Eagle Merit Badges,,
,Merit Badge,Scout 1,Scout 2
,Camping*,Alex Lee,Ben Ortiz
,First Aid*,Alex Lee,
,Non-Eagle Merit Badges,,
,Chess,Cal Dunn,
`
	agg := testAggregator(t)
	if err := ParseSignupCSV(strings.NewReader(in), agg); err != nil {
		t.Fatal(err)
	}
	res := agg.Result()
	if bd := res.BadgeDemand["Camping"]; bd == nil || bd.Count != 2 || !bd.IsEagleRequired {
		t.Fatalf("unexpected Camping demand: %+v", bd)
	}
	if bd := res.BadgeDemand["First Aid"]; bd == nil || bd.Count != 1 {
		t.Fatalf("unexpected First Aid demand: %+v", bd)
	}
	if bd := res.BadgeDemand["Chess"]; bd == nil || bd.Count != 1 || bd.IsEagleRequired {
		t.Fatalf("unexpected Chess demand: %+v", bd)
	}
}

func TestParseSignupCSVRowsBeforeSectionIgnored(t *testing.T) {
	in := `Troop 7012,Signups,,
,Camping,Early Scout,
,Eagle Merit Badges,,
,Camping*,Alex Lee,
`
	agg := testAggregator(t)
	if err := ParseSignupCSV(strings.NewReader(in), agg); err != nil {
		t.Fatal(err)
	}
	bd := agg.Result().BadgeDemand["Camping"]
	if bd == nil || bd.Count != 1 || bd.Scouts[0] != "Alex Lee" {
		t.Fatalf("rows before the first section header must be ignored: %+v", bd)
	}
}

func TestSplitBadgeList(t *testing.T) {
	got := splitBadgeList("Camping; Chess , First Aid")
	want := []string{"Camping", "Chess", "First Aid"}
	if len(got) != len(want) {
		t.Fatalf("splitBadgeList = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitBadgeList = %v, want %v", got, want)
		}
	}
}

func TestParseRequestListRow(t *testing.T) {
	agg := testAggregator(t)
	if err := ParseRequestListRow("Alex Lee", []string{"Camping", "Chess"}, agg); err != nil {
		t.Fatal(err)
	}
	res := agg.Result()
	if len(res.BadgeDemand) != 2 {
		t.Fatalf("expected 2 badges, got %v", res.BadgeDemand)
	}
}
