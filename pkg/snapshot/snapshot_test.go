package snapshot

import (
	"testing"
	"time"

	"github.com/troop32/mbcscope/pkg/coverage"
	"github.com/troop32/mbcscope/pkg/demand"
	"github.com/troop32/mbcscope/pkg/join"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCounselorsRoundTrip(t *testing.T) {
	s := newStore(t)
	in := []join.RawCounselor{
		{RawFullName: "Jane Doe", Email: "jd@example.com", MeritBadges: []string{"Camping"}},
	}
	if _, err := s.SaveCounselors(in, time.Now()); err != nil {
		t.Fatal(err)
	}

	doc, err := s.LoadCounselors()
	if err != nil {
		t.Fatal(err)
	}
	if doc.ExtractionMetadata.TotalCounselors != 1 {
		t.Fatalf("metadata count = %d", doc.ExtractionMetadata.TotalCounselors)
	}
	if len(doc.Counselors) != 1 || doc.Counselors[0].RawFullName != "Jane Doe" {
		t.Fatalf("unexpected counselors: %+v", doc.Counselors)
	}
}

func TestJoinedRoundTrip(t *testing.T) {
	s := newStore(t)
	in := &join.Result{
		TroopCounselors: []*join.Person{
			{FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe", IsCounselor: true,
				Units: []string{"T7012"}, Sources: []join.Source{join.SourceRoster}},
		},
		TotalAdults: 5,
		MBCMatches:  1,
	}
	if _, err := s.SaveJoined(in); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadJoined()
	if err != nil {
		t.Fatal(err)
	}
	if out.TotalAdults != 5 || out.MBCMatches != 1 {
		t.Fatalf("counts lost: %+v", out)
	}
	if len(out.TroopCounselors) != 1 || out.TroopCounselors[0].FullName != "Jane Doe" {
		t.Fatalf("persons lost: %+v", out.TroopCounselors)
	}
}

func TestLatestDemandPicksNewest(t *testing.T) {
	s := newStore(t)
	base := time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)

	old := &demand.Analysis{Summary: demand.Summary{UniqueScouts: 1}}
	if _, err := s.SaveDemand(old, base); err != nil {
		t.Fatal(err)
	}
	newer := &demand.Analysis{Summary: demand.Summary{UniqueScouts: 7}}
	if _, err := s.SaveDemand(newer, base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	got, path, err := s.LatestDemand()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Summary.UniqueScouts != 7 {
		t.Fatalf("latest demand from %s: %+v", path, got)
	}
}

func TestLatestDemandEmptyStore(t *testing.T) {
	s := newStore(t)
	got, path, err := s.LatestDemand()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil || path != "" {
		t.Fatalf("expected nothing, got %+v at %q", got, path)
	}
}

func TestPriorityRoundTrip(t *testing.T) {
	s := newStore(t)
	in := &coverage.Analysis{
		Critical: []coverage.Entry{
			{Badge: "First Aid", IsEagleRequired: true, Tier: coverage.TierCritical},
		},
		ScoutsImpacted: 3,
	}
	if _, err := s.SavePriority(in, time.Now()); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.LatestPriority()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Critical) != 1 || got.Critical[0].Badge != "First Aid" {
		t.Fatalf("unexpected analysis: %+v", got)
	}
	if got.ScoutsImpacted != 3 {
		t.Fatalf("scouts impacted = %d", got.ScoutsImpacted)
	}
}
