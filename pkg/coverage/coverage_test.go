package coverage

import (
	"testing"

	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/demand"
	"github.com/troop32/mbcscope/pkg/join"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		eagle      bool
		counselors int
		scouts     int
		want       Tier
	}{
		// Eagle-required with 0 or 1 counselors is always critical.
		{true, 0, 0, TierCritical},
		{true, 1, 0, TierCritical},
		{true, 1, 5, TierCritical},
		{true, 2, 0, TierAdequate},
		{true, 2, 5, TierAdequate},
		// Non-eagle, no counselor, tiered by demand.
		{false, 0, 3, TierHigh},
		{false, 0, 5, TierHigh},
		{false, 0, 2, TierMedium},
		{false, 0, 1, TierMedium},
		{false, 0, 0, TierNotApplicable},
		// Any counselor on a non-eagle badge is adequate.
		{false, 1, 5, TierAdequate},
		{false, 2, 0, TierAdequate},
		// Three or more counselors always caps to adequate.
		{true, 3, 10, TierAdequate},
		{false, 3, 10, TierAdequate},
		{false, 4, 0, TierAdequate},
	}
	for _, c := range cases {
		got := Classify(c.eagle, c.counselors, c.scouts)
		if got != c.want {
			t.Fatalf("Classify(eagle=%t, counselors=%d, scouts=%d) = %s, want %s",
				c.eagle, c.counselors, c.scouts, got, c.want)
		}
	}
}

func TestIsPriority(t *testing.T) {
	for _, tier := range []Tier{TierCritical, TierHigh, TierMedium} {
		if !tier.IsPriority() {
			t.Fatalf("%s should be a priority tier", tier)
		}
	}
	for _, tier := range []Tier{TierAdequate, TierNotApplicable} {
		if tier.IsPriority() {
			t.Fatalf("%s should not be a priority tier", tier)
		}
	}
}

func smallUniverse(t *testing.T) *badge.Universe {
	t.Helper()
	u, err := badge.New(
		[]string{"Camping", "First Aid", "Chess", "Basketry"},
		[]string{"Camping", "First Aid"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func counselorWith(name string, badges ...string) *join.Person {
	return &join.Person{
		FullName:    name,
		FirstName:   name,
		LastName:    name,
		IsCounselor: true,
		Units:       []string{"T7012"},
		MeritBadges: badges,
		Sources:     []join.Source{join.SourceRoster, join.SourceScraped},
	}
}

func TestAnalyzeTiersAndImpactedScouts(t *testing.T) {
	counselors := []*join.Person{
		counselorWith("Jane Doe", "Camping", "Chess"),
		counselorWith("John Smith", "Camping"),
	}
	demandByBadge := map[string]*demand.BadgeDemand{
		"First Aid": {Badge: "First Aid", Count: 2, Scouts: []string{"Alex Lee", "Ben Ortiz"}, IsEagleRequired: true},
		"Basketry":  {Badge: "Basketry", Count: 3, Scouts: []string{"Alex Lee", "Cal Dunn", "Dev Patel"}},
	}

	a := Analyze(smallUniverse(t), counselors, demandByBadge)

	tiers := map[string]Tier{}
	for _, e := range a.Entries {
		tiers[e.Badge] = e.Tier
	}
	if tiers["First Aid"] != TierCritical {
		t.Fatalf("First Aid = %s, want CRITICAL", tiers["First Aid"])
	}
	if tiers["Basketry"] != TierHigh {
		t.Fatalf("Basketry = %s, want HIGH", tiers["Basketry"])
	}
	if tiers["Camping"] != TierAdequate {
		t.Fatalf("Camping = %s, want ADEQUATE", tiers["Camping"])
	}
	if tiers["Chess"] != TierAdequate {
		t.Fatalf("Chess = %s, want ADEQUATE", tiers["Chess"])
	}

	// Alex Lee appears in two priority gaps but is one scout.
	if a.ScoutsImpacted != 4 {
		t.Fatalf("scouts impacted = %d, want 4", a.ScoutsImpacted)
	}
}

func TestAnalyzeEveryBadgeGetsEntry(t *testing.T) {
	u := smallUniverse(t)
	a := Analyze(u, nil, nil)
	if len(a.Entries) != u.Len() {
		t.Fatalf("expected %d entries, got %d", u.Len(), len(a.Entries))
	}
	for _, e := range a.Entries {
		if e.IsEagleRequired && e.Tier != TierCritical {
			t.Fatalf("uncovered eagle badge %s = %s, want CRITICAL", e.Badge, e.Tier)
		}
		if !e.IsEagleRequired && e.Tier != TierNotApplicable {
			t.Fatalf("uncovered undemanded badge %s = %s, want NOT_APPLICABLE", e.Badge, e.Tier)
		}
	}
}

func TestAnalyzeSectionsSorted(t *testing.T) {
	counselors := []*join.Person{
		counselorWith("Jane Doe", "Chess", "Basketry", "Camping"),
	}
	a := Analyze(smallUniverse(t), counselors, nil)
	for i := 1; i < len(a.AdequateWithCounselors); i++ {
		if a.AdequateWithCounselors[i-1].Badge > a.AdequateWithCounselors[i].Badge {
			t.Fatalf("adequate section not sorted: %+v", a.AdequateWithCounselors)
		}
	}
	for i := 1; i < len(a.Entries); i++ {
		if a.Entries[i-1].Badge > a.Entries[i].Badge {
			t.Fatal("entries not sorted")
		}
	}
}
