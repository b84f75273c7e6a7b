package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/troop32/mbcscope/pkg/coverage"
	"github.com/troop32/mbcscope/pkg/exclusion"
	"github.com/troop32/mbcscope/pkg/join"
)

func testJoined() *join.Result {
	return &join.Result{
		TroopCounselors: []*join.Person{
			{FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe", IsCounselor: true,
				Units: []string{"T7012"}, MeritBadges: []string{"Camping"},
				Sources: []join.Source{join.SourceRoster, join.SourceScraped}},
			{FullName: "Herbert Philpott", FirstName: "Herbert", LastName: "Philpott", IsCounselor: true,
				Units: []string{"T7012"}, MeritBadges: []string{"Camping"},
				Sources: []join.Source{join.SourceRoster, join.SourceScraped}},
		},
		NonCounselorLeaders: []*join.Person{
			{FullName: "John Smith", FirstName: "John", LastName: "Smith",
				Units: []string{"T7012G"}, Sources: []join.Source{join.SourceRoster}},
		},
		TotalAdults: 3,
		MBCMatches:  2,
	}
}

func testAnalysis() *coverage.Analysis {
	entry := coverage.Entry{
		Badge:           "Camping",
		IsEagleRequired: true,
		CounselorCount:  2,
		Counselors: []coverage.Counselor{
			{Name: "Jane Doe", UnitDisplay: "T7012"},
			{Name: "Herbert Philpott", UnitDisplay: "T7012"},
		},
		Tier: coverage.TierAdequate,
	}
	return &coverage.Analysis{
		Entries:                []coverage.Entry{entry},
		AdequateWithCounselors: []coverage.Entry{entry},
	}
}

func exclusionList(t *testing.T, names string) *exclusion.List {
	t.Helper()
	l, _, err := exclusion.Parse(strings.NewReader(names))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestAssembleExcludedPersonAbsentEverywhere(t *testing.T) {
	excl := exclusionList(t, "Herbert Philpott\n")
	rep := Assemble(testJoined(), testAnalysis(), excl, time.Now())

	for _, p := range rep.TroopCounselors {
		if p.LastName == "Philpott" {
			t.Fatal("excluded person listed in troop counselors")
		}
	}
	for _, e := range rep.Coverage.EagleWithCounselors {
		for _, c := range e.Counselors {
			if strings.Contains(c.Name, "Philpott") {
				t.Fatal("excluded person listed in coverage entry")
			}
		}
	}
	if rep.Summary.MBCMatches != 1 {
		t.Fatalf("summary should reflect exclusion, got %d matches", rep.Summary.MBCMatches)
	}
	// Counselor counts recomputed from the filtered listing.
	if n := rep.Coverage.EagleWithCounselors[0].CounselorCount; n != 1 {
		t.Fatalf("counselor count = %d, want 1", n)
	}
}

func TestAssembleNoExclusions(t *testing.T) {
	rep := Assemble(testJoined(), testAnalysis(), exclusion.Empty(), time.Now())
	if len(rep.TroopCounselors) != 2 {
		t.Fatalf("expected 2 counselors, got %d", len(rep.TroopCounselors))
	}
	if len(rep.Units) != 2 || rep.Units[0] != "T7012" || rep.Units[1] != "T7012G" {
		t.Fatalf("unexpected units: %v", rep.Units)
	}
	if rep.Summary.AdequateCount != 1 {
		t.Fatalf("adequate count = %d, want 1", rep.Summary.AdequateCount)
	}
}

func TestOutputDirName(t *testing.T) {
	ts := time.Date(2025, 9, 16, 14, 30, 5, 0, time.UTC)
	rep := &Report{GeneratedAt: ts, Units: []string{"T7012", "T7012G"}}
	got := OutputDirName(rep)
	want := "T7012_T7012G_MBC_Reports_20250916_143005"
	if got != want {
		t.Fatalf("OutputDirName = %q, want %q", got, want)
	}

	rep.Units = nil
	if got := OutputDirName(rep); got != "MBC_MBC_Reports_20250916_143005" {
		t.Fatalf("fallback dir name = %q", got)
	}
}

func TestRenderAllWritesFourReports(t *testing.T) {
	rep := Assemble(testJoined(), testAnalysis(), exclusion.Empty(), time.Now())
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	files, err := renderer.RenderAll(rep, dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 files, got %d", len(files))
	}

	data, err := os.ReadFile(filepath.Join(dir, "troop_counselors.html"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "Jane Doe") {
		t.Fatal("counselor name missing from rendered report")
	}
	if !strings.Contains(html, "T7012") {
		t.Fatal("unit missing from rendered report")
	}
}

func TestRenderIdenticalInputsIdenticalOutput(t *testing.T) {
	ts := time.Date(2025, 9, 16, 14, 30, 5, 0, time.UTC)
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	render := func() string {
		rep := Assemble(testJoined(), testAnalysis(), exclusion.Empty(), ts)
		dir := t.TempDir()
		if _, err := renderer.RenderAll(rep, dir); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "priority_report.html"))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if render() != render() {
		t.Fatal("identical inputs should render identically")
	}
}
