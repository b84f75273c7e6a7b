package exclusion

import (
	"strings"
	"testing"

	"github.com/troop32/mbcscope/pkg/join"
)

func parseList(t *testing.T, in string) *List {
	t.Helper()
	l, diags, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return l
}

func TestMatchesIgnoresMiddleName(t *testing.T) {
	l := parseList(t, "Herbert Philpott\n")
	if !l.MatchesFullName("Herbert J. Philpott") {
		t.Fatal("middle initial should not defeat exclusion")
	}
	if !l.MatchesFullName("herbert philpott") {
		t.Fatal("case should not defeat exclusion")
	}
	if l.MatchesFullName("Herbert Smith") {
		t.Fatal("different last name must not match")
	}
}

func TestMatchesAlternateFirstName(t *testing.T) {
	l := parseList(t, "Tim Werner\n")
	if !l.MatchesFullName("Timothy (Tim) Werner") {
		t.Fatal("alternate first name should match exclusion entry")
	}
}

func TestUnknownNameIsNoOp(t *testing.T) {
	l := parseList(t, "Nobody Here\n")
	persons := []*join.Person{
		{FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe"},
	}
	if got := l.FilterPersons(persons); len(got) != 1 {
		t.Fatalf("list naming absent person must filter nothing, got %d", len(got))
	}
}

func TestParseDiagnosticsForUnparseableLines(t *testing.T) {
	_, diags, err := Parse(strings.NewReader("Cher\nJane Doe\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", diags)
	}
}

func TestFilterResultRecomputesCounts(t *testing.T) {
	res := &join.Result{
		TroopCounselors: []*join.Person{
			{FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe", IsCounselor: true,
				Sources: []join.Source{join.SourceRoster, join.SourceScraped}},
			{FullName: "Sarah Connor", FirstName: "Sarah", LastName: "Connor", IsCounselor: true,
				Sources: []join.Source{join.SourceSupplemental}},
		},
		NonCounselorLeaders: []*join.Person{
			{FullName: "John Smith", FirstName: "John", LastName: "Smith",
				Sources: []join.Source{join.SourceRoster}},
		},
		TotalAdults: 2,
		MBCMatches:  1,
	}

	l := parseList(t, "Jane Doe\n")
	got := l.FilterResult(res)
	if len(got.TroopCounselors) != 1 {
		t.Fatalf("expected Jane filtered, got %d counselors", len(got.TroopCounselors))
	}
	if got.MBCMatches != 0 || got.SupplementalMatches != 1 {
		t.Fatalf("counts not recomputed: mbc=%d supp=%d", got.MBCMatches, got.SupplementalMatches)
	}
	// Original result untouched.
	if len(res.TroopCounselors) != 2 {
		t.Fatal("FilterResult must not mutate its input")
	}
}
