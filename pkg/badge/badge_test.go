package badge

import (
	"strings"
	"testing"
)

func TestResolveIgnoresCaseAndPunctuation(t *testing.T) {
	u, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		raw, want string
	}{
		{"camping", "Camping"},
		{"CAMPING", "Camping"},
		{"Citizenship in the Community", "Citizenship in the Community"},
		{"citizenship in the community", "Citizenship in the Community"},
		{"Emergency  Preparedness", "Emergency Preparedness"},
		{"Signs Signals and Codes", "Signs, Signals, and Codes"},
	}
	for _, c := range cases {
		got, ok := u.Resolve(c.raw)
		if !ok {
			t.Fatalf("Resolve(%q): no match", c.raw)
		}
		if got != c.want {
			t.Fatalf("Resolve(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestResolveUnknownBadge(t *testing.T) {
	u, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := u.Resolve("Underwater Basket Weaving"); ok {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestDefaultEagleRequired(t *testing.T) {
	u, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Camping", "First Aid", "Cooking", "Citizenship in Society"} {
		if !u.IsEagleRequired(name) {
			t.Fatalf("%s should be eagle-required", name)
		}
	}
	for _, name := range []string{"Basketry", "Chess"} {
		if u.IsEagleRequired(name) {
			t.Fatalf("%s should not be eagle-required", name)
		}
	}
}

func TestLoadStarMarksEagle(t *testing.T) {
	in := `# comment
Camping *
Basketry
`
	u, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if u.Len() != 2 {
		t.Fatalf("expected 2 badges, got %d", u.Len())
	}
	if !u.IsEagleRequired("Camping") {
		t.Fatal("Camping should be eagle-required")
	}
	if u.IsEagleRequired("Basketry") {
		t.Fatal("Basketry should not be eagle-required")
	}
}

func TestNewRejectsAmbiguousUniverse(t *testing.T) {
	if _, err := New([]string{"First Aid", "first aid"}, nil); err == nil {
		t.Fatal("expected duplicate-name error")
	}
}

func TestNewRejectsUnknownEagleName(t *testing.T) {
	if _, err := New([]string{"Camping"}, []string{"Swimming"}); err == nil {
		t.Fatal("expected unknown eagle badge error")
	}
}
