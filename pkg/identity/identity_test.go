package identity

import (
	"errors"
	"testing"
)

func TestParseFullName(t *testing.T) {
	cases := []struct {
		raw         string
		first, last string
		alt         string
	}{
		{"John Smith", "John", "Smith", ""},
		{"John Michael Smith", "John", "Smith", ""},
		{"John M. Smith", "John", "Smith", ""},
		{"Timothy (Tim) Werner", "Timothy", "Werner", "Tim"},
		{"  Jane   Doe  ", "Jane", "Doe", ""},
	}
	for _, c := range cases {
		n, err := ParseFullName(c.raw)
		if err != nil {
			t.Fatalf("ParseFullName(%q): %v", c.raw, err)
		}
		if n.First != c.first || n.Last != c.last || n.AltFirst != c.alt {
			t.Fatalf("ParseFullName(%q) = %+v, want first=%q last=%q alt=%q", c.raw, n, c.first, c.last, c.alt)
		}
	}
}

func TestParseFullNameUnmatchable(t *testing.T) {
	for _, raw := range []string{"", "   ", "Cher"} {
		if _, err := ParseFullName(raw); !errors.Is(err, ErrUnmatchable) {
			t.Fatalf("ParseFullName(%q): expected ErrUnmatchable, got %v", raw, err)
		}
	}
}

func TestKeysIncludeAlternateFirstName(t *testing.T) {
	n, err := ParseFullName("Timothy (Tim) Werner")
	if err != nil {
		t.Fatal(err)
	}
	keys := n.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
	if keys[0] != (Key{First: "timothy", Last: "werner"}) {
		t.Fatalf("unexpected primary key: %v", keys[0])
	}
	if keys[1] != (Key{First: "tim", Last: "werner"}) {
		t.Fatalf("unexpected alternate key: %v", keys[1])
	}
}

func TestKeysAlternateSameAsFirst(t *testing.T) {
	n, err := New("Tim", "Tim", "Werner")
	if err != nil {
		t.Fatal(err)
	}
	if keys := n.Keys(); len(keys) != 1 {
		t.Fatalf("expected 1 key when alternate equals first, got %v", keys)
	}
}

func TestKeyIsCaseInsensitive(t *testing.T) {
	a, _ := ParseFullName("JOHN SMITH")
	b, _ := ParseFullName("john smith")
	if a.PrimaryKey() != b.PrimaryKey() {
		t.Fatalf("case should not affect keys: %v vs %v", a.PrimaryKey(), b.PrimaryKey())
	}
}

func TestMiddleNamesDoNotAffectKey(t *testing.T) {
	a, _ := ParseFullName("John Smith")
	b, _ := ParseFullName("John Quincy Smith")
	if a.PrimaryKey() != b.PrimaryKey() {
		t.Fatalf("middle name should not affect key: %v vs %v", a.PrimaryKey(), b.PrimaryKey())
	}
}

func TestNewCollapsesMultiWordLastName(t *testing.T) {
	n, err := New("Mary", "", "van der Berg")
	if err != nil {
		t.Fatal(err)
	}
	if n.PrimaryKey() != (Key{First: "mary", Last: "berg"}) {
		t.Fatalf("unexpected key: %v", n.PrimaryKey())
	}
}
