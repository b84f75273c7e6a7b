// Package identity derives matchable person keys from the loosely
// structured names found in roster exports, counselor search results and
// free-text supplemental lists. All sources are reduced to the same
// (first-or-alternate-first, last) key so that records can be joined no
// matter which spelling a source used.
package identity

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnmatchable is returned for names with no separable first and last
// token. Such records cannot participate in any join.
var ErrUnmatchable = errors.New("name has no separable first and last token")

// Key is a normalized (first name, last name) pair. Middle names and
// initials never participate; both fields are lowercased with collapsed
// whitespace.
type Key struct {
	First string
	Last  string
}

func (k Key) String() string {
	return k.First + " " + k.Last
}

// Name is a parsed person name. AltFirst carries a parenthesized
// alternate first name when the source provided one, e.g. the "Tim" in
// "Timothy (Tim) Werner".
type Name struct {
	First    string
	AltFirst string
	Last     string
	Raw      string
}

var altFirstRe = regexp.MustCompile(`^(\S+)\s*\(([^)]*)\)\s*(.*)$`)

// ParseFullName splits a raw full-name string into first, optional
// alternate-first and last name. The first whitespace token is the first
// name, the last token is the last name, and everything in between is
// discarded. Parenthesized content immediately after the first token is
// extracted as the alternate first name.
func ParseFullName(raw string) (Name, error) {
	n := Name{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		return n, ErrUnmatchable
	}

	if m := altFirstRe.FindStringSubmatch(s); m != nil {
		n.AltFirst = strings.TrimSpace(m[2])
		s = strings.TrimSpace(m[1] + " " + m[3])
	}

	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return n, ErrUnmatchable
	}

	n.First = tokens[0]
	n.Last = tokens[len(tokens)-1]
	return n, nil
}

// New builds a Name from already-split fields, applying the same
// first/last token rule to each field.
func New(first, altFirst, last string) (Name, error) {
	n := Name{
		First:    strings.TrimSpace(first),
		AltFirst: strings.TrimSpace(altFirst),
		Last:     strings.TrimSpace(last),
		Raw:      strings.TrimSpace(first + " " + last),
	}
	if n.First == "" || n.Last == "" {
		return n, ErrUnmatchable
	}
	// A multi-word last name keeps only its final token, matching the
	// rule applied to raw full-name strings.
	if toks := strings.Fields(n.Last); len(toks) > 1 {
		n.Last = toks[len(toks)-1]
	}
	return n, nil
}

// PrimaryKey returns the (first, last) key.
func (n Name) PrimaryKey() Key {
	return Key{First: normalize(n.First), Last: normalize(n.Last)}
}

// Keys returns every key this name can be matched under: always the
// (first, last) key, plus the (alternate-first, last) key when an
// alternate first name is present and differs from the first name.
func (n Name) Keys() []Key {
	keys := []Key{n.PrimaryKey()}
	if alt := normalize(n.AltFirst); alt != "" && alt != keys[0].First {
		keys = append(keys, Key{First: alt, Last: keys[0].Last})
	}
	return keys
}

// DisplayName reconstructs the preferred display form, including the
// alternate first name when present.
func (n Name) DisplayName() string {
	if n.Raw != "" {
		return strings.TrimSpace(n.Raw)
	}
	if n.AltFirst != "" {
		return n.First + " (" + n.AltFirst + ") " + n.Last
	}
	return n.First + " " + n.Last
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
