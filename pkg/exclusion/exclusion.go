// Package exclusion removes named individuals from every downstream
// dataset. Matching uses the same identity-key rule as the joiner, so a
// list entry "Herbert Philpott" also removes "Herbert J. Philpott".
package exclusion

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/troop32/mbcscope/pkg/identity"
	"github.com/troop32/mbcscope/pkg/join"
)

// List is a parsed exclusion list. A name that matches nobody is a
// silent no-op; lists may reference people rotated out of current data.
type List struct {
	keys map[identity.Key]bool
}

// Parse reads one "First Last" name per line. '#' comments and blank
// lines are ignored; lines without a separable first and last token are
// skipped with a diagnostic carrying the line number.
func Parse(r io.Reader) (*List, []string, error) {
	l := &List{keys: make(map[identity.Key]bool)}
	var diags []string

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, err := identity.ParseFullName(line)
		if err != nil {
			diags = append(diags, fmt.Sprintf("exclusion line %d: %v: %q", lineNum, err, line))
			continue
		}
		for _, key := range name.Keys() {
			l.keys[key] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, diags, err
	}
	return l, diags, nil
}

// Empty returns a list that excludes nobody.
func Empty() *List {
	return &List{keys: make(map[identity.Key]bool)}
}

// Len returns the number of distinct exclusion keys.
func (l *List) Len() int {
	return len(l.keys)
}

// Matches reports whether any of the name's identity keys is excluded.
func (l *List) Matches(n identity.Name) bool {
	for _, key := range n.Keys() {
		if l.keys[key] {
			return true
		}
	}
	return false
}

// MatchesFullName parses a raw full-name string and checks it against
// the list. Unparseable names are never considered matched.
func (l *List) MatchesFullName(raw string) bool {
	name, err := identity.ParseFullName(raw)
	if err != nil {
		return false
	}
	return l.Matches(name)
}

// FilterPersons returns the persons not on the list, preserving order.
func (l *List) FilterPersons(ps []*join.Person) []*join.Person {
	if len(l.keys) == 0 {
		return ps
	}
	out := make([]*join.Person, 0, len(ps))
	for _, p := range ps {
		if !l.Matches(p.Name()) {
			out = append(out, p)
		}
	}
	return out
}

// FilterResult applies the list to every partition of a join result and
// recomputes the match count so downstream counts stay consistent.
func (l *List) FilterResult(res *join.Result) *join.Result {
	if len(l.keys) == 0 {
		return res
	}
	filtered := *res
	filtered.TroopCounselors = l.FilterPersons(res.TroopCounselors)
	filtered.NonCounselorLeaders = l.FilterPersons(res.NonCounselorLeaders)
	filtered.MBCMatches = 0
	filtered.SupplementalMatches = 0
	for _, p := range filtered.TroopCounselors {
		if p.FromSource(join.SourceRoster) {
			filtered.MBCMatches++
		} else {
			filtered.SupplementalMatches++
		}
	}
	return &filtered
}
