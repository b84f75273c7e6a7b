// Package badge holds the canonical merit badge universe. Every badge
// name arriving from any source (counselor certifications, scout demand
// rows) must resolve to exactly one canonical name here before it takes
// part in any comparison.
package badge

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Universe is the fixed reference set of merit badges for a run. It is
// loaded once and never mutated.
type Universe struct {
	names  []string
	byNorm map[string]string
	eagle  map[string]bool
}

// New builds a Universe from canonical badge names plus the subset that
// is Eagle-required. Two names that collapse to the same normalized form
// are a structural violation: the priority ranking cannot be trusted
// with an ambiguous universe, so construction fails.
func New(names []string, eagleRequired []string) (*Universe, error) {
	u := &Universe{
		byNorm: make(map[string]string, len(names)),
		eagle:  make(map[string]bool, len(eagleRequired)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		norm := Normalize(name)
		if prev, ok := u.byNorm[norm]; ok {
			return nil, fmt.Errorf("duplicate canonical badge name: %q collides with %q", name, prev)
		}
		u.byNorm[norm] = name
		u.names = append(u.names, name)
	}
	for _, name := range eagleRequired {
		canonical, ok := u.byNorm[Normalize(name)]
		if !ok {
			return nil, fmt.Errorf("eagle-required badge %q is not in the universe", name)
		}
		u.eagle[canonical] = true
	}
	return u, nil
}

// Load reads one badge name per line. Lines ending in '*' mark
// Eagle-required badges; '#' comments and blank lines are skipped.
func Load(r io.Reader) (*Universe, error) {
	var names, eagle []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "*") {
			line = strings.TrimSpace(strings.TrimSuffix(line, "*"))
			eagle = append(eagle, line)
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(names, eagle)
}

// LoadFile loads a universe from a badge list file, falling back to the
// built-in list when path is empty.
func LoadFile(path string) (*Universe, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening badge list: %w", err)
	}
	defer f.Close()
	u, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("parsing badge list %s: %w", path, err)
	}
	return u, nil
}

// Resolve maps a raw badge name string to its canonical form. Matching
// is insensitive to case, whitespace and punctuation, so differently
// punctuated spellings of the same badge resolve identically.
func (u *Universe) Resolve(raw string) (string, bool) {
	canonical, ok := u.byNorm[Normalize(raw)]
	return canonical, ok
}

// IsEagleRequired reports whether a canonical badge name is one of the
// Eagle-required badges.
func (u *Universe) IsEagleRequired(canonical string) bool {
	return u.eagle[canonical]
}

// Names returns the canonical badge names in load order.
func (u *Universe) Names() []string {
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// Len returns the number of badges in the universe.
func (u *Universe) Len() int {
	return len(u.names)
}

// Normalize reduces a badge name to its comparison form: lowercased,
// whitespace collapsed, punctuation stripped.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
