package enumerate

import (
	"fmt"
	"regexp"
)

// Denylist excludes packages from pinning by name.
//
// Each entry is a case-sensitive regular expression searched anywhere in the
// package name, so a plain word such as "git" behaves as a substring match.
// The zero value and a nil *Denylist match nothing.
type Denylist struct {
	patterns []*regexp.Regexp
}

// NewDenylist compiles patterns into a Denylist.
//
// Parameters:
//   - patterns: Regular expressions to match package names against
//
// Returns:
//   - *Denylist: The compiled denylist
//   - error: The first pattern that does not compile
func NewDenylist(patterns []string) (*Denylist, error) {
	d := &Denylist{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid denylist pattern %q: %w", p, err)
		}
		d.patterns = append(d.patterns, re)
	}
	return d, nil
}

// Match reports the first pattern matching name.
//
// Returns:
//   - string: The matching pattern, empty if none matched
//   - bool: true if name is denied
func (d *Denylist) Match(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, re := range d.patterns {
		if re.MatchString(name) {
			return re.String(), true
		}
	}
	return "", false
}
