package outdated

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// constraintPattern matches a plain semver optionally prefixed by one range
// operator. Partial versions, x-ranges, tags, URLs and compound ranges do not match.
var constraintPattern = regexp.MustCompile(`^(\^|~|>=|<=|>|<|=)?(v?)(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?)$`)

// Constraint is a declared version split into its range operator and version.
type Constraint struct {
	// Operator is the range prefix ("^", "~", ">=", ...) or empty for an exact pin.
	Operator string

	// Version is the semver without operator or "v" prefix.
	Version string

	vPrefix bool
}

// ParseConstraint splits a declared spec such as "^1.2.3".
//
// Returns:
//   - Constraint: the parsed constraint
//   - bool: false when spec is not a plain optionally-prefixed semver
func ParseConstraint(spec string) (Constraint, bool) {
	m := constraintPattern.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil || !semver.IsValid("v"+m[3]) {
		return Constraint{}, false
	}
	return Constraint{Operator: m[1], Version: m[3], vPrefix: m[2] != ""}, true
}

// WithVersion returns the spec with the version replaced and the operator kept.
func (c Constraint) WithVersion(version string) string {
	prefix := ""
	if c.vPrefix {
		prefix = "v"
	}
	return c.Operator + prefix + strings.TrimPrefix(version, "v")
}

// IsNewer reports whether latest is a higher semver than current.
// Invalid versions are never newer.
func IsNewer(latest, current string) bool {
	l := "v" + strings.TrimPrefix(latest, "v")
	c := "v" + strings.TrimPrefix(current, "v")
	if !semver.IsValid(l) || !semver.IsValid(c) {
		return false
	}
	return semver.Compare(l, c) > 0
}
