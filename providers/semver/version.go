/*
Package semver provides the partial semantic version primitive used by
selector expressions.

A partial version is a semantic version whose minor and patch segments may be
omitted (e.g. '1' or '1.2'). Omitted segments are ordered as zero but are kept
unset for rendering and for the major/minor scope predicates.
*/
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersionFormat is returned when a version string does not match
// the partial semantic version grammar.
var ErrInvalidVersionFormat = errors.New("invalid version format")

// PartialVersionPattern is the partial semantic version grammar.
//
// Submatches:
//     1: major (required)
//     2: minor (optional)
//     3: patch (optional, requires minor)
//     4: prerelease (optional, requires patch)
//     5: build (optional, requires patch)
var PartialVersionPattern = `(0|[1-9][0-9]*)` +
	`(?:\.(0|[1-9][0-9]*)` +
	`(?:\.(0|[1-9][0-9]*)` +
	`(?:-((?:0|[1-9][0-9]*|[0-9]*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9][0-9]*|[0-9]*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?)?)?`

var (
	partialVersionRgxCompiled *regexp.Regexp
	numericIdentRgxCompiled   *regexp.Regexp
)

func init() {
	partialVersionRgxCompiled = regexp.MustCompile("^" + PartialVersionPattern + "$")
	numericIdentRgxCompiled = regexp.MustCompile(`^[0-9]+$`)
}

// PartialVersion represents a semantic version with optional minor and patch
// segments. Instances are value objects, never mutated after construction.
//
// Build metadata is carried through rendering but never participates in
// ordering or equality.
type PartialVersion struct {
	Major      int
	Minor      *int
	Patch      *int
	Prerelease string
	Build      string
}

// Parse constructs a PartialVersion from its string form. The whole string
// must match the partial version grammar.
func Parse(value string) (PartialVersion, error) {
	matches := partialVersionRgxCompiled.FindStringSubmatch(value)
	if matches == nil {
		return PartialVersion{}, fmt.Errorf("%q is not a valid partial semantic version: %w", value, ErrInvalidVersionFormat)
	}

	version := PartialVersion{Prerelease: matches[4], Build: matches[5]}

	var err error
	if version.Major, err = strconv.Atoi(matches[1]); err != nil {
		return PartialVersion{}, fmt.Errorf("major segment of %q: %s: %w", value, err, ErrInvalidVersionFormat)
	}
	if matches[2] != "" {
		minor, err := strconv.Atoi(matches[2])
		if err != nil {
			return PartialVersion{}, fmt.Errorf("minor segment of %q: %s: %w", value, err, ErrInvalidVersionFormat)
		}
		version.Minor = &minor
	}
	if matches[3] != "" {
		patch, err := strconv.Atoi(matches[3])
		if err != nil {
			return PartialVersion{}, fmt.Errorf("patch segment of %q: %s: %w", value, err, ErrInvalidVersionFormat)
		}
		version.Patch = &patch
	}

	return version, nil
}

// String renders exactly the segments that were supplied, omitting unset
// minor/patch/prerelease/build.
func (v PartialVersion) String() string {
	version := strconv.Itoa(v.Major)
	if v.Minor != nil {
		version += "." + strconv.Itoa(*v.Minor)
	}
	if v.Patch != nil {
		version += "." + strconv.Itoa(*v.Patch)
	}
	if v.Prerelease != "" {
		version += "-" + v.Prerelease
	}
	if v.Build != "" {
		version += "+" + v.Build
	}
	return version
}

// Semver renders the full 'major.minor.patch' form, padding unset segments
// with zeroes.
func (v PartialVersion) Semver() string {
	version := fmt.Sprintf("%d.%d.%d", v.Major, v.MinorOrZero(), v.PatchOrZero())
	if v.Prerelease != "" {
		version += "-" + v.Prerelease
	}
	if v.Build != "" {
		version += "+" + v.Build
	}
	return version
}

// MinorOrZero returns the minor segment, or zero when unset.
func (v PartialVersion) MinorOrZero() int {
	if v.Minor != nil {
		return *v.Minor
	}
	return 0
}

// PatchOrZero returns the patch segment, or zero when unset.
func (v PartialVersion) PatchOrZero() int {
	if v.Patch != nil {
		return *v.Patch
	}
	return 0
}

// Compare is a three-way comparison against another version, returning -1, 0
// or 1. Segments are compared first, then prerelease identifiers under the
// semantic versioning precedence rules. Build metadata is ignored.
func (v PartialVersion) Compare(other PartialVersion) int {
	if c := compareInts(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInts(v.MinorOrZero(), other.MinorOrZero()); c != 0 {
		return c
	}
	if c := compareInts(v.PatchOrZero(), other.PatchOrZero()); c != 0 {
		return c
	}

	// A release always orders above an otherwise equal prerelease.
	switch {
	case v.Prerelease == "" && other.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	}

	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// Equal reports whether both versions order the same.
func (v PartialVersion) Equal(other PartialVersion) bool { return v.Compare(other) == 0 }

// LessThan reports whether the version orders below other.
func (v PartialVersion) LessThan(other PartialVersion) bool { return v.Compare(other) < 0 }

// LessOrEqual reports whether the version orders below or same as other.
func (v PartialVersion) LessOrEqual(other PartialVersion) bool { return v.Compare(other) <= 0 }

// GreaterThan reports whether the version orders above other.
func (v PartialVersion) GreaterThan(other PartialVersion) bool { return v.Compare(other) > 0 }

// GreaterOrEqual reports whether the version orders above or same as other.
func (v PartialVersion) GreaterOrEqual(other PartialVersion) bool { return v.Compare(other) >= 0 }

// SameMajor reports whether other shares this version's major segment.
func (v PartialVersion) SameMajor(other PartialVersion) bool {
	return other.Major == v.Major
}

// ScopesMinor reports whether other falls inside this version's minor scope:
// the same major segment with a minor no higher than this version's.
func (v PartialVersion) ScopesMinor(other PartialVersion) bool {
	return other.Major == v.Major && other.MinorOrZero() <= v.MinorOrZero()
}

// comparePrerelease compares two non-empty dot-separated prerelease strings.
// Numeric identifiers compare numerically and order below alphanumeric ones,
// identifier lists compare element-wise and a strict prefix orders lower.
func comparePrerelease(source, target string) int {
	sourceIdents := strings.Split(source, ".")
	targetIdents := strings.Split(target, ".")
	for i := 0; i < len(sourceIdents) && i < len(targetIdents); i++ {
		if c := comparePrereleaseIdent(sourceIdents[i], targetIdents[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(sourceIdents), len(targetIdents))
}

// comparePrereleaseIdent compares two single prerelease identifiers.
func comparePrereleaseIdent(source, target string) int {
	sourceNumeric := numericIdentRgxCompiled.MatchString(source)
	targetNumeric := numericIdentRgxCompiled.MatchString(target)
	switch {
	case sourceNumeric && targetNumeric:
		sourceInt, _ := strconv.Atoi(source)
		targetInt, _ := strconv.Atoi(target)
		return compareInts(sourceInt, targetInt)
	case sourceNumeric:
		return -1
	case targetNumeric:
		return 1
	}
	return strings.Compare(source, target)
}

// compareInts is a traditional three-way integer comparison.
func compareInts(source, target int) int {
	switch {
	case source < target:
		return -1
	case source > target:
		return 1
	}
	return 0
}
