/*
Package selector provides the typed version selector structure and the
constraint matching engine used to validate it.

A selector is an OR sequence of AND clauses, every clause holding version
conditions (e.g. '>=1.2') and version ranges (e.g. '1.0 - 2.0'). All values
are immutable after construction; the validating constructors never yield a
partially built instance.
*/
package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dephub/semsel-core/providers/semver"
)

// ErrInvalidExpression is returned on semantic validation failures: a minor
// constrained condition without an explicit minor segment, a range that does
// not grow, or conflicting expressions inside one clause.
var ErrInvalidExpression = errors.New("invalid selector expression")

// ConditionOperator represents a version constraint flag for a single version.
type ConditionOperator string

// Supported condition operators.
const (
	OpEqual          = ConditionOperator("=")
	OpGreater        = ConditionOperator(">")
	OpGreaterOrEqual = ConditionOperator(">=")
	OpLess           = ConditionOperator("<")
	OpLessOrEqual    = ConditionOperator("<=")
	OpMajor          = ConditionOperator("^")
	OpMinor          = ConditionOperator("~")
)

// Expression is a single clause member: either a VersionCondition or a
// VersionRange. The interface is sealed, the matching engine is a total
// function over the two implementations.
type Expression interface {
	fmt.Stringer
	// Match reports whether the expression does not conflict with other.
	// Match is symmetric: a.Match(b) and b.Match(a) agree.
	Match(other Expression) bool

	sealedExpression()
}

// VersionCondition describes a constrained statement for a single version,
// e.g. '>1.2.3' or '~1.2'.
//
// Instances should not be compared to each other directly; use Match for
// compatibility checks and PartialVersion.Compare for ordering.
type VersionCondition struct {
	Operator ConditionOperator
	Version  semver.PartialVersion
}

// NewVersionCondition constructs a validated VersionCondition. A minor
// constrained condition requires an explicitly set minor segment.
func NewVersionCondition(operator ConditionOperator, version semver.PartialVersion) (VersionCondition, error) {
	if operator == OpMinor && version.Minor == nil {
		return VersionCondition{}, fmt.Errorf(
			"condition %q requires an explicit minor version for the minor constraint: %w",
			string(operator)+version.String(), ErrInvalidExpression,
		)
	}
	return VersionCondition{Operator: operator, Version: version}, nil
}

// String renders the condition in selector notation (e.g. '>=1.2').
func (vc VersionCondition) String() string {
	return string(vc.Operator) + vc.Version.String()
}

// Match reports whether the condition does not conflict with other.
func (vc VersionCondition) Match(other Expression) bool {
	return Match(vc, other)
}

func (vc VersionCondition) sealedExpression() {}

// VersionRange describes a closed interval between two versions,
// e.g. '1.0 - 2.0'.
type VersionRange struct {
	Start semver.PartialVersion
	End   semver.PartialVersion
}

// NewVersionRange constructs a validated VersionRange. The ending version
// must order strictly above the starting one; a collapsed range should be an
// equality condition instead.
func NewVersionRange(start, end semver.PartialVersion) (VersionRange, error) {
	if end.LessOrEqual(start) {
		return VersionRange{}, fmt.Errorf(
			"ending version %q is not greater than the starting version %q: %w",
			end.String(), start.String(), ErrInvalidExpression,
		)
	}
	return VersionRange{Start: start, End: end}, nil
}

// String renders the range in selector notation (e.g. '1.0 - 2.0').
func (vr VersionRange) String() string {
	return vr.Start.String() + " - " + vr.End.String()
}

// Match reports whether the range does not conflict with other.
func (vr VersionRange) Match(other Expression) bool {
	return Match(vr, other)
}

func (vr VersionRange) sealedExpression() {}

// VersionSelector holds the full parsed selector: an OR sequence of AND
// clauses of conditions and ranges.
type VersionSelector struct {
	Clauses [][]Expression
}

// NewVersionSelector constructs a VersionSelector. With validate set, every
// unordered pair of expressions inside each AND clause is checked through the
// matching engine and the first conflicting pair fails construction.
func NewVersionSelector(clauses [][]Expression, validate bool) (VersionSelector, error) {
	vs := VersionSelector{Clauses: clauses}
	if !validate {
		return vs, nil
	}

	for _, clause := range clauses {
		for i := 0; i < len(clause); i++ {
			for j := i + 1; j < len(clause); j++ {
				if !Match(clause[i], clause[j]) {
					return VersionSelector{}, fmt.Errorf(
						"expression %q conflicts with expression %q in clause %q: %w",
						clause[i], clause[j], clauseString(clause), ErrInvalidExpression,
					)
				}
			}
		}
	}

	return vs, nil
}

// String renders the canonical selector notation: expressions joined by
// spaces inside a clause, clauses joined by ' || '. Implicit equality
// conditions render with an explicit '=' prefix.
func (vs VersionSelector) String() string {
	clauses := make([]string, 0, len(vs.Clauses))
	for _, clause := range vs.Clauses {
		clauses = append(clauses, clauseString(clause))
	}
	return strings.Join(clauses, " || ")
}

// clauseString renders one AND clause in selector notation.
func clauseString(clause []Expression) string {
	expressions := make([]string, 0, len(clause))
	for _, expression := range clause {
		expressions = append(expressions, expression.String())
	}
	return strings.Join(expressions, " ")
}
