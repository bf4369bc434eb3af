package selector

import (
	"github.com/dephub/semsel-core/log"
)

/*
Constraint matching engine.

Match decides for two expressions appearing together in one AND clause
whether at least one concrete version can satisfy both. Major ('^') and
minor ('~') constraints are not plain ordering comparisons and get their own
dispatch branches; the remaining operators are driven by fixed compare
result tables so the compatibility algebra stays auditable in one place.
*/

// standardResults maps each ordering operator to the Compare outcomes it
// accepts for a matching version.
var standardResults = map[ConditionOperator][]int{
	OpEqual:          {0},
	OpGreater:        {1},
	OpGreaterOrEqual: {0, 1},
	OpLess:           {-1},
	OpLessOrEqual:    {-1, 0},
}

// rangeResults maps each ordering operator to the accepted Compare outcomes
// of the condition version against a range start and a range end.
var rangeResults = map[ConditionOperator][2][]int{
	OpEqual:          {{0, 1}, {-1, 0}},
	OpGreater:        {{-1, 0, 1}, {-1}},
	OpGreaterOrEqual: {{-1, 0, 1}, {-1, 0}},
	OpLess:           {{1}, {-1, 0, 1}},
	OpLessOrEqual:    {{0, 1}, {-1, 0, 1}},
}

// Match reports whether the two clause expressions can be simultaneously
// satisfied by at least one concrete version. The check is symmetric:
// Match(a, b) and Match(b, a) agree.
func Match(a, b Expression) bool {
	switch source := a.(type) {
	case VersionCondition:
		switch target := b.(type) {
		case VersionCondition:
			return matchConditions(source, target)
		case VersionRange:
			return matchConditionRange(source, target)
		}
	case VersionRange:
		switch target := b.(type) {
		case VersionCondition:
			return matchConditionRange(target, source)
		case VersionRange:
			return matchRanges(source, target)
		}
	}

	log.Warnf("unsupported expression pairing %T / %T, reporting a conflict", a, b)
	return false
}

// matchConditions decides compatibility of two single version conditions.
func matchConditions(source, target VersionCondition) bool {
	if source.Operator == OpMajor || target.Operator == OpMajor {
		if target.Operator == OpMajor {
			source, target = target, source
		}
		if target.Operator == OpMajor || target.Operator == OpMinor {
			return source.Version.SameMajor(target.Version)
		}
		return matchMajorOrdering(source, target)
	}

	if source.Operator == OpMinor || target.Operator == OpMinor {
		if target.Operator == OpMinor {
			source, target = target, source
		}
		if target.Operator == OpMinor {
			// Two minor constraints only agree on the exact same scope.
			return source.Version.Major == target.Version.Major &&
				source.Version.MinorOrZero() == target.Version.MinorOrZero()
		}
		return matchMinorOrdering(source, target)
	}

	return matchOrdering(source, target)
}

// matchMajorOrdering decides compatibility of a major constrained condition
// against an ordering condition by comparing major segments only.
//
// A major constraint always admits its boundary major version, so exact
// equality of the majors is accepted on top of the operator's own result set
// ('^1 >1' is compatible).
func matchMajorOrdering(major, ordering VersionCondition) bool {
	allowed, ok := standardResults[ordering.Operator]
	if !ok {
		log.Warnf("unknown condition operator %q, reporting %q and %q as conflicting", ordering.Operator, major, ordering)
		return false
	}
	result := compareInts(major.Version.Major, ordering.Version.Major)
	return result == 0 || resultIn(result, allowed)
}

// matchMinorOrdering decides compatibility of a minor constrained condition
// against an ordering condition. Inside a shared major only the minor
// segments are compared, across majors the full versions are.
func matchMinorOrdering(minor, ordering VersionCondition) bool {
	allowed, ok := standardResults[ordering.Operator]
	if !ok {
		log.Warnf("unknown condition operator %q, reporting %q and %q as conflicting", ordering.Operator, minor, ordering)
		return false
	}
	if minor.Version.Major == ordering.Version.Major {
		return resultIn(compareInts(minor.Version.MinorOrZero(), ordering.Version.MinorOrZero()), allowed)
	}
	return resultIn(minor.Version.Compare(ordering.Version), allowed)
}

// matchOrdering decides compatibility of two ordering conditions, i.e.
// whether some concrete version satisfies both. An equality condition is
// compatible exactly when its version satisfies the other condition. Bounds
// in the same direction follow the result tables; a lower and an upper bound
// are compatible when the interval between them is not empty, where a shared
// boundary version only counts if both bounds include it.
func matchOrdering(source, target VersionCondition) bool {
	sourceAllowed, sourceOK := standardResults[source.Operator]
	targetAllowed, targetOK := standardResults[target.Operator]
	if !sourceOK || !targetOK {
		log.Warnf("unknown condition operator, reporting %q and %q as conflicting", source, target)
		return false
	}

	if source.Operator == OpEqual {
		return resultIn(source.Version.Compare(target.Version), targetAllowed)
	}
	if target.Operator == OpEqual {
		return resultIn(target.Version.Compare(source.Version), sourceAllowed)
	}

	if isLowerBound(source.Operator) == isLowerBound(target.Operator) {
		// Bounds in the same direction are driven by the result tables,
		// which reject a repeated strict bound on the same version.
		return resultIn(source.Version.Compare(target.Version), targetAllowed) ||
			resultIn(target.Version.Compare(source.Version), sourceAllowed)
	}

	lower, upper := source, target
	if isLowerBound(target.Operator) {
		lower, upper = upper, lower
	}
	switch lower.Version.Compare(upper.Version) {
	case -1:
		return true
	case 0:
		return lower.Operator == OpGreaterOrEqual && upper.Operator == OpLessOrEqual
	}
	return false
}

// isLowerBound reports whether an ordering operator bounds versions from
// below.
func isLowerBound(operator ConditionOperator) bool {
	return operator == OpGreater || operator == OpGreaterOrEqual
}

// matchConditionRange decides compatibility of a condition and a range.
func matchConditionRange(condition VersionCondition, rng VersionRange) bool {
	switch condition.Operator {
	case OpMajor:
		return condition.Version.SameMajor(rng.Start) || condition.Version.SameMajor(rng.End)
	case OpMinor:
		return condition.Version.ScopesMinor(rng.Start) || condition.Version.ScopesMinor(rng.End)
	}

	pair, ok := rangeResults[condition.Operator]
	if !ok {
		log.Warnf("unknown condition operator %q, reporting %q and %q as conflicting", condition.Operator, condition, rng)
		return false
	}
	return resultIn(condition.Version.Compare(rng.Start), pair[0]) &&
		resultIn(condition.Version.Compare(rng.End), pair[1])
}

// matchRanges decides compatibility of two ranges: closed intervals overlap
// when each one starts no later than the other ends.
func matchRanges(source, target VersionRange) bool {
	return source.Start.Compare(target.End) <= 0 && target.Start.Compare(source.End) <= 0
}

// resultIn reports whether a Compare outcome is in the allowed result set.
func resultIn(result int, allowed []int) bool {
	for _, candidate := range allowed {
		if result == candidate {
			return true
		}
	}
	return false
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
