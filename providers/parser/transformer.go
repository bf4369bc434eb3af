package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dephub/semsel-core/providers/selector"
	"github.com/dephub/semsel-core/providers/semver"
)

// VisitError wraps an unexpected error raised while transforming a raw tree
// node. It signals an internal defect rather than a user input problem:
// errors of the library's own kinds pass through Transform unwrapped.
type VisitError struct {
	Kind NodeKind
	Err  error
}

// Error renders the failing node kind together with the cause.
func (e *VisitError) Error() string {
	return fmt.Sprintf("error visiting %s node: %v", e.Kind, e.Err)
}

// Unwrap exposes the cause for errors.Is/errors.As inspection.
func (e *VisitError) Unwrap() error { return e.Err }

// conditionOperators maps operator token spellings to their typed values.
var conditionOperators = map[string]selector.ConditionOperator{
	"=":  selector.OpEqual,
	">":  selector.OpGreater,
	">=": selector.OpGreaterOrEqual,
	"<":  selector.OpLess,
	"<=": selector.OpLessOrEqual,
	"^":  selector.OpMajor,
	"~":  selector.OpMinor,
}

// Transformer materializes typed selector values from a raw syntax tree,
// walking it bottom-up. The zero value transforms with validation enabled.
type Transformer struct {
	// SkipValidation disables the clause conflict validation on the built
	// selector, for trusted or test construction.
	SkipValidation bool
}

// Transform converts a tokenized selector tree into a VersionSelector.
//
// Errors of the library's own kinds (parse failures, invalid version
// formats, invalid expressions) surface unchanged; any other error is
// wrapped in a VisitError naming the offending node.
func (t *Transformer) Transform(tree *Tree) (selector.VersionSelector, error) {
	if tree == nil || tree.Kind != KindSelector {
		return selector.VersionSelector{}, fmt.Errorf("expected a %s node to transform: %w", KindSelector, ErrParseFailure)
	}

	clauses := make([][]selector.Expression, 0, len(tree.Children))
	for _, node := range tree.Children {
		clause, err := t.transformClause(node)
		if err != nil {
			return selector.VersionSelector{}, err
		}
		clauses = append(clauses, clause)
	}

	vs, err := selector.NewVersionSelector(clauses, !t.SkipValidation)
	if err != nil {
		return selector.VersionSelector{}, visitErr(tree.Kind, err)
	}
	return vs, nil
}

// transformClause passes a clause node through as its transformed children.
func (t *Transformer) transformClause(node *Tree) ([]selector.Expression, error) {
	if node.Kind != KindClause {
		return nil, fmt.Errorf("expected a %s node, got %q: %w", KindClause, node.Kind, ErrParseFailure)
	}

	clause := make([]selector.Expression, 0, len(node.Children))
	for _, child := range node.Children {
		var (
			expression selector.Expression
			err        error
		)
		switch child.Kind {
		case KindCondition:
			expression, err = t.transformCondition(child)
		case KindRange:
			expression, err = t.transformRange(child)
		default:
			err = fmt.Errorf("unexpected %q node in a version clause: %w", child.Kind, ErrParseFailure)
		}
		if err != nil {
			return nil, err
		}
		clause = append(clause, expression)
	}

	return clause, nil
}

// transformCondition builds a VersionCondition from a condition node. A node
// holding a single version child carries no operator spelling: the selector
// language treats a bare version as an implicit equality condition.
func (t *Transformer) transformCondition(node *Tree) (selector.Expression, error) {
	var (
		operator selector.ConditionOperator
		version  semver.PartialVersion
		err      error
	)

	switch len(node.Children) {
	case 1:
		if node.Children[0].Kind != KindVersion {
			return nil, fmt.Errorf("failed to extract expected version from condition tokens %s: %w", tokenList(node), ErrParseFailure)
		}
		operator = selector.OpEqual
		if version, err = t.transformVersion(node.Children[0]); err != nil {
			return nil, err
		}

	case 2:
		if node.Children[0].Kind != KindOperator {
			return nil, fmt.Errorf("failed to extract expected operator from condition tokens %s: %w", tokenList(node), ErrParseFailure)
		}
		if node.Children[1].Kind != KindVersion {
			return nil, fmt.Errorf("failed to extract expected version from condition tokens %s: %w", tokenList(node), ErrParseFailure)
		}
		var ok bool
		if operator, ok = conditionOperators[node.Children[0].Value]; !ok {
			// Unrecognized spellings mean the grammar and the transformer
			// disagree, not bad user input.
			return nil, visitErr(node.Kind, fmt.Errorf("unrecognized operator token %q", node.Children[0].Value))
		}
		if version, err = t.transformVersion(node.Children[1]); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("failed to extract expected operator and version from condition tokens %s: %w", tokenList(node), ErrParseFailure)
	}

	condition, err := selector.NewVersionCondition(operator, version)
	if err != nil {
		return nil, visitErr(node.Kind, err)
	}
	return condition, nil
}

// transformRange builds a VersionRange from a range node holding exactly a
// start and an end version.
func (t *Transformer) transformRange(node *Tree) (selector.Expression, error) {
	if len(node.Children) != 2 {
		return nil, fmt.Errorf("failed to extract expected start and end versions from range tokens %s: %w", tokenList(node), ErrParseFailure)
	}

	start, err := t.transformVersion(node.Children[0])
	if err != nil {
		return nil, err
	}
	end, err := t.transformVersion(node.Children[1])
	if err != nil {
		return nil, err
	}

	rng, err := selector.NewVersionRange(start, end)
	if err != nil {
		return nil, visitErr(node.Kind, err)
	}
	return rng, nil
}

// transformVersion combines the fragment children of a version node into one
// PartialVersion, casting the numeric fragments to integers.
func (t *Transformer) transformVersion(node *Tree) (semver.PartialVersion, error) {
	if node.Kind != KindVersion {
		return semver.PartialVersion{}, fmt.Errorf("expected a %s node, got %q: %w", KindVersion, node.Kind, ErrParseFailure)
	}

	var version semver.PartialVersion
	for _, fragment := range node.Children {
		switch fragment.Kind {
		case KindMajor, KindMinor, KindPatch:
			value, err := strconv.Atoi(fragment.Value)
			if err != nil {
				return semver.PartialVersion{}, visitErr(node.Kind, fmt.Errorf("casting %s fragment %q: %v", fragment.Kind, fragment.Value, err))
			}
			switch fragment.Kind {
			case KindMajor:
				version.Major = value
			case KindMinor:
				minor := value
				version.Minor = &minor
			case KindPatch:
				patch := value
				version.Patch = &patch
			}
		case KindPrerelease:
			version.Prerelease = fragment.Value
		case KindBuild:
			version.Build = fragment.Value
		default:
			return semver.PartialVersion{}, visitErr(node.Kind, fmt.Errorf("unexpected %q fragment in a version node", fragment.Kind))
		}
	}

	return version, nil
}

// visitErr applies the transformation error policy: the library's own error
// kinds surface as themselves, anything else is wrapped in a VisitError.
func visitErr(kind NodeKind, err error) error {
	if errors.Is(err, ErrParseFailure) ||
		errors.Is(err, selector.ErrInvalidExpression) ||
		errors.Is(err, semver.ErrInvalidVersionFormat) {
		return err
	}
	return &VisitError{Kind: kind, Err: err}
}

// tokenList renders a node's children for error messages.
func tokenList(node *Tree) string {
	tokens := "["
	for i, child := range node.Children {
		if i > 0 {
			tokens += " "
		}
		if child.Value != "" {
			tokens += fmt.Sprintf("%s:%q", child.Kind, child.Value)
		} else {
			tokens += string(child.Kind)
		}
	}
	return tokens + "]"
}
