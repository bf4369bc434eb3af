package semsel

import (
	"context"
	"fmt"

	"github.com/dephub/semsel-core/providers/parser"
)

// SelectorChecker validates the version selectors a project declares in its
// dependency manifests against the selector grammar and clause consistency
// rules.
type SelectorChecker struct {
	parser *parser.SelectorParser
}

// NewSelectorChecker constructs a new SelectorChecker.
func NewSelectorChecker() *SelectorChecker {
	return &SelectorChecker{parser: parser.NewSelectorParser()}
}

// Issue describes one dependency selector that failed to parse or contains
// conflicting expressions.
type Issue struct {
	Name     string `json:"name"`
	Selector string `json:"selector"`
	Reason   string `json:"reason"`
}

// Check parses every selector declared by the source and reports the ones
// that are malformed or internally conflicting. A nil-length result means
// every declared selector is consistent.
func (sc *SelectorChecker) Check(ctx context.Context, source DependencySource, typ DepType) ([]Issue, error) {
	constraints, err := source.Constraints(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s constraints from the source: %w", typ, err)
	}

	issues := []Issue{}
	for _, cst := range constraints {
		if _, err := sc.parser.Parse(cst.Selector); err != nil {
			issues = append(issues, Issue{
				Name:     cst.Name,
				Selector: cst.Selector,
				Reason:   err.Error(),
			})
		}
	}

	return issues, nil
}

// CheckSelector validates a single selector string outside of any manifest.
func (sc *SelectorChecker) CheckSelector(content string) error {
	_, err := sc.parser.Parse(content)
	return err
}
