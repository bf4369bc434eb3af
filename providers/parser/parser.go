/*
Package parser tokenizes and parses semantic version selector expressions
(e.g. '>1.2.3 <2.0 || ~1.5') into validated selector values.

Parsing runs in three stages: the tokenizer produces a raw syntax tree from
the selector grammar, the transformer materializes the typed conditions,
ranges and clauses from it, and selector construction validates that no two
expressions inside an AND clause contradict each other.
*/
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dephub/semsel-core/providers/selector"
	"github.com/dephub/semsel-core/providers/semver"
)

// ErrParseFailure is returned on selector grammar and tokenization failures,
// including malformed raw trees handed to the transformer.
var ErrParseFailure = errors.New("selector parse failure")

// SelectorParser tokenizes and parses version selector expressions.
//
// The zero value is ready for use. Parsing is a pure function of its input,
// so a single instance may be shared freely between goroutines.
type SelectorParser struct{}

// NewSelectorParser constructs a SelectorParser.
func NewSelectorParser() *SelectorParser {
	return &SelectorParser{}
}

// Tokenize tokenizes a selector expression into its raw syntax tree without
// transforming it, for callers who want to run their own transformation.
// Leading and trailing whitespace is stripped first.
func (p *SelectorParser) Tokenize(content string) (*Tree, error) {
	return tokenizeSelector(strings.TrimSpace(content))
}

// Parse parses a selector expression into a validated VersionSelector.
//
// Grammar level failures are reported as ErrParseFailure, semantic conflicts
// between clause expressions as selector.ErrInvalidExpression.
func (p *SelectorParser) Parse(content string) (selector.VersionSelector, error) {
	return p.ParseWithValidation(content, true)
}

// ParseWithValidation parses a selector expression, optionally skipping the
// clause conflict validation for trusted construction.
func (p *SelectorParser) ParseWithValidation(content string, validate bool) (selector.VersionSelector, error) {
	tree, err := p.Tokenize(content)
	if err != nil {
		return selector.VersionSelector{}, normalizeParseErr(err)
	}

	transformer := &Transformer{SkipValidation: !validate}
	vs, err := transformer.Transform(tree)
	if err != nil {
		return selector.VersionSelector{}, err
	}
	return vs, nil
}

// normalizeParseErr folds any tokenizer failure that is not already one of
// the library's declared kinds into ErrParseFailure, so callers depend on a
// single stable error vocabulary.
func normalizeParseErr(err error) error {
	if errors.Is(err, ErrParseFailure) ||
		errors.Is(err, selector.ErrInvalidExpression) ||
		errors.Is(err, semver.ErrInvalidVersionFormat) {
		return err
	}
	return fmt.Errorf("%s: %w", err, ErrParseFailure)
}

var defaultParser = NewSelectorParser()

// Parse parses a selector expression using a shared SelectorParser.
func Parse(content string) (selector.VersionSelector, error) {
	return defaultParser.Parse(content)
}

// Tokenize tokenizes a selector expression using a shared SelectorParser.
func Tokenize(content string) (*Tree, error) {
	return defaultParser.Tokenize(content)
}
