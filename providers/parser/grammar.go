package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dephub/semsel-core/providers/semver"
)

/*
Selector grammar and tokenizer.

The accepted surface is:

	OPERATOR: "=" | ">" | ">=" | "<" | "<=" | "^" | "~"
	version: MAJOR ("." MINOR ("." PATCH ("-" PRERELEASE)? ("+" BUILD)?)?)?
	version_range: version " - " version
	version_condition: OPERATOR? " "? version
	version_clause: (version_condition | version_range) (" " (version_condition | version_range))*
	selector: version_clause (" "? "||" " "? version_clause)*

Tokenization produces a raw Tree; the transformer materializes the typed
selector values from it.
*/

// NodeKind identifies a raw tree node produced by tokenization.
type NodeKind string

// Raw tree node kinds, mirroring the selector grammar categories.
const (
	KindSelector   = NodeKind("selector")
	KindClause     = NodeKind("version_clause")
	KindCondition  = NodeKind("version_condition")
	KindRange      = NodeKind("version_range")
	KindVersion    = NodeKind("version")
	KindOperator   = NodeKind("operator")
	KindMajor      = NodeKind("major")
	KindMinor      = NodeKind("minor")
	KindPatch      = NodeKind("patch")
	KindPrerelease = NodeKind("prerelease")
	KindBuild      = NodeKind("build")
)

// Tree is a raw syntax tree node. Leaf nodes carry the matched text in
// Value, interior nodes carry Children.
type Tree struct {
	Kind     NodeKind
	Value    string
	Children []*Tree
}

// operatorTokens lists the condition operator spellings, two-character
// operators first so prefix scanning never truncates them.
var operatorTokens = []string{">=", "<=", "=", ">", "<", "^", "~"}

// versionRgxCompiled is the version literal grammar, shared with the semver
// package so both stay in sync.
var versionRgxCompiled *regexp.Regexp

func init() {
	versionRgxCompiled = regexp.MustCompile("^" + semver.PartialVersionPattern + "$")
}

// tokenizeSelector tokenizes a whole selector expression into a raw tree.
func tokenizeSelector(content string) (*Tree, error) {
	if content == "" {
		return nil, fmt.Errorf("empty selector expression: %w", ErrParseFailure)
	}

	node := &Tree{Kind: KindSelector}
	pieces := strings.Split(content, "||")
	for i, piece := range pieces {
		// The '||' separator may be padded with a single space on each side.
		if i > 0 {
			piece = strings.TrimPrefix(piece, " ")
		}
		if i < len(pieces)-1 {
			piece = strings.TrimSuffix(piece, " ")
		}
		clause, err := tokenizeClause(piece)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, clause)
	}

	return node, nil
}

// tokenizeClause tokenizes one space-separated AND clause.
func tokenizeClause(clause string) (*Tree, error) {
	if clause == "" {
		return nil, fmt.Errorf("empty version clause: %w", ErrParseFailure)
	}

	node := &Tree{Kind: KindClause}
	words := strings.Split(clause, " ")
	for i := 0; i < len(words); {
		word := words[i]
		if word == "" {
			return nil, fmt.Errorf("unexpected blank token in clause %q: %w", clause, ErrParseFailure)
		}

		operator, rest := splitOperator(word)

		// A bare operator takes its version from the following word.
		if operator != "" && rest == "" {
			if i+1 >= len(words) {
				return nil, fmt.Errorf("operator %q is missing a version in clause %q: %w", operator, clause, ErrParseFailure)
			}
			rest = words[i+1]
			i++
		}

		// A bare version followed by a spaced hyphen starts a range. Range
		// boundaries never carry operators.
		if operator == "" && i+2 < len(words) && words[i+1] == "-" {
			start, err := tokenizeVersion(rest)
			if err != nil {
				return nil, err
			}
			end, err := tokenizeVersion(words[i+2])
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, &Tree{Kind: KindRange, Children: []*Tree{start, end}})
			i += 3
			continue
		}

		version, err := tokenizeVersion(rest)
		if err != nil {
			return nil, err
		}
		condition := &Tree{Kind: KindCondition}
		if operator != "" {
			condition.Children = append(condition.Children, &Tree{Kind: KindOperator, Value: operator})
		}
		condition.Children = append(condition.Children, version)
		node.Children = append(node.Children, condition)
		i++
	}

	return node, nil
}

// tokenizeVersion tokenizes a single version literal into a version node
// with one child per present fragment.
func tokenizeVersion(word string) (*Tree, error) {
	matches := versionRgxCompiled.FindStringSubmatch(word)
	if matches == nil {
		return nil, fmt.Errorf("%q is not a valid version literal: %w", word, ErrParseFailure)
	}

	node := &Tree{Kind: KindVersion}
	fragments := []struct {
		kind  NodeKind
		value string
	}{
		{KindMajor, matches[1]},
		{KindMinor, matches[2]},
		{KindPatch, matches[3]},
		{KindPrerelease, matches[4]},
		{KindBuild, matches[5]},
	}
	for _, fragment := range fragments {
		if fragment.value == "" {
			continue
		}
		node.Children = append(node.Children, &Tree{Kind: fragment.kind, Value: fragment.value})
	}

	return node, nil
}

// splitOperator splits a leading operator spelling off a clause word,
// returning the operator (possibly empty) and the remainder.
func splitOperator(word string) (string, string) {
	for _, operator := range operatorTokens {
		if strings.HasPrefix(word, operator) {
			return operator, strings.TrimPrefix(word, operator)
		}
	}
	return "", word
}
