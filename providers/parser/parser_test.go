package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dephub/semsel-core/providers/selector"
	"github.com/dephub/semsel-core/providers/semver"
)

func TestParse_Selector(t *testing.T) {
	vs, err := Parse(">2.3.4 <2.4 || 2.3.9")
	if err != nil {
		t.Fatalf("unexpected parsing error: %v", err)
	}
	if len(vs.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(vs.Clauses))
	}
	if len(vs.Clauses[0]) != 2 {
		t.Errorf("expected 2 expressions in the first clause, got %d", len(vs.Clauses[0]))
	}
	if len(vs.Clauses[1]) != 1 {
		t.Fatalf("expected 1 expression in the second clause, got %d", len(vs.Clauses[1]))
	}

	// A bare version is an implicit equality condition.
	implicit, ok := vs.Clauses[1][0].(selector.VersionCondition)
	if !ok {
		t.Fatalf("expected a condition, got %T", vs.Clauses[1][0])
	}
	if implicit.Operator != selector.OpEqual {
		t.Errorf("expected an equality operator, got %q", implicit.Operator)
	}
	if implicit.Version.String() != "2.3.9" {
		t.Errorf("unexpected condition version %q", implicit.Version)
	}

	// Rendering makes the implicit equality explicit.
	if vs.String() != ">2.3.4 <2.4 || =2.3.9" {
		t.Errorf("unexpected selector rendering %q", vs.String())
	}
}

func TestParse_OperatorSurface(t *testing.T) {
	cases := []struct {
		Content  string
		Rendered string
	}{
		{"=1.2.3", "=1.2.3"},
		{">1", ">1"},
		{">=1.2", ">=1.2"},
		{"<2", "<2"},
		{"<=2.0.0", "<=2.0.0"},
		{"^1.2.3", "^1.2.3"},
		{"~1.2", "~1.2"},
		{"> 1.2", ">1.2"}, // a single space may follow the operator
		{"1.0 - 2.0", "1.0 - 2.0"},
		{"1.0.0-alpha.1", "=1.0.0-alpha.1"},
		{"1.0.0-alpha+build.7", "=1.0.0-alpha+build.7"},
		{">1 <3||5.0 - 6.0", ">1 <3 || 5.0 - 6.0"},
		{"  >1.2  ", ">1.2"}, // outer whitespace is stripped
	}

	for _, tcase := range cases {
		t.Run(tcase.Content, func(t *testing.T) {
			vs, err := Parse(tcase.Content)
			if err != nil {
				t.Fatalf("unexpected parsing error: %v", err)
			}
			if vs.String() != tcase.Rendered {
				t.Errorf("expected rendering %q, got %q", tcase.Rendered, vs.String())
			}
		})
	}
}

func TestParse_RendersGrammarRoundTrippable(t *testing.T) {
	vs, err := Parse(">2.3.4 <2.4 || 2.3.9 || 1.0 - 2.0")
	if err != nil {
		t.Fatalf("unexpected parsing error: %v", err)
	}

	again, err := Parse(vs.String())
	if err != nil {
		t.Fatalf("unexpected error reparsing the rendering: %v", err)
	}
	if vs.String() != again.String() {
		t.Errorf("rendering is not stable: %q reparsed to %q", vs.String(), again.String())
	}
}

func TestParse_Failures(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"<>1.0",
		"=>1.0",
		"1.0 -",
		"1.0 - ",
		"- 2.0",
		"1.0 -2.0 - 3.0",
		"^1.0 - 2.0", // range boundaries never carry operators
		">",
		">1 <",
		"1.0.0.0",
		"01.2",
		"v1.2.3",
		"1.2.3 ||",
		"|| 1.2.3",
		">1  <2",    // double space
		">1 |||| 2", // empty clause between separators
		"hello",
	}

	for _, content := range cases {
		t.Run(fmt.Sprintf("%q", content), func(t *testing.T) {
			if _, err := Parse(content); !errors.Is(err, ErrParseFailure) {
				t.Errorf("expected ErrParseFailure, got %v", err)
			}
		})
	}
}

func TestParse_ConflictingClause(t *testing.T) {
	cases := []string{
		">1 <1.3 ^2",
		"=1 >1", // the boundary does not satisfy a strict bound
		"=1 <1",
		">=1 <1",
		">1 >1",
	}

	for _, content := range cases {
		t.Run(content, func(t *testing.T) {
			_, err := Parse(content)
			if !errors.Is(err, selector.ErrInvalidExpression) {
				t.Fatalf("expected ErrInvalidExpression, got %v", err)
			}
			// Semantic conflicts surface as themselves, not as parse failures.
			if errors.Is(err, ErrParseFailure) {
				t.Error("conflict unexpectedly reported as a parse failure")
			}
		})
	}
}

func TestParse_InvalidExpressionSurfacesUnwrapped(t *testing.T) {
	// A minor constraint without an explicit minor segment is rejected by
	// condition construction deep inside the transformation.
	if _, err := Parse("~1"); !errors.Is(err, selector.ErrInvalidExpression) {
		t.Errorf("expected ErrInvalidExpression, got %v", err)
	}

	// A collapsed range is rejected by range construction.
	if _, err := Parse("2.0 - 1.0"); !errors.Is(err, selector.ErrInvalidExpression) {
		t.Errorf("expected ErrInvalidExpression, got %v", err)
	}
}

func TestParseWithValidation_Disabled(t *testing.T) {
	if _, err := Parse("=1 =2"); err == nil {
		t.Fatal("expected a conflict error with validation enabled")
	}

	vs, err := NewSelectorParser().ParseWithValidation("=1 =2", false)
	if err != nil {
		t.Fatalf("unexpected error with validation disabled: %v", err)
	}
	if vs.String() != "=1 =2" {
		t.Errorf("unexpected selector rendering %q", vs.String())
	}
}

func TestTokenize_TreeShape(t *testing.T) {
	tree, err := Tokenize(">2.3.4 <2.4 || 2.3.9")
	if err != nil {
		t.Fatalf("unexpected tokenizing error: %v", err)
	}
	if tree.Kind != KindSelector {
		t.Fatalf("expected a selector root, got %q", tree.Kind)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 clause nodes, got %d", len(tree.Children))
	}

	first := tree.Children[0]
	if first.Kind != KindClause || len(first.Children) != 2 {
		t.Fatalf("unexpected first clause node %q with %d children", first.Kind, len(first.Children))
	}

	cond := first.Children[0]
	if cond.Kind != KindCondition || len(cond.Children) != 2 {
		t.Fatalf("unexpected condition node %q with %d children", cond.Kind, len(cond.Children))
	}
	if cond.Children[0].Kind != KindOperator || cond.Children[0].Value != ">" {
		t.Errorf("unexpected operator node %q %q", cond.Children[0].Kind, cond.Children[0].Value)
	}
	version := cond.Children[1]
	if version.Kind != KindVersion || len(version.Children) != 3 {
		t.Fatalf("unexpected version node %q with %d children", version.Kind, len(version.Children))
	}
	if version.Children[0].Kind != KindMajor || version.Children[0].Value != "2" {
		t.Errorf("unexpected major fragment %q %q", version.Children[0].Kind, version.Children[0].Value)
	}

	// An implicit equality condition tokenizes without an operator child.
	second := tree.Children[1]
	if len(second.Children) != 1 || len(second.Children[0].Children) != 1 {
		t.Fatal("unexpected implicit condition shape")
	}
	if second.Children[0].Children[0].Kind != KindVersion {
		t.Errorf("expected a version node, got %q", second.Children[0].Children[0].Kind)
	}
}

func TestTokenize_RangeNode(t *testing.T) {
	tree, err := Tokenize("1.0 - 2.0")
	if err != nil {
		t.Fatalf("unexpected tokenizing error: %v", err)
	}
	if len(tree.Children) != 1 || len(tree.Children[0].Children) != 1 {
		t.Fatal("unexpected selector shape")
	}

	rng := tree.Children[0].Children[0]
	if rng.Kind != KindRange || len(rng.Children) != 2 {
		t.Fatalf("unexpected range node %q with %d children", rng.Kind, len(rng.Children))
	}
	if rng.Children[0].Kind != KindVersion || rng.Children[1].Kind != KindVersion {
		t.Errorf("expected version boundaries, got %q and %q", rng.Children[0].Kind, rng.Children[1].Kind)
	}
}

func TestTransform_MalformedTrees(t *testing.T) {
	cases := []struct {
		Name string
		Tree *Tree
	}{
		{"nil tree", nil},
		{"wrong root", &Tree{Kind: KindClause}},
		{
			"condition child count",
			&Tree{Kind: KindSelector, Children: []*Tree{
				{Kind: KindClause, Children: []*Tree{
					{Kind: KindCondition, Children: []*Tree{
						{Kind: KindOperator, Value: ">"},
						{Kind: KindOperator, Value: "<"},
						{Kind: KindVersion, Children: []*Tree{{Kind: KindMajor, Value: "1"}}},
					}},
				}},
			}},
		},
		{
			"range child count",
			&Tree{Kind: KindSelector, Children: []*Tree{
				{Kind: KindClause, Children: []*Tree{
					{Kind: KindRange, Children: []*Tree{
						{Kind: KindVersion, Children: []*Tree{{Kind: KindMajor, Value: "1"}}},
					}},
				}},
			}},
		},
		{
			"foreign clause member",
			&Tree{Kind: KindSelector, Children: []*Tree{
				{Kind: KindClause, Children: []*Tree{{Kind: KindOperator, Value: ">"}}},
			}},
		},
	}

	for _, tcase := range cases {
		t.Run(tcase.Name, func(t *testing.T) {
			transformer := &Transformer{}
			if _, err := transformer.Transform(tcase.Tree); !errors.Is(err, ErrParseFailure) {
				t.Errorf("expected ErrParseFailure, got %v", err)
			}
		})
	}
}

func TestTransform_UnexpectedErrorsWrap(t *testing.T) {
	// An operator spelling the grammar never emits is an internal defect and
	// propagates wrapped in a VisitError instead of a parse failure.
	tree := &Tree{Kind: KindSelector, Children: []*Tree{
		{Kind: KindClause, Children: []*Tree{
			{Kind: KindCondition, Children: []*Tree{
				{Kind: KindOperator, Value: "!="},
				{Kind: KindVersion, Children: []*Tree{{Kind: KindMajor, Value: "1"}}},
			}},
		}},
	}}

	transformer := &Transformer{}
	_, err := transformer.Transform(tree)
	if err == nil {
		t.Fatal("expected a transformation error")
	}
	if errors.Is(err, ErrParseFailure) {
		t.Error("internal defect unexpectedly reported as a parse failure")
	}

	var visitErr *VisitError
	if !errors.As(err, &visitErr) {
		t.Fatalf("expected a VisitError, got %T", err)
	}
	if visitErr.Kind != KindCondition {
		t.Errorf("expected the condition node kind, got %q", visitErr.Kind)
	}
}

func TestParse_ErrorMessagesEmbedInput(t *testing.T) {
	_, err := Parse("<>1.0")
	if err == nil || !strings.Contains(err.Error(), ">1.0") {
		t.Errorf("expected the offending tokens in the message, got %v", err)
	}

	_, err = Parse("~1")
	if err == nil || !strings.Contains(err.Error(), "~1") {
		t.Errorf("expected the offending condition in the message, got %v", err)
	}
}

func TestParse_VersionFragments(t *testing.T) {
	vs, err := Parse("1.2.3-rc.1+build.5")
	if err != nil {
		t.Fatalf("unexpected parsing error: %v", err)
	}
	if len(vs.Clauses) != 1 || len(vs.Clauses[0]) != 1 {
		t.Fatal("unexpected selector shape")
	}

	cond, ok := vs.Clauses[0][0].(selector.VersionCondition)
	if !ok {
		t.Fatalf("expected a condition, got %T", vs.Clauses[0][0])
	}

	expected, err := semver.Parse("1.2.3-rc.1+build.5")
	if err != nil {
		t.Fatalf("unexpected version parsing error: %v", err)
	}
	if cond.Version.Compare(expected) != 0 {
		t.Errorf("unexpected condition version %q", cond.Version)
	}
	if cond.Version.String() != "1.2.3-rc.1+build.5" {
		t.Errorf("unexpected version rendering %q", cond.Version)
	}
}
