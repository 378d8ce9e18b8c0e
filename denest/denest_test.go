package denest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeepingCreature/cssmx/ast"
	"github.com/FeepingCreature/cssmx/denest"
)

func TestDenest(t *testing.T) {
	var tests = []struct {
		name string
		in   *ast.RuleSet
		out  []*ast.RuleSet
	}{
		{
			name: "flat rule set passes through",
			in: &ast.RuleSet{
				Selectors: []string{"a"},
				Contents:  []ast.Node{&ast.Rule{Content: "color: red"}},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{"a"},
					Contents:  []ast.Node{&ast.Rule{Content: "color: red"}},
				},
			},
		},
		{
			name: "nested selectors join with the descendant combinator, pseudo compounds directly",
			in: &ast.RuleSet{
				Selectors: []string{".outer"},
				Contents: []ast.Node{
					&ast.RuleSet{
						Selectors: []string{".inner"},
						Contents:  []ast.Node{&ast.Rule{Content: "color: red"}},
					},
					&ast.RuleSet{
						Selectors: []string{":hover"},
						Contents:  []ast.Node{&ast.Rule{Content: "color: blue"}},
					},
				},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{".outer .inner"},
					Contents:  []ast.Node{&ast.Rule{Content: "color: red"}},
				},
				{
					Selectors: []string{".outer:hover"},
					Contents:  []ast.Node{&ast.Rule{Content: "color: blue"}},
				},
			},
		},
		{
			name: "outer declarations come before nested levels",
			in: &ast.RuleSet{
				Selectors: []string{".outer"},
				Contents: []ast.Node{
					&ast.Rule{Content: "color: red"},
					&ast.RuleSet{
						Selectors: []string{".inner"},
						Contents:  []ast.Node{&ast.Rule{Content: "color: blue"}},
					},
					&ast.Rule{Content: "margin: 0"},
				},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{".outer"},
					Contents: []ast.Node{
						&ast.Rule{Content: "color: red"},
						&ast.Rule{Content: "margin: 0"},
					},
				},
				{
					Selectors: []string{".inner"},
					Contents:  []ast.Node{&ast.Rule{Content: "color: blue"}},
				},
			},
		},
		{
			name: "selector lists cross-multiply pairwise",
			in: &ast.RuleSet{
				Selectors: []string{"a", "b"},
				Contents: []ast.Node{
					&ast.RuleSet{
						Selectors: []string{"c", ":hover"},
						Contents:  []ast.Node{&ast.Rule{Content: "x: 1"}},
					},
				},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{"a c", "a:hover", "b c", "b:hover"},
					Contents:  []ast.Node{&ast.Rule{Content: "x: 1"}},
				},
			},
		},
		{
			name: "selectorless inner set inherits the outer selectors",
			in: &ast.RuleSet{
				Selectors: []string{"a", "b"},
				Contents: []ast.Node{
					&ast.RuleSet{
						Contents: []ast.Node{&ast.Rule{Content: "x: 1"}},
					},
				},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{"a", "b"},
					Contents:  []ast.Node{&ast.Rule{Content: "x: 1"}},
				},
			},
		},
		{
			name: "deep nesting combines through every level",
			in: &ast.RuleSet{
				Selectors: []string{"a"},
				Contents: []ast.Node{
					&ast.RuleSet{
						Selectors: []string{"b"},
						Contents: []ast.Node{
							&ast.RuleSet{
								Selectors: []string{":hover"},
								Contents:  []ast.Node{&ast.Rule{Content: "x: 1"}},
							},
						},
					},
				},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{"a b:hover"},
					Contents:  []ast.Node{&ast.Rule{Content: "x: 1"}},
				},
			},
		},
		{
			name: "at-rules inside a rule set stay with their level",
			in: &ast.RuleSet{
				Selectors: []string{"a"},
				Contents: []ast.Node{
					&ast.AtRule{Content: "@x y;"},
					&ast.Rule{Content: "color: red"},
				},
			},
			out: []*ast.RuleSet{
				{
					Selectors: []string{"a"},
					Contents: []ast.Node{
						&ast.AtRule{Content: "@x y;"},
						&ast.Rule{Content: "color: red"},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, denest.Denest(tt.in))
		})
	}
}

// Ensure the input tree is left untouched.
func TestDenest_DoesNotMutateInput(t *testing.T) {
	in := &ast.RuleSet{
		Selectors: []string{"a"},
		Contents: []ast.Node{
			&ast.Rule{Content: "color: red"},
			&ast.RuleSet{
				Selectors: []string{"b"},
				Contents:  []ast.Node{&ast.Rule{Content: "x: 1"}},
			},
		},
	}
	want := in.Clone()

	flat := denest.Denest(in)
	require.NotEmpty(t, flat)
	flat[0].Contents[0].(*ast.Rule).Content = "mutated"

	assert.Equal(t, want, ast.Node(in))
}
