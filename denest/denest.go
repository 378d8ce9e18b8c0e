// Package denest flattens nested rule sets into flat, selector-qualified
// rule sets usable by a plain CSS consumer.
package denest

import (
	"strings"

	"github.com/FeepingCreature/cssmx/ast"
)

// Denest flattens a rule-set tree into an ordered sequence of flat rule
// sets. Declarations are never dropped or reordered; only selectors are
// regrouped and rewritten. The input tree is not modified.
func Denest(rs *ast.RuleSet) []*ast.RuleSet {
	return denest(rs, nil)
}

func denest(rs *ast.RuleSet, outer []string) []*ast.RuleSet {
	level := &ast.RuleSet{Selectors: combine(outer, rs.Selectors)}

	var nested []*ast.RuleSet
	for _, child := range rs.Contents {
		if inner, ok := child.(*ast.RuleSet); ok {
			nested = append(nested, denest(inner, level.Selectors)...)
			continue
		}
		level.Contents = append(level.Contents, child.Clone())
	}

	var flat []*ast.RuleSet
	if len(level.Contents) > 0 {
		flat = append(flat, level)
	}
	return append(flat, nested...)
}

// combine builds the flattened selector list for a level. With no enclosing
// context the inner selectors stand verbatim. Otherwise each outer selector
// is paired with each inner selector: a pseudo-class or pseudo-element
// (leading ":") compounds directly onto the outer selector, anything else
// joins with the descendant combinator. A rule set without selectors of its
// own inherits the outer selectors unchanged.
func combine(outer, inner []string) []string {
	if len(outer) == 0 {
		return append([]string(nil), inner...)
	}
	if len(inner) == 0 {
		return append([]string(nil), outer...)
	}
	combined := make([]string, 0, len(outer)*len(inner))
	for _, o := range outer {
		for _, in := range inner {
			if strings.HasPrefix(in, ":") {
				combined = append(combined, o+in)
			} else {
				combined = append(combined, o+" "+in)
			}
		}
	}
	return combined
}
