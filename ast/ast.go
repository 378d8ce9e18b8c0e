package ast

// Node represents a node in the structural CSS tree.
//
// The node set is closed: a node is an AtRule, a Rule, or a RuleSet.
// Nodes are never mutated after construction; transforms build new trees
// via Clone.
type Node interface {
	node()

	// Clone returns a deep copy of the node.
	Clone() Node

	// String serializes the node back to CSS text.
	String() string
}

func (*AtRule) node()  {}
func (*Rule) node()    {}
func (*RuleSet) node() {}

// AtRule represents a rule starting with an "@" symbol. The content is the
// verbatim source span from the "@" through its terminating top-level
// semicolon or balanced {}-block.
type AtRule struct {
	Content string
}

// Rule represents a single declaration. The content excludes the trailing
// semicolon.
type Rule struct {
	Content string
}

// RuleSet represents a selector list and a block of declarations, at-rules,
// and nested rule sets. Selectors keep the comma-split, trimmed order they
// appeared in; Contents keeps source order exactly.
type RuleSet struct {
	Selectors []string
	Contents  []Node
}

// Clone returns a deep copy of the at-rule.
func (r *AtRule) Clone() Node { return &AtRule{Content: r.Content} }

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() Node { return &Rule{Content: r.Content} }

// Clone returns a deep copy of the rule set and all of its contents.
func (r *RuleSet) Clone() Node {
	other := &RuleSet{Selectors: append([]string(nil), r.Selectors...)}
	for _, n := range r.Contents {
		other.Contents = append(other.Contents, n.Clone())
	}
	return other
}

func (r *AtRule) String() string  { return print(r) }
func (r *Rule) String() string    { return print(r) }
func (r *RuleSet) String() string { return print(r) }
