package ast

import (
	"bytes"
	"io"
	"strings"
)

// Printer serializes nodes back to CSS text.
type Printer struct{}

// Print writes the serialization of a single node to w.
func (p *Printer) Print(w io.Writer, n Node) (err error) {
	switch n := n.(type) {
	case *AtRule:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Content)

	case *Rule:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, n.Content+";")

	case *RuleSet:
		if n == nil {
			return nil
		}
		_, _ = io.WriteString(w, strings.Join(n.Selectors, ", "))
		_, _ = io.WriteString(w, " {\n")
		for _, child := range n.Contents {
			_, _ = io.WriteString(w, indent(child.String()))
			_, _ = io.WriteString(w, "\n")
		}
		_, err = io.WriteString(w, "}")
	}

	return err
}

// PrintAll writes the serialization of a node sequence to w. Two nodes are
// separated by a blank line when the first ends with a closing brace, and by
// a single newline otherwise.
func (p *Printer) PrintAll(w io.Writer, nodes []Node) error {
	prev := ""
	for i, n := range nodes {
		if i > 0 {
			sep := "\n"
			if strings.HasSuffix(prev, "}") {
				sep = "\n\n"
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		s := n.String()
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
		prev = s
	}
	return nil
}

// Format serializes a node sequence to a string using the default printer.
func Format(nodes []Node) string {
	var p Printer
	var buf bytes.Buffer
	_ = p.PrintAll(&buf, nodes)
	return buf.String()
}

// print serializes a single node to a string using the default printer.
func print(n Node) string {
	var p Printer
	var buf bytes.Buffer
	_ = p.Print(&buf, n)
	return buf.String()
}

// indent prefixes every line of s with a tab.
func indent(s string) string {
	return "\t" + strings.ReplaceAll(s, "\n", "\n\t")
}
