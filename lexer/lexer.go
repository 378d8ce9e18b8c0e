// Package lexer turns raw CSS text into an ordered sequence of structural
// nodes: at-rules, declarations, and (possibly nested) rule sets.
//
// The lexer does not validate CSS grammar. At-rules are kept as verbatim
// spans, declarations as verbatim text, and only brace/paren structure is
// interpreted. Comments are stripped before structural lexing.
package lexer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/FeepingCreature/cssmx/ast"
)

// ErrUnbalancedBraces is returned when a closing brace appears with no
// matching open brace, or the input ends inside a block.
var ErrUnbalancedBraces = errors.New("lexer: unbalanced braces")

// commentPattern matches comment spans non-greedily, allowing internal "*"
// not followed by "/".
var commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

// Lex turns CSS text into an ordered node sequence.
func Lex(src string) ([]ast.Node, error) {
	return lex(commentPattern.ReplaceAllString(src, ""))
}

// lex consumes comment-free text. It is called recursively for the contents
// of each rule-set block.
func lex(s string) ([]ast.Node, error) {
	var nodes []ast.Node
	i := 0
	for {
		// Skip leading whitespace.
		for i < len(s) && isWhitespace(s[i]) {
			i++
		}
		if i >= len(s) {
			return nodes, nil
		}

		if s[i] == '@' {
			end, err := scanAtRule(s, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &ast.AtRule{Content: s[i:end]})
			i = end
			continue
		}

		// Locate the next top-level semicolon or block open, whichever
		// comes first.
		stop, err := scanToBoundary(s, i)
		if err != nil {
			return nil, err
		}

		if stop == -1 || s[stop] == ';' {
			// No block before the terminator: a plain declaration.
			end := len(s)
			next := end
			if stop != -1 {
				end, next = stop, stop+1
			}
			if content := strings.TrimSpace(s[i:end]); content != "" {
				nodes = append(nodes, &ast.Rule{Content: content})
			}
			i = next
			continue
		}

		// A rule set: selectors before the brace, contents lexed recursively.
		end, err := matchBrace(s, stop)
		if err != nil {
			return nil, err
		}
		contents, err := lex(s[stop+1 : end])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &ast.RuleSet{
			Selectors: splitSelectors(s[i:stop]),
			Contents:  contents,
		})
		i = end + 1
	}
}

// scanAtRule consumes an at-rule starting at the "@" and returns the index
// one past its terminator: the first top-level semicolon, or the closing
// brace of its block.
func scanAtRule(s string, start int) (int, error) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return 0, fmt.Errorf("%w: unexpected close at offset %d", ErrUnbalancedBraces, i)
			}
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		case ';':
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	if depth > 0 {
		return 0, fmt.Errorf("%w: unterminated at-rule block", ErrUnbalancedBraces)
	}
	// An at-rule without a terminator at end of input is taken verbatim.
	return len(s), nil
}

// scanToBoundary returns the index of the first top-level semicolon or open
// brace at or after start, or -1 if neither occurs. Semicolons inside
// parentheses do not count.
func scanToBoundary(s string, start int) (int, error) {
	parens := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '{':
			return i, nil
		case '}':
			return 0, fmt.Errorf("%w: unexpected close at offset %d", ErrUnbalancedBraces, i)
		case ';':
			if parens == 0 {
				return i, nil
			}
		}
	}
	return -1, nil
}

// matchBrace returns the index of the brace matching the open brace at open.
func matchBrace(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unterminated block", ErrUnbalancedBraces)
}

// splitSelectors splits selector text on top-level commas and trims each
// selector. Commas inside parentheses or brackets do not split.
func splitSelectors(s string) []string {
	var selectors []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if sel := strings.TrimSpace(s[last:i]); sel != "" {
					selectors = append(selectors, sel)
				}
				last = i + 1
			}
		}
	}
	if sel := strings.TrimSpace(s[last:]); sel != "" {
		selectors = append(selectors, sel)
	}
	return selectors
}

// isWhitespace returns true if the byte is a space, tab, or newline.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}
